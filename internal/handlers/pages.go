package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/middleware"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/views"
)

func (h HandlerSet) Home(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.HTML(http.StatusOK, views.Home, gin.H{
		"title": "Página Inicial",
		"user":  user,
	})
}

func (h HandlerSet) Web(c *gin.Context) {
	c.HTML(http.StatusOK, views.Login, gin.H{"title": "Página Web"})
}

func (h HandlerSet) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

func (h HandlerSet) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":   "Rota não encontrada",
		"message": fmt.Sprintf("A rota %s %s não existe", c.Request.Method, c.Request.URL.Path),
		"suggest": "Verifique a documentação da API",
	})
}
