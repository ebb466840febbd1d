package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/middleware"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/security"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/service"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/views"
)

const (
	onboardingPath = "/primeiro-login"

	titleLogin    = "Login"
	titleRegister = "Cadastro"
	titleRecovery = "Recuperação de Senha"
)

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type registerForm struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	Telefone        string `form:"telefone"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

type recoveryForm struct {
	Email string `form:"email"`
}

func (h HandlerSet) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, views.Login, gin.H{
		"title":   titleLogin,
		"message": c.Query("message"),
	})
}

func (h HandlerSet) Login(c *gin.Context) {
	var form loginForm
	h.bindForm(c, &form)

	renderError := func(msg string) {
		c.HTML(http.StatusOK, views.Login, gin.H{
			"title": titleLogin,
			"error": msg,
			"email": form.Email,
		})
	}

	user, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if service.KindOf(err) == service.KindInternal {
			h.requestLog(c).Error().Err(err).Str("email", form.Email).Msg("login failed")
		}
		renderError(service.MessageOf(err, service.MsgLoginFailed))
		return
	}

	if err := h.sessions.AttachUser(c, user); err != nil {
		h.requestLog(c).Error().Err(err).Int64("user_id", user.ID).Msg("attach session failed")
		renderError(service.MsgLoginFailed)
		return
	}

	if user.FirstLogin {
		c.Redirect(http.StatusFound, onboardingPath)
		return
	}
	c.Redirect(http.StatusFound, middleware.HomePath)
}

func (h HandlerSet) renderRegister(c *gin.Context, form registerForm, msg string) {
	c.HTML(http.StatusOK, views.Register, gin.H{
		"title":                titleRegister,
		"error":                msg,
		"passwordRequirements": security.PasswordRequirements,
		"name":                 form.Name,
		"email":                form.Email,
		"telefone":             form.Telefone,
	})
}

func (h HandlerSet) RegisterPage(c *gin.Context) {
	h.renderRegister(c, registerForm{}, "")
}

func (h HandlerSet) Registration(c *gin.Context) {
	var form registerForm
	h.bindForm(c, &form)

	_, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:            form.Name,
		Email:           form.Email,
		Telefone:        form.Telefone,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		if service.KindOf(err) == service.KindInternal {
			h.requestLog(c).Error().Err(err).Str("email", form.Email).Msg("registration failed")
		}
		h.renderRegister(c, form, service.MessageOf(err, service.MsgRegisterFailed))
		return
	}

	c.Redirect(http.StatusFound, middleware.LoginPath+"?message="+url.QueryEscape(service.MsgRegistered))
}

func (h HandlerSet) RecoveryPage(c *gin.Context) {
	c.HTML(http.StatusOK, views.Recovery, gin.H{"title": titleRecovery})
}

func (h HandlerSet) Recovery(c *gin.Context) {
	var form recoveryForm
	h.bindForm(c, &form)

	if err := h.auth.RequestRecovery(c.Request.Context(), form.Email); err != nil {
		if service.KindOf(err) == service.KindInternal {
			h.requestLog(c).Error().Err(err).Str("email", form.Email).Msg("recovery lookup failed")
		}
		c.HTML(http.StatusOK, views.Recovery, gin.H{
			"title": titleRecovery,
			"error": service.MessageOf(err, service.MsgRecoveryFailed),
			"email": form.Email,
		})
		return
	}

	c.HTML(http.StatusOK, views.Recovery, gin.H{
		"title":   titleRecovery,
		"message": service.MsgRecoverySent,
	})
}

// Logout is safe to call without a session.
func (h HandlerSet) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.Redirect(http.StatusFound, middleware.LoginPath)
}
