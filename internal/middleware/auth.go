package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/models"
)

const currentUserKey = "current_user"

// LoginPath is where anonymous requests to gated pages are sent.
const LoginPath = "/auth/login"

// SessionReader exposes the user bound to the request's session.
type SessionReader interface {
	CurrentUser(c *gin.Context) (models.UserProjection, bool)
}

// RequireSession redirects anonymous requests to the login page and makes
// the session user available through CurrentUser.
func RequireSession(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessions.CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user set by RequireSession.
func CurrentUser(c *gin.Context) (models.UserProjection, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return models.UserProjection{}, false
	}
	user, ok := v.(models.UserProjection)
	return user, ok
}

func userID(v any) (int64, bool) {
	user, ok := v.(models.UserProjection)
	if !ok {
		return 0, false
	}
	return user.ID, true
}
