package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HomePath is where users who already finished onboarding land.
const HomePath = "/home"

// RequireFirstLogin keeps users who already completed onboarding out of
// the onboarding pages. It must run after RequireSession.
func RequireFirstLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		if !user.FirstLogin {
			c.Redirect(http.StatusFound, HomePath)
			c.Abort()
			return
		}

		c.Next()
	}
}
