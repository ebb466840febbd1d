package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/middleware"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/service"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/views"
)

const titleOnboarding = "Primeiro Acesso"

// formList accepts both the bracketed and the plain field name.
func formList(c *gin.Context, name string) []string {
	values := append([]string(nil), c.PostFormArray(name+"[]")...)
	return append(values, c.PostFormArray(name)...)
}

func (h HandlerSet) OnboardingPage(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.HTML(http.StatusOK, views.Onboarding, gin.H{
		"title": titleOnboarding,
		"user":  user,
	})
}

func (h HandlerSet) Onboarding(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	institutions := formList(c, "institutions")
	courses := formList(c, "courses")

	if _, err := h.onboarding.Complete(c.Request.Context(), user.ID, institutions, courses); err != nil {
		switch service.KindOf(err) {
		case service.KindConflict:
			// Finished from another session; this one is only stale.
			h.requestLog(c).Info().Int64("user_id", user.ID).Msg("onboarding already completed")
			h.refreshSession(c, user.ID)
			c.Redirect(http.StatusFound, middleware.HomePath)
			return
		case service.KindValidation:
		default:
			h.requestLog(c).Error().Err(err).Int64("user_id", user.ID).Msg("onboarding failed")
		}
		c.HTML(http.StatusOK, views.Onboarding, gin.H{
			"title":        titleOnboarding,
			"user":         user,
			"error":        service.MessageOf(err, service.MsgOnboardingFailed),
			"institutions": institutions,
			"courses":      courses,
		})
		return
	}

	h.refreshSession(c, user.ID)
	c.Redirect(http.StatusFound, middleware.HomePath)
}

// refreshSession reloads the user into the current session. Failures are
// logged: the rows are committed and a stale session lasts until next login.
func (h HandlerSet) refreshSession(c *gin.Context, userID int64) {
	refreshed, err := h.onboarding.Reload(c.Request.Context(), userID)
	if err != nil {
		h.requestLog(c).Warn().Err(err).Int64("user_id", userID).Msg("reload user after onboarding failed")
		return
	}
	if err := h.sessions.RefreshUser(c, refreshed); err != nil {
		h.requestLog(c).Warn().Err(err).Int64("user_id", userID).Msg("refresh session after onboarding failed")
	}
}
