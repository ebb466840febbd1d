package session

import (
	"net/http"
	"strings"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/security"
)

// encodeCookie binds the session id to the server secret so ids cannot be
// guessed or swapped client-side.
func encodeCookie(secret, id string) string {
	return id + "." + security.SignResource(secret, "session", id)
}

func decodeCookie(secret, value string) (string, bool) {
	value = strings.TrimSpace(value)
	idx := strings.LastIndexByte(value, '.')
	if idx <= 0 || idx == len(value)-1 {
		return "", false
	}
	id, signature := value[:idx], value[idx+1:]
	if !security.VerifyResource(secret, signature, "session", id) {
		return "", false
	}
	return id, true
}

func (m *Manager) readCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie == nil {
		return "", false
	}
	return decodeCookie(m.cfg.Secret, cookie.Value)
}

func (m *Manager) writeCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    encodeCookie(m.cfg.Secret, id),
		Path:     "/",
		MaxAge:   int(m.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
