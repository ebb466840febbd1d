package session

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/config"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/ids"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/models"
)

const contextKey = "notadez.session"

// current is the per-request view of the session.
type current struct {
	id    string
	state State
}

// Manager maps authenticated users into and out of server-side sessions
// carried by a signed cookie.
type Manager struct {
	store Store
	cfg   config.SessionConfig
	log   zerolog.Logger
}

func NewManager(store Store, cfg config.SessionConfig, log zerolog.Logger) *Manager {
	return &Manager{store: store, cfg: cfg, log: log}
}

// Middleware resolves the cookie into a session for the rest of the chain.
// Unknown, expired or tampered cookies resolve to Anonymous.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := &current{}
		if id, ok := m.readCookie(c.Request); ok {
			state, err := m.store.Load(c.Request.Context(), id)
			switch {
			case err == nil:
				sess.id = id
				sess.state = state
			case errors.Is(err, ErrNotFound):
				// expired or destroyed elsewhere
			default:
				m.log.Warn().Err(err).Msg("session load failed")
			}
		}
		c.Set(contextKey, sess)
		c.Next()
	}
}

func (m *Manager) current(c *gin.Context) *current {
	if v, ok := c.Get(contextKey); ok {
		if sess, ok := v.(*current); ok {
			return sess
		}
	}
	sess := &current{}
	c.Set(contextKey, sess)
	return sess
}

func (m *Manager) State(c *gin.Context) State {
	return m.current(c).state
}

func (m *Manager) IsAuthenticated(c *gin.Context) bool {
	return m.current(c).state.IsAuthenticated()
}

func (m *Manager) CurrentUser(c *gin.Context) (models.UserProjection, bool) {
	return m.current(c).state.User()
}

// AttachUser binds a freshly authenticated user to a new session id. Any
// session the request carried is destroyed first so an id issued before
// login never ends up holding the user.
func (m *Manager) AttachUser(c *gin.Context, user models.User) error {
	sess := m.current(c)
	if sess.id != "" {
		if err := m.store.Destroy(c.Request.Context(), sess.id); err != nil {
			m.log.Warn().Err(err).Msg("destroy previous session failed")
		}
		sess.id = ""
		sess.state = Anonymous()
	}
	return m.save(c, sess, ids.New(), user)
}

// RefreshUser replaces the stored projection while keeping the session id.
// It is meant for an already authenticated session whose user changed.
func (m *Manager) RefreshUser(c *gin.Context, user models.User) error {
	sess := m.current(c)
	id := sess.id
	if id == "" {
		id = ids.New()
	}
	return m.save(c, sess, id, user)
}

func (m *Manager) save(c *gin.Context, sess *current, id string, user models.User) error {
	state := Authenticated(user.Projection())
	if err := m.store.Save(c.Request.Context(), id, state); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	sess.id = id
	sess.state = state
	m.writeCookie(c.Writer, id)
	return nil
}

// Clear drops the user and destroys the stored record. Destroy failures are
// only logged: the caller is already redirecting away.
func (m *Manager) Clear(c *gin.Context) {
	sess := m.current(c)
	if sess.id != "" {
		if err := m.store.Destroy(c.Request.Context(), sess.id); err != nil {
			m.log.Error().Err(err).Msg("session destroy failed")
		}
	}
	sess.id = ""
	sess.state = Anonymous()
	m.clearCookie(c.Writer)
}
