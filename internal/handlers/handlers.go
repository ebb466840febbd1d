package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/config"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/middleware"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/notify"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/repository"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/service"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/session"
)

type pingFunc func(ctx context.Context) error

type HandlerSet struct {
	log        zerolog.Logger
	cfg        *config.AppConfig
	auth       *service.AuthService
	onboarding *service.OnboardingService
	sessions   *session.Manager
	pingDB     pingFunc
	pingCache  pingFunc
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, cfg *config.AppConfig) HandlerSet {
	users := repository.NewUserRepository(db)
	onboardingRepo := repository.NewOnboardingRepository(db)
	publisher := notify.NewPublisher(cache, cfg.Notifications.Stream)
	sessions := session.NewManager(session.NewRedisStore(cache, cfg.Session.TTL), cfg.Session, log)

	return newHandlerSet(
		log,
		cfg,
		service.NewAuthService(users, publisher, cfg, log),
		service.NewOnboardingService(onboardingRepo, users, log),
		sessions,
		db.Ping,
		func(ctx context.Context) error { return cache.Ping(ctx).Err() },
	)
}

func newHandlerSet(
	log zerolog.Logger,
	cfg *config.AppConfig,
	auth *service.AuthService,
	onboarding *service.OnboardingService,
	sessions *session.Manager,
	pingDB, pingCache pingFunc,
) HandlerSet {
	return HandlerSet{
		log:        log,
		cfg:        cfg,
		auth:       auth,
		onboarding: onboarding,
		sessions:   sessions,
		pingDB:     pingDB,
		pingCache:  pingCache,
	}
}

// Register mounts every route. The session middleware runs for all of them
// so that login and logout can see the current session.
func (h HandlerSet) Register(router gin.IRouter) {
	router.GET("/health", h.Health)

	pages := router.Group("/")
	pages.Use(h.sessions.Middleware())
	{
		pages.GET("/", h.Root)
		pages.GET("/web", h.Web)

		auth := pages.Group("/auth")
		auth.GET("/login", h.LoginPage)
		auth.POST("/login", h.Login)
		auth.GET("/registro", h.RegisterPage)
		auth.POST("/registro", h.Registration)
		auth.GET("/recuperacao", h.RecoveryPage)
		auth.POST("/recuperacao", h.Recovery)
		auth.GET("/logout", h.Logout)

		gated := pages.Group("/")
		gated.Use(middleware.RequireSession(h.sessions))
		gated.GET("/home", h.Home)

		onboarding := gated.Group("/primeiro-login")
		onboarding.Use(middleware.RequireFirstLogin())
		onboarding.GET("", h.OnboardingPage)
		onboarding.POST("", h.Onboarding)
	}
}

// requestLog returns the request-scoped logger when RequestID installed one.
func (h HandlerSet) requestLog(c *gin.Context) *zerolog.Logger {
	if l := zerolog.Ctx(c.Request.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &h.log
}

// bindForm fills dst from the posted form. A body that cannot be parsed
// leaves the fields empty, which the services reject with their own message.
func (h HandlerSet) bindForm(c *gin.Context, dst any) {
	if err := c.ShouldBind(dst); err != nil {
		h.requestLog(c).Debug().Err(err).Str("path", c.Request.URL.Path).Msg("form bind failed")
	}
}
