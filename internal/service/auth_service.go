package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/config"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/models"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/notify"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/repository"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/security"
)

type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
}

type Publisher interface {
	Publish(ctx context.Context, msg notify.Message) error
}

type AuthService struct {
	users    UserStore
	notifier Publisher
	cfg      *config.AppConfig
	log      zerolog.Logger
	hash     func(password string) (string, error)
}

func NewAuthService(users UserStore, notifier Publisher, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
		hash:     security.HashPassword,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

type LoginInput struct {
	Email    string
	Password string
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, newError(KindAuthentication, MsgUserNotFound, err)
		}
		return models.User{}, newError(KindInternal, MsgLoginFailed, err)
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return models.User{}, newError(KindInternal, MsgLoginFailed, err)
	}
	if !ok {
		return models.User{}, newError(KindAuthentication, MsgWrongPassword, nil)
	}

	return user, nil
}

type RegisterInput struct {
	Name            string
	Email           string
	Telefone        string
	Password        string
	ConfirmPassword string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" {
		return models.User{}, newError(KindValidation, MsgMissingFields, nil)
	}

	if input.Password != input.ConfirmPassword {
		return models.User{}, newError(KindValidation, MsgPasswordMismatch, nil)
	}

	if check := security.ValidatePassword(input.Password); !check.Valid {
		return models.User{}, newError(KindValidation, check.Message, nil)
	}

	hash, err := s.hash(input.Password)
	if err != nil {
		return models.User{}, newError(KindInternal, MsgRegisterFailed, err)
	}

	user, err := s.users.Create(ctx, models.User{
		Name:         name,
		Email:        email,
		Telefone:     strings.TrimSpace(input.Telefone),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return models.User{}, newError(KindConflict, MsgEmailTaken, err)
		}
		return models.User{}, newError(KindInternal, MsgRegisterFailed, err)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// RequestRecovery checks the email and queues a recovery notification with
// a short-lived token. A queueing failure is logged, not returned.
func (s *AuthService) RequestRecovery(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return newError(KindValidation, MsgRecoveryNotFound, err)
		}
		return newError(KindInternal, MsgRecoveryFailed, err)
	}

	token, err := security.GenerateRecoveryToken(s.cfg.Security.RecoverySecret, user.ID, user.Email, s.cfg.Security.RecoveryTTL)
	if err != nil {
		return newError(KindInternal, MsgRecoveryFailed, err)
	}

	if err := s.notifier.Publish(ctx, notify.Message{
		Type:   notify.TypePasswordRecovery,
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Token:  token,
	}); err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("queue recovery notification failed")
	}
	return nil
}
