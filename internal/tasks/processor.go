package tasks

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/notify"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/security"
)

// Processor dispatches notification stream entries to the mailer. Entries
// that can never succeed are logged and dropped so they are acked.
type Processor struct {
	logger         zerolog.Logger
	mailer         Mailer
	recoverySecret string
}

func NewProcessor(logger zerolog.Logger, mailer Mailer, recoverySecret string) *Processor {
	return &Processor{
		logger:         logger,
		mailer:         mailer,
		recoverySecret: recoverySecret,
	}
}

func (p *Processor) Handle(ctx context.Context, msg redis.XMessage) error {
	payload, err := notify.Decode(msg.Values)
	if err != nil {
		p.logger.Error().Err(err).Str("message_id", msg.ID).Msg("dropping malformed notification")
		return nil
	}

	switch payload.Type {
	case notify.TypePasswordRecovery:
		return p.handlePasswordRecovery(ctx, msg.ID, payload)
	case notify.TypeOnboardingReminder:
		return p.handleOnboardingReminder(ctx, payload)
	default:
		p.logger.Warn().Str("type", string(payload.Type)).Str("message_id", msg.ID).Msg("unknown notification type")
		return nil
	}
}

func (p *Processor) handlePasswordRecovery(ctx context.Context, id string, payload notify.Message) error {
	claims, err := security.ParseRecoveryToken(payload.Token, p.recoverySecret)
	if err != nil {
		p.logger.Warn().Err(err).Str("message_id", id).Int64("user_id", payload.UserID).Msg("dropping unusable recovery token")
		return nil
	}
	if claims.UserID != payload.UserID {
		p.logger.Warn().Str("message_id", id).Int64("user_id", payload.UserID).Msg("recovery token belongs to another user")
		return nil
	}

	if err := p.mailer.SendPasswordRecovery(ctx, payload.Email, payload.Name, payload.Token); err != nil {
		return fmt.Errorf("send password recovery: %w", err)
	}
	return nil
}

func (p *Processor) handleOnboardingReminder(ctx context.Context, payload notify.Message) error {
	if err := p.mailer.SendOnboardingReminder(ctx, payload.Email, payload.Name); err != nil {
		return fmt.Errorf("send onboarding reminder: %w", err)
	}
	return nil
}
