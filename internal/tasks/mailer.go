package tasks

import (
	"context"

	"github.com/rs/zerolog"
)

// Mailer delivers user-facing notifications.
type Mailer interface {
	SendPasswordRecovery(ctx context.Context, email, name, token string) error
	SendOnboardingReminder(ctx context.Context, email, name string) error
}

// LogMailer records deliveries in the log instead of sending them.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordRecovery(_ context.Context, email, name, token string) error {
	m.log.Info().
		Str("email", email).
		Str("name", name).
		Int("token_len", len(token)).
		Msg("password recovery delivered")
	return nil
}

func (m *LogMailer) SendOnboardingReminder(_ context.Context, email, name string) error {
	m.log.Info().
		Str("email", email).
		Str("name", name).
		Msg("onboarding reminder delivered")
	return nil
}
