package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/config"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/models"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/notify"
)

type PendingUserLister interface {
	ListPendingOnboarding(ctx context.Context, registeredFrom, registeredBefore time.Time, limit int) ([]models.User, error)
}

type Publisher interface {
	Publish(ctx context.Context, msg notify.Message) error
}

type Scheduler struct {
	cron      *cron.Cron
	users     PendingUserLister
	publisher Publisher
	cfg       config.JobsConfig
	log       zerolog.Logger
	now       func() time.Time
}

func NewScheduler(users PendingUserLister, publisher Publisher, cfg config.JobsConfig, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		users:     users,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// Start registers the onboarding reminder. An empty schedule disables it.
func (s *Scheduler) Start() error {
	if s.cfg.OnboardingReminderSchedule == "" {
		s.log.Info().Msg("onboarding reminders disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.OnboardingReminderSchedule, s.runOnboardingReminders); err != nil {
		return fmt.Errorf("schedule onboarding reminders: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop halts the scheduler; the returned context is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runOnboardingReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sent, err := s.RemindPendingOnboarding(ctx)
	if err != nil {
		s.log.Error().Err(err).Int("sent", sent).Msg("onboarding reminders failed")
		return
	}
	s.log.Info().Int("sent", sent).Msg("onboarding reminders queued")
}

// RemindPendingOnboarding queues a reminder for users who have not finished
// onboarding and registered within one window before the reminder delay.
// Consecutive runs cover adjacent windows, so each user is reminded once.
// It returns how many were queued.
func (s *Scheduler) RemindPendingOnboarding(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.cfg.OnboardingReminderAfter)
	from := cutoff.Add(-s.cfg.OnboardingReminderWindow)
	users, err := s.users.ListPendingOnboarding(ctx, from, cutoff, s.cfg.OnboardingReminderBatch)
	if err != nil {
		return 0, err
	}

	var (
		sent int
		errs []error
	)
	for _, user := range users {
		if err := s.publisher.Publish(ctx, notify.Message{
			Type:   notify.TypeOnboardingReminder,
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
		}); err != nil {
			errs = append(errs, fmt.Errorf("user %d: %w", user.ID, err))
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}
