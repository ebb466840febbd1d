package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/models"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/repository"
)

type OnboardingStore interface {
	Complete(ctx context.Context, userID int64, institutions, courses []string) (models.OnboardingResult, error)
}

type OnboardingService struct {
	store OnboardingStore
	users UserStore
	log   zerolog.Logger
}

func NewOnboardingService(store OnboardingStore, users UserStore, log zerolog.Logger) *OnboardingService {
	return &OnboardingService{store: store, users: users, log: log}
}

// Complete validates the submitted names and runs the onboarding
// transaction. Nothing is written when either list is blank. A user who
// already finished onboarding gets a KindConflict error.
func (s *OnboardingService) Complete(ctx context.Context, userID int64, institutions, courses []string) (models.OnboardingResult, error) {
	institutions = compactNames(institutions)
	courses = compactNames(courses)
	if len(institutions) == 0 || len(courses) == 0 {
		return models.OnboardingResult{}, newError(KindValidation, MsgOnboardingRequired, nil)
	}

	result, err := s.store.Complete(ctx, userID, institutions, courses)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyOnboarded) {
			return models.OnboardingResult{}, newError(KindConflict, MsgOnboardingDone, err)
		}
		return models.OnboardingResult{}, newError(KindTransaction, MsgOnboardingFailed, err)
	}

	s.log.Info().
		Int64("user_id", userID).
		Int("institutions", len(result.Institutions)).
		Int("courses", len(result.Courses)).
		Msg("onboarding completed")
	return result, nil
}

// Reload fetches the user after a committed onboarding.
func (s *OnboardingService) Reload(ctx context.Context, userID int64) (models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// compactNames trims every entry and drops the blank ones.
func compactNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
