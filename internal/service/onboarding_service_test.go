package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/models"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/repository"
)

type fakeOnboarding struct {
	calls        int
	institutions []string
	courses      []string
	err          error
}

func (f *fakeOnboarding) Complete(_ context.Context, userID int64, institutions, courses []string) (models.OnboardingResult, error) {
	f.calls++
	f.institutions = institutions
	f.courses = courses
	if f.err != nil {
		return models.OnboardingResult{}, f.err
	}
	var result models.OnboardingResult
	for i, name := range institutions {
		inst := models.Institution{ID: int64(i + 1), Name: name, UserID: userID}
		result.Institutions = append(result.Institutions, inst)
		for _, course := range courses {
			result.Courses = append(result.Courses, models.Course{Name: course, InstitutionID: inst.ID, UserID: userID})
		}
	}
	return result, nil
}

func TestOnboardingCompleteTrimsAndDropsBlanks(t *testing.T) {
	store := &fakeOnboarding{}
	svc := NewOnboardingService(store, newFakeUsers(), zerolog.Nop())

	result, err := svc.Complete(context.Background(), 7, []string{" A ", "", "B"}, []string{"X", "  ", "Y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, store.institutions)
	assert.Equal(t, []string{"X", "Y"}, store.courses)
	assert.Len(t, result.Institutions, 2)
	assert.Len(t, result.Courses, 4)
}

func TestOnboardingCompleteRejectsEmptyLists(t *testing.T) {
	cases := []struct {
		name         string
		institutions []string
		courses      []string
	}{
		{"no institutions", nil, []string{"X"}},
		{"blank institutions", []string{" ", ""}, []string{"X"}},
		{"no courses", []string{"A"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeOnboarding{}
			svc := NewOnboardingService(store, newFakeUsers(), zerolog.Nop())

			_, err := svc.Complete(context.Background(), 7, tc.institutions, tc.courses)
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
			assert.Equal(t, MsgOnboardingRequired, MessageOf(err, ""))
			assert.Zero(t, store.calls)
		})
	}
}

func TestOnboardingCompleteStoreFailure(t *testing.T) {
	store := &fakeOnboarding{err: errors.New("update users: boom")}
	svc := NewOnboardingService(store, newFakeUsers(), zerolog.Nop())

	_, err := svc.Complete(context.Background(), 7, []string{"A"}, []string{"X"})
	require.Error(t, err)
	assert.Equal(t, KindTransaction, KindOf(err))
	assert.Equal(t, MsgOnboardingFailed, MessageOf(err, ""))
	assert.ErrorContains(t, err, "boom")
}

func TestOnboardingCompleteAlreadyDone(t *testing.T) {
	store := &fakeOnboarding{err: repository.ErrAlreadyOnboarded}
	svc := NewOnboardingService(store, newFakeUsers(), zerolog.Nop())

	_, err := svc.Complete(context.Background(), 7, []string{"A"}, []string{"X"})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.ErrorIs(t, err, repository.ErrAlreadyOnboarded)
}
