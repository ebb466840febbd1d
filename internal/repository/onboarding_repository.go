package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/models"
)

type OnboardingRepository struct {
	db TxStarter
}

func NewOnboardingRepository(db TxStarter) *OnboardingRepository {
	return &OnboardingRepository{db: db}
}

// Complete writes the user's institutions and courses and clears
// primeira_vez in a single transaction. Every course is inserted once under
// every institution. Nothing persists unless all statements succeed, and
// only the transaction that actually flips primeira_vez commits; a
// concurrent or repeated submission gets ErrAlreadyOnboarded.
func (r *OnboardingRepository) Complete(ctx context.Context, userID int64, institutions, courses []string) (models.OnboardingResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.OnboardingResult{}, fmt.Errorf("begin: %w", err)
	}

	result, err := completeOnboarding(ctx, tx, userID, institutions, courses)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return models.OnboardingResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.OnboardingResult{}, fmt.Errorf("commit: %w", err)
	}
	return result, nil
}

func completeOnboarding(ctx context.Context, tx pgx.Tx, userID int64, institutions, courses []string) (models.OnboardingResult, error) {
	const insertInstitution = `INSERT INTO instituicoes (nome, user_id) VALUES ($1, $2) RETURNING id`
	const insertCourse = `INSERT INTO cursos (nome, instituicao_id, user_id) VALUES ($1, $2, $3) RETURNING id`
	const clearFirstLogin = `UPDATE users SET primeira_vez = FALSE WHERE id = $1 AND primeira_vez`

	var result models.OnboardingResult
	for _, name := range institutions {
		institution := models.Institution{Name: name, UserID: userID}
		if err := tx.QueryRow(ctx, insertInstitution, name, userID).Scan(&institution.ID); err != nil {
			return models.OnboardingResult{}, fmt.Errorf("insert institution %q: %w", name, err)
		}
		result.Institutions = append(result.Institutions, institution)

		for _, courseName := range courses {
			course := models.Course{Name: courseName, InstitutionID: institution.ID, UserID: userID}
			if err := tx.QueryRow(ctx, insertCourse, courseName, institution.ID, userID).Scan(&course.ID); err != nil {
				return models.OnboardingResult{}, fmt.Errorf("insert course %q: %w", courseName, err)
			}
			result.Courses = append(result.Courses, course)
		}
	}

	tag, err := tx.Exec(ctx, clearFirstLogin, userID)
	if err != nil {
		return models.OnboardingResult{}, fmt.Errorf("clear primeira_vez: %w", err)
	}
	// The row lock makes a concurrent submission wait here and then see
	// the flag already cleared.
	if tag.RowsAffected() == 0 {
		return models.OnboardingResult{}, ErrAlreadyOnboarded
	}
	return result, nil
}
