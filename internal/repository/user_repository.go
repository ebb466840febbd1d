package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/models"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrAlreadyOnboarded = errors.New("onboarding already completed")
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user with primeira_vez = TRUE and returns it with the
// generated columns filled in.
func (r *UserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (name, email, telefone, password_hash, primeira_vez)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, created_at, primeira_vez
	`

	err := r.db.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Telefone,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.FirstLogin)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, name, email, telefone, password_hash, created_at, primeira_vez
		FROM users WHERE email = $1
	`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	const query = `
		SELECT id, name, email, telefone, password_hash, created_at, primeira_vez
		FROM users WHERE id = $1
	`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// ListPendingOnboarding returns users that registered in [from, before) and
// still have primeira_vez set, oldest first.
func (r *UserRepository) ListPendingOnboarding(ctx context.Context, registeredFrom, registeredBefore time.Time, limit int) ([]models.User, error) {
	const query = `
		SELECT id, name, email, telefone, password_hash, created_at, primeira_vez
		FROM users
		WHERE primeira_vez AND created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, registeredFrom, registeredBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending onboarding: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Telefone,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.FirstLogin,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}
