package models

import "time"

type User struct {
	ID           int64
	Name         string
	Email        string
	Telefone     string
	PasswordHash string
	CreatedAt    time.Time
	// FirstLogin mirrors users.primeira_vez: true until onboarding commits.
	FirstLogin bool
}

// UserProjection is the part of a User that may be kept in a session.
type UserProjection struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Telefone   string    `json:"telefone"`
	CreatedAt  time.Time `json:"created_at"`
	FirstLogin bool      `json:"primeira_vez"`
}

func (u User) Projection() UserProjection {
	return UserProjection{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Telefone:   u.Telefone,
		CreatedAt:  u.CreatedAt,
		FirstLogin: u.FirstLogin,
	}
}
