package session

import "github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/models"

// State is either Anonymous or Authenticated with a user projection.
// The zero value is Anonymous.
type State struct {
	user *models.UserProjection
}

func Anonymous() State {
	return State{}
}

func Authenticated(user models.UserProjection) State {
	return State{user: &user}
}

// User returns the projection when the state is authenticated.
func (s State) User() (models.UserProjection, bool) {
	if s.user == nil || s.user.ID == 0 {
		return models.UserProjection{}, false
	}
	return *s.user, true
}

func (s State) IsAuthenticated() bool {
	_, ok := s.User()
	return ok
}

// record is the stored form of a State.
type record struct {
	User *models.UserProjection `json:"user"`
}

func (s State) record() record {
	if user, ok := s.User(); ok {
		return record{User: &user}
	}
	return record{}
}

func (r record) state() State {
	if r.User == nil {
		return Anonymous()
	}
	return Authenticated(*r.User)
}
