package service

import (
	"context"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/internal/domain/repository"
	"github.com/cuatrovientos/retail-api/pkg/apperror"
)

// Login opens a session for the user with the given email. Passwords are not checked.
// On an unknown email the current session is left as it was.
func (s *StoreService) Login(ctx context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user *entity.User
	for i := range s.users {
		if s.users[i].Email == email {
			user = &s.users[i]
			break
		}
	}
	if user == nil {
		s.logger.Info("login rejected", "email", email)
		return nil, apperror.ErrUnknownUser
	}

	session := entity.Session{UserID: user.ID, StartedAt: s.now()}
	if err := s.commit(ctx, map[string]any{repository.KeySession: session}); err != nil {
		return nil, err
	}
	s.state.session = session

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	u := *user
	return &u, nil
}

// Logout clears the session. Logging out while logged out is not an error.
func (s *StoreService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.session.Active() {
		return nil
	}
	userID := s.state.session.UserID
	if err := s.commit(ctx, map[string]any{repository.KeySession: entity.Session{}}); err != nil {
		return err
	}
	s.state.session = entity.Session{}
	s.logger.Info("user logged out", "user_id", userID)
	return nil
}

// CurrentUser returns the logged-in user, if any
func (s *StoreService) CurrentUser() (*entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.requireSession()
	if err != nil {
		return nil, false
	}
	cp := *u
	return &cp, true
}

// Session returns a copy of the session record
func (s *StoreService) Session() entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.session
}
