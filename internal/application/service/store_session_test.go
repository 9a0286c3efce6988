package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/cuatrovientos/retail-api/internal/domain/enum"
	"github.com/cuatrovientos/retail-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	s := newTestStore(t)

	u, err := s.Login(context.Background(), stockEmail)
	require.NoError(t, err)
	assert.Equal(t, "u2", u.ID)
	assert.Equal(t, enum.RoleStock, u.Role)

	current, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u2", current.ID)
	assert.True(t, s.Session().StartedAt.Equal(s.clock.Now()))
}

func TestLogin_UnknownEmailKeepsSession(t *testing.T) {
	s := newTestStore(t)
	s.login(t, adminEmail)

	_, err := s.Login(context.Background(), "nobody@example.com")
	appErr := assertAppError(t, err, http.StatusUnauthorized)
	assert.Equal(t, apperror.ErrUnknownUser.Message, appErr.Message)

	current, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u1", current.ID)
}

func TestLogin_SwitchesUser(t *testing.T) {
	s := newTestStore(t)
	s.login(t, adminEmail)
	s.login(t, cashierEmail)

	current, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u3", current.ID)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.login(t, adminEmail)

	require.NoError(t, s.Logout(ctx))
	_, ok := s.CurrentUser()
	assert.False(t, ok)

	// logging out twice is fine
	require.NoError(t, s.Logout(ctx))

	reopened := openTestStore(t, s.repo)
	_, ok = reopened.CurrentUser()
	assert.False(t, ok)
}
