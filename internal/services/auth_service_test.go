package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaaathvik/consultansease/internal/utils"
)

func TestRegisterHashesPassword(t *testing.T) {
	users := newFakeUserRepo()
	auth := NewAuthService(users)

	user, err := auth.Register(context.Background(), "Alice", "alice@example.com", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "Alice", user.Name)
	assert.NotEqual(t, "hunter2", user.Password, "password must not be stored in clear")
	assert.True(t, utils.CheckPasswordHash("hunter2", user.Password))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	auth := NewAuthService(users)

	first, err := auth.Register(context.Background(), "Alice", "alice@example.com", "hunter2")
	require.NoError(t, err)

	_, err = auth.Register(context.Background(), "Imposter", "alice@example.com", "other")
	require.ErrorIs(t, err, utils.ErrEmailExists)

	// The original record's hash is untouched.
	stored := users.users["alice@example.com"]
	assert.Equal(t, first.Password, stored.Password)
	assert.Equal(t, "Alice", stored.Name)
}

func TestLoginUnknownEmail(t *testing.T) {
	auth := NewAuthService(newFakeUserRepo())

	_, err := auth.Login(context.Background(), "ghost@example.com", "whatever")
	require.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	users.add(t, "Alice", "alice@example.com", "hunter2")
	auth := NewAuthService(users)

	_, err := auth.Login(context.Background(), "alice@example.com", "hunter3")
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserRepo()
	users.add(t, "Alice", "alice@example.com", "hunter2")
	auth := NewAuthService(users)

	user, err := auth.Login(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}
