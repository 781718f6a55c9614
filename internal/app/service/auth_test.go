package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranav06082004/Authen-X/internal/storage"
)

func newTestAuth(t *testing.T) (*Auth, *storage.MemoryStorage) {
	mem, err := storage.CreateMemoryStorage()
	require.NoError(t, err)

	return NewAuth(mem, "test-secret"), mem
}

func TestRegisterAndResolve(t *testing.T) {
	auth, _ := newTestAuth(t)

	token, err := auth.Register(context.Background(), "user@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ResolveToken(token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.UserID)
	assert.Equal(t, storage.RoleUser, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := newTestAuth(t)

	_, err := auth.Register(context.Background(), "user@example.com", "hunter22")
	require.NoError(t, err)

	_, err = auth.Register(context.Background(), "user@example.com", "different")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	auth, _ := newTestAuth(t)

	_, err := auth.Register(context.Background(), "user@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		token, err := auth.Login(context.Background(), "user@example.com", "hunter22")
		require.NoError(t, err)

		claims, err := auth.ResolveToken(token)
		require.NoError(t, err)
		assert.NotEmpty(t, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(context.Background(), "user@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := auth.Login(context.Background(), "nobody@example.com", "hunter22")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestResolveTokenRejectsGarbage(t *testing.T) {
	auth, _ := newTestAuth(t)

	_, err := auth.ResolveToken("not-a-jwt")
	assert.Error(t, err)
}

func TestResolveTokenRejectsWrongSecret(t *testing.T) {
	auth, mem := newTestAuth(t)

	other := NewAuth(mem, "another-secret")
	token, err := other.Register(context.Background(), "user@example.com", "hunter22")
	require.NoError(t, err)

	_, err = auth.ResolveToken(token)
	assert.Error(t, err)
}
