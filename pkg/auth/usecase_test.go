package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct{ users map[string]User }

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: make(map[string]User)} }

func (r *memUserRepo) Create(_ context.Context, u User) error {
	if _, ok := r.users[u.Email]; ok {
		return ErrUserAlreadyExists
	}
	r.users[u.Email] = u
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (User, error) {
	u, ok := r.users[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

type staticTokens struct{}

func (staticTokens) Generate(context.Context, User) (string, error) { return "token-123", nil }

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), staticTokens{})
	ctx := context.Background()

	res, err := svc.Register(ctx, "dev@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", res.User.Email)
	assert.Equal(t, "token-123", res.Token)
	assert.NotEqual(t, "s3cret", res.User.PasswordHash)

	logged, err := svc.Login(ctx, "dev@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, logged.User.ID)
}

func TestRegisterDuplicate(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), staticTokens{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "dev@example.com", "s3cret")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "dev@example.com", "other")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), staticTokens{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "dev@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "dev@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ghost@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
