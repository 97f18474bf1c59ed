package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tallybook/internal/platform/user"
)

func TestService_Register(t *testing.T) {
	svc := user.NewService(user.NewMemoryRepository())
	ctx := context.Background()

	u, err := svc.Register(ctx, "bookkeeper@example.com", "ledger-secret")
	require.NoError(t, err)
	assert.Equal(t, "bookkeeper@example.com", u.Email)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "ledger-secret", u.PasswordHash)
}

func TestService_Register_Validation(t *testing.T) {
	svc := user.NewService(user.NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "ledger-secret")
	assert.ErrorIs(t, err, user.ErrInvalidEmail)

	_, err = svc.Register(ctx, "not-an-email", "ledger-secret")
	assert.ErrorIs(t, err, user.ErrInvalidEmail)

	_, err = svc.Register(ctx, "bookkeeper@example.com", "short")
	assert.ErrorIs(t, err, user.ErrPasswordTooShort)
}

func TestService_Register_Duplicate(t *testing.T) {
	svc := user.NewService(user.NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, "bookkeeper@example.com", "ledger-secret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bookkeeper@example.com", "other-secret")
	assert.ErrorIs(t, err, user.ErrUserAlreadyExists)
}

func TestService_Login(t *testing.T) {
	svc := user.NewService(user.NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, "bookkeeper@example.com", "ledger-secret")
	require.NoError(t, err)

	u, err := svc.Login(ctx, "bookkeeper@example.com", "ledger-secret")
	require.NoError(t, err)
	assert.Equal(t, "bookkeeper@example.com", u.Email)

	_, err = svc.Login(ctx, "bookkeeper@example.com", "wrong-secret")
	assert.ErrorIs(t, err, user.ErrInvalidPassword)

	// Unknown accounts fail the same way as wrong passwords.
	_, err = svc.Login(ctx, "nobody@example.com", "ledger-secret")
	assert.ErrorIs(t, err, user.ErrInvalidPassword)
}
