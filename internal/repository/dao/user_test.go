package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshUserDAO(t *testing.T) *UserDAO {
	t.Helper()

	if testing.Short() || testDB == nil {
		t.Skip("requires a docker postgres container")
	}

	for _, table := range []string{"revoked_tokens", "users"} {
		require.NoError(t, testDB.Exec("TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE").Error)
	}

	return NewUserDAO(testDB)
}

func TestUserDAO_Insert(t *testing.T) {
	d := freshUserDAO(t)
	ctx := context.Background()

	created, err := d.Insert(ctx, User{
		Username: "owner01",
		Password: "hashed",
		Name:     "Oshan W",
		Role:     1,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = d.Insert(ctx, User{Username: "owner01", Password: "hashed", Name: "Other", Role: 2})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestUserDAO_FindByUsername(t *testing.T) {
	d := freshUserDAO(t)
	ctx := context.Background()

	_, err := d.Insert(ctx, User{Username: "cashier01", Password: "hashed", Name: "C", Role: 3})
	require.NoError(t, err)

	found, err := d.FindByUsername(ctx, "cashier01")
	require.NoError(t, err)
	assert.Equal(t, 3, found.Role)

	_, err = d.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserDAO_RevokedTokens(t *testing.T) {
	d := freshUserDAO(t)
	ctx := context.Background()

	user, err := d.Insert(ctx, User{Username: "manager01", Password: "hashed", Name: "M", Role: 2})
	require.NoError(t, err)

	err = d.InsertRevokedToken(ctx, RevokedToken{
		JTI:       "token-jti-1",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	revoked, err := d.IsTokenRevoked(ctx, "token-jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = d.IsTokenRevoked(ctx, "unknown-jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}
