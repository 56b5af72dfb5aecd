package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/repository"
)

type fakeUserRepo struct {
	nextID  uint
	users   map[string]domain.User
	revoked map[string]time.Time
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   map[string]domain.User{},
		revoked: map[string]time.Time{},
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if _, ok := r.users[user.Username]; ok {
		return domain.User{}, repository.ErrUsernameExists
	}

	r.nextID++
	user.ID = r.nextID
	r.users[user.Username] = user

	return user, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) RevokeToken(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	r.revoked[jti] = expiresAt
	return nil
}

func (r *fakeUserRepo) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	_, ok := r.revoked[jti]
	return ok, nil
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	created, err := svc.Signup(ctx, domain.User{
		Username: "owner01",
		Password: "s3cretpass",
		Name:     "Oshan W",
		Role:     domain.RoleOwner,
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, "s3cretpass", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cretpass")))

	_, err = svc.Signup(ctx, domain.User{Username: "owner01", Password: "otherpass1"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(ctx, domain.User{
		Username: "cashier01",
		Password: "s3cretpass",
		Role:     domain.RoleCashier,
	})
	require.NoError(t, err)

	user, err := svc.Login(ctx, "cashier01", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCashier, user.Role)

	_, err = svc.Login(ctx, "cashier01", "wrongpass1")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "nobody", "s3cretpass")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	expiresAt := time.Now().Add(time.Hour)
	require.NoError(t, svc.Logout(ctx, "some-jti", 1, expiresAt))

	revoked, err := svc.IsTokenRevoked(ctx, "some-jti")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = svc.IsTokenRevoked(ctx, "other-jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}
