package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/repository"
)

var (
	ErrUsernameExists = repository.ErrUsernameExists
	ErrWrongPassword  = errors.New("invalid username or password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	RevokeToken(ctx context.Context, jti string, userID uint, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// Logout invalidates the presented token by recording its jti until the
// token would have expired on its own.
func (s *AuthService) Logout(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	if err := s.repo.RevokeToken(ctx, jti, userID, expiresAt); err != nil {
		return fmt.Errorf("s.repo.RevokeToken -> %w", err)
	}

	return nil
}

func (s *AuthService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	revoked, err := s.repo.IsTokenRevoked(ctx, jti)
	if err != nil {
		return false, fmt.Errorf("s.repo.IsTokenRevoked -> %w", err)
	}

	return revoked, nil
}
