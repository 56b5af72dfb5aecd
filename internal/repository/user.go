package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/repository/dao"
)

var (
	ErrUsernameExists = dao.ErrUsernameExists
	ErrUserNotFound   = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByUsername(ctx context.Context, username string) (dao.User, error)
	InsertRevokedToken(ctx context.Context, token dao.RevokedToken) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Username: user.Username,
		Password: user.Password,
		Name:     user.Name,
		Role:     int(user.Role),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) RevokeToken(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	err := r.dao.InsertRevokedToken(ctx, dao.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return fmt.Errorf("r.dao.InsertRevokedToken -> %w", err)
	}

	return nil
}

func (r *UserRepository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	revoked, err := r.dao.IsTokenRevoked(ctx, jti)
	if err != nil {
		return false, fmt.Errorf("r.dao.IsTokenRevoked -> %w", err)
	}

	return revoked, nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.Password,
		Name:      u.Name,
		Role:      domain.Role(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
