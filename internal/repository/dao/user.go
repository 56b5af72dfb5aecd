package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Name string `gorm:"not null"`
	Role int    `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// RevokedToken records the jti of a JWT invalidated by logout.
// ExpiresAt mirrors the token's own expiry so stale rows can be purged.
type RevokedToken struct {
	ID        uint   `gorm:"primaryKey"`
	JTI       string `gorm:"column:jti;unique;not null"`
	UserID    uint   `gorm:"not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_username"`) {
			return User{}, ErrUsernameExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByUsername(ctx context.Context, username string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) InsertRevokedToken(ctx context.Context, token RevokedToken) error {
	return d.db.WithContext(ctx).Create(&token).Error
}

func (d *UserDAO) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
