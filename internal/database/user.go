package database

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// User represents a registered user.
// Passwords are stored as bcrypt hashes, never in plaintext.
// IsAuthenticated mirrors the login state in the store; authorization
// decisions are always made from the session, not from this flag.
type User struct {
	gorm.Model
	Username        string `gorm:"uniqueIndex;not null"`
	PasswordHash    string `gorm:"not null"`
	IsAuthenticated bool
	GameScores      []GameScore `gorm:"constraint:OnDelete:CASCADE;"`
}

func (c *Client) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	user := User{
		Username:        username,
		PasswordHash:    passwordHash,
		IsAuthenticated: true,
	}
	if err := c.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		log.Error("failed to create user", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Error("failed to get user by ID", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Error("failed to get user by username", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) SetUserAuthenticated(ctx context.Context, id uint, authenticated bool) error {
	res := c.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("is_authenticated", authenticated)
	if res.Error != nil {
		log.Error("failed to update user authentication flag", "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (c *Client) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// isUniqueViolation reports whether err stems from a unique index.
// The sqlite message check covers driver versions that predate gorm's
// error translation.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
