package database

import (
	"context"
	"errors"
)

var (
	// ErrUsernameTaken is returned when a username is already registered.
	// It is raised by the store's unique index, so concurrent registrations
	// with the same username cannot both succeed.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrScoreNotFound is returned when no game score matches the id and owner.
	ErrScoreNotFound = errors.New("game score not found")
)

// DB defines the interface for database operations.
type DB interface {
	// User management
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	SetUserAuthenticated(ctx context.Context, id uint, authenticated bool) error

	// Game scores
	CreateGameScore(ctx context.Context, userID uint, gameName string, score int) (*GameScore, error)
	GetGameScoresByUser(ctx context.Context, userID uint) ([]GameScore, error)
	DeleteGameScore(ctx context.Context, id, userID uint) error

	// Statistics
	CountUsers(ctx context.Context) (int64, error)
	CountGameScores(ctx context.Context) (int64, error)

	// Utility
	Close() error
}
