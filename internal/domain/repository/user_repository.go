package repository

import (
	"context"
	"errors"

	"github.com/geoexplorer/geoexplorer-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the given id or email.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a create collides with the unique email index.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrVersionConflict is returned when a conditional favorites write lost
	// the version compare to a concurrent writer.
	ErrVersionConflict = errors.New("version conflict")
)

// UserRepository defines the interface for user-related store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateFavorites persists a new favorites list only if the stored
	// document still carries the given version.
	UpdateFavorites(ctx context.Context, id string, favorites []string, version int64) error
}
