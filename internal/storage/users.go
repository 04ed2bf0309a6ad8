package storage

import (
	"context"

	"github.com/avdeyev/worklog/internal/models"
)

// UserStore defines the user table interface.
type UserStore interface {
	// CreateUser inserts a new user. When this is the first user ever
	// registered, all ownerless events are re-owned to it within the same
	// transaction; the number of adopted events is returned.
	// Returns ErrUserAlreadyExists on duplicate username.
	CreateUser(ctx context.Context, user *models.User) (adopted int64, err error)

	// GetUserByUsername retrieves user by username
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by ID
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// DeleteUser deletes user by ID; the user's events are removed by cascade.
	DeleteUser(ctx context.Context, userID string) error
}
