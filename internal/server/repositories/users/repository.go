// Package users contains the persistence layer for accounts.
package users

import (
	"context"

	"github.com/pkozlov/flowdeck/internal/server/models"
)

// Repository describes storage operations for users.
type Repository interface {
	// Create inserts a new user and returns it with the assigned id.
	// A duplicate username yields common.ErrUsernameTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user with the given username, or
	// common.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
