// Package diagrams defines the server-side persistence interface for
// diagram documents.
package diagrams

import (
	"context"

	"github.com/pkozlov/flowdeck/internal/server/models"
)

// Repository provides access to diagram storage. Every read and write
// is scoped to the owning user: rows belonging to other users behave
// as if they do not exist.
type Repository interface {
	// ListByUser returns the user's diagrams ordered by updated_at
	// descending, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*models.Diagram, error)
	// Create inserts a diagram and returns it with the generated id
	// and timestamps populated.
	Create(ctx context.Context, d *models.Diagram) (*models.Diagram, error)
	// GetByID returns the diagram if it exists and belongs to the
	// user, common.ErrNotFound otherwise.
	GetByID(ctx context.Context, userID int64, id int64) (*models.Diagram, error)
	// Update applies the patch to the user's diagram and refreshes
	// updated_at. Returns common.ErrNotFound for missing or foreign
	// rows.
	Update(ctx context.Context, userID int64, id int64, patch *models.DiagramUpdate) (*models.Diagram, error)
	// Delete removes the user's diagram. Returns common.ErrNotFound
	// for missing or foreign rows.
	Delete(ctx context.Context, userID int64, id int64) error
}
