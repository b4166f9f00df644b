// Package diagrams provides the client's data access layer for diagrams.
//
// The Repository interface is the mode-transparency boundary: one
// implementation talks to the remote API (RemoteRepository), the other to
// the locally persisted mock collection (LocalRepository). Which one is used
// is decided once, at composition time, from the persisted offline-mode
// flag. Callers depend only on the interface and never branch on the flag.
//
// Both implementations return the same shapes and the same sentinel errors
// (common.ErrNotFound for missing ids), so calling code is written once.
package diagrams

import (
	"context"

	"github.com/pkozlov/flowdeck/internal/client/models"
)

// Repository describes the diagram operations available to the client.
type Repository interface {
	// List returns all diagrams ordered by update time, most recent first.
	List(ctx context.Context) ([]models.Diagram, error)

	// Create stores a new diagram and returns it with server- or
	// store-assigned id and timestamps.
	Create(ctx context.Context, data models.CreateDiagram) (*models.Diagram, error)

	// Get returns the diagram with the given id, or common.ErrNotFound.
	Get(ctx context.Context, id int64) (*models.Diagram, error)

	// Update merges the patch over the stored diagram and returns the
	// result, or common.ErrNotFound. The id is never altered.
	Update(ctx context.Context, id int64, patch models.DiagramPatch) (*models.Diagram, error)

	// Delete removes the diagram if present. Deleting an absent id is not
	// an error.
	Delete(ctx context.Context, id int64) error
}
