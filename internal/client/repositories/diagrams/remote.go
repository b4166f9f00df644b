package diagrams

import (
	"context"

	"github.com/pkozlov/flowdeck/internal/client/api"
	"github.com/pkozlov/flowdeck/internal/client/models"
)

// RemoteRepository implements Repository by delegating to the remote API.
// Error mapping (404 → common.ErrNotFound, 401 → session invalidation) is
// handled inside the API client, so the shapes coming out of this type and
// LocalRepository are interchangeable.
type RemoteRepository struct {
	api api.Client
}

func NewRemoteRepository(client api.Client) *RemoteRepository {
	return &RemoteRepository{api: client}
}

func (r *RemoteRepository) List(ctx context.Context) ([]models.Diagram, error) {
	return r.api.ListDiagrams(ctx)
}

func (r *RemoteRepository) Create(ctx context.Context, data models.CreateDiagram) (*models.Diagram, error) {
	return r.api.CreateDiagram(ctx, data)
}

func (r *RemoteRepository) Get(ctx context.Context, id int64) (*models.Diagram, error) {
	return r.api.GetDiagram(ctx, id)
}

func (r *RemoteRepository) Update(ctx context.Context, id int64, patch models.DiagramPatch) (*models.Diagram, error) {
	return r.api.UpdateDiagram(ctx, id, patch)
}

func (r *RemoteRepository) Delete(ctx context.Context, id int64) error {
	return r.api.DeleteDiagram(ctx, id)
}
