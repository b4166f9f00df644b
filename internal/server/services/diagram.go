package services

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkozlov/flowdeck/internal/server/models"
	"github.com/pkozlov/flowdeck/internal/server/repositories/repomanager"
)

// DiagramService implements diagram CRUD on top of the repository layer.
// Every operation is scoped to the authenticated user's id; rows owned by
// other users are reported as not found.
type DiagramService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDiagramService(db *sql.DB, m repomanager.RepositoryManager) *DiagramService {
	return &DiagramService{db: db, repomanager: m}
}

// List returns the user's diagrams, most recently updated first.
func (s *DiagramService) List(ctx context.Context, userID int64) ([]*models.Diagram, error) {
	repo := s.repomanager.Diagrams(s.db)
	return repo.ListByUser(ctx, userID)
}

// Create stores a new diagram for the user. Empty content is normalized to
// an empty JSON object.
func (s *DiagramService) Create(ctx context.Context, userID int64, title string, content json.RawMessage) (*models.Diagram, error) {
	if len(content) == 0 {
		content = json.RawMessage(`{}`)
	}
	repo := s.repomanager.Diagrams(s.db)
	return repo.Create(ctx, &models.Diagram{UserID: userID, Title: title, Content: content})
}

// Get returns a single diagram owned by the user.
func (s *DiagramService) Get(ctx context.Context, userID int64, id int64) (*models.Diagram, error) {
	repo := s.repomanager.Diagrams(s.db)
	return repo.GetByID(ctx, userID, id)
}

// Update applies a partial update and returns the stored row.
func (s *DiagramService) Update(ctx context.Context, userID int64, id int64, patch *models.DiagramUpdate) (*models.Diagram, error) {
	repo := s.repomanager.Diagrams(s.db)
	return repo.Update(ctx, userID, id, patch)
}

// Delete removes the user's diagram.
func (s *DiagramService) Delete(ctx context.Context, userID int64, id int64) error {
	repo := s.repomanager.Diagrams(s.db)
	return repo.Delete(ctx, userID, id)
}
