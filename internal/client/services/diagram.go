// Package services contains application services for the FlowDeck client.
package services

import (
	"context"

	"github.com/pkozlov/flowdeck/internal/client/models"
	"github.com/pkozlov/flowdeck/internal/client/repositories/diagrams"
)

// DiagramService is the caller-facing surface over the diagram repository.
// It is written once against the Repository interface and works identically
// in online and offline mode.
//
// Like the dashboard of the web client, it keeps the last listed collection
// so rows can be addressed by position, and it folds mutation results back
// into that collection for immediate feedback.
type DiagramService struct {
	repo diagrams.Repository

	cached []models.Diagram
}

func NewDiagramService(repo diagrams.Repository) *DiagramService {
	return &DiagramService{repo: repo}
}

// List fetches all diagrams, most recently updated first, and caches the
// result.
func (s *DiagramService) List(ctx context.Context) ([]models.Diagram, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cached = list
	return list, nil
}

// Create stores a new diagram and prepends it to the cached collection.
func (s *DiagramService) Create(ctx context.Context, data models.CreateDiagram) (*models.Diagram, error) {
	d, err := s.repo.Create(ctx, data)
	if err != nil {
		return nil, err
	}
	s.cached = append([]models.Diagram{*d}, s.cached...)
	return d, nil
}

// Get returns a single diagram, content included.
func (s *DiagramService) Get(ctx context.Context, id int64) (*models.Diagram, error) {
	return s.repo.Get(ctx, id)
}

// Update applies the patch and refreshes the cached row, if present.
func (s *DiagramService) Update(ctx context.Context, id int64, patch models.DiagramPatch) (*models.Diagram, error) {
	d, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	for i := range s.cached {
		if s.cached[i].ID == id {
			s.cached[i] = *d
			break
		}
	}
	return d, nil
}

// Delete removes the diagram and drops it from the cached collection.
func (s *DiagramService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	for i := range s.cached {
		if s.cached[i].ID == id {
			s.cached = append(s.cached[:i], s.cached[i+1:]...)
			break
		}
	}
	return nil
}

// Cached returns the collection as of the last List, adjusted by later
// mutations.
func (s *DiagramService) Cached() []models.Diagram { return s.cached }

// ByIndex resolves a 1-based position in the cached collection, the way list
// rows are numbered in the CLI output.
func (s *DiagramService) ByIndex(n int) (*models.Diagram, bool) {
	if n < 1 || n > len(s.cached) {
		return nil, false
	}
	return &s.cached[n-1], true
}
