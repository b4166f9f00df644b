package diagrams

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkozlov/flowdeck/internal/common"
	"github.com/pkozlov/flowdeck/internal/server/models"
)

// InMemoryRepository is a map-backed Repository for tests and demo runs.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*models.Diagram
	nextID int64
	now    func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:   make(map[int64]*models.Diagram),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Diagram, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.Diagram{}
	for _, d := range r.byID {
		if d.UserID == userID {
			copied := *d
			result = append(result, &copied)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	return result, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, d *models.Diagram) (*models.Diagram, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *d
	stored.ID = r.nextID
	stored.CreatedAt = r.now()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.byID[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, userID int64, id int64) (*models.Diagram, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok || d.UserID != userID {
		return nil, common.ErrNotFound
	}
	result := *d
	return &result, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, userID int64, id int64, patch *models.DiagramUpdate) (*models.Diagram, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok || d.UserID != userID {
		return nil, common.ErrNotFound
	}

	if patch.Title != nil {
		d.Title = *patch.Title
	}
	if patch.Content != nil {
		d.Content = patch.Content
	}
	d.UpdatedAt = r.now()

	result := *d
	return &result, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, userID int64, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok || d.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.byID, id)

	return nil
}
