package diagrams

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/pkozlov/flowdeck/internal/client/localstore"
	"github.com/pkozlov/flowdeck/internal/client/models"
	"github.com/pkozlov/flowdeck/internal/common"
)

// LocalRepository implements Repository against the persisted mock
// collection: one JSON array of diagrams kept under a fixed key in the local
// store. Every operation is a full read-modify-write of that blob, with no
// partial persistence.
//
// The read-modify-write cycle is not atomic against overlapping mutations;
// a lost update is possible if two calls interleave. Accepted for the
// single-user, single-process demo scope.
//
// Operations simulate a fixed latency before touching the collection so the
// offline mode exercises the same asynchronous paths the remote API does.
type LocalRepository struct {
	storage localstore.Store
	latency time.Duration

	// now is a clock seam for tests.
	now func() time.Time
}

// NewLocalRepository returns a LocalRepository with the given simulated
// latency (0 disables the delay).
func NewLocalRepository(storage localstore.Store, latency time.Duration) *LocalRepository {
	return &LocalRepository{storage: storage, latency: latency, now: time.Now}
}

// delay blocks for the configured latency, honoring context cancellation.
func (r *LocalRepository) delay(ctx context.Context) error {
	if r.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(r.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// load reads the whole collection. A missing key reads as an empty
// collection; it is materialized on the first write.
func (r *LocalRepository) load() ([]models.Diagram, error) {
	raw, ok, err := r.storage.Get(localstore.KeyMockDiagrams)
	if err != nil {
		return nil, fmt.Errorf("load mock collection: %w", err)
	}
	if !ok || raw == "" {
		return []models.Diagram{}, nil
	}

	var collection []models.Diagram
	if err := json.Unmarshal([]byte(raw), &collection); err != nil {
		return nil, fmt.Errorf("decode mock collection: %w", err)
	}
	return collection, nil
}

func (r *LocalRepository) save(collection []models.Diagram) error {
	raw, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encode mock collection: %w", err)
	}
	if err := r.storage.Set(localstore.KeyMockDiagrams, string(raw)); err != nil {
		return fmt.Errorf("persist mock collection: %w", err)
	}
	return nil
}

// nextID picks a millisecond-timestamp id, bumped past any id already in the
// collection. Monotonic enough under the single-writer assumption.
func nextID(collection []models.Diagram, now time.Time) int64 {
	id := now.UnixMilli()
	taken := make(map[int64]struct{}, len(collection))
	for _, d := range collection {
		taken[d.ID] = struct{}{}
	}
	for {
		if _, ok := taken[id]; !ok {
			return id
		}
		id++
	}
}

func (r *LocalRepository) List(ctx context.Context) ([]models.Diagram, error) {
	if err := r.delay(ctx); err != nil {
		return nil, err
	}

	collection, err := r.load()
	if err != nil {
		return nil, err
	}

	// Most recently modified first, matching the remote API's ordering so
	// callers stay mode-agnostic.
	sort.SliceStable(collection, func(i, j int) bool {
		return collection[i].UpdatedAt.After(collection[j].UpdatedAt)
	})
	return collection, nil
}

func (r *LocalRepository) Create(ctx context.Context, data models.CreateDiagram) (*models.Diagram, error) {
	if err := r.delay(ctx); err != nil {
		return nil, err
	}

	collection, err := r.load()
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	d := models.Diagram{
		ID:        nextID(collection, now),
		Title:     data.Title,
		UserID:    common.OfflineUserID,
		CreatedAt: now,
		UpdatedAt: now,
		Content:   data.Content,
	}

	collection = append([]models.Diagram{d}, collection...)
	if err := r.save(collection); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *LocalRepository) Get(ctx context.Context, id int64) (*models.Diagram, error) {
	if err := r.delay(ctx); err != nil {
		return nil, err
	}

	collection, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, d := range collection {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("diagram %d: %w", id, common.ErrNotFound)
}

func (r *LocalRepository) Update(ctx context.Context, id int64, patch models.DiagramPatch) (*models.Diagram, error) {
	if err := r.delay(ctx); err != nil {
		return nil, err
	}

	collection, err := r.load()
	if err != nil {
		return nil, err
	}

	for i, d := range collection {
		if d.ID != id {
			continue
		}

		merged := patch.Apply(d)
		// The update time must strictly increase even on a coarse clock.
		updated := r.now().UTC()
		if !updated.After(d.UpdatedAt) {
			updated = d.UpdatedAt.Add(time.Millisecond)
		}
		merged.UpdatedAt = updated

		collection[i] = merged
		if err := r.save(collection); err != nil {
			return nil, err
		}
		return &merged, nil
	}

	return nil, fmt.Errorf("diagram %d: %w", id, common.ErrNotFound)
}

func (r *LocalRepository) Delete(ctx context.Context, id int64) error {
	if err := r.delay(ctx); err != nil {
		return err
	}

	collection, err := r.load()
	if err != nil {
		return err
	}

	kept := collection[:0]
	for _, d := range collection {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(collection) {
		// Idempotent: deleting an absent id still reports success.
		return nil
	}
	return r.save(kept)
}
