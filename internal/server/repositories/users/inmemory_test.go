package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkozlov/flowdeck/internal/common"
	"github.com/pkozlov/flowdeck/internal/server/models"
)

func TestInMemoryRepository_CreateAssignsIDs(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()

	a, err := r.Create(ctx, &models.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	b, err := r.Create(ctx, &models.User{Username: "bob", PasswordHash: "h"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestInMemoryRepository_DuplicateUsername(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()

	_, err := r.Create(ctx, &models.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.User{Username: "alice", PasswordHash: "h"})
	require.ErrorIs(t, err, common.ErrUsernameTaken)
}

func TestInMemoryRepository_Lookups(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()

	created, err := r.Create(ctx, &models.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	byName, err := r.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byID, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = r.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = r.GetByID(ctx, 999)
	require.ErrorIs(t, err, common.ErrNotFound)
}
