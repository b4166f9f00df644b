package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkozlov/flowdeck/internal/common"
	"github.com/pkozlov/flowdeck/internal/server/auth"
	"github.com/pkozlov/flowdeck/internal/server/config"
	"github.com/pkozlov/flowdeck/internal/server/repositories/repomanager"
)

func newUserService() *UserService {
	cfg := &config.Config{
		SecretKey:                   "test-secret",
		AccessTokenValidityDuration: time.Minute,
	}
	return NewUserService(nil, repomanager.NewInMemoryRepositoryManager(), cfg)
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	u, err := s.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "s3cret", u.PasswordHash)

	token, err := s.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	uid, err := auth.GetUserIDFromToken(token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "a")
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice", "b")
	require.ErrorIs(t, err, common.ErrUsernameTaken)
}

func TestUserService_LoginFailures(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "nope"},
		{"unknown user", "bob", "s3cret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Login(ctx, tt.username, tt.password)
			require.ErrorIs(t, err, common.ErrUnauthorized)
		})
	}
}

func TestUserService_GetByID(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	u, err := s.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	got, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = s.GetByID(ctx, 999)
	require.ErrorIs(t, err, common.ErrNotFound)
}
