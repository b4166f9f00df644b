package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkozlov/flowdeck/internal/client/api"
	"github.com/pkozlov/flowdeck/internal/client/localstore"
	"github.com/pkozlov/flowdeck/internal/client/models"
	"github.com/pkozlov/flowdeck/internal/common"
	"github.com/pkozlov/flowdeck/internal/logging"
)

// fakeClient implements api.Client with canned responses.
type fakeClient struct {
	api.Client

	loginToken string
	loginErr   error
	me         *models.Identity
	meErr      error

	meCalls int
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeClient) GetMe(ctx context.Context) (*models.Identity, error) {
	f.meCalls++
	return f.me, f.meErr
}

func (f *fakeClient) Register(ctx context.Context, username, password string) (*models.Identity, error) {
	return f.me, f.meErr
}

func newSession(t *testing.T, client api.Client) (*Session, localstore.Store) {
	t.Helper()
	storage := localstore.NewFileStore(filepath.Join(t.TempDir(), "local.json"))
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s, err := New(storage, client, logger)
	require.NoError(t, err)
	return s, storage
}

func TestSession_StartsUnauthenticated(t *testing.T) {
	s, _ := newSession(t, &fakeClient{})

	require.False(t, s.IsAuthenticated())
	require.Empty(t, s.Token())
	require.Nil(t, s.Identity())
}

func TestSession_RestoresPersistedToken(t *testing.T) {
	storage := localstore.NewFileStore(filepath.Join(t.TempDir(), "local.json"))
	require.NoError(t, storage.Set(localstore.KeyToken, "tok-1"))

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s, err := New(storage, &fakeClient{}, logger)
	require.NoError(t, err)

	require.Equal(t, "tok-1", s.Token())
	// Token alone is not enough.
	require.False(t, s.IsAuthenticated())
}

func TestSession_LoginSuccess(t *testing.T) {
	client := &fakeClient{loginToken: "tok-1", me: &models.Identity{ID: 3, Username: "alice"}}
	s, storage := newSession(t, client)

	require.NoError(t, s.Login(context.Background(), "alice", "pw"))

	require.True(t, s.IsAuthenticated())
	require.Equal(t, "tok-1", s.Token())
	require.Equal(t, int64(3), s.Identity().ID)

	persisted, ok, err := storage.Get(localstore.KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok-1", persisted)
}

func TestSession_LoginFailurePropagates(t *testing.T) {
	wantErr := errors.New("bad credentials")
	s, _ := newSession(t, &fakeClient{loginErr: wantErr})

	err := s.Login(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, wantErr)
	require.False(t, s.IsAuthenticated())
	require.Empty(t, s.Token())
}

func TestSession_LoginEmptyToken(t *testing.T) {
	s, _ := newSession(t, &fakeClient{loginToken: ""})

	err := s.Login(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, ErrEmptyToken)
}

func TestSession_FetchIdentityRecoversByLoggingOut(t *testing.T) {
	client := &fakeClient{meErr: errors.New("token expired")}
	s, storage := newSession(t, client)
	require.NoError(t, s.SetToken("tok-1"))

	// Failure is swallowed: the session recovers to a clean state instead.
	require.NoError(t, s.FetchIdentity(context.Background()))

	require.False(t, s.IsAuthenticated())
	require.Empty(t, s.Token())
	require.Nil(t, s.Identity())

	_, ok, err := storage.Get(localstore.KeyToken)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSession_FetchIdentityWithoutTokenIsNoop(t *testing.T) {
	client := &fakeClient{me: &models.Identity{ID: 1}}
	s, _ := newSession(t, client)

	require.NoError(t, s.FetchIdentity(context.Background()))
	require.Zero(t, client.meCalls)
	require.Nil(t, s.Identity())
}

func TestSession_ResolveIdentityPropagatesAndKeepsToken(t *testing.T) {
	wantErr := errors.New("network down")
	s, storage := newSession(t, &fakeClient{meErr: wantErr})
	require.NoError(t, s.SetToken("tok-1"))

	err := s.ResolveIdentity(context.Background())
	require.ErrorIs(t, err, wantErr)

	// Credential deliberately intact on this path.
	require.Equal(t, "tok-1", s.Token())
	persisted, ok, getErr := storage.Get(localstore.KeyToken)
	require.NoError(t, getErr)
	require.True(t, ok)
	require.Equal(t, "tok-1", persisted)
}

func TestSession_ResolveIdentityWithoutToken(t *testing.T) {
	s, _ := newSession(t, &fakeClient{})

	err := s.ResolveIdentity(context.Background())
	require.ErrorIs(t, err, common.ErrLoginRequired)
}

func TestSession_Logout(t *testing.T) {
	client := &fakeClient{loginToken: "tok-1", me: &models.Identity{ID: 3, Username: "alice"}}
	s, storage := newSession(t, client)
	require.NoError(t, s.Login(context.Background(), "alice", "pw"))

	require.NoError(t, s.Logout())

	require.False(t, s.IsAuthenticated())
	require.Empty(t, s.Token())
	require.Nil(t, s.Identity())

	_, ok, err := storage.Get(localstore.KeyToken)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSession_IsAuthenticatedNeedsBothParts(t *testing.T) {
	s, _ := newSession(t, &fakeClient{})

	// Identity without token.
	s.SetIdentity(&models.Identity{ID: 1, Username: "alice"})
	require.False(t, s.IsAuthenticated())

	// Token without identity.
	s.SetIdentity(nil)
	require.NoError(t, s.SetToken("tok-1"))
	require.False(t, s.IsAuthenticated())

	// Both.
	s.SetIdentity(&models.Identity{ID: 1, Username: "alice"})
	require.True(t, s.IsAuthenticated())
}
