package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkozlov/flowdeck/internal/client/config"
	"github.com/pkozlov/flowdeck/internal/client/localstore"
	"github.com/pkozlov/flowdeck/internal/common"
)

// newOfflineApp builds an App wired for offline mode with zero simulated
// latency, with a persisted demo token so the guard bootstrap succeeds.
func newOfflineApp(t *testing.T) *App {
	t.Helper()

	cfg := &config.Config{
		ServerBaseURL:  "http://127.0.0.1:1", // nothing listens here
		RequestTimeout: time.Second,
		DataDir:        filepath.Join(t.TempDir(), "data"),
		MockLatency:    0,
	}

	a, err := NewApp(cfg)
	require.NoError(t, err)

	require.NoError(t, a.storage.Set(localstore.KeyOfflineMode, localstore.OfflineModeEnabled))
	require.NoError(t, a.session.SetToken("demo-token"))
	a.compose()

	return a
}

// capture replaces the output and input seams for the duration of the test.
func capture(t *testing.T, inputs ...string) *[]string {
	t.Helper()

	var lines []string
	oldPrintln, oldText, oldPassword := printlnFn, getSimpleText, getPassword

	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(args...)))
		return 0, nil
	}
	queue := inputs
	getSimpleText = func(r *bufio.Reader, prompt string, w io.Writer) (string, error) {
		if len(queue) == 0 {
			return "", io.EOF
		}
		next := queue[0]
		queue = queue[1:]
		return next, nil
	}
	getPassword = func(w io.Writer) (string, error) { return "pw", nil }

	t.Cleanup(func() {
		printlnFn, getSimpleText, getPassword = oldPrintln, oldText, oldPassword
	})
	return &lines
}

func TestApp_OfflineCreateAndList(t *testing.T) {
	a := newOfflineApp(t)
	ctx := context.Background()
	out := capture(t, "Order flow")

	require.NoError(t, a.New(ctx))
	require.NoError(t, a.List(ctx))

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, `Created "Order flow"`)
	assert.Contains(t, joined, "Order flow")

	// The offline bootstrap synthesized the sentinel identity.
	require.NotNil(t, a.session.Identity())
	assert.Equal(t, common.OfflineUserID, a.session.Identity().ID)
}

func TestApp_OfflineRenameByRow(t *testing.T) {
	a := newOfflineApp(t)
	ctx := context.Background()
	out := capture(t, "First", "Renamed")

	require.NoError(t, a.New(ctx))
	require.NoError(t, a.List(ctx))
	require.NoError(t, a.Rename(ctx, "#1"))

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, `Renamed to "Renamed"`)
}

func TestApp_ProtectedCommandWithoutToken(t *testing.T) {
	a := newOfflineApp(t)
	require.NoError(t, a.session.Logout())
	out := capture(t)

	err := a.List(context.Background())
	require.ErrorIs(t, err, common.ErrLoginRequired)
	assert.Contains(t, strings.Join(*out, "\n"), "Please login first.")
}

func TestApp_OfflineToggleRecomposes(t *testing.T) {
	a := newOfflineApp(t)
	capture(t)

	require.NoError(t, a.Offline(context.Background(), false))
	assert.False(t, a.offline)

	require.NoError(t, a.Offline(context.Background(), true))
	assert.True(t, a.offline)

	v, ok, err := a.storage.Get(localstore.KeyOfflineMode)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, localstore.OfflineModeEnabled, v)
}

func TestApp_OfflineShowMissingID(t *testing.T) {
	a := newOfflineApp(t)
	out := capture(t)

	err := a.Show(context.Background(), "424242")
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, strings.Join(*out, "\n"), "not found")
}
