// Package cli implements the interactive FlowDeck client: a REPL replacing
// the web client's views, driving the session, the guard, and the diagram
// service.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkozlov/flowdeck/internal/client/api"
	"github.com/pkozlov/flowdeck/internal/client/config"
	"github.com/pkozlov/flowdeck/internal/client/guard"
	"github.com/pkozlov/flowdeck/internal/client/localstore"
	"github.com/pkozlov/flowdeck/internal/client/repositories/diagrams"
	"github.com/pkozlov/flowdeck/internal/client/services"
	"github.com/pkozlov/flowdeck/internal/client/session"
	"github.com/pkozlov/flowdeck/internal/filex"
	"github.com/pkozlov/flowdeck/internal/logging"
)

// localStoreFile is the backing file of the durable key-value store,
// created under the configured data directory.
const localStoreFile = "local.json"

type App struct {
	config  *config.Config
	logger  logging.Logger
	storage localstore.Store

	apiClient *api.HTTPClient
	session   *session.Session
	guard     *guard.Guard
	diagrams  *services.DiagramService

	offline bool
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("prepare data dir: %w", err)
	}

	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger := logging.NewSlogLogger(slogger)

	storage := localstore.NewFileStore(filepath.Join(dataDir, localStoreFile))

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, logger)

	sess, err := session.New(storage, apiClient, logger)
	if err != nil {
		return nil, err
	}

	// The client holds no session state of its own: the token comes from
	// the session, and any 401 anywhere invalidates it globally.
	apiClient.SetTokenSource(sess.Token)
	apiClient.SetUnauthorizedHook(func() {
		if err := sess.Logout(); err != nil {
			logger.Error(context.Background(), "session teardown failed", "error", err)
		}
	})

	a := &App{
		config:    c,
		logger:    logger,
		storage:   storage,
		apiClient: apiClient,
		session:   sess,
		reader:    bufio.NewReader(os.Stdin),
	}
	a.compose()

	return a, nil
}

// compose is the single place where the persisted mode flag is consulted.
// It selects the repository implementation and builds the guard; everything
// downstream is written against interfaces and stays mode-agnostic.
func (a *App) compose() {
	a.offline = localstore.OfflineMode(a.storage)

	var repo diagrams.Repository
	if a.offline {
		repo = diagrams.NewLocalRepository(a.storage, a.config.MockLatency)
	} else {
		repo = diagrams.NewRemoteRepository(a.apiClient)
	}

	a.diagrams = services.NewDiagramService(repo)
	a.guard = guard.New(a.session, a.offline, a.logger)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
