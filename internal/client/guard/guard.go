// Package guard implements the session bootstrap gate evaluated before any
// protected command runs. It is the CLI counterpart of a router's
// authentication guard: public commands never consult it, protected ones
// must pass Ensure first.
package guard

import (
	"context"

	"github.com/pkozlov/flowdeck/internal/client/models"
	"github.com/pkozlov/flowdeck/internal/common"
	"github.com/pkozlov/flowdeck/internal/logging"
)

// State is the guard's view of the session.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateBootstrapping   State = "bootstrapping"
	StateAuthenticated   State = "authenticated"
)

// SessionState is the slice of session behavior the guard depends on.
type SessionState interface {
	Token() string
	IsAuthenticated() bool
	ResolveIdentity(ctx context.Context) error
	SetIdentity(identity *models.Identity)
}

// Guard admits or rejects entry to protected commands. The offline flag is
// injected once at construction; the guard never re-reads ambient state.
type Guard struct {
	session SessionState
	offline bool
	logger  logging.Logger

	state State
}

func New(session SessionState, offline bool, logger logging.Logger) *Guard {
	return &Guard{session: session, offline: offline, logger: logger, state: StateUnauthenticated}
}

// State returns the result of the most recent Ensure evaluation.
func (g *Guard) State() State { return g.state }

// Ensure evaluates the gate:
//
//   - no credential → ErrLoginRequired;
//   - credential and resolved identity → admit;
//   - credential without identity: offline mode synthesizes a sentinel
//     identity locally (presence, not integrity, is what is checked);
//     online mode resolves it against the server. A resolution failure
//     rejects entry but deliberately leaves the credential in place — any
//     teardown on 401 happens at the transport level, not here.
func (g *Guard) Ensure(ctx context.Context) error {
	if g.session.IsAuthenticated() {
		g.state = StateAuthenticated
		return nil
	}

	if g.session.Token() == "" {
		g.state = StateUnauthenticated
		return common.ErrLoginRequired
	}

	g.state = StateBootstrapping

	if g.offline {
		g.session.SetIdentity(&models.Identity{
			ID:       common.OfflineUserID,
			Username: common.OfflineUsername,
		})
		g.state = StateAuthenticated
		return nil
	}

	if err := g.session.ResolveIdentity(ctx); err != nil {
		g.logger.Warn(ctx, "identity bootstrap failed", "error", err)
		g.state = StateUnauthenticated
		return common.ErrLoginRequired
	}

	g.state = StateAuthenticated
	return nil
}
