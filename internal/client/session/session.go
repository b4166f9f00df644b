// Package session owns the client's authentication state: the bearer token
// (persisted in the local store) and the resolved identity (memory only).
//
// The session is the only component that reads or writes the credential.
// IsAuthenticated is always derived from the two fields, never cached.
//
// Instances are not safe for concurrent use; the CLI drives all operations
// from a single goroutine.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkozlov/flowdeck/internal/client/api"
	"github.com/pkozlov/flowdeck/internal/client/localstore"
	"github.com/pkozlov/flowdeck/internal/client/models"
	"github.com/pkozlov/flowdeck/internal/common"
	"github.com/pkozlov/flowdeck/internal/logging"
)

// ErrEmptyToken is returned by Login when the server responds 2xx but
// without an access token.
var ErrEmptyToken = errors.New("empty access token in login response")

type Session struct {
	storage localstore.Store
	api     api.Client
	logger  logging.Logger

	token    string
	identity *models.Identity
}

// New restores a Session from the local store: a previously persisted token
// is loaded into memory, the identity always starts unresolved.
func New(storage localstore.Store, client api.Client, logger logging.Logger) (*Session, error) {
	token, _, err := storage.Get(localstore.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("restore token: %w", err)
	}
	return &Session{storage: storage, api: client, logger: logger, token: token}, nil
}

// Token returns the current bearer token, "" when absent.
func (s *Session) Token() string { return s.token }

// Identity returns the resolved identity, nil when unresolved.
func (s *Session) Identity() *models.Identity { return s.identity }

// IsAuthenticated reports whether both a credential and an identity are
// present.
func (s *Session) IsAuthenticated() bool {
	return s.token != "" && s.identity != nil
}

// SetToken stores the token in memory and in the local store. The token is
// opaque: no format validation is performed.
func (s *Session) SetToken(token string) error {
	s.token = token
	if err := s.storage.Set(localstore.KeyToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// Login authenticates against the server, stores the received token, and
// resolves the identity. Login failures propagate to the caller; there are
// no retries.
func (s *Session) Login(ctx context.Context, username, password string) error {
	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.SetToken(token); err != nil {
		return err
	}
	return s.FetchIdentity(ctx)
}

// Register creates a new account. It does not log the user in.
func (s *Session) Register(ctx context.Context, username, password string) (*models.Identity, error) {
	return s.api.Register(ctx, username, password)
}

// FetchIdentity resolves the identity for the current token. A fetch failure
// (expired credential, unreachable server) is recovered locally: the session
// is cleared via Logout, the error is only logged, and nil is returned. With
// no token present the call is a no-op.
func (s *Session) FetchIdentity(ctx context.Context) error {
	if s.token == "" {
		return nil
	}

	identity, err := s.api.GetMe(ctx)
	if err != nil {
		s.logger.Warn(ctx, "identity fetch failed, clearing session", "error", err)
		return s.Logout()
	}

	s.identity = identity
	return nil
}

// ResolveIdentity fetches and stores the identity for the current token,
// propagating any failure to the caller and leaving the credential intact.
// This is the bootstrap path used by the route guard; transport-level 401
// handling still applies.
func (s *Session) ResolveIdentity(ctx context.Context) error {
	if s.token == "" {
		return common.ErrLoginRequired
	}

	identity, err := s.api.GetMe(ctx)
	if err != nil {
		return err
	}

	s.identity = identity
	return nil
}

// SetIdentity installs an already-resolved identity (e.g. the synthesized
// offline one).
func (s *Session) SetIdentity(identity *models.Identity) {
	s.identity = identity
}

// Logout clears the in-memory token and identity and removes the persisted
// credential. No remote call is made.
func (s *Session) Logout() error {
	s.token = ""
	s.identity = nil
	if err := s.storage.Remove(localstore.KeyToken); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
