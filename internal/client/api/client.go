// Package api contains the client-side contract for talking to the FlowDeck
// backend and its HTTP implementation.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register/Login/GetMe plus the diagram CRUD operations.
//  2. A concrete HTTP implementation (see HTTPClient) that injects the
//     bearer token on every request, maps response statuses to sentinel
//     errors, and fires a global hook on 401 so the session can be torn
//     down regardless of which call hit the expired credential.
//
// # Error Handling
//
// Non-2xx responses surface as *Error values whose Unwrap makes them match
// common.ErrUnauthorized (401) and common.ErrNotFound (404) via errors.Is.
// Transport failures wrap common.ErrUnavailable.
package api

import (
	"context"

	"github.com/pkozlov/flowdeck/internal/client/models"
)

// Client is the remote API contract used by the session and the remote
// diagram repository.
type Client interface {
	Register(ctx context.Context, username, password string) (*models.Identity, error)
	// Login exchanges credentials for a bearer access token.
	Login(ctx context.Context, username, password string) (string, error)
	// GetMe returns the identity of the bearer-token owner.
	GetMe(ctx context.Context) (*models.Identity, error)

	ListDiagrams(ctx context.Context) ([]models.Diagram, error)
	CreateDiagram(ctx context.Context, data models.CreateDiagram) (*models.Diagram, error)
	GetDiagram(ctx context.Context, id int64) (*models.Diagram, error)
	UpdateDiagram(ctx context.Context, id int64, patch models.DiagramPatch) (*models.Diagram, error)
	DeleteDiagram(ctx context.Context, id int64) error
}
