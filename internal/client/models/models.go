// Package models defines client-side data models used by the FlowDeck CLI.
package models

import (
	"encoding/json"
	"time"
)

// Identity is the authenticated user's minimal profile. A nil *Identity
// means "unauthenticated".
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Diagram is a user-owned diagram as exposed by the API and mirrored by the
// local mock store. Content is opaque to this layer: it is stored and
// returned verbatim, never interpreted.
type Diagram struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	UserID    int64           `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Content   json.RawMessage `json:"content"`
}

// CreateDiagram is the payload for creating a new diagram.
type CreateDiagram struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

// DiagramPatch is a typed partial update. Only the fields modeled here can
// be changed; identifiers and timestamps are untouchable by construction.
// Nil fields are left as-is.
type DiagramPatch struct {
	Title   *string         `json:"title,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

// Apply merges the patch over d and returns the result. d itself is not
// modified.
func (p DiagramPatch) Apply(d Diagram) Diagram {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Content != nil {
		d.Content = p.Content
	}
	return d
}
