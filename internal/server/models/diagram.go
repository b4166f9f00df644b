package models

import (
	"encoding/json"
	"time"
)

// Diagram is a stored diagram. Content is opaque JSON: persisted and served
// verbatim, never interpreted by the server.
type Diagram struct {
	ID        int64
	UserID    int64
	Title     string
	Content   json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DiagramUpdate is a typed partial update applied by PUT /diagrams/{id}.
// Nil fields are left unchanged; the id and owner can never be patched.
type DiagramUpdate struct {
	Title   *string
	Content json.RawMessage
}
