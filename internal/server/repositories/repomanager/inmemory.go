package repomanager

import (
	"context"
	"database/sql"

	"github.com/pkozlov/flowdeck/internal/dbx"
	"github.com/pkozlov/flowdeck/internal/server/repositories/diagrams"
	"github.com/pkozlov/flowdeck/internal/server/repositories/users"
)

// InMemoryRepositoryManager vends shared in-memory repositories. Used for
// tests and for running the server without a database. The DBTX argument is
// ignored: in-memory stores have no transactions.
type InMemoryRepositoryManager struct {
	users    *users.InMemoryRepository
	diagrams *diagrams.InMemoryRepository
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		users:    users.NewInMemoryRepository(),
		diagrams: diagrams.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users(_ dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Diagrams(_ dbx.DBTX) diagrams.Repository {
	return m.diagrams
}

// RunMigrations is a no-op: the in-memory store has no schema.
func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}
