package repomanager

import (
	"context"
	"database/sql"

	"github.com/pkozlov/flowdeck/internal/dbx"
	"github.com/pkozlov/flowdeck/internal/server/repositories/diagrams"
	"github.com/pkozlov/flowdeck/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Diagrams(db dbx.DBTX) diagrams.Repository
}
