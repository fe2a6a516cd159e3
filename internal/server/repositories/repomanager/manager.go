package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/nutriportal/internal/dbx"
	"github.com/dmitrijs2005/nutriportal/internal/server/repositories/nutritionists"
)

// RepositoryManager vends repositories bound to a DB or Tx and owns the
// schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Nutritionists(db dbx.DBTX) nutritionists.Repository
}
