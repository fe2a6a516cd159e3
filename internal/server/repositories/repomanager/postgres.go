// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/nutriportal/internal/dbx"
	"github.com/dmitrijs2005/nutriportal/internal/logging"
	"github.com/dmitrijs2005/nutriportal/internal/server/migrations"
	"github.com/dmitrijs2005/nutriportal/internal/server/repositories/nutritionists"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook. When a logger is set, repositories get
// a query-logging handle.
type PostgresRepositoryManager struct {
	logger logging.Logger
}

// Nutritionists returns a nutritionists.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Nutritionists(db dbx.DBTX) nutritionists.Repository {
	if m.logger != nil {
		db = dbx.NewQueryLogger(db, m.logger)
	}
	return nutritionists.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
// l may be nil to disable query logging.
func NewPostgresRepositoryManager(l logging.Logger) RepositoryManager {
	return &PostgresRepositoryManager{logger: l}
}
