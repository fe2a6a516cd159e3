// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// pool construction and a query-logging decorator.
package dbx

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dmitrijs2005/nutriportal/internal/logging"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// QueryLogger decorates a DBTX and logs every statement at debug level with
// its duration. Arguments are never logged: they may hold password hashes.
type QueryLogger struct {
	db     DBTX
	logger logging.Logger
}

// NewQueryLogger wraps db.
func NewQueryLogger(db DBTX, l logging.Logger) *QueryLogger {
	return &QueryLogger{db: db, logger: l.With("module", "db")}
}

func (q *QueryLogger) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		q.logger.Error(ctx, "query failed", "text", compact(query), "duration", time.Since(start), "error", err)
		return nil, err
	}
	rows, _ := res.RowsAffected()
	q.logger.Debug(ctx, "executed query", "text", compact(query), "duration", time.Since(start), "rows", rows)
	return res, nil
}

func (q *QueryLogger) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		q.logger.Error(ctx, "query failed", "text", compact(query), "duration", time.Since(start), "error", err)
		return nil, err
	}
	q.logger.Debug(ctx, "executed query", "text", compact(query), "duration", time.Since(start))
	return rows, nil
}

// QueryRowContext defers errors to Scan, so only the round trip is logged here.
func (q *QueryLogger) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := q.db.QueryRowContext(ctx, query, args...)
	q.logger.Debug(ctx, "executed query", "text", compact(query), "duration", time.Since(start))
	return row
}

// compact folds whitespace so multi-line SQL fits on one log line.
func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
