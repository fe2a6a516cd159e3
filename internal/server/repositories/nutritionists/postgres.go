// Package nutritionists stores nutritionist accounts in PostgreSQL.
package nutritionists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutriportal/internal/common"
	"github.com/dmitrijs2005/nutriportal/internal/dbx"
	"github.com/dmitrijs2005/nutriportal/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Unique constraints declared by the schema. They are the authoritative guard
// against duplicate registrations.
const (
	constraintEmail = "nutritionists_email_key"
	constraintCRN   = "nutritionists_crn_key"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, n *models.Nutritionist) (*models.Nutritionist, error) {

	query :=
		`INSERT INTO nutritionists (name, crn, email, password_hash)
         VALUES ($1, $2, $3, $4)
		 RETURNING user_id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		n.Name, n.CRN, n.Email, n.PasswordHash).Scan(&n.ID, &n.CreatedAt)

	if err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return nil, &common.ConflictError{Field: field}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Nutritionist, error) {
	query :=
		`SELECT user_id, name, crn, email, password_hash, created_at FROM nutritionists
		 WHERE email = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Nutritionist, error) {
	// ids are UUIDs; anything else cannot exist and would only produce a cast error
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT user_id, name, crn, email, password_hash, created_at FROM nutritionists
		 WHERE user_id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM nutritionists WHERE email = $1)`, email)
}

func (r *PostgresRepository) ExistsByCRN(ctx context.Context, crn string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM nutritionists WHERE crn = $1)`, crn)
}

func (r *PostgresRepository) exists(ctx context.Context, query string, arg string) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Nutritionist, error) {
	n := &models.Nutritionist{}
	err := row.Scan(&n.ID, &n.Name, &n.CRN, &n.Email, &n.PasswordHash, &n.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

// uniqueViolationField maps a unique-constraint violation to the input field
// it protects.
func uniqueViolationField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}

	switch pgErr.ConstraintName {
	case constraintEmail:
		return "email", true
	case constraintCRN:
		return "crn", true
	default:
		return "", false
	}
}
