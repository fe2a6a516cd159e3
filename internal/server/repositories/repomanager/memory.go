package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/nutriportal/internal/dbx"
	"github.com/dmitrijs2005/nutriportal/internal/server/repositories/nutritionists"
)

// InMemoryRepositoryManager serves process-local repositories. The db handle
// passed to its methods is ignored.
type InMemoryRepositoryManager struct {
	nutritionists *nutritionists.MemoryRepository
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Nutritionists(db dbx.DBTX) nutritionists.Repository {
	return m.nutritionists
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{nutritionists: nutritionists.NewMemoryRepository()}
}
