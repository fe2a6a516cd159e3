package nutritionists

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/nutriportal/internal/common"
	"github.com/dmitrijs2005/nutriportal/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in process memory. It enforces the same
// uniqueness rules as the PostgreSQL schema.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.Nutritionist
	byEmail map[string]string
	byCRN   map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.Nutritionist),
		byEmail: make(map[string]string),
		byCRN:   make(map[string]string),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, n *models.Nutritionist) (*models.Nutritionist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[n.Email]; ok {
		return nil, &common.ConflictError{Field: "email"}
	}
	if _, ok := r.byCRN[n.CRN]; ok {
		return nil, &common.ConflictError{Field: "crn"}
	}

	stored := *n
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID
	r.byCRN[stored.CRN] = stored.ID

	out := stored
	return &out, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.Nutritionist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*models.Nutritionist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *n
	return &out, nil
}

func (r *MemoryRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *MemoryRepository) ExistsByCRN(ctx context.Context, crn string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byCRN[crn]
	return ok, nil
}
