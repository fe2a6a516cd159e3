package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/nutriportal/internal/common"
	"github.com/dmitrijs2005/nutriportal/internal/dbx"
	"github.com/dmitrijs2005/nutriportal/internal/logging"
	"github.com/dmitrijs2005/nutriportal/internal/server/auth"
	"github.com/dmitrijs2005/nutriportal/internal/server/models"
	"github.com/dmitrijs2005/nutriportal/internal/server/repositories/nutritionists"
)

// fakeRepo is an in-memory nutritionists.Repository that enforces the same
// uniqueness rules as the schema.
type fakeRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Nutritionist
	seq  int

	existsErr error
	findErr   error
	createErr error

	// skipExists makes the Exists* pre-checks report false, simulating a
	// concurrent insert that slips past them.
	skipExists bool
	creates    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[string]*models.Nutritionist{}}
}

func (f *fakeRepo) Create(ctx context.Context, n *models.Nutritionist) (*models.Nutritionist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, r := range f.rows {
		if r.Email == n.Email {
			return nil, &common.ConflictError{Field: "email"}
		}
		if r.CRN == n.CRN {
			return nil, &common.ConflictError{Field: "crn"}
		}
	}
	f.seq++
	c := *n
	c.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", f.seq)
	c.CreatedAt = time.Now()
	f.rows[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*models.Nutritionist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, r := range f.rows {
		if r.Email == email {
			c := *r
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*models.Nutritionist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	r, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *r
	return &c, nil
}

func (f *fakeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return f.exists(func(r *models.Nutritionist) bool { return r.Email == email })
}

func (f *fakeRepo) ExistsByCRN(ctx context.Context, crn string) (bool, error) {
	return f.exists(func(r *models.Nutritionist) bool { return r.CRN == crn })
}

func (f *fakeRepo) exists(match func(*models.Nutritionist) bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	if f.skipExists {
		return false, nil
	}
	for _, r := range f.rows {
		if match(r) {
			return true, nil
		}
	}
	return false, nil
}

type fakeRepoManager struct {
	repo *fakeRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Nutritionists(db dbx.DBTX) nutritionists.Repository {
	return m.repo
}

// countingHasher records how often each comparison path runs.
type countingHasher struct {
	inner    auth.PasswordHasher
	hashErr  error
	compares int
	dummies  int
}

func (h *countingHasher) Hash(p string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return h.inner.Hash(p)
}

func (h *countingHasher) Compare(hash, p string) (bool, error) {
	h.compares++
	return h.inner.Compare(hash, p)
}

func (h *countingHasher) CompareDummy(p string) {
	h.dummies++
	h.inner.CompareDummy(p)
}

func discardLogger() logging.Logger {
	return logging.NewJSONLogger(io.Discard, "error")
}
