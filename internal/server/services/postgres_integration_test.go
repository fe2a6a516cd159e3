//go:build integration

package services

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutriportal/internal/common"
	"github.com/dmitrijs2005/nutriportal/internal/dbx"
	"github.com/dmitrijs2005/nutriportal/internal/logging"
	"github.com/dmitrijs2005/nutriportal/internal/server/auth"
	"github.com/dmitrijs2005/nutriportal/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("nutri_test"),
		postgres.WithUsername("nutri"),
		postgres.WithPassword("nutri"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := dbx.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repomanager.NewPostgresRepositoryManager(nil).RunMigrations(ctx, db))
	return db
}

func TestPostgres_RegisterLoginMe(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	l := logging.NewJSONLogger(io.Discard, "error")

	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	rm := repomanager.NewPostgresRepositoryManager(l)
	reg := NewRegistrationService(db, rm, hasher, l, nil)
	as := NewAuthService(db, rm, hasher, auth.NewTokenIssuer([]byte(testSecret)), l, nil)

	n, err := reg.Register(ctx, ana())
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.CreatedAt.IsZero())

	dup := ana()
	dup.CRN = "654321"
	dup.Email = "ANA@X.COM"
	_, err = reg.Register(ctx, dup)
	var cerr *common.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "email", cerr.Field)

	res, err := as.Login(ctx, LoginInput{Email: "ana@x.com", Senha: "Abcd1234"})
	require.NoError(t, err)
	assert.Equal(t, n.ID, res.Account.ID)

	claims, err := as.Verify(res.Token)
	require.NoError(t, err)
	me, err := as.Me(ctx, claims.Subject)
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", me.Name)

	_, err = as.Login(ctx, LoginInput{Email: "ana@x.com", Senha: "wrong"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestPostgres_ConcurrentDuplicateRegistration(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	l := logging.NewJSONLogger(io.Discard, "error")

	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	reg := NewRegistrationService(db, repomanager.NewPostgresRepositoryManager(nil), hasher, l, nil)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.Register(ctx, ana())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch common.KindOf(err) {
		case common.KindNone:
			ok++
		case common.KindConflict:
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, conflicts)
}
