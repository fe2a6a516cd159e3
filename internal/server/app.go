// Package server wires configuration, storage, services and the HTTP API
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/nutriportal/internal/dbx"
	"github.com/dmitrijs2005/nutriportal/internal/logging"
	"github.com/dmitrijs2005/nutriportal/internal/server/auth"
	"github.com/dmitrijs2005/nutriportal/internal/server/config"
	"github.com/dmitrijs2005/nutriportal/internal/server/metrics"
	"github.com/dmitrijs2005/nutriportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/nutriportal/internal/server/services"
	"github.com/gin-gonic/gin"

	hs "github.com/dmitrijs2005/nutriportal/internal/server/http"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *hs.HTTPServer
}

// openDB is a seam for tests.
var openDB = dbx.Open

// NewApp validates c, opens the store, applies migrations and builds the
// HTTP server. The caller must Run the app to release its resources.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if logging.ParseLevel(c.LogLevel) > logging.ParseLevel("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	hasher, err := auth.NewBcryptHasher(c.BcryptCost)
	if err != nil {
		return nil, err
	}
	issuer := auth.NewTokenIssuer([]byte(c.SecretKey))
	m := metrics.New()

	var (
		db     *sql.DB
		dbtx   dbx.DBTX
		pinger hs.Pinger
		rm     repomanager.RepositoryManager
	)

	switch c.Storage {
	case config.StorageMemory:
		logger.Warn(ctx, "using in-memory storage, accounts are lost on restart")
		rm = repomanager.NewInMemoryRepositoryManager()
	default:
		db, err = openDB(ctx, c.DSN())
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager(logger)
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		dbtx, pinger = db, db
	}

	rs := services.NewRegistrationService(dbtx, rm, hasher, logger, m)
	as := services.NewAuthService(dbtx, rm, hasher, issuer, logger, m)
	srv := hs.NewHTTPServer(c.EndpointAddrHTTP, logger, rs, as, m, pinger, c.IsProduction())

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// shuts the server down and closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment, "storage", app.config.Storage)

	app.initSignalHandler(ctx, cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if app.db != nil {
		if cerr := app.db.Close(); cerr != nil {
			app.logger.Error(context.Background(), "closing db", "error", cerr)
		}
	}

	app.logger.Info(context.Background(), "App stopped")
	return err
}
