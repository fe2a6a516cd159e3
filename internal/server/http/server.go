// Package http exposes the account services as a JSON API over gin.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/nutriportal/internal/logging"
	"github.com/dmitrijs2005/nutriportal/internal/server/auth"
	"github.com/dmitrijs2005/nutriportal/internal/server/metrics"
	"github.com/dmitrijs2005/nutriportal/internal/server/models"
	"github.com/dmitrijs2005/nutriportal/internal/server/services"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.Nutritionist, error)
}

// Authenticator logs users in and resolves sessions.
type Authenticator interface {
	Login(ctx context.Context, in services.LoginInput) (*services.LoginResult, error)
	Me(ctx context.Context, id string) (*models.PublicAccount, error)
	Verify(token string) (*auth.Claims, error)
}

// Pinger reports store reachability for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HTTPServer struct {
	address      string
	logger       logging.Logger
	registrar    Registrar
	auth         Authenticator
	metrics      *metrics.Metrics
	pinger       Pinger
	secureCookie bool
}

// NewHTTPServer builds the API server. m and p may be nil: without metrics
// /metrics is not served, without a pinger /healthz always reports ok.
func NewHTTPServer(a string, l logging.Logger, r Registrar, au Authenticator,
	m *metrics.Metrics, p Pinger, secureCookie bool) *HTTPServer {
	return &HTTPServer{
		address:      a,
		logger:       l.With("module", "http_server"),
		registrar:    r,
		auth:         au,
		metrics:      m,
		pinger:       p,
		secureCookie: secureCookie,
	}
}

// Run serves on the configured address until ctx is cancelled, then drains
// in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		<-stopped
		return err
	}

	<-stopped
	return nil
}
