// Package cli implements the interactive nutriportal terminal client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/nutriportal/internal/client/api"
	"github.com/dmitrijs2005/nutriportal/internal/client/config"
)

// apiClient is the subset of api.Client the commands use.
type apiClient interface {
	Register(ctx context.Context, r api.RegisterRequest) (string, error)
	Login(ctx context.Context, email string, senha []byte) (*api.Account, error)
	Me(ctx context.Context) (*api.Account, error)
	Ping(ctx context.Context) error
	Logout() error
}

type App struct {
	api      apiClient
	reader   *bufio.Reader
	out      io.Writer
	timeout  time.Duration
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	client, err := api.New(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return &App{
		api:     client,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		timeout: c.RequestTimeout,
	}, nil
}

// Run starts the REPL and returns when the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to nutriportal CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) status() string {
	if a.userName == "" {
		return "anonymous"
	}
	return a.userName
}

func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}
