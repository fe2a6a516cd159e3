// Package api is a small client for the nutriportal JSON API. The session
// cookie set by Login is kept in a cookie jar and sent on later calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldError is one validation failure reported by the server.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error is a non-2xx API response.
type Error struct {
	StatusCode int
	Message    string
	Field      string
	Fields     []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%d: %s (%s)", e.StatusCode, e.Message, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Account is the public view of a nutritionist.
type Account struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RegisterRequest struct {
	Name  string `json:"name"`
	CRN   string `json:"crn"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type envelope struct {
	Message string       `json:"message"`
	Field   string       `json:"field"`
	Errors  []FieldError `json:"errors"`
	User    *Account     `json:"user"`
	Status  string       `json:"status"`
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New returns a client for the API at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url: unsupported scheme %q", u.Scheme)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{baseURL: u, http: &http.Client{Jar: jar, Timeout: timeout}}, nil
}

// Register creates an account and returns the server's confirmation message.
func (c *Client) Register(ctx context.Context, r RegisterRequest) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/register-nutricionista", r)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Login authenticates and stores the session cookie.
func (c *Client) Login(ctx context.Context, email string, senha []byte) (*Account, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/login", loginRequest{Email: email, Senha: string(senha)})
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, errors.New("login response without user")
	}
	return env.User, nil
}

// Me returns the account of the current session.
func (c *Client) Me(ctx context.Context) (*Account, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/me", nil)
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, errors.New("me response without user")
	}
	return env.User, nil
}

// Ping checks the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	return err
}

// Logout forgets the session cookie locally. Tokens are not revocable on
// the server, so nothing is sent.
func (c *Client) Logout() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	c.http.Jar = jar
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	env := &envelope{}
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Field:      env.Field,
			Fields:     env.Errors,
		}
	}
	return env, nil
}
