// Package config handles configuration for the server component:
// defaults, JSON overlay, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// EnvProduction is the Environment value that turns on production checks
// and the Secure cookie attribute.
const EnvProduction = "production"

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// minProductionSecretLen is the shortest HS256 key accepted in production.
const minProductionSecretLen = 32

// Config holds runtime settings for the nutriportal server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the JSON API.
//   - Storage: "postgres" (default) or "memory" for local runs without a database.
//   - DBHost / DBPort / DBUser / DBPassword / DBName / DBSSLMode: PostgreSQL connection.
//   - SecretKey: HMAC secret for signing session tokens (HS256). No default.
//   - Environment: "production" enables Secure cookies and stricter checks.
//   - LogLevel: debug, info, warn or error.
//   - BcryptCost: work factor for password hashing.
type Config struct {
	EndpointAddrHTTP string
	Storage          string
	DBHost           string
	DBPort           int
	DBUser           string
	DBPassword       string
	DBName           string
	DBSSLMode        string
	SecretKey        string
	Environment      string
	LogLevel         string
	BcryptCost       int
}

// LoadDefaults populates Config with non-secret development defaults.
// Credentials and the signing key are intentionally left empty.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.Storage = StoragePostgres
	c.DBHost = "localhost"
	c.DBPort = 5432
	c.DBName = "nutri"
	c.DBSSLMode = "disable"
	c.Environment = "development"
	c.LogLevel = "info"
	c.BcryptCost = bcrypt.DefaultCost
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (and .env) and finally
// command-line flags. Malformed sources cause a panic.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// IsProduction reports whether the server runs in the production environment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// Validate rejects configurations that must never reach a running server.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage {
	case StoragePostgres, "":
		if c.DBUser == "" {
			errs = append(errs, errors.New("database user is required"))
		}
		if c.DBName == "" {
			errs = append(errs, errors.New("database name is required"))
		}
		if c.DBPort <= 0 || c.DBPort > 65535 {
			errs = append(errs, fmt.Errorf("invalid database port %d", c.DBPort))
		}
	case StorageMemory:
		if c.IsProduction() {
			errs = append(errs, errors.New("memory storage is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q", c.Storage))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required"))
	} else if c.IsProduction() && len(c.SecretKey) < minProductionSecretLen {
		errs = append(errs, fmt.Errorf("secret key must be at least %d bytes in production", minProductionSecretLen))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	return errors.Join(errs...)
}

// DSN returns the PostgreSQL connection URL understood by the pgx driver.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:   "/" + c.DBName,
	}
	if c.DBSSLMode != "" {
		q := url.Values{}
		q.Set("sslmode", c.DBSSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
