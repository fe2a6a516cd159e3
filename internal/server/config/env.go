package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// dotenvLoad is a seam for tests. A missing .env file is not an error.
var dotenvLoad = func() error { return godotenv.Load() }

// parseEnv overlays values from environment variables. Variables already
// present in the process environment take precedence over .env entries.
func parseEnv(config *Config) {
	_ = dotenvLoad()

	lookupString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	lookupString(&config.Storage, "STORAGE")
	lookupString(&config.DBHost, "DB_HOST")
	lookupInt(&config.DBPort, "DB_PORT")
	lookupString(&config.DBUser, "DB_USER")
	lookupString(&config.DBPassword, "DB_PASSWORD")
	lookupString(&config.DBName, "DB_NAME")
	lookupString(&config.DBSSLMode, "DB_SSLMODE")
	lookupString(&config.SecretKey, "JWT_SECRET")
	lookupString(&config.Environment, "APP_ENV")
	lookupString(&config.LogLevel, "LOG_LEVEL")
	lookupInt(&config.BcryptCost, "BCRYPT_COST")
}

func lookupString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func lookupInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Errorf("env %s: %w", key, err))
	}
	*dst = n
}
