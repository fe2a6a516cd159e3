package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/nutriportal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string            HTTP bind address (e.g., ":8080")
//	-s string            session token HMAC secret
//	-e string            environment ("production" enables Secure cookies)
//	-l string            log level
//	-storage string      storage backend (postgres or memory)
//	-db-host string      PostgreSQL host
//	-db-port int         PostgreSQL port
//	-db-user string      PostgreSQL user
//	-db-name string      PostgreSQL database
//	-db-sslmode string   PostgreSQL sslmode
//	-bcrypt-cost int     bcrypt work factor
//
// The database password is deliberately not accepted on the command line.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-s", "-e", "-l", "-storage",
		"-db-host", "-db-port", "-db-user", "-db-name", "-db-sslmode",
		"-bcrypt-cost",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.Environment, "e", config.Environment, "environment")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.Storage, "storage", config.Storage, "storage backend")
	fs.StringVar(&config.DBHost, "db-host", config.DBHost, "database host")
	fs.IntVar(&config.DBPort, "db-port", config.DBPort, "database port")
	fs.StringVar(&config.DBUser, "db-user", config.DBUser, "database user")
	fs.StringVar(&config.DBName, "db-name", config.DBName, "database name")
	fs.StringVar(&config.DBSSLMode, "db-sslmode", config.DBSSLMode, "database sslmode")
	fs.IntVar(&config.BcryptCost, "bcrypt-cost", config.BcryptCost, "bcrypt cost")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
