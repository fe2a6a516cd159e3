// Package config handles configuration for the nutriportal terminal client.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerURL: base URL of the nutriportal API.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with local development defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then a JSON file (if given) and finally
// command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
