package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/nutriportal/internal/flagx"
)

// JsonConfig mirrors Config for JSON files. Only non-zero values override
// what is already set.
type JsonConfig struct {
	EndpointAddrHTTP string `json:"endpoint_addr_http"`
	Storage          string `json:"storage"`
	DBHost           string `json:"db_host"`
	DBPort           int    `json:"db_port"`
	DBUser           string `json:"db_user"`
	DBPassword       string `json:"db_password"`
	DBName           string `json:"db_name"`
	DBSSLMode        string `json:"db_sslmode"`
	SecretKey        string `json:"secret_key"`
	Environment      string `json:"environment"`
	LogLevel         string `json:"log_level"`
	BcryptCost       int    `json:"bcrypt_cost"`
}

// parseJson loads the file named by -c / -config, if any, into config.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.Storage, c.Storage)
	setString(&config.DBHost, c.DBHost)
	setInt(&config.DBPort, c.DBPort)
	setString(&config.DBUser, c.DBUser)
	setString(&config.DBPassword, c.DBPassword)
	setString(&config.DBName, c.DBName)
	setString(&config.DBSSLMode, c.DBSSLMode)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Environment, c.Environment)
	setString(&config.LogLevel, c.LogLevel)
	setInt(&config.BcryptCost, c.BcryptCost)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
