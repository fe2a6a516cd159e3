package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/nutriportal/internal/flagx"
)

// JsonConfig is the on-disk shape. RequestTimeout uses Go duration syntax
// ("5s", "1m").
type JsonConfig struct {
	ServerURL      string `json:"server_url"`
	RequestTimeout string `json:"request_timeout"`
}

// parseJson overlays cfg with the file named by -c / -config. Read, decode
// or duration errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout != "" {
		d, err := time.ParseDuration(jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
