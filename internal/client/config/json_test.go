package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", writeTempJSON(t, map[string]any{
			"server_url":      "https://nutri.example",
			"request_timeout": "5s",
		})}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "https://nutri.example", cfg.ServerURL)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	})

	t.Run("no config flag leaves defaults", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{ServerURL: "http://keep", RequestTimeout: time.Minute}
		parseJson(cfg)

		assert.Equal(t, "http://keep", cfg.ServerURL)
		assert.Equal(t, time.Minute, cfg.RequestTimeout)
	})

	t.Run("bad duration panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", writeTempJSON(t, map[string]any{"request_timeout": "soon"})}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
