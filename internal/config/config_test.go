package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Store.Type)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.True(t, cfg.Auth.FailOpen)
	assert.False(t, cfg.Remote.Enabled())
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[app]
port = "9000"

[store]
type = "sqlite"
path = "./ops.db"

[auth]
fail_open = false
`), 0o644))

	t.Setenv("ISPOPS_CONFIG_FILE", path)
	t.Setenv("APP_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.App.Port, "environment wins over the file")
	assert.Equal(t, "sqlite", cfg.Store.Type)
	assert.Equal(t, "./ops.db", cfg.Store.Path)
	assert.False(t, cfg.Auth.FailOpen)
}

func TestDiagnosticsReportsPresenceOnly(t *testing.T) {
	cfg := defaults()
	cfg.Integrations.SheetsAPIKey = "secret-value"
	cfg.Remote.Type = "s3"

	statuses := cfg.Diagnostics()
	byName := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		byName[s.Name] = s.Present
	}

	assert.True(t, byName["sheets_api_key"])
	assert.False(t, byName["genai_api_key"])
	assert.True(t, byName["remote_sync"])
}
