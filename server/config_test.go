package server

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
format = "json"

[backend]
url = "https://api.example.com/api"
retry_delay = "1s"

[cache]
driver = "postgres"

[cache.database]
password = "hunter22"

[dashboard]
reconcile_delay = "250ms"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
	assert.Equal(t, "https://api.example.com/api", cfg.Backend.URL)
	assert.Equal(t, time.Second, time.Duration(cfg.Backend.RetryDelay))
	assert.Equal(t, 3, cfg.Backend.MaxRetries)
	assert.Equal(t, CacheDriverPostgres, cfg.Cache.Driver)
	assert.Equal(t, "academy-dashboard", cfg.Cache.Database.Database)
	assert.Equal(t, 250*time.Millisecond, time.Duration(cfg.Dashboard.ReconcileDelay))
	assert.Equal(t, 10*time.Second, time.Duration(cfg.Dashboard.LoadingTimeout))
	assert.Equal(t, ":8086", cfg.Server.Addr)
	assert.Equal(t, "dashboard_session", cfg.Auth.CookieName)

	assert.NotContains(t, cfg.String(), "hunter22")
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `[cache]
driver = "redis"`))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `[backend]
url = "https://api.example.com"
[cache]
driver = "redis"`))
	assert.ErrorContains(t, err, "redis")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
