package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv(ConnectionStringEnv, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.Empty(t, cfg.ConnectionString, "absent connection string is a valid state")
}

func TestLoad_ParsesYaml(t *testing.T) {
	t.Setenv(ConnectionStringEnv, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
connection_string: "server=probe-sql.database.windows.net;database=probe;encrypt=true"
azure_client_id: "11111111-2222-3333-4444-555555555555"
probe_timeout_seconds: 10
history_limit: 50
monitor:
  enabled: true
  interval_minutes: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "server=probe-sql.database.windows.net;database=probe;encrypt=true", cfg.ConnectionString)
	require.Equal(t, "11111111-2222-3333-4444-555555555555", cfg.AzureClientID)
	require.Equal(t, 10, cfg.ProbeTimeoutSeconds)
	require.Equal(t, 50, cfg.HistoryLimit)
	require.True(t, cfg.Monitor.Enabled)
	require.Equal(t, 2, cfg.Monitor.IntervalMinutes)
	require.Equal(t, DefaultTokenScope, cfg.TokenScope, "scope defaults when omitted")
}

func TestLoad_EnvOverridesConnectionString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`connection_string: "from-file"`), 0o644))

	t.Setenv(ConnectionStringEnv, "server=env.database.windows.net;database=env")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "server=env.database.windows.net;database=env", cfg.ConnectionString)
}

func TestLoad_NormalisesInvalidValues(t *testing.T) {
	t.Setenv(ConnectionStringEnv, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
token_scope: "  "
probe_timeout_seconds: -1
history_limit: 0
monitor:
  interval_minutes: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultTokenScope, cfg.TokenScope)
	require.Equal(t, DefaultConfig().ProbeTimeoutSeconds, cfg.ProbeTimeoutSeconds)
	require.Equal(t, DefaultConfig().HistoryLimit, cfg.HistoryLimit)
	require.Equal(t, DefaultConfig().Monitor.IntervalMinutes, cfg.Monitor.IntervalMinutes)
}

func TestLoad_InvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("connection_string: [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse config")
}
