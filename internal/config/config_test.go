package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "pgdesk.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "0 9 * * *", cfg.Billing.Schedule)
	require.Equal(t, "Asia/Kolkata", cfg.Billing.Timezone)
	require.True(t, cfg.Billing.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PGDESK_SERVER_PORT", "9090")
	t.Setenv("PGDESK_DB_PATH", "/tmp/test.db")
	t.Setenv("PGDESK_BILLING_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/tmp/test.db", cfg.DB.Path)
	require.False(t, cfg.Billing.Enabled)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PGDESK_SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7070
billing:
  schedule: "30 8 * * *"
`), 0o644))
	t.Setenv("PGDESK_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "30 8 * * *", cfg.Billing.Schedule)
	// Untouched keys keep their defaults.
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  path: from-file.db\n"), 0o644))
	t.Setenv("PGDESK_CONFIG_PATH", path)
	t.Setenv("PGDESK_DB_PATH", "from-env.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-env.db", cfg.DB.Path)
}
