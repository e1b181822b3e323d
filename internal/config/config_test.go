package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://localhost/dealdesk
auth:
  jwt_secret: s3cret
milestones:
  critical_keys: [closing]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "deals", cfg.AMQP.Exchange)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "postgres://localhost/dealdesk", cfg.Database.DSN)
	assert.Equal(t, []string{"closing"}, cfg.Milestones.CriticalKeys)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
database:
  url: postgres://file
`)
	t.Setenv("DEALDESK_DB_URL", "postgres://env")
	t.Setenv("DEALDESK_SERVER_PORT", "9100")
	t.Setenv("DEALDESK_JWT_SECRET", "from-env")
	t.Setenv("DEALDESK_REDIS_ADDR", "redis:6379")
	t.Setenv("DEALDESK_AMQP_URL", "amqp://guest:guest@mq:5672/")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env", cfg.Database.DSN)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.AMQP.URL)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [not a map"))
	assert.Error(t, err)

	t.Setenv("DEALDESK_SERVER_PORT", "eighty")
	_, err = Load(writeConfig(t, "server:\n  port: 1\n"))
	assert.Error(t, err)
}
