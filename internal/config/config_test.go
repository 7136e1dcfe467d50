package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `env: dev
secret: "test-secret"
token_ttl: 1h
snapshots_path: "shots"
http_server:
  address: "localhost:8080"
  timeout: 5s
db:
  host: "db.local"
  port: "3306"
  username: "rtsp"
  dbname: "cameras_db"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, testConfig))

	cfg := MustLoad()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "shots", cfg.SnapshotsPath)
	assert.Equal(t, "localhost:8080", cfg.HTTPServer.Address)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, "db.local", cfg.DB.Host)
	assert.Equal(t, "cameras_db", cfg.DB.DBName)
}

func TestMustLoad_PasswordFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, testConfig))
	t.Setenv("MARIADB_PASSWORD", "secret-pass")

	cfg := MustLoad()

	assert.Equal(t, "secret-pass", cfg.DB.Password)
}

func TestMustLoad_MissingPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	assert.Panics(t, func() { MustLoad() })
}

func TestMustLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Panics(t, func() { MustLoad() })
}
