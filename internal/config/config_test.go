package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiczolek/react-backend/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: user-service
  port: "9090"
  base_path: /api
postgres:
  host: db.internal
  port: "5433"
  user: app
  password: secret
  dbname: react_backend
  sslmode: require
  max_conns: 20
  min_conns: 5
  max_conn_lifetime: 1h
  migrations_path: migrations
auth:
  realm: user-service
  username: john123
  password: pass
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "/api", cfg.App.BasePath)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, int32(20), cfg.Postgres.MaxConns)
	assert.Equal(t, config.Duration(time.Hour), cfg.Postgres.MaxConnLifetime)
	assert.Equal(t, "john123", cfg.Auth.Username)
}

func TestLoad_DefaultsApply(t *testing.T) {
	path := writeConfigFile(t, `
postgres:
  user: app
  password: secret
  dbname: react_backend
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "/api", cfg.App.BasePath)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, "john123", cfg.Auth.Username, "default Basic-auth account")
	assert.Equal(t, "pass", cfg.Auth.Password)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
postgres:
  user: app
  password: from-file
  dbname: react_backend
auth:
  username: john123
  password: from-file
`)

	t.Setenv("POSTGRES_PASSWORD", "from-env")
	t.Setenv("AUTH_PASSWORD", "from-env")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Postgres.Password)
	assert.Equal(t, "from-env", cfg.Auth.Password)
}

func TestLoad_EmptyBasePathFallsBack(t *testing.T) {
	path := writeConfigFile(t, `
app:
  base_path: ""
postgres:
  user: app
  password: secret
  dbname: react_backend
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/api", cfg.App.BasePath)
}

func TestLoad_BasePathLeadingSlashRepaired(t *testing.T) {
	path := writeConfigFile(t, `
app:
  base_path: api/v1
postgres:
  user: app
  password: secret
  dbname: react_backend
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1", cfg.App.BasePath)
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfigFile(t, `
postgres:
  max_conn_lifetime: soon
`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
