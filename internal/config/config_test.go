package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "experiment", cfg.Database.DBName)
	assert.Equal(t, "experiment-server", cfg.JWT.Issuer)
	assert.Equal(t, 86400, cfg.JWT.ExpireSec)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Tracing.Enabled)
	assert.True(t, cfg.Rate.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	content := `
env: production
server:
  port: 9000
database:
  driver: sqlite
  path: /tmp/test.db
log:
  level: error
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.True(t, IsProduction(cfg))
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "error", cfg.Log.Level)
	// 文件未覆盖的字段保持默认值
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_JWT_SECRET", "from-env")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestDefaultMatchesLoadDefaults(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	loaded, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, loaded.Server, cfg.Server)
	assert.Equal(t, loaded.Database, cfg.Database)
	assert.Equal(t, loaded.JWT, cfg.JWT)
}

func TestProductionDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 200, cfg.Database.MaxOpenConns)
}
