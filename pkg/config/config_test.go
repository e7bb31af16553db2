package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meukanban/kanban-api/pkg/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Diretório vazio: sem arquivo de configuração, só defaults
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./kanban.db", cfg.Database.DSN)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenExpiration)
	assert.False(t, cfg.Features.CascadeDelete)
	assert.True(t, cfg.Features.HealthCheck)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
server:
  port: 9090
database:
  driver: postgres
  dsn: "postgres://localhost/kanban"
features:
  cascadeDelete: true
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Features.CascadeDelete)
	// Defaults continuam valendo para o que o arquivo não define
	assert.Equal(t, "memory", cfg.Cache.Type)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	content := []byte("database:\n  driver: oracle\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	_, err := config.LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownCacheType(t *testing.T) {
	dir := t.TempDir()
	content := []byte("cache:\n  enabled: true\n  type: memcached\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	_, err := config.LoadConfig(dir)
	assert.Error(t, err)
}
