package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Feed.PageSize)
	assert.Equal(t, 20*time.Second, cfg.Feed.IndexCacheTTL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := writeConfig(t, `
feed:
  page_size: 5
  index_cache_ttl: 1m
cache:
  driver: redis
`)
	t.Setenv("YATUBE_SERVER_PORT", "9090")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Feed.PageSize)
	assert.Equal(t, time.Minute, cfg.Feed.IndexCacheTTL)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_RejectsInvalidPageSize(t *testing.T) {
	dir := writeConfig(t, "feed:\n  page_size: 0\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_size")
}

func TestValidate_UnknownDrivers(t *testing.T) {
	cfg := &Config{
		Feed:     FeedConfig{PageSize: 10, IndexCacheTTL: time.Second},
		Database: DatabaseConfig{Driver: "mysql"},
		Cache:    CacheConfig{Driver: "memory"},
	}
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = "postgres"
	cfg.Cache.Driver = "memcached"
	assert.Error(t, cfg.Validate())

	cfg.Cache.Driver = "redis"
	assert.NoError(t, cfg.Validate())
}
