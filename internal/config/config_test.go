package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
application:
  env: test
  port: 9090
storage:
  driver: redis
catalog:
  base_url: http://catalog:8080
  timeout: 2s
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cart-service.yaml"), content, 0o600))

	cfg, err := Read(dir, "cart-service")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Application.Env)
	assert.Equal(t, 9090, cfg.Application.Port)
	assert.Equal(t, StorageDriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "@RocketShoes", cfg.Storage.Namespace)
	assert.Equal(t, "http://catalog:8080", cfg.Catalog.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "pt-BR", cfg.Currency.Locale)
	assert.Equal(t, "R$", cfg.Currency.Symbol)
	assert.Equal(t, 5*time.Second, cfg.Notification.TTL)
	assert.False(t, cfg.Otel.Enabled)
}

func TestReadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "storefront.yaml"), []byte("storage:\n  driver: sqlite\n"), 0o600))
	t.Setenv("STOREFRONT_STORAGE_DRIVER", StorageDriverMemory)

	cfg, err := Read(dir, "storefront")
	require.NoError(t, err)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(t.TempDir(), "missing")
	assert.Error(t, err)
}
