package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Creates a temporary YAML config file in a temporary directory.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "test_config.yaml")

	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err, "Failed to write temporary config file")

	return configPath
}

func TestLoad(t *testing.T) {
	validYAML := `
env: "test"
api:
  API_BASE_URL: "http://api.test:3000"
  API_TIMEOUT: "10s"
storage:
  STORAGE_BACKEND: "redis"
  STORAGE_DIR: "/tmp/storefront"
redis:
  REDIS_HOST: "redishost:6380"
  REDIS_USER: "redisuser"
  REDIS_PASSWORD: "redispassword"
  REDIS_DB: 1
metrics:
  METRICS_ADDR: ":9102"
`
	resetEnv := func() {
		os.Unsetenv("ENV")
		os.Unsetenv("API_BASE_URL")
		os.Unsetenv("API_TIMEOUT")
		os.Unsetenv("STORAGE_BACKEND")
		os.Unsetenv("STORAGE_DIR")
		os.Unsetenv("REDIS_HOST")
		os.Unsetenv("METRICS_ADDR")
	}

	// Verifies values from YAML are loaded correctly
	t.Run("Load from file", func(t *testing.T) {
		resetEnv()

		configPath := createTempConfigFile(t, validYAML)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.Env)
		assert.Equal(t, "http://api.test:3000", cfg.API.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.API.Timeout)
		assert.Equal(t, "redis", cfg.LocalStorage.Backend)
		assert.Equal(t, "redishost:6380", cfg.RedisConnect.Host)
		assert.Equal(t, 1, cfg.RedisConnect.DB)
		assert.Equal(t, ":9102", cfg.Metrics.Addr)
	})

	// Every field has a default, so an empty path must still work
	t.Run("Load from environment only", func(t *testing.T) {
		resetEnv()

		cfg, err := Load("")
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, "http://localhost:3000", cfg.API.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.API.Timeout)
		assert.Equal(t, "file", cfg.LocalStorage.Backend)
		assert.Equal(t, ".supermercado", cfg.LocalStorage.Dir)
		assert.Empty(t, cfg.Metrics.Addr)
	})

	// Verifies envs override the YAML values
	t.Run("Environment variable override", func(t *testing.T) {
		resetEnv()

		configPath := createTempConfigFile(t, validYAML)

		t.Setenv("ENV", "production")
		t.Setenv("API_BASE_URL", "https://tienda.example.com")
		t.Setenv("REDIS_HOST", "prod-redis:6379")

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "production", cfg.Env)
		assert.Equal(t, "https://tienda.example.com", cfg.API.BaseURL)
		assert.Equal(t, "prod-redis:6379", cfg.RedisConnect.Host)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		resetEnv()

		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}
