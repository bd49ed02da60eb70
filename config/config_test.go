package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocine/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.StorageMemory, cfg.StorageBackend)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout())
	assert.Equal(t, time.Minute, cfg.CacheTTL())
	assert.Equal(t, 100, cfg.RateLimitMaxRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitPeriod())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/gocine?sslmode=disable")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL_SEC", "30")
	t.Setenv("RATE_LIMIT_PERIOD_SEC", "10")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, config.StoragePostgres, cfg.StorageBackend)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL())
	assert.Equal(t, 10*time.Second, cfg.RateLimitPeriod())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres sem DATABASE_URL", map[string]string{"STORAGE_BACKEND": "postgres", "DATABASE_URL": ""}},
		{"backend desconhecido", map[string]string{"STORAGE_BACKEND": "mongo"}},
		{"ttl zero", map[string]string{"STORAGE_BACKEND": "memory", "CACHE_TTL_SEC": "0"}},
		{"inteiro inválido", map[string]string{"DB_TIMEOUT_SEC": "cinco"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.LoadConfig()
			assert.Error(t, err)
		})
	}
}
