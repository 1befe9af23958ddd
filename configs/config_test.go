package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "10M", cfg.Server.BodyLimit)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 100, cfg.Cache.MaxEntries)
	assert.Equal(t, 10, cfg.Pool.MaxConnections)
	assert.Equal(t, 5*time.Second, cfg.Pool.AcquireTimeout)
	assert.Equal(t, 85.0, cfg.Memory.PressureThreshold)
	assert.Equal(t, 5*time.Second, cfg.Memory.SampleInterval)
	assert.Equal(t, int64(10*1024*1024), cfg.Memory.OperationWarnBytes)
	assert.Equal(t, time.Second, cfg.Summary.GenerationLatency)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("CACHE_MAX_ENTRIES", "250")
	t.Setenv("POOL_MAX_CONNECTIONS", "3")
	t.Setenv("MEMORY_PRESSURE_THRESHOLD", "90.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SUMMARY_GENERATION_LATENCY", "0s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 250, cfg.Cache.MaxEntries)
	assert.Equal(t, 3, cfg.Pool.MaxConnections)
	assert.Equal(t, 90.5, cfg.Memory.PressureThreshold)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, time.Duration(0), cfg.Summary.GenerationLatency)
}

func TestLoad_MalformedValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CACHE_MAX_ENTRIES", "lots")
	t.Setenv("MEMORY_SAMPLE_INTERVAL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Cache.MaxEntries)
	assert.Equal(t, 5*time.Second, cfg.Memory.SampleInterval)
}

func TestLoad_RejectsOutOfRangeThreshold(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MEMORY_PRESSURE_THRESHOLD", "120")

	_, err := Load()
	assert.ErrorContains(t, err, "MEMORY_PRESSURE_THRESHOLD")
}

func TestLoad_PanicsWithoutJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	assert.Panics(t, func() { _, _ = Load() })
}
