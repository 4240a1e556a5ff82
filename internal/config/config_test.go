package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "hotel")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_NAME", "hotel")
	t.Setenv("JWT_SECRET", "secret")
}

func TestParseDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "3306", cfg.DB.Port)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Hour, cfg.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL())
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "logs/bookings.log", cfg.AuditLogPath)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
	assert.True(t, cfg.Cache.Caches("get"))
	assert.False(t, cfg.Cache.Caches("POST"))
	assert.Equal(t, 60, cfg.RateLimit.Capacity)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.TTL)
	assert.False(t, cfg.IsProd())
}

func TestParseMissingRequired(t *testing.T) {
	tests := []string{"DB_USER", "DB_HOST", "DB_NAME", "JWT_SECRET"}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "")

			_, err := Parse()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestParseOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "15")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL())
	assert.Equal(t, "cache:6380", cfg.Redis.Address())
	assert.Equal(t, []string{"GET", "HEAD"}, cfg.Cache.Methods)
	assert.Equal(t, 5, cfg.RateLimit.Capacity)
	assert.Equal(t, 1, cfg.RateLimit.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RateLimit.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.TTL)
}

func TestParseRejectsNonPositiveTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "0")

	_, err := Parse()
	assert.Error(t, err)
}
