package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Cleanup.RetentionDays)
	assert.Equal(t, time.Hour, cfg.Cleanup.Interval)
	assert.Equal(t, 30*24*time.Hour, cfg.Cleanup.Retention())
	assert.True(t, cfg.Database.Migrate)
	assert.Equal(t, 120, cfg.RateLimit.WritesPerMinute)
	assert.Zero(t, cfg.Database.LockTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CLEANUP_RETENTION_DAYS", "7")
	t.Setenv("CLEANUP_INTERVAL", "15m")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("DATABASE_MIGRATE", "false")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example,")
	t.Setenv("RATE_LIMIT_WRITES_PER_MINUTE", "0")
	t.Setenv("DATABASE_LOCK_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Cleanup.RetentionDays)
	assert.Equal(t, 15*time.Minute, cfg.Cleanup.Interval)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.Database.Migrate)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Security.CORSOrigins)
	assert.Zero(t, cfg.RateLimit.WritesPerMinute)
	assert.Equal(t, 3*time.Second, cfg.Database.LockTimeout)
}

func TestLoad_InvalidInterval(t *testing.T) {
	t.Setenv("CLEANUP_INTERVAL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NegativeRetention(t *testing.T) {
	t.Setenv("CLEANUP_RETENTION_DAYS", "-1")

	_, err := Load()
	assert.Error(t, err)
}
