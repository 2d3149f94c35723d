package config_test

import (
	"testing"
	"time"

	"go-gin-event-rsvp/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_HOST", "DB_PORT", "REDIS_DB", "ACTIVITY_QUEUE_DRIVER", "SHUTDOWN_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := config.LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "memory", cfg.Activity.QueueDriver)
	assert.Equal(t, 5, cfg.Activity.MaxRetryCount)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Same(t, cfg, config.AppConfig)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("ACTIVITY_QUEUE_DRIVER", "redis")
	t.Setenv("ACTIVITY_CLAIM_MIN_IDLE", "2s")

	cfg := config.LoadConfig()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "redis", cfg.Activity.QueueDriver)
	assert.Equal(t, 2*time.Second, cfg.Activity.ClaimMinIdleTime)
}

func TestLoadConfig_InvalidIntPanics(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	assert.Panics(t, func() { config.LoadConfig() })
}

func TestLoadTestConfig(t *testing.T) {
	cfg := config.LoadTestConfig()

	assert.Equal(t, "test_db", cfg.Database.DBName)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "memory", cfg.Activity.QueueDriver)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
}

func TestLoadConfig_RateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg := config.LoadConfig()

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, "ratelimit", cfg.RateLimit.Prefix)
}

func TestLoadConfig_InvalidBoolPanics(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "sometimes")

	assert.Panics(t, func() { config.LoadConfig() })
}
