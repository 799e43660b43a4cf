package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("REDIS_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)

	// Check defaults
	assert.Equal(t, "8089", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.Redis.Enabled, "redis cache should be opt-in")
	assert.Equal(t, 20.0, cfg.API.RateLimit)
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("DATA_DIR", "/srv/course")
	t.Setenv("SYLLABUS_FILE", "/srv/course/syllabus.yaml")
	t.Setenv("API_RATE_LIMIT", "2.5")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_LEVEL", "info")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/srv/course", cfg.DataDir)
	assert.Equal(t, "/srv/course/syllabus.yaml", cfg.SyllabusFile)
	assert.Equal(t, 2.5, cfg.API.RateLimit)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("API_RATE_BURST", "lots")
	t.Setenv("REDIS_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.API.RateBurst)
	assert.False(t, cfg.Redis.Enabled)
}

func TestValidateInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "qa")

	_, err := Load()
	assert.Error(t, err, "expected error for unknown ENV")
}

func TestValidateRateLimit(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("API_RATE_LIMIT", "-1")

	_, err := Load()
	assert.Error(t, err)
}
