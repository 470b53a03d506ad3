package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 5.0, cfg.VoteRateLimit)
	assert.Equal(t, 10, cfg.VoteRateBurst)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, time.Hour, cfg.CacheExpiry())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
}

func TestLoadConfig_InvalidInt(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "eighty")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		HTTPPort:      70000,
		JWTSecret:     "short",
		LogLevel:      "verbose",
		LogFormat:     "xml",
		VoteRateLimit: 0,
		VoteRateBurst: 0,
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{"HTTP_PORT", "JWT_SECRET", "LOG_LEVEL", "LOG_FORMAT", "VOTE_RATE_LIMIT"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	cfg := &Config{LogLevel: "warn", LogFormat: "json"}
	var buf bytes.Buffer

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "movie_id", 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"movie_id":7`)
}
