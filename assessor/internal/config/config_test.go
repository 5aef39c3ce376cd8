package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "INFERENCE_BASE_URL", "INFERENCE_TIMEOUT_MS", "POSTGRES_DSN", "REDIS_ADDR", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "http://localhost:5000", cfg.InferenceBaseURL)
	assert.Zero(t, cfg.InferenceTimeout)
	assert.Empty(t, cfg.PostgresDSN)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, time.Hour, cfg.MetricsCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("INFERENCE_TIMEOUT_MS", "2500")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://cardio.example.org ,")

	cfg := Load()
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 2500*time.Millisecond, cfg.InferenceTimeout)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, []string{"http://localhost:5173", "https://cardio.example.org"}, cfg.CORSAllowedOrigins)
}
