package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "PORT", "OPENAI_MODEL", "PROMPT_SOURCE", "PROMPT_RELOAD_INTERVAL",
		"CORS_ALLOWED_ORIGINS", "RATE_LIMIT_PER_MINUTE", "AUTH_JWT_SECRET", "REDIS_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, "o3-mini", cfg.OpenAIModel)
	assert.Equal(t, "embedded", cfg.PromptSource)
	assert.Equal(t, time.Minute, cfg.PromptReloadInterval)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
	assert.Equal(t, 4000, cfg.MaxMessageLength)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoad_PortOverridesDefaultAddr(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "8088")

	cfg := Load()
	assert.Equal(t, ":8088", cfg.HTTPAddr)
}

func TestLoad_HTTPAddrWinsOverPort(t *testing.T) {
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("PORT", "8088")

	cfg := Load()
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
}

func TestLoad_ParsesTypedValues(t *testing.T) {
	t.Setenv("PROMPT_RELOAD_INTERVAL", "30s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
	t.Setenv("S3_FORCE_PATH_STYLE", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.PromptReloadInterval)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.False(t, cfg.S3ForcePathStyle)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.AuthEnabled())
}

func TestLoad_BadValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("PROMPT_RELOAD_INTERVAL", "soon")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	t.Setenv("S3_FORCE_PATH_STYLE", "maybe")

	cfg := Load()

	assert.Equal(t, time.Minute, cfg.PromptReloadInterval)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
	assert.True(t, cfg.S3ForcePathStyle)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.in), "input %q", tt.in)
	}
}
