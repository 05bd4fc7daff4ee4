package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadProxy(t *testing.T) {
	cfg := LoadProxy()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.GeminiModel)
	assert.NotEmpty(t, cfg.GeminiBackend)
}

func TestLoadProxyCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("GEMINI_API_KEY", "AIza-test")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")
	t.Setenv("GEMINI_BACKEND", "sdk")
	t.Setenv("LOG_FORMAT", "text")

	cfg := LoadProxy()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "AIza-test", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "sdk", cfg.GeminiBackend)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadProxyEmptyKeyIsNotFatal(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg := LoadProxy()

	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoadClientCustomValues(t *testing.T) {
	t.Setenv("PROXY_URL", "https://banana-bread.pages.dev")
	t.Setenv("STATE_BACKEND", "memory")
	t.Setenv("STATE_DB_PATH", "/tmp/state.db")

	cfg := LoadClient()

	assert.Equal(t, "https://banana-bread.pages.dev", cfg.ProxyURL)
	assert.Equal(t, "memory", cfg.StateBackend)
	assert.Equal(t, "/tmp/state.db", cfg.StateDBPath)
}
