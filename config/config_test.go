package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with openai key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "openai", cfg.ModelProvider)
		assert.Equal(t, time.Hour, cfg.SessionTTL)
		assert.Equal(t, 20, cfg.MaxMessagesPerSession)
		assert.Equal(t, 10, cfg.ContextWindowSize)
		assert.Equal(t, 5, cfg.MaxSearchResults)
		assert.Equal(t, 30*time.Second, cfg.CallTimeout)
		assert.Equal(t, "3000", cfg.Port)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("MODEL_PROVIDER", "anthropic")
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
		t.Setenv("SESSION_TTL_SECONDS", "120")
		t.Setenv("MAX_MESSAGES_PER_SESSION", "8")
		t.Setenv("CONTEXT_WINDOW_SIZE", "4")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("REDIS_DB", "2")
		t.Setenv("PORT", "8080")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "anthropic", cfg.ModelProvider)
		assert.Equal(t, 2*time.Minute, cfg.SessionTTL)
		assert.Equal(t, 8, cfg.MaxMessagesPerSession)
		assert.Equal(t, 4, cfg.ContextWindowSize)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.Equal(t, "8080", cfg.Port)
	})

	t.Run("missing provider key fails validation", func(t *testing.T) {
		t.Setenv("MODEL_PROVIDER", "openai")
		t.Setenv("OPENAI_API_KEY", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("unknown provider fails validation", func(t *testing.T) {
		t.Setenv("MODEL_PROVIDER", "gemini")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown MODEL_PROVIDER")
	})

	t.Run("window larger than session bound fails validation", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("MAX_MESSAGES_PER_SESSION", "4")
		t.Setenv("CONTEXT_WINDOW_SIZE", "10")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CONTEXT_WINDOW_SIZE")
	})
}
