package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the chatbot service.
type Config struct {
	// Provider credentials.
	OpenAIAPIKey    string
	AnthropicAPIKey string
	TavilyAPIKey    string

	// ModelProvider selects the completion backend: "openai" or "anthropic".
	ModelProvider string

	// Redis connection. An empty address selects the in-memory store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Session memory tuning.
	SessionTTL            time.Duration
	MaxMessagesPerSession int
	ContextWindowSize     int

	// Turn processing.
	MaxSearchResults int
	CallTimeout      time.Duration

	// HTTP server.
	Port string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:       os.Getenv("ANTHROPIC_API_KEY"),
		TavilyAPIKey:          os.Getenv("TAVILY_API_KEY"),
		ModelProvider:         getEnv("MODEL_PROVIDER", "openai"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		SessionTTL:            getEnvDuration("SESSION_TTL_SECONDS", 3600),
		MaxMessagesPerSession: getEnvInt("MAX_MESSAGES_PER_SESSION", 20),
		ContextWindowSize:     getEnvInt("CONTEXT_WINDOW_SIZE", 10),
		MaxSearchResults:      getEnvInt("MAX_SEARCH_RESULTS", 5),
		CallTimeout:           getEnvDuration("CALL_TIMEOUT_SECONDS", 30),
		Port:                  getEnv("PORT", "3000"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings that would otherwise fail at first use.
func (c *Config) Validate() error {
	switch c.ModelProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when MODEL_PROVIDER is openai")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when MODEL_PROVIDER is anthropic")
		}
	default:
		return fmt.Errorf("unknown MODEL_PROVIDER %q", c.ModelProvider)
	}

	if c.MaxMessagesPerSession <= 0 {
		return fmt.Errorf("MAX_MESSAGES_PER_SESSION must be positive")
	}
	if c.ContextWindowSize <= 0 {
		return fmt.Errorf("CONTEXT_WINDOW_SIZE must be positive")
	}
	if c.ContextWindowSize > c.MaxMessagesPerSession {
		return fmt.Errorf("CONTEXT_WINDOW_SIZE must not exceed MAX_MESSAGES_PER_SESSION")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallbackSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, fallbackSeconds)) * time.Second
}
