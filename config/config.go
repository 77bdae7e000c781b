// Package config provides configuration for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Usage tracking database
	DatabaseURL string

	// LLM backend settings. An empty LLMBaseURL selects the built-in mock
	// generator, which keeps the service runnable without credentials.
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// Generated project output
	OutputDir string

	// Optional rego policy file for tool dispatch
	PolicyFile string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8000),
		DatabaseURL: getEnv("DATABASE_URL", "file:usage_tracking.db?cache=shared&mode=rwc"),
		LLMBaseURL:  getEnv("LLM_BASE_URL", ""),
		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMModel:    getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeout:  time.Duration(getEnvInt("LLM_TIMEOUT_MS", 300000)) * time.Millisecond,
		OutputDir:   getEnv("OUTPUT_DIR", "generated_projects"),
		PolicyFile:  getEnv("POLICY_FILE", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
