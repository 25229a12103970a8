// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	FrontendURL string

	// Collaborator credentials. An empty GeminiAPIKey disables text
	// generation; empty GoogleCredentialsJSON disables vision and speech.
	GeminiAPIKey          string
	GeminiModel           string
	GoogleCredentialsJSON string

	// SessionDBPath selects the durable session archive. Empty keeps all
	// sessions in memory only.
	SessionDBPath string

	MaxUploadBytes int64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                  getEnv("PORT", "8000"),
		FrontendURL:           getEnv("FRONTEND_URL", ""),
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		GoogleCredentialsJSON: getEnv("GOOGLE_APPLICATION_CREDENTIALS_JSON", ""),
		SessionDBPath:         getEnv("SESSION_DB_PATH", ""),
		MaxUploadBytes:        getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.GeminiModel == "" {
		return fmt.Errorf("GEMINI_MODEL cannot be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
