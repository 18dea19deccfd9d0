package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BackendBaseURL     string
	Environment        string
	PollInterval       time.Duration
	FlushGrace         time.Duration
	WidgetReapplyDelay time.Duration
	HTTPTimeout        time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BackendBaseURL: os.Getenv("BACKEND_BASE_URL"),
		Environment:    getEnv("ENVIRONMENT", "production"),
	}

	// Validate required fields
	if cfg.BackendBaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}

	var err error
	if cfg.PollInterval, err = getDuration("SESSION_POLL_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.FlushGrace, err = getDuration("ANALYTICS_FLUSH_GRACE", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.WidgetReapplyDelay, err = getDuration("WIDGET_REAPPLY_DELAY", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}
