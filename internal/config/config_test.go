package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLoad_MissingBaseURL(t *testing.T) {
	original := os.Getenv("BACKEND_BASE_URL")
	defer restoreEnv("BACKEND_BASE_URL", original)

	os.Unsetenv("BACKEND_BASE_URL")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "BACKEND_BASE_URL")
}

func TestLoad_WithDefaults(t *testing.T) {
	original := os.Getenv("BACKEND_BASE_URL")
	originalPoll := os.Getenv("SESSION_POLL_INTERVAL")
	defer restoreEnv("BACKEND_BASE_URL", original)
	defer restoreEnv("SESSION_POLL_INTERVAL", originalPoll)

	os.Setenv("BACKEND_BASE_URL", "https://api.example.com")
	os.Unsetenv("SESSION_POLL_INTERVAL")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "https://api.example.com", cfg.BackendBaseURL)
	assert.Equal(t, 15*time.Minute, cfg.PollInterval)
	assert.Equal(t, 2*time.Second, cfg.FlushGrace)
	assert.Equal(t, 1500*time.Millisecond, cfg.WidgetReapplyDelay)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestLoad_InvalidDuration(t *testing.T) {
	original := os.Getenv("BACKEND_BASE_URL")
	originalPoll := os.Getenv("SESSION_POLL_INTERVAL")
	defer restoreEnv("BACKEND_BASE_URL", original)
	defer restoreEnv("SESSION_POLL_INTERVAL", originalPoll)

	os.Setenv("BACKEND_BASE_URL", "https://api.example.com")
	os.Setenv("SESSION_POLL_INTERVAL", "soon")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "SESSION_POLL_INTERVAL")
}

func TestLoad_NegativeDuration(t *testing.T) {
	original := os.Getenv("BACKEND_BASE_URL")
	originalPoll := os.Getenv("SESSION_POLL_INTERVAL")
	defer restoreEnv("BACKEND_BASE_URL", original)
	defer restoreEnv("SESSION_POLL_INTERVAL", originalPoll)

	os.Setenv("BACKEND_BASE_URL", "https://api.example.com")
	os.Setenv("SESSION_POLL_INTERVAL", "-5m")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestLoad_CustomDurations(t *testing.T) {
	original := os.Getenv("BACKEND_BASE_URL")
	originalPoll := os.Getenv("SESSION_POLL_INTERVAL")
	defer restoreEnv("BACKEND_BASE_URL", original)
	defer restoreEnv("SESSION_POLL_INTERVAL", originalPoll)

	os.Setenv("BACKEND_BASE_URL", "https://api.example.com")
	os.Setenv("SESSION_POLL_INTERVAL", "5m")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.PollInterval)
}

func restoreEnv(key, value string) {
	if value != "" {
		os.Setenv(key, value)
	} else {
		os.Unsetenv(key)
	}
}
