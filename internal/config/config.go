// Package config loads client configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/zzhang736/tripmap/internal/storage"
)

// Defaults.
const (
	DefaultBaseURL = "http://localhost:8000/api/tourism"
	DefaultTimeout = 10 * time.Second
)

// Config carries everything the client needs to talk to the backend.
type Config struct {
	// BaseURL is the backend origin plus API base path.
	BaseURL string
	// Timeout bounds every outbound request; an expired in-flight request is
	// reported as a connectivity failure.
	Timeout time.Duration
	// DataDir is the durable storage directory.
	DataDir string
}

// Load reads configuration from the environment, falling back to defaults.
func Load() (Config, error) {
	cfg := Config{
		BaseURL: getEnvString("TRIPMAP_API_BASE_URL", DefaultBaseURL),
		DataDir: getEnvString("TRIPMAP_DATA_DIR", storage.DefaultDir()),
	}

	timeout, err := getEnvDuration("TRIPMAP_HTTP_TIMEOUT", DefaultTimeout)
	if err != nil {
		return cfg, fmt.Errorf("http timeout config error: %w", err)
	}
	cfg.Timeout = timeout

	if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return cfg, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}
	return cfg, nil
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, d)
	}
	return d, nil
}
