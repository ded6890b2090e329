package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kharcha/internal/store"
)

type Config struct {
	// Remote store
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Session
	SessionFile string

	// Screens
	BannerTTL time.Duration

	// Backend selection
	DataBackend  string
	SQLiteDBPath string
}

func Load() *Config {
	return &Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:5000/api"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),

		BannerTTL: getEnvDuration("BANNER_TTL", 3*time.Second),

		DataBackend:  getEnv("DATA_BACKEND", "rest"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/kharcha.db"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	backend, err := store.ParseBackendType(c.DataBackend)
	if err != nil {
		errors = append(errors, err.Error())
	}

	if backend == store.RESTBackend {
		if u, err := url.Parse(c.APIBaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid API base URL %q: %v", c.APIBaseURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid API base URL scheme %q: must be http or https", u.Scheme))
		}
	}

	if backend == store.SQLiteBackend {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory %q: %v", dir, err))
					}
				}
			}
		}
	}

	if c.SessionFile == "" {
		errors = append(errors, "session file path cannot be empty")
	}

	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at most 1 minute", c.HTTPTimeout))
	}

	if c.BannerTTL < 500*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid banner TTL %v: must be at least 500ms", c.BannerTTL))
	} else if c.BannerTTL > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid banner TTL %v: must be at most 1 minute", c.BannerTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.kharcha/session.json"
	}
	return filepath.Join(home, ".kharcha", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
