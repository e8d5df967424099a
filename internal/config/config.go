package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything the web front-end needs at startup. All values
// come from the environment so the binary can run unchanged across
// deployments.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// APIBaseURL is the root of the record-keeping backend, e.g.
	// http://localhost:8080. All /api/... paths are resolved against it.
	APIBaseURL string

	// APITimeout bounds every backend call.
	APITimeout time.Duration

	// SessionTTL is how long an idle sales-entry session survives before
	// its draft is discarded.
	SessionTTL time.Duration

	// MaxSessions caps concurrent sales-entry sessions held in memory.
	MaxSessions int

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() Config {
	return Config{
		Port:        getEnv("RECORDBOOK_PORT", "8081"),
		APIBaseURL:  getEnv("RECORDBOOK_API_URL", "http://localhost:8080"),
		APITimeout:  getEnvDuration("RECORDBOOK_API_TIMEOUT", 10*time.Second),
		SessionTTL:  getEnvDuration("RECORDBOOK_SESSION_TTL", 30*time.Minute),
		MaxSessions: getEnvInt("RECORDBOOK_MAX_SESSIONS", 256),
		LogLevel:    getEnv("RECORDBOOK_LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and reports every problem at once so a
// bad deployment fails with the full list instead of one error per restart.
func (c Config) Validate() error {
	var errs []string

	if c.Port == "" {
		errs = append(errs, "port must not be empty")
	} else if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		errs = append(errs, fmt.Sprintf("port %q is not a valid TCP port", c.Port))
	}

	if c.APIBaseURL == "" {
		errs = append(errs, "api base url must not be empty")
	} else if u, err := url.Parse(c.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("api base url %q is not an absolute URL", c.APIBaseURL))
	}

	if c.APITimeout <= 0 {
		errs = append(errs, "api timeout must be positive")
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, "session ttl must be positive")
	}
	if c.MaxSessions < 1 {
		errs = append(errs, "max sessions must be at least 1")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log level %q is not one of debug, info, warn, error", c.LogLevel))
	}

	if len(errs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errs, "; "))
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
