package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:        "8081",
		APIBaseURL:  "http://localhost:8080",
		APITimeout:  10 * time.Second,
		SessionTTL:  30 * time.Minute,
		MaxSessions: 256,
		LogLevel:    "info",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8081" {
		t.Errorf("Port = %q, want 8081", cfg.Port)
	}
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Errorf("APIBaseURL = %q, want http://localhost:8080", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Errorf("APITimeout = %v, want 10s", cfg.APITimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RECORDBOOK_PORT", "9090")
	t.Setenv("RECORDBOOK_API_URL", "https://records.example.com")
	t.Setenv("RECORDBOOK_API_TIMEOUT", "5s")
	t.Setenv("RECORDBOOK_MAX_SESSIONS", "64")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.APIBaseURL != "https://records.example.com" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Errorf("APITimeout = %v, want 5s", cfg.APITimeout)
	}
	if cfg.MaxSessions != 64 {
		t.Errorf("MaxSessions = %d, want 64", cfg.MaxSessions)
	}
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("RECORDBOOK_API_TIMEOUT", "soon")
	t.Setenv("RECORDBOOK_MAX_SESSIONS", "plenty")

	cfg := Load()
	if cfg.APITimeout != 10*time.Second {
		t.Errorf("APITimeout = %v, want default 10s", cfg.APITimeout)
	}
	if cfg.MaxSessions != 256 {
		t.Errorf("MaxSessions = %d, want default 256", cfg.MaxSessions)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty port", func(c *Config) { c.Port = "" }, "port must not be empty"},
		{"bad port", func(c *Config) { c.Port = "http" }, "not a valid TCP port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "not a valid TCP port"},
		{"empty api url", func(c *Config) { c.APIBaseURL = "" }, "api base url must not be empty"},
		{"relative api url", func(c *Config) { c.APIBaseURL = "/api" }, "not an absolute URL"},
		{"zero timeout", func(c *Config) { c.APITimeout = 0 }, "api timeout must be positive"},
		{"zero session ttl", func(c *Config) { c.SessionTTL = 0 }, "session ttl must be positive"},
		{"zero max sessions", func(c *Config) { c.MaxSessions = 0 }, "max sessions must be at least 1"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() on zero config should fail")
	}
	for _, want := range []string{"port", "api base url", "api timeout", "session ttl", "max sessions", "log level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got %v", want, err)
		}
	}
}
