package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:3001" {
		t.Errorf("Expected default base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.API.WSURL != "ws://localhost:3001/ws" {
		t.Errorf("Expected default ws URL, got %s", cfg.API.WSURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("Expected 10s timeout, got %s", cfg.API.Timeout)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.BaseDelay != time.Second {
		t.Errorf("Unexpected retry defaults: %+v", cfg.Retry)
	}
	if cfg.Stream.Reconnect {
		t.Errorf("Expected reconnect disabled by default")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("STREAM_RECONNECT", "true")
	t.Setenv("DATABASE_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BaseURL != "https://api.example.com" {
		t.Errorf("Expected overridden base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("Expected 3s timeout, got %s", cfg.API.Timeout)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("Expected 5 attempts, got %d", cfg.Retry.MaxAttempts)
	}
	if !cfg.Stream.Reconnect {
		t.Errorf("Expected reconnect enabled")
	}
	if cfg.Database.Path != "" {
		t.Errorf("Expected empty DATABASE_PATH to disable the journal, got %q", cfg.Database.Path)
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")
	t.Setenv("RETRY_MAX_ATTEMPTS", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("Expected fallback timeout, got %s", cfg.API.Timeout)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("Expected fallback attempts, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad base scheme", func(c *Config) { c.API.BaseURL = "ftp://host" }, "API_BASE_URL"},
		{"missing ws host", func(c *Config) { c.API.WSURL = "ws://" }, "API_WS_URL"},
		{"zero attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, "RETRY_MAX_ATTEMPTS"},
		{"log level", func(c *Config) { c.LogLevel = "trace" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				API:      APIConfig{BaseURL: "http://localhost:3001", WSURL: "ws://localhost:3001/ws", Timeout: time.Second},
				Retry:    RetryConfig{MaxAttempts: 3, BaseDelay: time.Second},
				Stream:   StreamConfig{ReadTimeout: time.Second},
				LogLevel: "info",
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
