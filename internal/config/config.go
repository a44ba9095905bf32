package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API      APIConfig
	Auth     AuthConfig
	Retry    RetryConfig
	Stream   StreamConfig
	Database DatabaseConfig
	Metrics  MetricsConfig
	LogLevel string
}

type APIConfig struct {
	BaseURL   string
	WSURL     string
	Timeout   time.Duration
	UserAgent string
}

type AuthConfig struct {
	Email    string
	Password string
	Token    string
}

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

type StreamConfig struct {
	Duration      time.Duration
	Reconnect     bool
	PingInterval  time.Duration
	ReadTimeout   time.Duration
	WatchlistFile string
}

// DatabaseConfig holds the local journal settings. An empty Path disables the journal.
type DatabaseConfig struct {
	Path string
}

type MetricsConfig struct {
	Addr string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment take precedence over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env file: %v", err)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:   getEnvString("API_BASE_URL", "http://localhost:3001"),
			WSURL:     getEnvString("API_WS_URL", "ws://localhost:3001/ws"),
			Timeout:   getEnvDuration("API_TIMEOUT", 10*time.Second),
			UserAgent: getEnvString("API_USER_AGENT", "MemeCoinAnalyzer-Go-Client/1.0"),
		},
		Auth: AuthConfig{
			Email:    getEnvString("API_EMAIL", "user@example.com"),
			Password: getEnvString("API_PASSWORD", "password123"),
			Token:    os.Getenv("API_TOKEN"),
		},
		Retry: RetryConfig{
			MaxAttempts: getEnvInt("RETRY_MAX_ATTEMPTS", 3),
			BaseDelay:   getEnvDuration("RETRY_BASE_DELAY", time.Second),
		},
		Stream: StreamConfig{
			Duration:      getEnvDuration("STREAM_DURATION", 30*time.Second),
			Reconnect:     getEnvBool("STREAM_RECONNECT", false),
			PingInterval:  getEnvDuration("STREAM_PING_INTERVAL", 30*time.Second),
			ReadTimeout:   getEnvDuration("STREAM_READ_TIMEOUT", 60*time.Second),
			WatchlistFile: getEnvString("WATCHLIST_FILE", "watchlist.yaml"),
		},
		Database: DatabaseConfig{
			Path: getEnvOptional("DATABASE_PATH", "memecoin.db"),
		},
		Metrics: MetricsConfig{
			Addr: os.Getenv("METRICS_ADDR"),
		},
		LogLevel: getEnvString("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted at use time.
func (c *Config) Validate() error {
	if err := validateURL(c.API.BaseURL, "http", "https"); err != nil {
		return fmt.Errorf("API_BASE_URL: %w", err)
	}
	if err := validateURL(c.API.WSURL, "ws", "wss"); err != nil {
		return fmt.Errorf("API_WS_URL: %w", err)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.BaseDelay < 0 {
		return fmt.Errorf("RETRY_BASE_DELAY cannot be negative, got %s", c.Retry.BaseDelay)
	}
	if c.Stream.ReadTimeout <= 0 {
		return fmt.Errorf("STREAM_READ_TIMEOUT must be positive, got %s", c.Stream.ReadTimeout)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}

func validateURL(raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return nil
		}
	}
	return fmt.Errorf("unsupported scheme %q in %q", u.Scheme, raw)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOptional distinguishes an unset variable from one explicitly set to empty.
func getEnvOptional(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
