// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port      string
	Env       string // "development", "staging", "production"
	LogLevel  string
	LogFormat string // "json" or "text"

	// Database
	DatabaseURL string // PostgreSQL connection string (optional, uses in-memory if not set)

	// Tracing
	OTLPEndpoint string // OTLP gRPC collector endpoint (optional, tracing off if not set)

	// Security
	RateLimitRPS   int
	MaxBodyBytes   int64
	AllowedOrigins string // comma-separated CORS origins, "*" allows all

	// Reminders
	ReminderScanInterval time.Duration
}

const (
	DefaultPort                 = "8080"
	DefaultEnv                  = "development"
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "json"
	DefaultRateLimit            = 100
	DefaultMaxBodyBytes         = 1 << 20 // 1 MiB
	DefaultReminderScanInterval = 30 * time.Second
)

// Default returns a Config with all defaults applied and no environment
// lookups. Handy for tests.
func Default() *Config {
	return &Config{
		Port:                 DefaultPort,
		Env:                  DefaultEnv,
		LogLevel:             DefaultLogLevel,
		LogFormat:            DefaultLogFormat,
		RateLimitRPS:         DefaultRateLimit,
		MaxBodyBytes:         DefaultMaxBodyBytes,
		AllowedOrigins:       "*",
		ReminderScanInterval: DefaultReminderScanInterval,
	}
}

// Load reads configuration from environment variables
// It loads .env file if present (for local development)
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", DefaultPort),
		Env:                  getEnv("ENV", DefaultEnv),
		LogLevel:             getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:            getEnv("LOG_FORMAT", DefaultLogFormat),
		DatabaseURL:          os.Getenv("DATABASE_URL"), // Optional, uses in-memory if not set
		OTLPEndpoint:         os.Getenv("OTLP_ENDPOINT"),
		RateLimitRPS:         int(getEnvInt64("RATE_LIMIT_RPS", DefaultRateLimit)),
		MaxBodyBytes:         getEnvInt64("MAX_BODY_BYTES", DefaultMaxBodyBytes),
		AllowedOrigins:       getEnv("ALLOWED_ORIGINS", "*"),
		ReminderScanInterval: getEnvDuration("REMINDER_SCAN_INTERVAL", DefaultReminderScanInterval),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all configuration values are usable
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %d", c.RateLimitRPS)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.ReminderScanInterval < time.Second {
		return fmt.Errorf("REMINDER_SCAN_INTERVAL must be at least 1s, got %s", c.ReminderScanInterval)
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
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
