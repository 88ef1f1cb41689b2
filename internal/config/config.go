package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Delete cascade policies
const (
	CascadeNone     = "none"
	CascadeRedirect = "redirect"
	CascadeAll      = "all"
)

type Config struct {
	Port            string
	Environment     string // development, production, testing
	LogLevel        string
	BaseURL         string // Public base URL of this service
	RedirectBaseURL string // Encoded into redirect-mode QR codes as <RedirectBaseURL>?id=<id>
	StorageBackend  string
	SQLitePath      string
	DatabaseURL     string
	RedisURL        string
	ShortenerURL    string // TinyURL-compatible api-create endpoint
	DeleteCascade   string

	RateLimitRPS           float64 // Rate limit for API endpoints (requests per second)
	RateLimitBurst         int     // Burst size for API endpoints
	RateLimitRedirectRPS   float64 // Rate limit for the redirect resolver
	RateLimitRedirectBurst int     // Burst size for the redirect resolver
}

func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		BaseURL:         getEnv("BASE_URL", ""),
		RedirectBaseURL: getEnv("REDIRECT_BASE_URL", ""),
		StorageBackend:  getEnv("STORAGE_BACKEND", BackendSQLite),
		SQLitePath:      getEnv("SQLITE_PATH", "./data/qrstudio.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		ShortenerURL:    getEnv("SHORTENER_URL", "https://tinyurl.com/api-create.php"),
		DeleteCascade:   getEnv("DELETE_CASCADE", CascadeNone),

		RateLimitRPS:           getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:         getEnvInt("RATE_LIMIT_BURST", 40),
		RateLimitRedirectRPS:   getEnvFloat("RATE_LIMIT_REDIRECT_RPS", 30),
		RateLimitRedirectBurst: getEnvInt("RATE_LIMIT_REDIRECT_BURST", 60),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.RedirectBaseURL == "" {
		cfg.RedirectBaseURL = cfg.BaseURL + "/redirect"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port: %s (must be 1-65535)", c.Port)
	}

	switch c.Environment {
	case "development", "production", "testing":
	default:
		return fmt.Errorf("invalid environment: %s (must be development, production, or testing)", c.Environment)
	}

	switch c.StorageBackend {
	case BackendMemory, BackendRedis:
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("invalid storage backend: %s", c.StorageBackend)
	}

	switch c.DeleteCascade {
	case CascadeNone, CascadeRedirect, CascadeAll:
	default:
		return fmt.Errorf("invalid delete cascade policy: %s (must be none, redirect, or all)", c.DeleteCascade)
	}

	if c.RedirectBaseURL == "" {
		return fmt.Errorf("redirect base URL cannot be empty")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	if c.RateLimitRedirectRPS <= 0 || c.RateLimitRedirectBurst <= 0 {
		return fmt.Errorf("redirect rate limit must be positive")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
