// Package config loads SDK configuration from a .env file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/amaas/amaas-core-sdk-go/internal/logger"
	"github.com/amaas/amaas-core-sdk-go/internal/validator"
)

// Config holds SDK configuration
type Config struct {
	// Environment name; "production" switches the logger to JSON output.
	Env string `validate:"required"`

	// AMaaS API
	APIURL     string `validate:"required,url"`
	APIVersion string `validate:"required,api_version"`
	Token      string

	// Transport
	RequestTimeout time.Duration `validate:"gt=0"`
	RateLimit      float64       `validate:"gte=0"` // requests per second, 0 = unlimited
}

// BaseURL returns the API root including the version segment, without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.APIURL, "/") + "/" + c.APIVersion
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if present; the environment always wins.
	if err := godotenv.Load(); err != nil {
		logger.Get().Debugw("no .env file loaded", "error", err)
	}

	cfg := &Config{
		Env:        getEnv("ENV", "development"),
		APIURL:     os.Getenv("AMAAS_API_URL"),
		APIVersion: getEnv("AMAAS_API_VERSION", "v1.0"),
		Token:      os.Getenv("AMAAS_TOKEN"),
	}

	timeoutStr := getEnv("AMAAS_REQUEST_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AMAAS_REQUEST_TIMEOUT %q: %w", timeoutStr, err)
	}
	cfg.RequestTimeout = timeout

	rateStr := getEnv("AMAAS_RATE_LIMIT", "0")
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AMAAS_RATE_LIMIT %q: %w", rateStr, err)
	}
	cfg.RateLimit = rate

	if err := validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
