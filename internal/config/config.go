// Package config reads the client configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrNoAPIURL = errors.New("API_URL is not set")

type Config struct {
	// APIURL is the base URL of the cash flow backend, without the
	// /api/v1 suffix.
	APIURL string

	// APIToken is the bearer token obtained from the auth provider.
	APIToken string

	Timeout time.Duration

	// LogFormat is "human" or "json".
	LogFormat string
	LogLevel  string
}

// Load reads the configuration. A .env file in the working directory is
// optional; real environment variables take precedence over it.
func Load() (Config, error) {
	_ = godotenv.Load()

	timeout, err := strconv.Atoi(getEnv("API_TIMEOUT_SECONDS", "30"))
	if err != nil || timeout <= 0 {
		timeout = 30
	}

	config := Config{
		APIURL:    getEnv("API_URL", ""),
		APIToken:  getEnv("API_TOKEN", ""),
		Timeout:   time.Duration(timeout) * time.Second,
		LogFormat: getEnv("LOG_FORMAT", "human"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	if config.APIURL == "" {
		return Config{}, ErrNoAPIURL
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
