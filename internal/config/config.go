// Package config reads the application configuration from the environment.
// A .env file is honored when present; real environment variables win.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration.
type Config struct {
	Database DatabaseConfig
	Study    StudyConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds the run ledger connection settings. The ledger is
// optional: an empty URL means runs are not persisted.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// StudyConfig holds evaluation defaults a study file may override.
type StudyConfig struct {
	Workers          int
	BootstrapSamples int
	Confidence       float64
	Seed             int64
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string
}

// Load reads the configuration, first from .env if one exists, then from the
// environment.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Study: StudyConfig{
			Workers:          getEnvIntOrDefault("STUDY_WORKERS", 0),
			BootstrapSamples: getEnvIntOrDefault("BOOTSTRAP_SAMPLES", 100),
			Confidence:       getEnvFloatOrDefault("CONFIDENCE_LEVEL", 0.95),
			Seed:             int64(getEnvIntOrDefault("BOOTSTRAP_SEED", 1)),
		},
		Logging: LoggingConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Study.Confidence <= 0 || cfg.Study.Confidence >= 1 {
		return fmt.Errorf("CONFIDENCE_LEVEL must be in (0, 1), got %g", cfg.Study.Confidence)
	}
	if cfg.Study.BootstrapSamples < 0 {
		return fmt.Errorf("BOOTSTRAP_SAMPLES must be non-negative, got %d", cfg.Study.BootstrapSamples)
	}
	if cfg.Study.Workers < 0 {
		return fmt.Errorf("STUDY_WORKERS must be non-negative, got %d", cfg.Study.Workers)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
