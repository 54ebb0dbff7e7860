// Package config reads engine configuration from environment variables.
package config

import (
	"os"
	"strconv"

	"shopfeed/internal/reprocess"
)

// Config carries everything the CLI needs to wire the engine.
type Config struct {
	// ConnectionString is the PostgreSQL DSN.
	ConnectionString string
	// LogLevel is a zap level name ("debug", "info", "warn", "error").
	LogLevel string
	// Reprocess bounds the propagation machinery.
	Reprocess reprocess.Config
}

// Load reads the configuration, filling defaults for anything unset.
func Load() Config {
	return Config{
		ConnectionString: getEnv("DB_CONN_STRING", "postgres://localhost:5432/shopfeed?sslmode=disable"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Reprocess: reprocess.Config{
			BatchSize:        getEnvInt("PROPAGATE_BATCH_SIZE", 100),
			BatchConcurrency: getEnvInt("PROPAGATE_CONCURRENCY", 8),
			ReprocessPerSec:  getEnvFloat("REPROCESS_RATE_PER_SEC", 50),
		},
	}
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

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
