// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath     string
	LogLevel         string
	Port             int
	DevMode          bool
	RiskFreeRate     float64 // Annual risk-free rate used by the Sharpe ratio (decimal)
	FetchWorkers     int     // Max concurrent market data fetches
	CatalogTTLHours  int     // ETF catalog cache lifetime
	SnapshotSchedule string  // Cron spec (with seconds) for the daily portfolio snapshot
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvAsInt("PORT", 8000),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		DatabasePath:     getEnv("DATABASE_PATH", "./data/etfolio.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		RiskFreeRate:     getEnvAsFloat("RISK_FREE_RATE", 0.02),
		FetchWorkers:     getEnvAsInt("FETCH_WORKERS", 10),
		CatalogTTLHours:  getEnvAsInt("CATALOG_TTL_HOURS", 24),
		SnapshotSchedule: getEnv("SNAPSHOT_SCHEDULE", "0 0 18 * * *"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.RiskFreeRate < 0 {
		return fmt.Errorf("RISK_FREE_RATE must not be negative, got %g", c.RiskFreeRate)
	}
	if c.FetchWorkers <= 0 {
		return fmt.Errorf("FETCH_WORKERS must be positive, got %d", c.FetchWorkers)
	}
	if c.CatalogTTLHours <= 0 {
		return fmt.Errorf("CATALOG_TTL_HOURS must be positive, got %d", c.CatalogTTLHours)
	}
	if c.SnapshotSchedule == "" {
		return fmt.Errorf("SNAPSHOT_SCHEDULE is required")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
