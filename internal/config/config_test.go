package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:             8000,
		DatabasePath:     "./data/test.db",
		LogLevel:         "info",
		RiskFreeRate:     0.02,
		FetchWorkers:     10,
		CatalogTTLHours:  24,
		SnapshotSchedule: "0 0 18 * * *",
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateAcceptsZeroRiskFreeRate(t *testing.T) {
	cfg := validConfig()
	cfg.RiskFreeRate = 0

	assert.NoError(t, cfg.Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty database path", func(c *Config) { c.DatabasePath = "" }},
		{"negative risk-free rate", func(c *Config) { c.RiskFreeRate = -0.01 }},
		{"zero fetch workers", func(c *Config) { c.FetchWorkers = 0 }},
		{"zero catalog ttl", func(c *Config) { c.CatalogTTLHours = 0 }},
		{"empty snapshot schedule", func(c *Config) { c.SnapshotSchedule = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("RISK_FREE_RATE", "0")
	t.Setenv("FETCH_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Zero(t, cfg.RiskFreeRate)
	assert.Equal(t, 4, cfg.FetchWorkers)
}
