// Package config provides configuration management for the NRFI predictor.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment
// variables, applying defaults for everything not set. Environment variable
// placeholders in the YAML file (${VAR_NAME}) are expanded, and a missing
// config file falls back to defaults plus NRFI_* environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix("NRFI")

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "nrfi-predictor")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("stats_api.base_url", "https://statsapi.mlb.com")
	v.SetDefault("stats_api.timeout_seconds", 30)
	v.SetDefault("stats_api.rate_limit", 5.0)
	v.SetDefault("stats_api.max_retries", 0)
	v.SetDefault("stats_api.circuit_breaker_max", 10)
	v.SetDefault("stats_api.cache_ttl_minutes", 60)
	v.SetDefault("stats_api.cache_max_size", 4096)
	v.SetDefault("ops.enabled", true)
	v.SetDefault("ops.port", "8080")
	v.SetDefault("scheduler.cron_expression", "0 12 * * *")

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}
