package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validConfigPath       = "testdata/valid_config.yaml"
	nonexistentConfigPath = "testdata/nonexistent_config.yaml"
)

// TestLoadConfigFile tests loading a valid configuration file
func TestLoadConfigFile(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "nrfi-predictor", cfg.App.Name)
	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, 15, cfg.StatsAPI.TimeoutSeconds)
	assert.Equal(t, 2.5, cfg.StatsAPI.RateLimit)
	assert.Equal(t, 5, cfg.StatsAPI.CircuitBreakerMax)
	assert.Equal(t, "9090", cfg.Ops.Port)
	assert.Equal(t, "30 11 * * *", cfg.Scheduler.CronExpression)
}

// TestLoadMissingFileFallsBackToDefaults tests that a missing config file is
// not an error; defaults and environment variables apply
func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(nonexistentConfigPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://statsapi.mlb.com", cfg.StatsAPI.BaseURL)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 60, cfg.StatsAPI.CacheTTLMinutes)
	assert.Equal(t, 0, cfg.StatsAPI.MaxRetries)
}

// TestLoadEnvironmentOverride tests NRFI_* environment variable binding
func TestLoadEnvironmentOverride(t *testing.T) {
	os.Setenv("NRFI_APP_LOG_LEVEL", "debug")
	defer os.Unsetenv("NRFI_APP_LOG_LEVEL")

	cfg, err := Load(nonexistentConfigPath)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
}

// TestValidateAcceptsDefaults tests the default configuration validates
func TestValidateAcceptsDefaults(t *testing.T) {
	cfg, err := Load(nonexistentConfigPath)
	require.NoError(t, err)

	assert.NoError(t, Validate(cfg))
}

// TestValidateRejectsBadLogLevel tests the custom loglevel rule
func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg, err := Load(nonexistentConfigPath)
	require.NoError(t, err)

	cfg.App.LogLevel = "verbose"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loglevel")
}

// TestValidateRejectsBadEnvironment tests the custom environment rule
func TestValidateRejectsBadEnvironment(t *testing.T) {
	cfg, err := Load(nonexistentConfigPath)
	require.NoError(t, err)

	cfg.App.Environment = "qa"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment")
}

// TestValidateRejectsBadBaseURL tests URL validation on the stats API config
func TestValidateRejectsBadBaseURL(t *testing.T) {
	cfg, err := Load(nonexistentConfigPath)
	require.NoError(t, err)

	cfg.StatsAPI.BaseURL = "not a url"
	assert.Error(t, Validate(cfg))
}
