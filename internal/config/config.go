// Package config provides configuration management for the NRFI predictor.
package config

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	StatsAPI  StatsAPIConfig  `mapstructure:"stats_api" validate:"required"`
	Ops       OpsConfig       `mapstructure:"ops"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// StatsAPIConfig represents MLB Stats API client configuration
type StatsAPIConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RateLimit         float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`
	CacheTTLMinutes   int     `mapstructure:"cache_ttl_minutes" validate:"required,gt=0"`
	CacheMaxSize      int     `mapstructure:"cache_max_size" validate:"required,gt=0"`
}

// OpsConfig represents the operational HTTP server configuration (health and
// metrics endpoints, watch mode only)
type OpsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}

// SchedulerConfig represents watch-mode scheduling configuration
type SchedulerConfig struct {
	CronExpression string `mapstructure:"cron_expression" validate:"required"`
}
