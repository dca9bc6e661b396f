// Package config provides configuration management for the Court Edge application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Sources   SourcesConfig   `mapstructure:"sources" validate:"required"`
	Linkage   LinkageConfig   `mapstructure:"linkage" validate:"required"`
	Detection DetectionConfig `mapstructure:"detection" validate:"required"`
	Telegram  TelegramConfig  `mapstructure:"telegram" validate:"required"`
	Schedule  ScheduleConfig  `mapstructure:"schedule" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Health    HealthConfig    `mapstructure:"health"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password" validate:"required"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// SourcesConfig represents the external data provider configuration
type SourcesConfig struct {
	TennisAPI APIProviderConfig `mapstructure:"tennis_api" validate:"required"`
	OddsAPI   APIProviderConfig `mapstructure:"odds_api" validate:"required"`
	// QuoteCacheTTLSeconds bounds how long odds quotes are reused within a run
	QuoteCacheTTLSeconds int `mapstructure:"quote_cache_ttl_seconds" validate:"required,gt=0"`
}

// APIProviderConfig represents a single upstream HTTP API
type APIProviderConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"required,url"`
	APIKey         string  `mapstructure:"api_key" validate:"required"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
}

// LinkageConfig represents record-linkage tuning. Both the threshold and the
// name mode are deliberately configuration: false matches and false misses
// are bounded by tuning, not eliminated.
type LinkageConfig struct {
	NameMode            string  `mapstructure:"name_mode" validate:"required,oneof=compact literal"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" validate:"required,gt=0,lt=1"`
}

// DetectionConfig represents value-detection tuning
type DetectionConfig struct {
	EdgeThreshold float64 `mapstructure:"edge_threshold" validate:"required,gt=0,lt=1"`
	EdgeMode      string  `mapstructure:"edge_mode" validate:"required,oneof=probability expected_value"`
}

// TelegramConfig represents the notification channel configuration
type TelegramConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	BotToken        string `mapstructure:"bot_token"`
	ChatID          string `mapstructure:"chat_id"`
	CooldownMinutes int    `mapstructure:"cooldown_minutes" validate:"gte=0"`
}

// ScheduleConfig represents the daily batch schedule (cron, UTC)
type ScheduleConfig struct {
	DetectionCron  string `mapstructure:"detection_cron" validate:"required"`
	SettlementCron string `mapstructure:"settlement_cron" validate:"required"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// HealthConfig represents the health check server configuration
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
