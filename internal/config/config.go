// Package config provides configuration loading and validation for the
// analytics batch job.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrMissingBaseURL   = errors.New("api base URL is required")
	ErrInvalidRetries   = errors.New("api max retries must be >= 1")
	ErrInvalidPageSize  = errors.New("api page size must be positive")
	ErrInvalidMaxPages  = errors.New("api max pages must be positive")
	ErrMissingRecipient = errors.New("email recipient is required when email is enabled")
)

// Default configuration values.
const (
	defaultBaseURL    = "https://jsonplaceholder.typicode.com"
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultPageSize   = 100
	defaultMaxPages   = 10
	defaultOutputDir  = "output"
	defaultCacheTTL   = time.Hour
	defaultRedisAddr  = "localhost:6379"
)

// Config holds all configuration for the analytics job.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Output  OutputConfig  `mapstructure:"output"`
	Email   EmailConfig   `mapstructure:"email"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds source API client configuration.
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	PageSize   int           `mapstructure:"page_size"`
	MaxPages   int           `mapstructure:"max_pages"`
}

// OutputConfig holds artifact output configuration.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// EmailConfig holds notification configuration.
type EmailConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Recipient string `mapstructure:"recipient"`
}

// CacheConfig holds the optional Redis page cache configuration.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Load reads configuration from file and environment variables.
// Environment variables use the ANALYTICS_ prefix with underscores for
// nesting, e.g. ANALYTICS_API_BASE_URL.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("config")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/user-analytics")
	}

	viperCfg.SetEnvPrefix("ANALYTICS")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validate(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("api.base_url", defaultBaseURL)
	viperCfg.SetDefault("api.timeout", defaultTimeout)
	viperCfg.SetDefault("api.max_retries", defaultMaxRetries)
	viperCfg.SetDefault("api.page_size", defaultPageSize)
	viperCfg.SetDefault("api.max_pages", defaultMaxPages)

	viperCfg.SetDefault("output.dir", defaultOutputDir)

	viperCfg.SetDefault("email.enabled", false)
	viperCfg.SetDefault("email.recipient", "")

	viperCfg.SetDefault("cache.enabled", false)
	viperCfg.SetDefault("cache.redis_addr", defaultRedisAddr)
	viperCfg.SetDefault("cache.ttl", defaultCacheTTL)

	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.pretty", false)
}

// validate checks the loaded configuration for consistency.
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if cfg.API.MaxRetries < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidRetries, cfg.API.MaxRetries)
	}
	if cfg.API.PageSize < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidPageSize, cfg.API.PageSize)
	}
	if cfg.API.MaxPages < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidMaxPages, cfg.API.MaxPages)
	}
	if cfg.Email.Enabled && cfg.Email.Recipient == "" {
		return ErrMissingRecipient
	}
	return nil
}
