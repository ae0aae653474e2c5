package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"account-service/app/domain"
)

// Config holds all configuration for the account service. Environment
// variables win over the optional YAML file named by CONFIG_FILE.
type Config struct {
	// Server
	Port     string `yaml:"port"`
	Host     string `yaml:"host"`
	LogLevel string `yaml:"log_level"`

	// Database
	DatabaseURL string `yaml:"database_url"`

	// Kratos
	KratosPublicURL string `yaml:"kratos_public_url"`
	KratosAdminURL  string `yaml:"kratos_admin_url"`

	// Email normalization workaround for the provider's address validator
	DefaultEmailDomain string `yaml:"default_email_domain"`

	// Remote privileged deletion procedure; empty enables the client-side
	// fallback
	AccountDeleterURL    string `yaml:"account_deleter_url"`
	AccountDeleterAPIKey string `yaml:"account_deleter_api_key"`

	// Rate limiting
	RateLimitPerSecond float64 `yaml:"rate_limit_per_second"`
	RateLimitBurst     int     `yaml:"rate_limit_burst"`

	// CORS; empty means the local development frontend
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads configuration from the optional YAML file and the environment.
func Load() (*Config, error) {
	config := &Config{
		Port:               "9600",
		Host:               "0.0.0.0",
		LogLevel:           "info",
		DefaultEmailDomain: domain.DefaultEmailDomain,
		RateLimitPerSecond: 20,
		RateLimitBurst:     40,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func applyEnv(config *Config) {
	setFromEnv(&config.Port, "PORT")
	setFromEnv(&config.Host, "HOST")
	setFromEnv(&config.LogLevel, "LOG_LEVEL")
	setFromEnv(&config.DatabaseURL, "DATABASE_URL")
	setFromEnv(&config.KratosPublicURL, "KRATOS_PUBLIC_URL")
	setFromEnv(&config.KratosAdminURL, "KRATOS_ADMIN_URL")
	setFromEnv(&config.DefaultEmailDomain, "AUTH_DEFAULT_EMAIL_DOMAIN")
	setFromEnv(&config.AccountDeleterURL, "ACCOUNT_DELETER_URL")
	setFromEnv(&config.AccountDeleterAPIKey, "ACCOUNT_DELETER_API_KEY")

	if value := os.Getenv("RATE_LIMIT_PER_SECOND"); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			config.RateLimitPerSecond = parsed
		}
	}
	if value := os.Getenv("RATE_LIMIT_BURST"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			config.RateLimitBurst = parsed
		}
	}

	if value := os.Getenv("CORS_ALLOWED_ORIGINS"); value != "" {
		origins := strings.Split(value, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		config.AllowedOrigins = origins
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.KratosPublicURL == "" {
		return fmt.Errorf("KRATOS_PUBLIC_URL is required")
	}
	if c.KratosAdminURL == "" {
		return fmt.Errorf("KRATOS_ADMIN_URL is required")
	}

	if c.RateLimitPerSecond <= 0 {
		return fmt.Errorf("rate limit must be positive, got: %v", c.RateLimitPerSecond)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1, got: %d", c.RateLimitBurst)
	}

	return nil
}

func setFromEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
