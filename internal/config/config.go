package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Shop     ShopConfig
	Catalog  CatalogConfig
	S3       S3Config
	Mail     MailConfig
	Client   ClientConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host          string
	Port          int
	AllowedOrigin string
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
	AutoMigrate     bool
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// ShopConfig identifies the single shop served by this deployment.
type ShopConfig struct {
	ID   string
	Name string
}

// CatalogConfig points at the local menu document.
type CatalogConfig struct {
	Path string
}

// S3Config holds AWS S3 configuration for the menu document.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "catalog/")
}

// MailConfig holds order confirmation mail settings.
type MailConfig struct {
	Enabled        bool
	SendGridAPIKey string
	From           string
}

// ClientConfig holds settings for the order submission client.
type ClientConfig struct {
	BaseURL string
	Timeout int // seconds
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:          getEnv("SERVER_HOST", "0.0.0.0"),
			Port:          getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "bistrokart"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Shop: ShopConfig{
			ID:   getEnv("SHOP_ID", "s001"),
			Name: getEnv("SHOP_NAME", "Bistro Parisien"),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", "data/menu.json"),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "eu-west-3"),
			Prefix:  getEnv("S3_PREFIX", "catalog/"),
		},
		Mail: MailConfig{
			Enabled:        getEnvAsBool("MAIL_ENABLED", false),
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			From:           getEnv("MAIL_FROM", ""),
		},
		Client: ClientConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8080/api"),
			Timeout: getEnvAsInt("API_TIMEOUT", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Shop.ID == "" || c.Shop.Name == "" {
		return fmt.Errorf("shop id and name are required")
	}

	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Mail.Enabled {
		if c.Mail.SendGridAPIKey == "" {
			return fmt.Errorf("SendGrid API key is required when mail is enabled")
		}
		if c.Mail.From == "" {
			return fmt.Errorf("mail sender is required when mail is enabled")
		}
	}

	if _, err := url.ParseRequestURI(c.Client.BaseURL); err != nil {
		return fmt.Errorf("invalid API base URL: %s", c.Client.BaseURL)
	}

	if c.Client.Timeout < 1 {
		return fmt.Errorf("API timeout must be at least 1 second")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// MigrationURL returns the connection string in the form expected by the
// pgx/v5 migration driver.
func (c *DatabaseConfig) MigrationURL() string {
	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RequestTimeout returns the client timeout as a duration.
func (c *ClientConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
