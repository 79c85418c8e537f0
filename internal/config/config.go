package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the service
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	App       AppConfig
	Dashboard DashboardConfig
	Sweep     SweepConfig
	Contacts  ContactsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	Enabled bool
	URL     string
}

// AppConfig holds application configuration
type AppConfig struct {
	Environment string
	LogLevel    string
}

// DashboardConfig tunes the dashboard summary endpoint
type DashboardConfig struct {
	CacheTTLSeconds int // Summary cache TTL (default: 30)
	RecentLimit     int // Rows in each recent-activity list (default: 5)
	ExpiryWindow    int // Days ahead to surface expiring agreements (default: 30)
}

// SweepConfig tunes the agreement expiry sweep job
type SweepConfig struct {
	Schedule string // Cron expression (default: daily at 00:05)
}

// ContactsConfig holds the external contact-directory client configuration
type ContactsConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// New creates a new configuration instance
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host: getEnvWithDefault("SERVER_HOST", "0.0.0.0"),
			Port: getEnvWithDefault("SERVER_PORT", "8095"),
		},
		Database: DatabaseConfig{
			Host:     getEnvWithDefault("DB_HOST", "localhost"),
			Port:     getEnvWithDefault("DB_PORT", "5432"),
			User:     getEnvWithDefault("DB_USER", "postgres"),
			Password: getEnvWithDefault("DB_PASSWORD", "postgres"),
			Name:     getEnvWithDefault("DB_NAME", "estate_db"),
			SSLMode:  getEnvWithDefault("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBoolWithDefault("REDIS_ENABLED", false),
			Host:     getEnvWithDefault("REDIS_HOST", "localhost"),
			Port:     getEnvWithDefault("REDIS_PORT", "6379"),
			Password: getEnvWithDefault("REDIS_PASSWORD", ""),
			DB:       getEnvAsIntWithDefault("REDIS_DB", 0),
		},
		NATS: NATSConfig{
			Enabled: getEnvAsBoolWithDefault("NATS_ENABLED", false),
			URL:     getEnvWithDefault("NATS_URL", "nats://localhost:4222"),
		},
		App: AppConfig{
			Environment: getEnvWithDefault("APP_ENV", "development"),
			LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		},
		Dashboard: DashboardConfig{
			CacheTTLSeconds: getEnvAsIntWithDefault("DASHBOARD_CACHE_TTL_SECONDS", 30),
			RecentLimit:     getEnvAsIntWithDefault("DASHBOARD_RECENT_LIMIT", 5),
			ExpiryWindow:    getEnvAsIntWithDefault("DASHBOARD_EXPIRY_WINDOW_DAYS", 30),
		},
		Sweep: SweepConfig{
			Schedule: getEnvWithDefault("AGREEMENT_SWEEP_SCHEDULE", "5 0 * * *"),
		},
		Contacts: ContactsConfig{
			BaseURL:        getEnvWithDefault("CONTACTS_SERVICE_URL", ""),
			TimeoutSeconds: getEnvAsIntWithDefault("CONTACTS_TIMEOUT_SECONDS", 5),
		},
	}
}

// getEnvWithDefault gets environment variable with a default fallback
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault gets environment variable as integer with default fallback
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBoolWithDefault gets environment variable as boolean with default fallback
func getEnvAsBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
