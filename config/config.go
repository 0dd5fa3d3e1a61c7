package config

import (
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Database     *DatabaseConfig
	ProfilePath  string
	DebugEnabled bool
}

// DatabaseConfig holds the connection settings of the local store
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// LoadConfig loads configuration from environment variables
// .env file is automatically loaded via autoload import
func LoadConfig() *Config {
	return &Config{
		Database: &DatabaseConfig{
			Driver: getEnvWithDefault("GRAPHSYNC_DB_DRIVER", "sqlite3"),
			DSN:    getEnvWithDefault("GRAPHSYNC_DB_DSN", "graphsync.db"),
		},
		ProfilePath:  getEnvWithDefault("GRAPHSYNC_PROFILE", ""),
		DebugEnabled: getBoolEnvWithDefault("DEBUG", false),
	}
}

// getEnvWithDefault gets an environment variable with a default fallback
func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnvWithDefault gets a boolean environment variable with a default fallback
func getBoolEnvWithDefault(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
