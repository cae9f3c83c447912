package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath     string
	SchemaPath       string // empty: use the built-in schema
	SeedPath         string // empty: skip seeding
	LogLevel         string
	LogPretty        bool
	StatsRefreshCron string // empty: no background stats refresh
	MaxLoginAttempts int
	AdminUser        string // bootstrap admin account, created when no users exist
	AdminPassword    string
}

// Load reads configuration from the environment, with an optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabasePath:     getEnv("DESK_DB_PATH", "./parfume_market.db"),
		SchemaPath:       getEnv("DESK_SCHEMA_PATH", ""),
		SeedPath:         getEnv("DESK_SEED_PATH", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogPretty:        getEnvAsBool("LOG_PRETTY", true),
		StatsRefreshCron: getEnv("STATS_REFRESH_CRON", ""),
		MaxLoginAttempts: getEnvAsInt("DESK_MAX_LOGIN_ATTEMPTS", 3),
		AdminUser:        getEnv("DESK_ADMIN_USER", "admin"),
		AdminPassword:    getEnv("DESK_ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
