package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port          string
	Environment   string
	APIKey        string
	AdminUsername string
	AdminPassword string
	DatasetSeed   int64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		APIKey:        getEnv("API_KEY", "default_secret_key"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
		DatasetSeed:   getEnvInt64("DATASET_SEED", 0),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 gets an integer environment variable with a default value.
// DATASET_SEED=0（デフォルト）の場合は呼び出し側で時刻シードを使用する。
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
