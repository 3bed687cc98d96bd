// Package config loads engine configuration from environment variables
package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the engine
type Config struct {
	Redis     RedisConfig
	Simulator SimulatorConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SimulatorConfig holds encounter simulator configuration
type SimulatorConfig struct {
	Seed       int64
	Difficulty string
	CampaignID string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Simulator: SimulatorConfig{
			Seed:       getEnvAsInt64OrDefault("SIM_SEED", 0),
			Difficulty: getEnvOrDefault("SIM_DIFFICULTY", "standard"),
			CampaignID: getEnvOrDefault("SIM_CAMPAIGN_ID", "campaign-local"),
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
