package config

import (
	"os"
	"time"
)

type Config struct {
	Port        string
	Environment string

	RedisURL       string
	PublishTimeout time.Duration

	CORSOrigins string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		PublishTimeout: getDurationEnv("PUBLISH_TIMEOUT", 5*time.Second),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
