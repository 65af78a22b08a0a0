package config

import (
	"os"
)

type Config struct {
	// Database
	DatabaseURL string

	// Auth
	GoogleClientID string
	JWTSecret      string

	// Slack
	SlackWebhookURL string

	// Cron
	CronSecret string

	// Server
	Port        string
	Environment string
}

func Load() *Config {
	return &Config{
		// Database
		DatabaseURL: getEnv("DATABASE_URL", ""),

		// Auth
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),

		// Slack
		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),

		// Cron
		CronSecret: getEnv("CRON_SECRET", ""),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
