package config

import (
	"fmt"
	"os"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string

	// DatabasePath is the SQLite database file location
	DatabasePath string

	// ReminderTimezone is the IANA zone the daily expiry scan fires in
	ReminderTimezone string

	UseMockDB bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Telegram Bot Token (required)
	config.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	config.DatabasePath = os.Getenv("DATABASE_PATH")
	if config.DatabasePath == "" {
		config.DatabasePath = "products.db"
	}

	config.ReminderTimezone = os.Getenv("REMINDER_TIMEZONE")
	if config.ReminderTimezone == "" {
		config.ReminderTimezone = "Europe/Moscow"
	}

	// Use Mock DB (default: false)
	config.UseMockDB = os.Getenv("USE_MOCK_DB") == "true"

	return config, nil
}
