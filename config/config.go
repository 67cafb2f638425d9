package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort           = "10000"
	DefaultFrontendURL    = "http://localhost:5173"
	DefaultTelegramAPIURL = "https://api.telegram.org"
)

type Config struct {
	Port string
	// Origins allowed to call the API from a browser
	AllowedOrigins []string
	LogLevel       string
	// Telegram Bot API
	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIURL   string
	TelegramTimeout  time.Duration // zero means no client-side timeout
}

func LoadConfig() (*Config, error) {
	// .env.local wins over .env; both are optional outside local development
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cfg := FromEnv()

	if !cfg.TelegramConfigured() {
		log.Println("WARNING: TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is missing. " +
			"Server will start, but sending to Telegram will fail.")
	}

	return cfg, nil
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		Port:             getEnv("PORT", DefaultPort),
		AllowedOrigins:   splitOrigins(getEnv("FRONTEND_URL", DefaultFrontendURL)),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		TelegramBotToken: strings.TrimSpace(getEnv("TELEGRAM_BOT_TOKEN", "")),
		TelegramChatID:   strings.TrimSpace(getEnv("TELEGRAM_CHAT_ID", "")),
		TelegramAPIURL:   strings.TrimRight(getEnv("TELEGRAM_API_URL", DefaultTelegramAPIURL), "/"),
		TelegramTimeout:  time.Duration(getEnvInt("TELEGRAM_TIMEOUT_SECONDS", 0)) * time.Second,
	}
}

// TelegramConfigured reports whether both provider credentials are present.
func (c *Config) TelegramConfigured() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
