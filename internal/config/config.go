package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port             string
	DBPath           string
	MigrationsDir    string
	CORSOrigins      []string
	AuthPasswordHash string
	JWTSecret        string
	TokenTTL         time.Duration
	LogLevel         string
	LogFormat        string
}

// Load reads configuration from the environment. AUTH_PASSWORD_HASH is a
// bcrypt hash of the owner password; leaving it empty disables authentication,
// which is the expected setup for localhost deployments.
func Load() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		DBPath:           getEnv("DB_PATH", "./data/tracker.db"),
		MigrationsDir:    getEnv("MIGRATIONS_DIR", "./migrations"),
		CORSOrigins:      getEnvList("CORS_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:5173"}),
		AuthPasswordHash: getEnv("AUTH_PASSWORD_HASH", ""),
		JWTSecret:        getEnv("JWT_SECRET", "change-this-secret"),
		TokenTTL:         time.Duration(getEnvInt("TOKEN_TTL_HOURS", 72)) * time.Hour,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
