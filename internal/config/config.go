// Package config loads runtime configuration from environment
// variables with sensible defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds runtime configuration for the dashboard.
type Config struct {
	DBPath     string
	UserID     string
	TickPeriod time.Duration
	LogFile    string
}

// FromEnv loads configuration from EMISSIA_* environment variables.
// The default store path is ~/.emissia/profiles.db.
func FromEnv() Config {
	return Config{
		DBPath:     getEnv("EMISSIA_DB_PATH", defaultDBPath()),
		UserID:     getEnv("EMISSIA_USER_ID", "U1"),
		TickPeriod: time.Duration(getEnvInt("EMISSIA_TICK_SEC", 5)) * time.Second,
		LogFile:    getEnv("EMISSIA_LOG_FILE", ""),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "profiles.db"
	}
	return filepath.Join(home, ".emissia", "profiles.db")
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}
