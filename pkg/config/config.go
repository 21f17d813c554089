package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	ListenAddr  string        // server listen address
	DBPath      string        // directory pebble db
	LogLevel    slog.Level    // minimum log level
	LogJSON     bool          // json log output
	SessionTTL  time.Duration // step session idle sebelum dihapus
	MaxSessions int           // maksimum step session aktif
	Workers     int           // worker buat import grid
}

// Load baca .env (kalau ada) lalu environment variable GRIDNAV_*.
// file .env yang tidak ada bukan error.
func Load(envFiles ...string) (Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := Config{
		ListenAddr: getEnvWithDefault("GRIDNAV_LISTEN_ADDR", ":5000"),
		DBPath:     getEnvWithDefault("GRIDNAV_DB_PATH", "gridnavDB"),
	}

	var err error
	if cfg.LogLevel, err = parseLevel(getEnvWithDefault("GRIDNAV_LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}
	if cfg.LogJSON, err = strconv.ParseBool(getEnvWithDefault("GRIDNAV_LOG_JSON", "true")); err != nil {
		return Config{}, fmt.Errorf("GRIDNAV_LOG_JSON: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(getEnvWithDefault("GRIDNAV_SESSION_TTL", "15m")); err != nil {
		return Config{}, fmt.Errorf("GRIDNAV_SESSION_TTL: %w", err)
	}
	if cfg.MaxSessions, err = strconv.Atoi(getEnvWithDefault("GRIDNAV_MAX_SESSIONS", "1024")); err != nil {
		return Config{}, fmt.Errorf("GRIDNAV_MAX_SESSIONS: %w", err)
	}
	if cfg.Workers, err = strconv.Atoi(getEnvWithDefault("GRIDNAV_WORKERS", "4")); err != nil {
		return Config{}, fmt.Errorf("GRIDNAV_WORKERS: %w", err)
	}
	return cfg, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return level, fmt.Errorf("GRIDNAV_LOG_LEVEL: %w", err)
	}
	return level, nil
}
