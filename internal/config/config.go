// Package config loads dashboard and dev-server settings from the
// environment, after an optional .env file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Dashboard DashboardConfig
	DevServer DevServerConfig
	Log       LogConfig
}

// DashboardConfig holds the terminal dashboard settings.
type DashboardConfig struct {
	APIURL            string
	PollInterval      time.Duration
	CountdownInterval time.Duration
	RequestTimeout    time.Duration
}

// DevServerConfig holds the development backend settings.
type DevServerConfig struct {
	Addr         string
	DBPath       string
	Seed         bool
	VisitMinutes int
}

// LogConfig holds logging settings.
type LogConfig struct {
	File  string
	Level string
}

// Load reads configuration from the environment. Values in a .env file in
// the working directory are applied first; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() *Config {
	return &Config{
		Dashboard: DashboardConfig{
			APIURL:            getEnv("POSTOP_API_URL", "http://localhost:5001"),
			PollInterval:      getEnvAsDuration("POSTOP_POLL_INTERVAL", 5*time.Second),
			CountdownInterval: getEnvAsDuration("POSTOP_COUNTDOWN_INTERVAL", time.Minute),
			RequestTimeout:    getEnvAsDuration("POSTOP_REQUEST_TIMEOUT", 10*time.Second),
		},
		DevServer: DevServerConfig{
			Addr:         getEnv("POSTOP_DEV_ADDR", ":5001"),
			DBPath:       getEnv("POSTOP_DEV_DB", DefaultDBPath()),
			Seed:         getEnvAsBool("POSTOP_DEV_SEED", true),
			VisitMinutes: getEnvAsInt("POSTOP_VISIT_MINUTES", 15),
		},
		Log: LogConfig{
			File:  getEnv("POSTOP_LOG_FILE", DefaultLogPath()),
			Level: getEnv("POSTOP_LOG_LEVEL", "info"),
		},
	}
}

// DefaultLogPath returns the default dashboard log file path.
func DefaultLogPath() string {
	return filepath.Join(stateDir(), "postop.log")
}

// DefaultDBPath returns the default dev-server database path.
func DefaultDBPath() string {
	return filepath.Join(stateDir(), "devserver.sqlite")
}

func stateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "postop")
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

// getEnvAsDuration accepts Go durations ("5s") and bare integers as seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
