package utils

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env files into the process environment. Variables already
// set win over file contents, and a missing file is not an error.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to load env file", "file", f, "error", err)
		}
	}
}

func GetEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func GetEnvFloat(key string, fallback float64) float64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		slog.Warn("invalid float in env, using default", "key", key, "value", val, "default", fallback)
		return fallback
	}
	return parsed
}

func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		slog.Warn("invalid duration in env, using default", "key", key, "value", val, "default", fallback)
		return fallback
	}
	return parsed
}
