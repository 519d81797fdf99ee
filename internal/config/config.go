package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds process-level configuration taken from the environment
type Config struct {
	// Logging
	LogLevel string

	// Scanning
	Workers int

	// Server
	Addr string

	// Git sources
	GitToken string
	CacheDir string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel: getEnv("EXTDOC_LOG_LEVEL", "info"),
		Workers:  getEnvInt("EXTDOC_WORKERS", 1),
		Addr:     getEnv("EXTDOC_ADDR", ":8080"),
		GitToken: getEnv("EXTDOC_GIT_TOKEN", ""),
		CacheDir: getEnv("EXTDOC_CACHE_DIR", filepath.Join(os.TempDir(), "extdoc")),
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
