// Package config provides application configuration management from an
// optional TOML file and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileEnv names the variable that points at an optional TOML file
const ConfigFileEnv = "SHELFSTACK_CONFIG"

// Config holds application configuration
type Config struct {
	CatalogPath string `toml:"catalog_path"`
	DatabaseURL string `toml:"database_url"`
	APIPort     string `toml:"api_port"`
	APIHost     string `toml:"api_host"`
	LogLevel    string `toml:"log_level"`
	PageSize    int    `toml:"page_size"`
	Watch       bool   `toml:"watch"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		CatalogPath: filepath.Join(".", "data", "books.csv"),
		APIPort:     "8080",
		APIHost:     "0.0.0.0",
		LogLevel:    "info",
		PageSize:    25,
	}
}

// Load reads configuration: defaults, then the TOML file named by
// SHELFSTACK_CONFIG if set, then environment variables
func Load() (*Config, error) {
	return LoadFile(os.Getenv(ConfigFileEnv))
}

// LoadFile is Load with an explicit TOML path; an empty path skips the file
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.CatalogPath = getEnv("CATALOG_PATH", cfg.CatalogPath)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.APIPort = getEnv("API_PORT", cfg.APIPort)
	cfg.APIHost = getEnv("API_HOST", cfg.APIHost)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if v := os.Getenv("PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("PAGE_SIZE must be an integer: %w", err)
		}
		cfg.PageSize = n
	}
	if v := os.Getenv("CATALOG_WATCH"); v != "" {
		cfg.Watch = strings.EqualFold(v, "true") || v == "1"
	}

	if cfg.DatabaseURL == "" && cfg.CatalogPath == "" {
		return nil, fmt.Errorf("CATALOG_PATH is required when DATABASE_URL is not set")
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
