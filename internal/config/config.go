package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	DatabaseURL string `yaml:"database_url"`
	JWKSURL     string `yaml:"jwks_url"`
	CORSOrigins string `yaml:"cors_origins"`
	// CascadeMode selects how far trash/delete cascades reach: "shallow"
	// (direct children only, the historical behavior) or "recursive"
	CascadeMode string `yaml:"cascade_mode"`
	LogDir      string `yaml:"log_dir"` // empty = stdout only
	Debug       bool   `yaml:"debug"`
}

// Load builds the configuration from an optional YAML file overlaid with
// environment variables. Env vars win over file values.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        "8080",
		Environment: "dev",
		CORSOrigins: "http://localhost:3000",
		CascadeMode: "shallow",
	}

	if path := getEnv("CONFIG_FILE", "config.yaml"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.JWKSURL = getEnv("JWKS_URL", cfg.JWKSURL)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.CascadeMode = getEnv("CASCADE_MODE", cfg.CascadeMode)
	cfg.LogDir = getEnv("LOG_DIR", cfg.LogDir)
	cfg.Debug = getEnv("DEBUG", getDefaultDebug(cfg.Environment)) == "true"

	return cfg, nil
}

// loadFile overlays values from a YAML config file. A missing file is fine.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	return nil
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
