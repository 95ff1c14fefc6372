// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DataDir    string
	LogLevel   string
	LogFormat  string
	Currency   string
	DateFormat string
	Theme      string
	AutoBackup bool
	SampleData bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:    os.Getenv("BIZGROW_DATA_DIR"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
		LogFormat:  os.Getenv("LOG_FORMAT"),
		Currency:   os.Getenv("BIZGROW_CURRENCY"),
		DateFormat: os.Getenv("BIZGROW_DATE_FORMAT"),
		Theme:      os.Getenv("BIZGROW_THEME"),
		AutoBackup: true,
		SampleData: true,
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = "2006-01-02"
	}
	if cfg.Theme == "" {
		cfg.Theme = "light"
	}
	if v := os.Getenv("BIZGROW_AUTO_BACKUP"); v != "" {
		cfg.AutoBackup = v == "true" || v == "1"
	}
	if v := os.Getenv("BIZGROW_SAMPLE_DATA"); v != "" {
		cfg.SampleData = v == "true" || v == "1"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that the configuration is usable.
func (c *Config) validate() error {
	var errs []string

	if !filepath.IsLocal(c.DataDir) && !filepath.IsAbs(c.DataDir) {
		errs = append(errs, fmt.Sprintf("BIZGROW_DATA_DIR %q is not a usable path", c.DataDir))
	}

	switch c.LogFormat {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be console or json, got %q", c.LogFormat))
	}

	if len(c.Currency) != 3 {
		errs = append(errs, fmt.Sprintf("BIZGROW_CURRENCY must be a 3-letter code, got %q", c.Currency))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
