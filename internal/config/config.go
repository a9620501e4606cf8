// Package config loads terminal settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"chuipos/internal/core/apperror"
)

// DefaultBaseURL matches the backend's default listen address.
const DefaultBaseURL = "http://127.0.0.1:9000/api/pos/"

// Config holds terminal settings.
type Config struct {
	// Persisted in the settings file
	BaseURL          string `yaml:"base_url"`
	PrinterName      string `yaml:"printer_name"`
	SoundEnabled     bool   `yaml:"sound_enabled"`
	WalkInCustomerID int64  `yaml:"walk_in_customer_id"`

	// Environment only
	RequestTimeout time.Duration `yaml:"-"`
	SearchDebounce time.Duration `yaml:"-"`
	HealthInterval time.Duration `yaml:"-"`
	SessionFile    string        `yaml:"-"`
	LogLevel       string        `yaml:"-"`
	Development    bool          `yaml:"-"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		BaseURL:          DefaultBaseURL,
		SoundEnabled:     true,
		WalkInCustomerID: 1,
		RequestTimeout:   15 * time.Second,
		SearchDebounce:   300 * time.Millisecond,
		HealthInterval:   30 * time.Second,
		SessionFile:      filepath.Join(homeDir(), ".chuipos", "session.json"),
		LogLevel:         "info",
	}
}

// DefaultPath returns the settings file location.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".chuipos", "settings.yaml")
}

// Load reads path, creating it with defaults when missing, then applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := Save(path, cfg); err != nil {
			return cfg, fmt.Errorf("create settings file: %w", err)
		}
	case err != nil:
		return cfg, fmt.Errorf("read settings file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse settings file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the persisted subset of cfg to path.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks settings invariants.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return apperror.NewValidation("base url is required").WithDetail("field", "base_url")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return apperror.NewValidation("base url must be absolute").
			WithDetail("field", "base_url").
			WithDetail("value", c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return apperror.NewValidation("request timeout must be positive").WithDetail("field", "request_timeout")
	}
	if c.SearchDebounce < 0 || c.HealthInterval <= 0 {
		return apperror.NewValidation("intervals must be positive")
	}
	if c.WalkInCustomerID < 0 {
		return apperror.NewValidation("walk-in customer id cannot be negative").WithDetail("field", "walk_in_customer_id")
	}
	return nil
}

// NormalizedBaseURL returns BaseURL with a trailing slash so relative
// endpoints resolve under it.
func (c Config) NormalizedBaseURL() string {
	if strings.HasSuffix(c.BaseURL, "/") {
		return c.BaseURL
	}
	return c.BaseURL + "/"
}

func applyEnv(cfg *Config) {
	cfg.BaseURL = getEnv("POS_BASE_URL", cfg.BaseURL)
	cfg.WalkInCustomerID = getEnvInt64("POS_WALK_IN_CUSTOMER_ID", cfg.WalkInCustomerID)
	cfg.RequestTimeout = getEnvDuration("POS_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.SearchDebounce = getEnvDuration("POS_SEARCH_DEBOUNCE", cfg.SearchDebounce)
	cfg.HealthInterval = getEnvDuration("POS_HEALTH_INTERVAL", cfg.HealthInterval)
	cfg.SessionFile = getEnv("POS_SESSION_FILE", cfg.SessionFile)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Development = getEnv("APP_ENV", "production") == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}
