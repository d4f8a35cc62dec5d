// Package common provides shared utilities for PropDesk
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for PropDesk
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	CRM         CRMConfig      `toml:"crm"`
	Sessions    SessionsConfig `toml:"sessions"`
	Locale      LocaleConfig   `toml:"locale"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// CRMConfig holds the upstream CRM API configuration
type CRMConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *CRMConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SessionsConfig holds session store configuration
type SessionsConfig struct {
	Path       string `toml:"path"`        // file the session store persists to
	CookieName string `toml:"cookie_name"` // name of the signed session cookie
	Secret     string `toml:"secret"`      // HMAC secret for the session cookie
	TTL        string `toml:"ttl"`         // session lifetime, duration string
}

// GetTTL parses and returns the session lifetime duration.
func (c *SessionsConfig) GetTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LocaleConfig holds localization configuration
type LocaleConfig struct {
	Default string `toml:"default"` // "en" or "ar"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		CRM: CRMConfig{
			BaseURL:   "https://crm.aipilot.ps",
			RateLimit: 10,
			Timeout:   "30s",
		},
		Sessions: SessionsConfig{
			Path:       "data/sessions.json",
			CookieName: "propdesk_session",
			Secret:     "dev-session-secret-change-in-production",
			TTL:        "24h",
		},
		Locale: LocaleConfig{
			Default: "en",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	validateLocale(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("PROPDESK_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("PROPDESK_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("PROPDESK_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("PROPDESK_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if base := os.Getenv("PROPDESK_CRM_BASE_URL"); base != "" {
		config.CRM.BaseURL = base
	}

	if path := os.Getenv("PROPDESK_SESSIONS_PATH"); path != "" {
		config.Sessions.Path = path
	}

	if v := os.Getenv("PROPDESK_SESSION_SECRET"); v != "" {
		config.Sessions.Secret = v
	}
	if v := os.Getenv("PROPDESK_SESSION_TTL"); v != "" {
		config.Sessions.TTL = v
	}

	if loc := os.Getenv("PROPDESK_LOCALE"); loc != "" {
		config.Locale.Default = strings.ToLower(loc)
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// validateLocale ensures the default locale is "en" or "ar", defaulting to "en".
func validateLocale(config *Config) {
	loc := strings.ToLower(config.Locale.Default)
	if loc != "en" && loc != "ar" {
		loc = "en"
	}
	config.Locale.Default = loc
}
