// Package app wires configuration, logging, the CRM client, the session
// store, and the message bundles into one shared core.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/propdesk/internal/clients/crm"
	"github.com/bobmcallan/propdesk/internal/common"
	"github.com/bobmcallan/propdesk/internal/i18n"
	"github.com/bobmcallan/propdesk/internal/interfaces"
	"github.com/bobmcallan/propdesk/internal/session"
)

// App holds all initialized components shared by the HTTP server.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	CRM         interfaces.CRMClient
	Sessions    interfaces.SessionStore
	I18n        *i18n.Bundle
	StartupTime time.Time

	janitorCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes config, logger, CRM client, sessions, and i18n.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Load configuration - check provided path, PROPDESK_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("PROPDESK_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "propdesk.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/propdesk.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative session path to binary directory
	if config.Sessions.Path != "" && !filepath.IsAbs(config.Sessions.Path) {
		if _, err := os.Stat(config.Sessions.Path); os.IsNotExist(err) {
			config.Sessions.Path = filepath.Join(binDir, config.Sessions.Path)
		}
	}

	logger := common.NewLogger(config.Logging.Level)

	crmClient := crm.NewClient(
		crm.WithBaseURL(config.CRM.BaseURL),
		crm.WithLogger(logger),
		crm.WithRateLimit(config.CRM.RateLimit),
		crm.WithTimeout(config.CRM.GetTimeout()),
	)

	sessions, err := session.NewStore(config.Sessions.Path, config.Sessions.GetTTL(), crmClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	bundle, err := i18n.NewBundle()
	if err != nil {
		return nil, fmt.Errorf("failed to load message bundles: %w", err)
	}

	a := &App{
		Config:      config,
		Logger:      logger,
		CRM:         crmClient,
		Sessions:    sessions,
		I18n:        bundle,
		StartupTime: startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.janitorCancel != nil {
		a.janitorCancel()
		a.janitorCancel = nil
	}
}

// StartSessionJanitor launches the background goroutine that purges expired
// sessions once an hour.
func (a *App) StartSessionJanitor() {
	ctx, cancel := context.WithCancel(context.Background())
	a.janitorCancel = cancel

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if purged := a.Sessions.Purge(now); purged > 0 {
					a.Logger.Debug().Int("purged", purged).Msg("Expired sessions purged")
				}
			}
		}
	}()
}
