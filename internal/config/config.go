package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConnectionStringEnv overrides the configured connection string when set.
// Demo deployments inject the connection string through the pod environment
// rather than a mounted config file.
const ConnectionStringEnv = "SQL_CONNECTION_STRING"

// DefaultTokenScope is the Azure SQL resource scope requested from the
// identity provider. The doubled slash is the documented form.
const DefaultTokenScope = "https://database.windows.net//.default"

// Config represents configuration data for the probe service.
type Config struct {
	ConnectionString    string  `yaml:"connection_string"`
	TokenScope          string  `yaml:"token_scope"`
	AzureClientID       string  `yaml:"azure_client_id"`
	ProbeTimeoutSeconds int     `yaml:"probe_timeout_seconds"`
	DataDirectory       string  `yaml:"data_directory"`
	HistoryLimit        int     `yaml:"history_limit"`
	Monitor             Monitor `yaml:"monitor"`
}

// Monitor configures the optional background probe loop.
type Monitor struct {
	Enabled         bool `yaml:"enabled"`
	IntervalMinutes int  `yaml:"interval_minutes"`
}

// DefaultConfig returns sensible defaults in case no configuration file is
// provided. An empty connection string is a valid state: the probe reports
// it as not configured instead of failing.
func DefaultConfig() Config {
	return Config{
		TokenScope:          DefaultTokenScope,
		ProbeTimeoutSeconds: 30,
		DataDirectory:       filepath.Join(".dist", "data"),
		HistoryLimit:        200,
		Monitor: Monitor{
			Enabled:         false,
			IntervalMinutes: 5,
		},
	}
}

// Load reads configuration from yaml file. Missing files fall back to
// defaults; the SQL_CONNECTION_STRING environment variable wins over the
// file value when set.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if env := strings.TrimSpace(os.Getenv(ConnectionStringEnv)); env != "" {
		cfg.ConnectionString = env
	}
	if strings.TrimSpace(cfg.TokenScope) == "" {
		cfg.TokenScope = DefaultTokenScope
	}
	if cfg.ProbeTimeoutSeconds <= 0 {
		cfg.ProbeTimeoutSeconds = DefaultConfig().ProbeTimeoutSeconds
	}
	if cfg.DataDirectory == "" {
		cfg.DataDirectory = DefaultConfig().DataDirectory
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultConfig().HistoryLimit
	}
	if cfg.Monitor.IntervalMinutes <= 0 {
		cfg.Monitor.IntervalMinutes = DefaultConfig().Monitor.IntervalMinutes
	}
	return cfg, nil
}
