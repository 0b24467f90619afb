package config

import (
	"fmt"
	"os"
	"time"
)

// Environment variable names.
const (
	EnvAPIBaseURL = "TADA_API_BASE_URL"
	EnvTimeout    = "TADA_TIMEOUT"
	EnvDriver     = "TADA_DRIVER"
	EnvDataDir    = "TADA_DATA_DIR"
	EnvLogLevel   = "TADA_LOG_LEVEL"
	EnvLogFormat  = "TADA_LOG_FORMAT"
	EnvLogFile    = "TADA_LOG_FILE"
	EnvTheme      = "TADA_THEME"
)

// loadFromEnv overrides cfg from environment variables that are set.
func loadFromEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvAPIBaseURL); ok {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Remote.Timeout.Duration = d
	}
	if v := os.Getenv(EnvDriver); v != "" {
		cfg.Local.Driver = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.Local.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
	return nil
}
