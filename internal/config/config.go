// Package config loads tada's settings from defaults, a TOML file and the environment.
// Flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultDriver   = "json"
	DefaultDataDir  = "~/.tada"
	DefaultLogLevel = "warn"
	DefaultLogFmt   = "text"
	DefaultTheme    = "classic"
	FileName        = "config.toml"
)

// Config holds the full configuration for tada.
type Config struct {
	// APIBaseURL selects the remote backend when non-empty.
	APIBaseURL string `toml:"api_base_url"`

	Remote RemoteConfig `toml:"remote"`
	Local  LocalConfig  `toml:"local"`
	Log    LogConfig    `toml:"log"`

	Theme string `toml:"theme"`
}

type RemoteConfig struct {
	// Timeout of 0 leaves requests bounded only by the transport.
	Timeout Duration `toml:"timeout"`
}

type LocalConfig struct {
	Driver  string `toml:"driver"`
	DataDir string `toml:"data_dir"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Duration decodes TOML strings like "5s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a Config with every default applied.
func Default() *Config {
	return &Config{
		Local: LocalConfig{Driver: DefaultDriver, DataDir: DefaultDataDir},
		Log:   LogConfig{Level: DefaultLogLevel, Format: DefaultLogFmt},
		Theme: DefaultTheme,
	}
}

// Load builds the configuration in priority order:
// 1. Defaults
// 2. Config file (path, or the user config file when path is empty)
// 3. Environment variables
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = UserConfigFile()
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// UserConfigFile returns $XDG_CONFIG_HOME/tada/config.toml, falling back to
// ~/.config/tada/config.toml. Empty if no home directory can be found.
func UserConfigFile() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tada", FileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tada", FileName)
}

// Finalize normalizes values after every layer (flags included) has been applied.
func (c *Config) Finalize() error {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	c.Local.Driver = strings.ToLower(strings.TrimSpace(c.Local.Driver))
	if c.Local.Driver == "" {
		c.Local.Driver = DefaultDriver
	}
	switch c.Local.Driver {
	case "json", "sqlite":
	default:
		return fmt.Errorf("local.driver: unknown driver %q", c.Local.Driver)
	}
	if c.Remote.Timeout.Duration < 0 {
		return fmt.Errorf("remote.timeout: must not be negative")
	}
	c.Local.DataDir = ExpandPath(c.Local.DataDir)
	c.Log.File = ExpandPath(c.Log.File)
	return nil
}

// ExpandPath expands environment variables and a leading ~ in p.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
