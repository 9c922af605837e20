// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "caltodo"

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// DefaultRolloverInterval is how often the day change is polled.
const DefaultRolloverInterval = 60 * time.Second

// Config represents the application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects where tasks are kept.
type StorageConfig struct {
	Backend string `yaml:"backend"`        // "json" or "sqlite"
	Path    string `yaml:"path,omitempty"` // empty: inside DataDir
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	RolloverInterval time.Duration `yaml:"rollover_interval"`
	NotifyRollover   bool          `yaml:"notify_rollover"`
	ShowHints        bool          `yaml:"show_hints"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	File string `yaml:"file,omitempty"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendJSON,
		},
		UI: UIConfig{
			RolloverInterval: DefaultRolloverInterval,
			ShowHints:        true,
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", appName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DataDir returns the directory holding the task file.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/caltodo/
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	dataDir := filepath.Join(dataHome, appName)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return dataDir, nil
}

// Load reads the configuration from path, or from ConfigPath when path is
// empty. If the file doesn't exist, returns a default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate fills zero values with defaults and rejects unknown backends.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "":
		c.Storage.Backend = BackendJSON
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (want %q or %q)", c.Storage.Backend, BackendJSON, BackendSQLite)
	}
	if c.UI.RolloverInterval <= 0 {
		c.UI.RolloverInterval = DefaultRolloverInterval
	}
	return nil
}

// TaskPath returns the storage path, defaulting to a file inside DataDir
// named after the backend.
func (c *Config) TaskPath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	name := "tasks.json"
	if c.Storage.Backend == BackendSQLite {
		name = "tasks.db"
	}
	return filepath.Join(dir, name), nil
}
