// Package config loads seek's YAML configuration. Defaults come first, file
// values override them, and CLI flags (applied by the command layer) win
// over both.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/harrison/seek/internal/filelock"
)

// HistoryConfig controls the search-history store.
type HistoryConfig struct {
	// Enabled turns search-history recording on.
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database location.
	DBPath string `yaml:"db_path"`

	// KeepDays prunes history entries older than this many days
	// (0 = keep forever).
	KeepDays int `yaml:"keep_days"`
}

// Config holds seek's persistent options.
type Config struct {
	// MaxFiles caps the number of scanned entries per run (0 = unlimited).
	MaxFiles int `yaml:"max_files"`

	// TimeoutSeconds bounds each run's wall-clock time (0 = no timeout).
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// ShowPermissionErrors surfaces permission-denied paths on the status line.
	ShowPermissionErrors bool `yaml:"show_permission_errors"`

	// NoColor disables colored output.
	NoColor bool `yaml:"no_color"`

	// LogLevel sets diagnostic verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogDir is where per-run log files are written in verbose mode.
	LogDir string `yaml:"log_dir"`

	// History configures the search-history store.
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	home := Home()
	return &Config{
		MaxFiles:       500000,
		TimeoutSeconds: 600,
		LogLevel:       "info",
		LogDir:         filepath.Join(home, "logs"),
		History: HistoryConfig{
			Enabled:  true,
			DBPath:   filepath.Join(home, "history.db"),
			KeepDays: 90,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply file values over the defaults. Presence is detected through a
	// raw map so explicit zero values (max_files: 0) still take effect.
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, ok := raw["max_files"]; ok {
		cfg.MaxFiles = fileCfg.MaxFiles
	}
	if _, ok := raw["timeout_seconds"]; ok {
		cfg.TimeoutSeconds = fileCfg.TimeoutSeconds
	}
	if _, ok := raw["show_permission_errors"]; ok {
		cfg.ShowPermissionErrors = fileCfg.ShowPermissionErrors
	}
	if _, ok := raw["no_color"]; ok {
		cfg.NoColor = fileCfg.NoColor
	}
	if _, ok := raw["log_level"]; ok {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if _, ok := raw["log_dir"]; ok {
		cfg.LogDir = fileCfg.LogDir
	}

	if section, ok := raw["history"]; ok && section != nil {
		historyMap, _ := section.(map[string]interface{})
		if _, ok := historyMap["enabled"]; ok {
			cfg.History.Enabled = fileCfg.History.Enabled
		}
		if _, ok := historyMap["db_path"]; ok {
			cfg.History.DBPath = fileCfg.History.DBPath
		}
		if _, ok := historyMap["keep_days"]; ok {
			cfg.History.KeepDays = fileCfg.History.KeepDays
		}
	}

	return cfg, nil
}

// LoadDefault loads configuration from the default location.
func LoadDefault() (*Config, error) {
	return LoadConfig(DefaultConfigPath())
}

// Save writes the configuration to path as YAML. The write is atomic and
// guarded by a file lock so concurrent seek processes cannot corrupt it.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return filelock.LockAndWrite(path, data)
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.MaxFiles < 0 {
		return fmt.Errorf("max_files must be >= 0, got %d", c.MaxFiles)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must be >= 0, got %d", c.TimeoutSeconds)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}
	if c.History.KeepDays < 0 {
		return fmt.Errorf("history.keep_days must be >= 0, got %d", c.History.KeepDays)
	}

	return nil
}
