package config

import (
	"os"
	"path/filepath"
)

// Home returns the seek home directory, where the config file, history
// database and logs live.
// Priority order:
//  1. SEEK_HOME environment variable (if set)
//  2. ~/.seek
//  3. .seek in the current working directory (fallback when the home
//     directory cannot be resolved)
func Home() string {
	if home := os.Getenv("SEEK_HOME"); home != "" {
		return home
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".seek"
	}
	return filepath.Join(home, ".seek")
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return filepath.Join(Home(), "config.yaml")
}
