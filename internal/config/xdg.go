// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "workfetch"

// XDGConfigHome returns the XDG config home, or "" when no home is known.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home, or "" when no home is known.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	base := XDGConfigHome()
	if base == "" {
		return "config.toml"
	}
	return filepath.Join(base, appName, "config.toml")
}

// DefaultStatePath returns the default JSON session state path.
func DefaultStatePath() string {
	base := XDGDataHome()
	if base == "" {
		return "work_session.json"
	}
	return filepath.Join(base, appName, "last_session.json")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	base := XDGDataHome()
	if base == "" {
		return appName + ".db"
	}
	return filepath.Join(base, appName, appName+".db")
}
