package config

import (
	"os"
	"path/filepath"
)

const (
	appName      = "sitetool"
	databaseName = "sitetool.sqlite"
)

// GetConfigDir returns the XDG config directory for sitetool
// ($XDG_CONFIG_HOME/sitetool, default ~/.config/sitetool).
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, appName), nil
}

// GetDataDir returns the XDG data directory for sitetool
// ($XDG_DATA_HOME/sitetool, default ~/.local/share/sitetool).
func GetDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, appName), nil
}

// GetDatabaseFile returns the default path of the audit database.
func GetDatabaseFile() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, databaseName), nil
}
