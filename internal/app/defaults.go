package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - FITFOCUS_CONFIG_PATH: config file location (default: ~/.config/fitfocus.toml)
//   - FITFOCUS_HOME: base directory for fitfocus data (default: ~/.local/share/fitfocus)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
		"env_file":    filepath.Join(baseDir, ".env"),
	}, nil
}

// getConfigPath returns the config file path, checking FITFOCUS_CONFIG_PATH first,
// then falling back to the default ~/.config/fitfocus.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("FITFOCUS_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "fitfocus.toml"), nil
}

// getBaseDir returns the base directory for fitfocus data, checking FITFOCUS_HOME
// first, then falling back to the XDG default ~/.local/share/fitfocus.
func getBaseDir() (string, error) {
	if path := os.Getenv("FITFOCUS_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "fitfocus"), nil
}
