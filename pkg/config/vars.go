package config

import (
	"path/filepath"
)

var (
	// MinVersionStore is the oldest store format that is still compatible
	// with cyclopts. Stores written by newer versions are all supported.
	MinVersionStore = "v0.1.0"
	// AppName is used in generating file system paths.
	AppName = "cyclopts"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/cyclopts by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/cyclopts by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/cyclopts/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/cyclopts/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
