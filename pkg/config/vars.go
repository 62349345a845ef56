package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnfish"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnfish by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gnfish by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// HTTPCacheDir returns the directory of the upstream response cache.
// Returns ~/.cache/gnfish/http by default.
func HTTPCacheDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "http")
}

// DataDir returns the directory for persistent application data.
// Returns ~/.local/share/gnfish by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnfish/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnfish/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SQLitePath returns the path of the species database file. A path set
// in the configuration takes precedence over the default location.
func (c *Config) SQLitePath() string {
	if c.Store.SQLitePath != "" {
		return c.Store.SQLitePath
	}
	return filepath.Join(DataDir(c.HomeDir), "species.db")
}
