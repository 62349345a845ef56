// Package config provides configuration management for gnfish.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - GBIF: base_url, timeout, limit, rate_limit, broad_search
//   - IUCN: base_url, token, timeout, rate_limit
//   - Store: driver, sqlite_path, database.*
//   - Cache: enabled, ttl
//   - Server: port
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNFISH_ prefix with underscores for nesting:
//
//	GNFISH_IUCN_TOKEN=secret
//	GNFISH_STORE_DRIVER=postgres
//	GNFISH_LOG_LEVEL=info
//	GNFISH_JOBS_NUMBER=4
package config

import (
	"time"
)

// Config represents the complete gnfish configuration.
type Config struct {
	// GBIF contains settings of the GBIF species API client.
	GBIF GBIFConfig `mapstructure:"gbif" yaml:"gbif"`

	// IUCN contains settings of the IUCN Red List API v4 client.
	IUCN IUCNConfig `mapstructure:"iucn" yaml:"iucn"`

	// Store describes where resolved species are kept.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Cache contains settings for the upstream response cache.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	Server ServerConfig `mapstructure:"server" yaml:"server"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of names resolved concurrently by batch
	// operations. Keep it small, both upstream services are rate limited.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// GBIFConfig contains GBIF API settings.
type GBIFConfig struct {
	// BaseURL of GBIF API, without trailing slash.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Timeout is applied to every single HTTP call.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Limit is the maximum number of candidates requested from search.
	Limit int `mapstructure:"limit" yaml:"limit"`

	// RateLimit is the maximum number of requests per second.
	RateLimit int `mapstructure:"rate_limit" yaml:"rate_limit"`

	// BroadSearch removes rank and class constraints from search requests.
	// Candidates are then restricted by the fish filter only.
	BroadSearch bool `mapstructure:"broad_search" yaml:"broad_search"`
}

// IUCNConfig contains IUCN Red List API settings.
type IUCNConfig struct {
	// BaseURL of IUCN API v4, without trailing slash.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Token is sent in the Authorization header. Without a token all
	// conservation lookups return the "Not Assessed" default.
	Token string `mapstructure:"token" yaml:"token"`

	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	RateLimit int `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// StoreConfig describes the species store backend.
type StoreConfig struct {
	// Driver is either "sqlite" or "postgres".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// SQLitePath is the database file for the sqlite driver. When empty,
	// the file is created in the data directory.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	// Database contains PostgreSQL connection settings for the postgres
	// driver.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// CacheConfig contains settings of the upstream response cache.
type CacheConfig struct {
	// Enabled turns on memoization of successful GBIF and IUCN responses.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// TTL is how long a cached response stays valid.
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// ServerConfig contains settings of the HTTP API.
type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		GBIF: GBIFConfig{
			BaseURL:   "https://api.gbif.org/v1",
			Timeout:   5 * time.Second,
			Limit:     20,
			RateLimit: 10,
		},
		IUCN: IUCNConfig{
			BaseURL:   "https://api.iucnredlist.org/api/v4",
			Timeout:   5 * time.Second,
			RateLimit: 2,
		},
		Store: StoreConfig{
			Driver: "sqlite",
			Database: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "postgres",
				Password: "postgres",
				Database: "gnfish",
				SSLMode:  "disable",
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: 4,
	}

	return res
}
