package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptGBIFBaseURL sets the base URL of GBIF API.
func OptGBIFBaseURL(s string) Option {
	s = normURL(s)
	return func(c *Config) {
		if isValidString("GBIF Base URL", s) {
			c.GBIF.BaseURL = s
		}
	}
}

// OptGBIFTimeout sets the timeout of a single GBIF request.
func OptGBIFTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("GBIF Timeout", d) {
			c.GBIF.Timeout = d
		}
	}
}

// OptGBIFLimit sets the number of candidates requested from GBIF search.
func OptGBIFLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Limit", i) {
			c.GBIF.Limit = i
		}
	}
}

// OptGBIFRateLimit sets the maximum number of GBIF requests per second.
func OptGBIFRateLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Rate Limit", i) {
			c.GBIF.RateLimit = i
		}
	}
}

// OptGBIFBroadSearch removes rank and class constraints from GBIF search.
func OptGBIFBroadSearch(b bool) Option {
	return func(c *Config) {
		c.GBIF.BroadSearch = b
	}
}

// OptIUCNBaseURL sets the base URL of IUCN Red List API.
func OptIUCNBaseURL(s string) Option {
	s = normURL(s)
	return func(c *Config) {
		if isValidString("IUCN Base URL", s) {
			c.IUCN.BaseURL = s
		}
	}
}

// OptIUCNToken sets the IUCN API token.
func OptIUCNToken(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("IUCN Token", s) {
			c.IUCN.Token = s
		}
	}
}

// OptIUCNTimeout sets the timeout of a single IUCN request.
func OptIUCNTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("IUCN Timeout", d) {
			c.IUCN.Timeout = d
		}
	}
}

// OptIUCNRateLimit sets the maximum number of IUCN requests per second.
func OptIUCNRateLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("IUCN Rate Limit", i) {
			c.IUCN.RateLimit = i
		}
	}
}

// OptStoreDriver sets the species store backend.
// Valid values: "sqlite", "postgres".
func OptStoreDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Store.Driver", s) {
			c.Store.Driver = s
		}
	}
}

// OptStoreSQLitePath sets the file of the sqlite species store.
func OptStoreSQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("SQLite Path", s) {
			c.Store.SQLitePath = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Store.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Store.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Store.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Store.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Store.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Store.Database.SSLMode = s
		}
	}
}

// OptCacheEnabled turns the upstream response cache on or off.
func OptCacheEnabled(b bool) Option {
	return func(c *Config) {
		c.Cache.Enabled = b
	}
}

// OptCacheTTL sets how long cached upstream responses stay valid.
func OptCacheTTL(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Cache TTL", d) {
			c.Cache.TTL = d
		}
	}
}

// OptServerPort sets the port of the HTTP API.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of names resolved concurrently.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

func normURL(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimRight(s, "/")
}
