package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	var d time.Duration

	s = c.GBIF.BaseURL
	if s != "" {
		res = append(res, OptGBIFBaseURL(s))
	}
	d = c.GBIF.Timeout
	if d > 0 {
		res = append(res, OptGBIFTimeout(d))
	}
	i = c.GBIF.Limit
	if i > 0 {
		res = append(res, OptGBIFLimit(i))
	}
	i = c.GBIF.RateLimit
	if i > 0 {
		res = append(res, OptGBIFRateLimit(i))
	}
	res = append(res, OptGBIFBroadSearch(c.GBIF.BroadSearch))

	s = c.IUCN.BaseURL
	if s != "" {
		res = append(res, OptIUCNBaseURL(s))
	}
	s = c.IUCN.Token
	if s != "" {
		res = append(res, OptIUCNToken(s))
	}
	d = c.IUCN.Timeout
	if d > 0 {
		res = append(res, OptIUCNTimeout(d))
	}
	i = c.IUCN.RateLimit
	if i > 0 {
		res = append(res, OptIUCNRateLimit(i))
	}

	s = c.Store.Driver
	if s != "" {
		res = append(res, OptStoreDriver(s))
	}
	s = c.Store.SQLitePath
	if s != "" {
		res = append(res, OptStoreSQLitePath(s))
	}
	s = c.Store.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Store.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Store.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Store.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Store.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Store.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}

	res = append(res, OptCacheEnabled(c.Cache.Enabled))
	d = c.Cache.TTL
	if d > 0 {
		res = append(res, OptCacheTTL(d))
	}

	i = c.Server.Port
	if i > 0 {
		res = append(res, OptServerPort(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidDuration(name string, d time.Duration) bool {
	res := d > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive duration, ignoring %s", name, d)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Store.Driver": {"sqlite": s, "postgres": s},
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
