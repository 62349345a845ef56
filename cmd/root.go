/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/internal/iofs"
	"github.com/gnames/gnfish/internal/iologger"
	gnfish "github.com/gnames/gnfish/pkg"
	"github.com/gnames/gnfish/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd creates the gnfish command with all its subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf(
			"version: %s\nbuild:   %s", gnfish.Version, gnfish.Build,
		),
		Use:   "gnfish",
		Short: "Resolves common fish names to GBIF taxa and IUCN status",
		Long: `Resolves common (vernacular) fish names to scientific names.

For every name gnfish searches GBIF for a ray-finned fish species, picks
the best matching English vernacular name, adds IUCN Red List
conservation status and population trend, and keeps the result in a
local species store (SQLite by default, PostgreSQL optionally).

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNFISH_*)
  3. Config file (~/.config/gnfish/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (iucn.token → GNFISH_IUCN_TOKEN).

  Examples:
    GNFISH_IUCN_TOKEN               IUCN Red List API v4 token
    GNFISH_STORE_DRIVER             sqlite or postgres
    GNFISH_STORE_DATABASE_HOST      PostgreSQL host
    GNFISH_LOG_LEVEL                Log level (debug/info/warn/error)
    GNFISH_JOBS_NUMBER              Concurrent batch resolutions`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gnfish version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnfish")

	rootCmd.AddCommand(
		getResolveCmd(),
		getBatchCmd(),
		getRefreshCmd(),
		getListCmd(),
		getTaxonCmd(),
		getLookupCmd(),
		getServeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if logCloser, err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"store", cfg.Store.Driver,
	)
	if cfg.IUCN.Token == "" {
		slog.Warn("IUCN token is not set, conservation status is not available")
	}

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
// Creates log file in the proper location now that we know HomeDir.
func reconfigureLogging(cfg *config.Config) error {
	closer, err := iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log)
	if err != nil {
		return err
	}
	closeLog()
	logCloser = closer
	return nil
}

func closeLog() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNFISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// GBIF
	v.BindEnv("gbif.base_url", "GNFISH_GBIF_BASE_URL")
	v.BindEnv("gbif.timeout", "GNFISH_GBIF_TIMEOUT")
	v.BindEnv("gbif.limit", "GNFISH_GBIF_LIMIT")
	v.BindEnv("gbif.rate_limit", "GNFISH_GBIF_RATE_LIMIT")
	v.BindEnv("gbif.broad_search", "GNFISH_GBIF_BROAD_SEARCH")

	// IUCN
	v.BindEnv("iucn.base_url", "GNFISH_IUCN_BASE_URL")
	v.BindEnv("iucn.token", "GNFISH_IUCN_TOKEN")
	v.BindEnv("iucn.timeout", "GNFISH_IUCN_TIMEOUT")
	v.BindEnv("iucn.rate_limit", "GNFISH_IUCN_RATE_LIMIT")

	// Species store
	v.BindEnv("store.driver", "GNFISH_STORE_DRIVER")
	v.BindEnv("store.sqlite_path", "GNFISH_STORE_SQLITE_PATH")
	v.BindEnv("store.database.host", "GNFISH_STORE_DATABASE_HOST")
	v.BindEnv("store.database.port", "GNFISH_STORE_DATABASE_PORT")
	v.BindEnv("store.database.user", "GNFISH_STORE_DATABASE_USER")
	v.BindEnv("store.database.password", "GNFISH_STORE_DATABASE_PASSWORD")
	v.BindEnv("store.database.database", "GNFISH_STORE_DATABASE_DATABASE")
	v.BindEnv("store.database.ssl_mode", "GNFISH_STORE_DATABASE_SSL_MODE")

	// Response cache
	v.BindEnv("cache.enabled", "GNFISH_CACHE_ENABLED")
	v.BindEnv("cache.ttl", "GNFISH_CACHE_TTL")

	v.BindEnv("server.port", "GNFISH_SERVER_PORT")

	// Logging
	v.BindEnv("log.level", "GNFISH_LOG_LEVEL")
	v.BindEnv("log.format", "GNFISH_LOG_FORMAT")
	v.BindEnv("log.destination", "GNFISH_LOG_DESTINATION")

	v.BindEnv("jobs_number", "GNFISH_JOBS_NUMBER")

	v.AutomaticEnv()
}
