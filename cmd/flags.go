package cmd

import (
	"github.com/gnames/gnfish/pkg/config"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command)

// applyFlags runs flag functions after configuration is loaded, so flags
// take precedence over the config file and environment.
func applyFlags(cmd *cobra.Command, flags ...funcFlag) {
	for _, fn := range flags {
		fn(cmd)
	}
}

func jobsFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("jobs") {
		return
	}
	i, _ := cmd.Flags().GetInt("jobs")
	cfg.Update([]config.Option{config.OptJobsNumber(i)})
}

func broadFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("broad") {
		return
	}
	b, _ := cmd.Flags().GetBool("broad")
	cfg.Update([]config.Option{config.OptGBIFBroadSearch(b)})
}

func noCacheFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("no-cache") {
		return
	}
	b, _ := cmd.Flags().GetBool("no-cache")
	cfg.Update([]config.Option{config.OptCacheEnabled(!b)})
}

func portFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("port") {
		return
	}
	i, _ := cmd.Flags().GetInt("port")
	cfg.Update([]config.Option{config.OptServerPort(i)})
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "pretty",
		"output format: pretty, compact or yaml")
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("broad", "b", false,
		"search GBIF without rank and class constraints")
	cmd.Flags().Bool("no-cache", false,
		"do not use cached upstream responses")
}

func addJobsFlag(cmd *cobra.Command) {
	cmd.Flags().IntP("jobs", "j", 0,
		"number of names resolved concurrently (default from config)")
}
