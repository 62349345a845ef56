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
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/internal/iohttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the species resolution HTTP API",
		Long: `Run the HTTP API on the configured port (server.port, 8080 by default).

Routes:
  GET  /api/v1/ping
  GET  /api/v1/version
  GET  /api/v1/species/common-to-scientific/{commonName}
  GET  /api/v1/species/lookup/{scientificName}
  GET  /api/v1/species/full-lookup/{commonName}
  POST /api/v1/species/update-species-in-database
  POST /api/v1/species/batch-update-species
  GET  /api/v1/species/batch-update
  GET  /api/v1/species/get-all-species
  GET  /metrics

The server stops gracefully on SIGINT or SIGTERM.

Examples:
  gnfish serve
  gnfish serve -p 9000`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	serveCmd.Flags().IntP("port", "p", 0,
		"port of the HTTP API (default from config)")
	addSearchFlags(serveCmd)
	addJobsFlag(serveCmd)

	return serveCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	applyFlags(cmd, portFlag, jobsFlag, broadFlag, noCacheFlag)

	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	res, err := newResolver(ctx, cfg, reg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer res.Close()

	gn.Info("Starting HTTP API on port <em>%d</em>", cfg.Server.Port)
	srv := iohttp.New(res, cfg.Server.Port, iohttp.OptGatherer(reg))
	if err = srv.Run(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("HTTP API stopped")
	return nil
}
