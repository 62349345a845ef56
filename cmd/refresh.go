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
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gnames/gn"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// getRefreshCmd returns the refresh command.
func getRefreshCmd() *cobra.Command {
	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Re-resolve every species of the species store",
		Long: `Re-resolve all common names kept in the species store.

Taxa, vernacular names and conservation status are fetched again and
records are updated in place. Record IDs and creation times are kept.

Examples:
  gnfish refresh
  gnfish refresh -j 2 --no-cache`,
		Args: cobra.NoArgs,
		RunE: runRefresh,
	}

	addFormatFlag(refreshCmd)
	addSearchFlags(refreshCmd)
	addJobsFlag(refreshCmd)

	return refreshCmd
}

func runRefresh(cmd *cobra.Command, args []string) error {
	applyFlags(cmd, jobsFlag, broadFlag, noCacheFlag)
	format, err := getFormat(cmd)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := newResolver(ctx, cfg, nil)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer res.Close()

	runID := uuid.New().String()
	start := time.Now()
	slog.Info("Refresh started", "run_id", runID, "jobs", cfg.JobsNumber)

	items, err := res.RefreshAll(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if len(items) == 0 {
		gn.Info("The species store is empty, nothing to refresh")
	}
	reportBatch(runID, items, time.Since(start))

	return writeOutput(cmd.OutOrStdout(), format, items)
}
