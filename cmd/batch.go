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

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfish/internal/iofs"
	"github.com/gnames/gnfish/internal/ioresolver"
	"github.com/gnames/gnfish/pkg/species"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// getBatchCmd returns the batch command.
func getBatchCmd() *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch [common names...]",
		Short: "Resolve many common fish names concurrently",
		Long: `Resolve a list of common fish names and save them in the store.

Names are taken from arguments, or from a file with one name per line
(--file). Use "-" as the file name to read from standard input. Empty
lines and lines starting with "#" are ignored. Names that differ only by
case or spaces are resolved once.

Failure of one name does not stop the others. Every name gets either a
record or an error reason in the output. Interrupting the command with
Ctrl-C reports names that did not start as "canceled".

Examples:
  gnfish batch "Atlantic cod" "Yellowfin tuna" Halibut
  gnfish batch --file names.txt -j 8
  cat names.txt | gnfish batch -i - -f compact`,
		RunE: runBatch,
	}

	batchCmd.Flags().StringP("file", "i", "",
		"file with one common name per line, '-' for stdin")
	batchCmd.Flags().BoolP("quiet", "q", false, "do not show progress bar")
	addFormatFlag(batchCmd)
	addSearchFlags(batchCmd)
	addJobsFlag(batchCmd)

	return batchCmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	applyFlags(cmd, jobsFlag, broadFlag, noCacheFlag)
	format, err := getFormat(cmd)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	names := args
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		fileNames, err := iofs.ReadNames(path)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		names = append(names, fileNames...)
	}
	if len(names) == 0 {
		err = inputNamesEmptyError()
		gn.PrintErrorMessage(err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var opts []ioresolver.Option
	var bar *pb.ProgressBar
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		bar = pb.Full.Start(len(names))
		bar.Set("prefix", "Resolving names: ")
		bar.Set(pb.CleanOnFinish, true)
		opts = append(opts, ioresolver.OptProgress(func() { bar.Increment() }))
	}

	res, err := newResolver(ctx, cfg, nil, opts...)
	if err != nil {
		if bar != nil {
			bar.Finish()
		}
		gn.PrintErrorMessage(err)
		return err
	}
	defer res.Close()

	runID := uuid.New().String()
	start := time.Now()
	slog.Info("Batch started",
		"run_id", runID, "names", len(names), "jobs", cfg.JobsNumber)

	items := res.ResolveAll(ctx, names)
	if bar != nil {
		bar.Finish()
	}
	reportBatch(runID, items, time.Since(start))

	return writeOutput(cmd.OutOrStdout(), format, items)
}

// reportBatch logs and prints the summary of a batch run.
func reportBatch(runID string, items []species.ItemResult, dur time.Duration) {
	s := summarize(items)
	slog.Info("Batch finished",
		"run_id", runID,
		"names", len(items),
		"inserted", s.inserted,
		"updated", s.updated,
		"failed", s.failed,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info(
		"Resolved <em>%s</em> of %s names "+
			"(%s inserted, %s updated, %s failed) in %s",
		humanize.Comma(int64(s.resolved())),
		humanize.Comma(int64(len(items))),
		humanize.Comma(int64(s.inserted)),
		humanize.Comma(int64(s.updated)),
		humanize.Comma(int64(s.failed)),
		gnfmt.TimeString(dur.Seconds()),
	)
}

type batchSummary struct {
	inserted, updated, unchanged, failed int
}

func (s batchSummary) resolved() int {
	return s.inserted + s.updated + s.unchanged
}

func summarize(items []species.ItemResult) batchSummary {
	var res batchSummary
	for _, v := range items {
		switch {
		case !v.OK():
			res.failed++
		case v.Action == species.ActionInserted:
			res.inserted++
		case v.Action == species.ActionUpdated:
			res.updated++
		default:
			res.unchanged++
		}
	}
	return res
}
