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
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfish/pkg/species"
	"github.com/spf13/cobra"
)

// getListCmd returns the list command.
func getListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List species saved in the species store",
		Long: `List all records of the species store ordered by common name.

No upstream services are called.

Examples:
  gnfish list
  gnfish list -f yaml`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	addFormatFlag(listCmd)

	return listCmd
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := getFormat(cmd)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	ctx := cmd.Context()
	res, err := newResolver(ctx, cfg, nil)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer res.Close()

	recs, err := res.ListCached(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if recs == nil {
		recs = []species.Record{}
	}
	if err = writeOutput(cmd.OutOrStdout(), format, recs); err != nil {
		return err
	}
	gn.Info("Species in the store: <em>%s</em>",
		humanize.Comma(int64(len(recs))))
	return nil
}
