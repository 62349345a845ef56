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
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getResolveCmd returns the resolve command.
func getResolveCmd() *cobra.Command {
	resolveCmd := &cobra.Command{
		Use:   "resolve <common name>",
		Short: "Resolve a common fish name and save it in the species store",
		Long: `Resolve one common fish name.

The name is searched in GBIF, the best fish species is selected, its
English vernacular name is chosen and IUCN conservation status is added.
The resulting record is inserted or updated in the species store.

Words of the name can be given as separate arguments.

Examples:
  gnfish resolve "Atlantic cod"
  gnfish resolve yellowfin tuna --full
  gnfish resolve salmon -f yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: runResolve,
	}

	addFormatFlag(resolveCmd)
	addSearchFlags(resolveCmd)
	resolveCmd.Flags().Bool("full", false,
		"print taxon, vernacular name, assessment and stage trace")

	return resolveCmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	applyFlags(cmd, broadFlag, noCacheFlag)
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

	name := strings.Join(args, " ")
	rsl, err := res.Resolve(ctx, name)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if rsl.FromCache {
		gn.Warn("GBIF is not available, record is taken from the store")
	}

	full, _ := cmd.Flags().GetBool("full")
	if full {
		return writeOutput(cmd.OutOrStdout(), format, rsl)
	}
	return writeOutput(cmd.OutOrStdout(), format, rsl.Record)
}
