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

// getTaxonCmd returns the taxon command.
func getTaxonCmd() *cobra.Command {
	taxonCmd := &cobra.Command{
		Use:   "taxon <common name>",
		Short: "Find the GBIF fish taxon for a common name",
		Long: `Find the best GBIF fish species for a common name.

Only the taxon search is performed. Conservation status is not looked
up and the species store is not changed.

Examples:
  gnfish taxon "red snapper"
  gnfish taxon mahi-mahi -f compact`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTaxon,
	}

	addFormatFlag(taxonCmd)
	addSearchFlags(taxonCmd)

	return taxonCmd
}

func runTaxon(cmd *cobra.Command, args []string) error {
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

	taxon, err := res.Taxon(ctx, strings.Join(args, " "))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return writeOutput(cmd.OutOrStdout(), format, taxon)
}
