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

// getLookupCmd returns the lookup command.
func getLookupCmd() *cobra.Command {
	lookupCmd := &cobra.Command{
		Use:   "lookup <scientific name>",
		Short: "Show IUCN conservation status of a scientific name",
		Long: `Show the IUCN Red List assessment of a species.

The name must contain genus and species, authorship is ignored.
Species without an assessment, or an unset IUCN token, give the
"Not Assessed" (DD) status.

Examples:
  gnfish lookup "Gadus morhua"
  gnfish lookup Thunnus albacares -f yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLookup,
	}

	addFormatFlag(lookupCmd)
	lookupCmd.Flags().Bool("no-cache", false,
		"do not use cached upstream responses")

	return lookupCmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	applyFlags(cmd, noCacheFlag)
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

	ca := res.Conservation(ctx, strings.Join(args, " "))
	if ca.IsDefault() {
		gn.Info("No IUCN assessment found, status is <em>%s</em>", ca.Category)
	}
	return writeOutput(cmd.OutOrStdout(), format, ca)
}
