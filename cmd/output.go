package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// output formats
const (
	formatPretty  = "pretty"
	formatCompact = "compact"
	formatYAML    = "yaml"
)

func getFormat(cmd *cobra.Command) (string, error) {
	f, _ := cmd.Flags().GetString("format")
	f = strings.ToLower(strings.TrimSpace(f))
	switch f {
	case "":
		return formatPretty, nil
	case formatPretty, formatCompact, formatYAML:
		return f, nil
	default:
		return "", outputFormatError(f)
	}
}

// writeOutput encodes v as JSON or YAML. YAML is produced from the JSON
// encoding, so both formats share field names and order.
func writeOutput(w io.Writer, format string, v any) error {
	enc := gnfmt.GNjson{Pretty: format == formatPretty}
	body, err := enc.Encode(v)
	if err != nil {
		return err
	}

	if format == formatYAML {
		var node yaml.Node
		if err = yaml.Unmarshal(body, &node); err != nil {
			return err
		}
		blockStyle(&node)
		if body, err = yaml.Marshal(&node); err != nil {
			return err
		}
		_, err = w.Write(body)
		return err
	}

	_, err = fmt.Fprintln(w, string(body))
	return err
}

// blockStyle drops JSON flow and quoting styles from the YAML tree.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, v := range n.Content {
		blockStyle(v)
	}
}
