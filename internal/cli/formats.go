package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/metcalfc/tome/internal/parser"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported book formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FORMAT\tEXTENSIONS")
			for _, f := range []parser.Format{
				parser.FormatEPUB,
				parser.FormatPDF,
				parser.FormatMarkdown,
				parser.FormatPlainText,
				parser.FormatHTML,
			} {
				fmt.Fprintf(w, "%s\t%s\n", f.Name(), strings.Join(formatExtensions(f), ", "))
			}
			w.Flush()
		},
	}
}

func formatExtensions(f parser.Format) []string {
	var out []string
	for _, ext := range parser.SupportedExtensions() {
		if parser.DetectFormat("x"+ext) == f {
			out = append(out, ext)
		}
	}
	return out
}
