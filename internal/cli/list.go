package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/metcalfc/tome/internal/library"
)

func newListCmd(a *app) *cobra.Command {
	var (
		format string
		tag    string
		status string
		output string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List books in the library",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			f := library.Filter{Format: format, Tag: tag}
			if status != "" {
				s := library.Status(status)
				if !s.Valid() {
					return fmt.Errorf("unknown status %q", status)
				}
				f.Status = s
			}

			entries := store.List(f)

			switch output {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)

			case "plain":
				for _, e := range entries {
					cmd.Printf("%s\t%s\t%s\n", e.ID[:8], e.Metadata.Title, e.Metadata.Author())
				}
				return nil

			case "table":
				if len(entries) == 0 {
					cmd.Println("Library is empty. Add a book with: tome add <path>")
					return nil
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tFORMAT\tSTATUS\tPROGRESS\tTAGS")
				for _, e := range entries {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.0f%%\t%s\n",
						e.ID[:8],
						truncate(e.Metadata.Title, 40),
						truncate(e.Metadata.Author(), 24),
						e.Format,
						e.Status,
						e.Progress*100,
						strings.Join(e.Tags, ","),
					)
				}
				return w.Flush()

			default:
				return fmt.Errorf("unknown output %q, want table, json or plain", output)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "filter by format (epub, pdf, markdown, txt, html)")
	cmd.Flags().StringVar(&tag, "tag", "", "filter by tag")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (unread, reading, finished, abandoned)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output style: table, json or plain")
	return cmd
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
