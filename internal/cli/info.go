package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/metcalfc/tome/internal/book"
	"github.com/metcalfc/tome/internal/parser"
)

func newInfoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <path|id>",
		Short: "Show metadata and structure of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if _, err := os.Stat(path); err != nil {
				store, err := a.openStore()
				if err != nil {
					return err
				}
				entry, err := resolveEntry(store, args[0])
				if err != nil {
					return err
				}
				path = entry.Path
			}

			b, err := parser.ParseBook(path)
			if err != nil {
				return err
			}

			printInfo(cmd, b)
			return nil
		},
	}
	return cmd
}

func printInfo(cmd *cobra.Command, b *book.Book) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)

	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%s\t%s\n", label, value)
		}
	}

	row("Title", b.Metadata.Title)
	row("Author", b.Metadata.AuthorsString())
	row("Publisher", b.Metadata.Publisher)
	row("Published", b.Metadata.Published)
	row("Language", b.Metadata.Language)
	row("ISBN", b.Metadata.ISBN)
	row("Subjects", strings.Join(b.Metadata.Subjects, ", "))
	row("Format", b.Format)
	row("Chapters", fmt.Sprintf("%d", len(b.Content.Chapters)))
	row("Words", fmt.Sprintf("%d", b.Metadata.WordCount))
	row("Reading time", fmt.Sprintf("%d min", b.Metadata.ReadingTime))
	if b.Metadata.Cover != nil {
		row("Cover", fmt.Sprintf("%s (%d bytes)", b.Metadata.CoverMime, len(b.Metadata.Cover)))
	}
	w.Flush()

	if b.Metadata.Description != "" {
		cmd.Println()
		cmd.Println(b.Metadata.Description)
	}

	if len(b.Content.Toc) > 0 {
		cmd.Println()
		cmd.Println("Contents:")
		printToc(cmd, b.Content.Toc, 1)
	}
}

func printToc(cmd *cobra.Command, entries []book.TocEntry, depth int) {
	for _, e := range entries {
		cmd.Printf("%s%s\n", strings.Repeat("  ", depth), e.Title)
		printToc(cmd, e.Children, depth+1)
	}
}
