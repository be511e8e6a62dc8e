package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/metcalfc/tome/internal/search"
)

func newSearchCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the full text of the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			idx, err := search.Open(a.cfg.IndexPath())
			if err != nil {
				return err
			}
			defer idx.Close()

			hits, err := idx.Search(strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				cmd.Println("No matches.")
				return nil
			}

			for _, h := range hits {
				title := h.BookID
				if entry, err := store.Get(h.BookID); err == nil {
					title = entry.Metadata.Title
				}
				cmd.Printf("%s / %s (chapter %d)\n", title, h.ChapterTitle, h.Chapter+1)
				for _, frag := range h.Fragments {
					cmd.Printf("  %s\n", strings.TrimSpace(frag))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of results")
	return cmd
}
