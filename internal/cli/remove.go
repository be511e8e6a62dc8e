package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metcalfc/tome/internal/search"
)

func newRemoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a book from the library",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			entry, err := resolveEntry(store, args[0])
			if err != nil {
				return err
			}

			if err := store.Remove(entry.ID); err != nil {
				return err
			}
			if err := store.Save(); err != nil {
				return err
			}

			if idx, err := search.Open(a.cfg.IndexPath()); err == nil {
				if err := idx.RemoveBook(entry.ID); err != nil {
					a.log.Warn("index cleanup failed", zap.String("id", entry.ID), zap.Error(err))
				}
				idx.Close()
			}

			cmd.Printf("Removed %q\n", entry.Metadata.Title)
			return nil
		},
	}
	return cmd
}
