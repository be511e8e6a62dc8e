package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metcalfc/tome/internal/library"
	"github.com/metcalfc/tome/internal/parser"
	"github.com/metcalfc/tome/internal/tui"
)

func newReadCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <path|id>",
		Short: "Open a book in the terminal reader",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			path := args[0]
			var entry *library.Entry
			if _, statErr := os.Stat(path); statErr != nil {
				e, err := resolveEntry(store, args[0])
				if err != nil {
					return err
				}
				entry = &e
				path = e.Path
			} else if e, err := resolveEntry(store, path); err == nil {
				entry = &e
			}

			b, err := parser.ParseBook(path)
			if err != nil {
				return err
			}

			session := tui.NewSession(b)
			if entry != nil {
				session.Resume(entry.Position.Chapter)
			}

			if err := tui.Run(session, a.cfg.Reader.Width, a.cfg.Reader.Accent); err != nil {
				return err
			}

			if entry != nil {
				pos := library.Position{Chapter: session.CurrentChapter}
				if err := store.UpdateProgress(entry.ID, pos, session.Progress()); err != nil {
					return err
				}
				if err := store.Save(); err != nil {
					return err
				}
				a.log.Debug("saved position",
					zap.String("id", entry.ID),
					zap.Int("chapter", session.CurrentChapter))
			}
			return nil
		},
	}
	return cmd
}
