package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metcalfc/tome/internal/library"
	"github.com/metcalfc/tome/internal/parser"
	"github.com/metcalfc/tome/internal/search"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		recursive bool
		tags      []string
	)

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Add a book or a directory of books to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}

			if info.IsDir() {
				return a.addDir(cmd, store, args[0], recursive, tags)
			}
			return a.addFile(cmd, store, args[0], tags)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tags to attach to added books")
	return cmd
}

func (a *app) addFile(cmd *cobra.Command, store *library.Store, path string, tags []string) error {
	entry, err := store.Add(path, tags)
	if err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}
	if err := a.indexEntries(store, []string{entry.ID}); err != nil {
		a.log.Warn("indexing failed", zap.String("path", path), zap.Error(err))
	}
	cmd.Printf("Added %q (%s)\n", entry.Metadata.Title, entry.ID[:8])
	return nil
}

func (a *app) addDir(cmd *cobra.Command, store *library.Store, dir string, recursive bool, tags []string) error {
	before := make(map[string]bool)
	for _, e := range store.List(library.Filter{}) {
		before[e.ID] = true
	}

	added, failed, err := store.ImportDir(dir, recursive, tags)
	if err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}

	var fresh []string
	for _, e := range store.List(library.Filter{}) {
		if !before[e.ID] {
			fresh = append(fresh, e.ID)
		}
	}
	if err := a.indexEntries(store, fresh); err != nil {
		a.log.Warn("indexing failed", zap.String("dir", dir), zap.Error(err))
	}

	cmd.Printf("Imported %d books from %s", added, dir)
	if failed > 0 {
		cmd.Printf(" (%d failed)", failed)
	}
	cmd.Println()
	return nil
}

// indexEntries parses each entry's book and feeds its blocks to the
// search index. Parse failures are logged, not fatal: the book is
// already in the library.
func (a *app) indexEntries(store *library.Store, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	idx, err := search.Open(a.cfg.IndexPath())
	if err != nil {
		return err
	}
	defer idx.Close()

	for _, id := range ids {
		entry, err := store.Get(id)
		if err != nil {
			continue
		}
		b, err := parser.ParseBook(entry.Path)
		if err != nil {
			a.log.Warn("skipping unparseable book",
				zap.String("path", entry.Path), zap.Error(err))
			continue
		}
		if err := idx.IndexBook(id, b); err != nil {
			return fmt.Errorf("index %s: %w", entry.Path, err)
		}
	}
	return nil
}
