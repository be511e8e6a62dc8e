// Package cli wires the tome commands together.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metcalfc/tome/internal/config"
	"github.com/metcalfc/tome/internal/library"
	"github.com/metcalfc/tome/internal/logger"
)

// app carries the shared state every command needs.
type app struct {
	cfg config.Config
	log *zap.Logger
}

var (
	flagDebug  bool
	flagConfig string
)

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tome",
		Short: "A terminal book reader and personal library",
		Long: `Tome reads EPUB, PDF, Markdown, HTML and plain text books in the
terminal and keeps a searchable personal library with reading progress,
bookmarks and annotations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			log, err := logger.New(flagDebug)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newRemoveCmd(a),
		newInfoCmd(a),
		newSearchCmd(a),
		newReadCmd(a),
		newFormatsCmd(),
	)

	return root
}

func (a *app) openStore() (*library.Store, error) {
	return library.Open(a.cfg.LibraryPath(), a.log)
}

// resolveEntry finds a library entry by id, unique id prefix, or the
// absolute path of the book file.
func resolveEntry(store *library.Store, key string) (library.Entry, error) {
	if e, err := store.Get(key); err == nil {
		return e, nil
	}

	absKey := key
	if abs, err := filepath.Abs(key); err == nil {
		absKey = abs
	}

	var matches []library.Entry
	for _, e := range store.List(library.Filter{}) {
		if len(key) >= 4 && len(e.ID) >= len(key) && e.ID[:len(key)] == key {
			matches = append(matches, e)
		}
		if e.Path == absKey {
			return e, nil
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return library.Entry{}, fmt.Errorf("no library entry matches %q", key)
	default:
		return library.Entry{}, fmt.Errorf("%q matches %d entries, use a longer id", key, len(matches))
	}
}
