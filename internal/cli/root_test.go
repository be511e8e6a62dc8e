package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metcalfc/tome/internal/library"
)

// runCommand executes the root command with isolated config and data
// directories and returns its combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestFormatsCommand(t *testing.T) {
	out, err := runCommand(t, "formats")
	require.NoError(t, err)

	assert.Contains(t, out, "EPUB")
	assert.Contains(t, out, ".epub")
	assert.Contains(t, out, "Markdown")
	assert.Contains(t, out, ".md")
}

func TestAddAndListCommands(t *testing.T) {
	bookDir := t.TempDir()
	bookPath := filepath.Join(bookDir, "story.txt")
	require.NoError(t, os.WriteFile(bookPath, []byte("Chapter 1\n\na story begins.\n"), 0o644))

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"add", "-t", "test", bookPath})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "story")

	// Same environment, fresh command tree: list sees the saved entry.
	root = newRootCmd()
	out.Reset()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"list", "--output", "plain"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "story")
}

func TestListUnknownStatusRejected(t *testing.T) {
	_, err := runCommand(t, "list", "--status", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status")
}

func TestResolveEntryByPrefix(t *testing.T) {
	dir := t.TempDir()
	bookPath := filepath.Join(dir, "r.txt")
	require.NoError(t, os.WriteFile(bookPath, []byte("text\n"), 0o644))

	store, err := library.Open(filepath.Join(dir, "library.json"), nil)
	require.NoError(t, err)
	entry, err := store.Add(bookPath, nil)
	require.NoError(t, err)

	got, err := resolveEntry(store, entry.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)

	got, err = resolveEntry(store, bookPath)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)

	_, err = resolveEntry(store, "ffffffff")
	assert.Error(t, err)
}
