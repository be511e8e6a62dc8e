package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 250, cfg.WordsPerMinute)
	assert.Equal(t, 80, cfg.Reader.Width)
	assert.NotEmpty(t, cfg.Reader.Accent)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().WordsPerMinute, cfg.WordsPerMinute)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.WordsPerMinute = 320
	cfg.Reader.Width = 100
	cfg.Reader.Accent = "#00FFAA"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 320, got.WordsPerMinute)
	assert.Equal(t, 100, got.Reader.Width)
	assert.Equal(t, "#00FFAA", got.Reader.Accent)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("words_per_minute = 400\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.WordsPerMinute)
	assert.Equal(t, Default().Reader.Width, cfg.Reader.Width)
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadNormalizesZeroWPM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("words_per_minute = 0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.WordsPerMinute)
}

func TestDerivedPaths(t *testing.T) {
	cfg := Config{DataDir: "/tmp/tome-test"}
	assert.Equal(t, filepath.Join("/tmp/tome-test", "library.json"), cfg.LibraryPath())
	assert.Equal(t, filepath.Join("/tmp/tome-test", "index"), cfg.IndexPath())
}
