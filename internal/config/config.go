// Package config loads and persists tome's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	configFileName = "config.toml"
	libraryFile    = "library.json"
	indexDir       = "index"
)

// Config holds all user-tunable settings.
type Config struct {
	// DataDir is where the library database and search index live.
	DataDir string `toml:"data_dir"`

	// WordsPerMinute drives reading-time estimates.
	WordsPerMinute int `toml:"words_per_minute"`

	Reader ReaderConfig `toml:"reader"`
}

// ReaderConfig holds terminal reader settings.
type ReaderConfig struct {
	// Width caps the rendered text column. 0 uses the terminal width.
	Width int `toml:"width"`

	// Accent is the highlight color for headings and the status bar.
	Accent string `toml:"accent"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DataDir:        dataDir(),
		WordsPerMinute: 250,
		Reader: ReaderConfig{
			Width:  80,
			Accent: "#FFAA00",
		},
	}
}

// Load reads the config file at path, or the default location when
// path is empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = filepath.Join(configDir(), configFileName)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.WordsPerMinute <= 0 {
		cfg.WordsPerMinute = 250
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func (c Config) Save(path string) error {
	if path == "" {
		path = filepath.Join(configDir(), configFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

// LibraryPath is the JSON library database location.
func (c Config) LibraryPath() string {
	return filepath.Join(c.DataDir, libraryFile)
}

// IndexPath is the search index directory.
func (c Config) IndexPath() string {
	return filepath.Join(c.DataDir, indexDir)
}

// configDir returns XDG_CONFIG_HOME/tome or ~/.config/tome.
func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tome")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tome")
}

// dataDir returns XDG_DATA_HOME/tome or ~/.local/share/tome.
func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "tome")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "tome")
}
