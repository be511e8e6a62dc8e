package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/metcalfc/tome/internal/parser"
)

// ErrNotFound is returned when an entry ID is unknown.
var ErrNotFound = errors.New("book not found")

// Store is the persistent library. All methods are safe for
// concurrent use.
type Store struct {
	path string
	log  *zap.Logger

	mu      sync.RWMutex
	entries map[string]*Entry
}

// Open loads the store at path, starting empty when the file does not
// exist or cannot be parsed.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		path:    path,
		log:     log,
		entries: make(map[string]*Entry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read library %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		// Start over rather than refuse to run; the broken file stays
		// on disk until the next save.
		log.Warn("library file unreadable, starting empty",
			zap.String("path", path), zap.Error(err))
		s.entries = make(map[string]*Entry)
		return s, nil
	}

	log.Debug("library loaded", zap.Int("books", len(s.entries)))
	return s, nil
}

// Save writes the library to disk.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Add parses metadata for the file and creates a library entry.
// Adding the same path twice is an error.
func (s *Store) Add(path string, tags []string) (*Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.Path == abs {
			return nil, fmt.Errorf("book already in library: %s", abs)
		}
	}

	meta, err := parser.GetMetadata(abs)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:       uuid.NewString(),
		Path:     abs,
		Format:   parser.DetectFormat(abs).Tag(),
		Metadata: meta,
		Tags:     tags,
		Status:   StatusUnread,
		AddedAt:  time.Now().UTC(),
	}
	s.entries[entry.ID] = entry

	s.log.Info("book added",
		zap.String("id", entry.ID),
		zap.String("title", meta.Title),
		zap.String("format", entry.Format))

	out := *entry
	return &out, nil
}

// Remove deletes an entry.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.entries, id)
	return nil
}

// Get returns a copy of an entry.
func (s *Store) Get(id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *e, nil
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Format string
	Tag    string
	Status Status
}

// List returns matching entries sorted by title.
func (s *Store) List(f Filter) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		if f.Format != "" && e.Format != strings.ToLower(f.Format) {
			continue
		}
		if f.Tag != "" && !e.HasTag(f.Tag) {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Metadata.Title < out[j].Metadata.Title
	})
	return out
}

// UpdateProgress records a reading position. Progress is clamped to
// 0..1; crossing 1.0 marks the book finished, any progress marks it
// reading.
func (s *Store) UpdateProgress(id string, pos Position, progress float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	e.Position = pos
	e.Progress = progress
	now := time.Now().UTC()
	e.LastRead = &now

	switch {
	case progress >= 1:
		e.Status = StatusFinished
	case e.Status == StatusUnread:
		e.Status = StatusReading
	}
	return nil
}

// SetStatus overrides the reading status.
func (s *Store) SetStatus(id string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status: %s", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e.Status = status
	return nil
}

// AddBookmark saves a named position on an entry.
func (s *Store) AddBookmark(id, name string, pos Position) (Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return Bookmark{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	bm := Bookmark{
		ID:        uuid.NewString(),
		Name:      name,
		Chapter:   pos.Chapter,
		Block:     pos.Block,
		CreatedAt: time.Now().UTC(),
	}
	e.Bookmarks = append(e.Bookmarks, bm)
	return bm, nil
}

// RemoveBookmark deletes a bookmark by ID.
func (s *Store) RemoveBookmark(id, bookmarkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	for i, bm := range e.Bookmarks {
		if bm.ID == bookmarkID {
			e.Bookmarks = append(e.Bookmarks[:i], e.Bookmarks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: bookmark %s", ErrNotFound, bookmarkID)
}

// Annotate attaches a highlighted passage with an optional note.
func (s *Store) Annotate(id, text, note, color string, pos Position) (Annotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return Annotation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	an := Annotation{
		ID:        uuid.NewString(),
		Text:      text,
		Note:      note,
		Chapter:   pos.Chapter,
		Block:     pos.Block,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
	e.Annotations = append(e.Annotations, an)
	return an, nil
}

// ImportDir adds every supported book file under dir. Files that fail
// to parse are skipped and counted; the walk continues. Imports run
// sequentially; parse calls are independent, so a future caller could
// fan out.
func (s *Store) ImportDir(dir string, recursive bool, tags []string) (added, failed int, err error) {
	supported := make(map[string]bool)
	for _, ext := range parser.SupportedExtensions() {
		supported[ext] = true
	}

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !supported[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if _, err := s.Add(path, tags); err != nil {
			s.log.Warn("import failed", zap.String("path", path), zap.Error(err))
			failed++
			return nil
		}
		added++
		return nil
	})
	if walkErr != nil {
		return added, failed, fmt.Errorf("import %s: %w", dir, walkErr)
	}
	return added, failed, nil
}

// Stats summarizes the collection.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		ByFormat: make(map[string]int),
		ByStatus: make(map[Status]int),
	}
	for _, e := range s.entries {
		st.TotalBooks++
		st.ByFormat[e.Format]++
		st.ByStatus[e.Status]++
		st.TotalWords += e.Metadata.WordCount
		if e.Status == StatusFinished {
			st.Finished++
		}
	}
	return st
}
