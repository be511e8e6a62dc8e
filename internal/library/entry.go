// Package library manages the personal book collection: entries,
// reading progress, bookmarks, annotations, and tags, persisted as a
// JSON file. Parsed content is never stored; only metadata and
// positions are.
package library

import (
	"time"

	"github.com/metcalfc/tome/internal/book"
)

// Status is the reading state of a library entry.
type Status string

const (
	StatusUnread    Status = "unread"
	StatusReading   Status = "reading"
	StatusFinished  Status = "finished"
	StatusAbandoned Status = "abandoned"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUnread, StatusReading, StatusFinished, StatusAbandoned:
		return true
	default:
		return false
	}
}

// Position is a reading location inside a book.
type Position struct {
	Chapter int `json:"chapter"`
	Block   int `json:"block"`
	Offset  int `json:"offset"`
}

// Bookmark is a named saved position.
type Bookmark struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Chapter   int       `json:"chapter"`
	Block     int       `json:"block"`
	CreatedAt time.Time `json:"created_at"`
}

// Annotation is a highlighted passage with an optional note.
type Annotation struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Note      string    `json:"note,omitempty"`
	Chapter   int       `json:"chapter"`
	Block     int       `json:"block"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry is one book in the library.
type Entry struct {
	ID       string        `json:"id"`
	Path     string        `json:"path"`
	Format   string        `json:"format"`
	Metadata book.Metadata `json:"metadata"`
	Tags     []string      `json:"tags,omitempty"`

	// Progress is 0.0 through 1.0.
	Progress float64  `json:"progress"`
	Position Position `json:"position"`
	Status   Status   `json:"status"`

	AddedAt  time.Time  `json:"added_at"`
	LastRead *time.Time `json:"last_read,omitempty"`

	// ReadingSeconds accumulates total time spent reading.
	ReadingSeconds int64 `json:"reading_seconds"`

	Bookmarks   []Bookmark   `json:"bookmarks,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// HasTag reports whether the entry carries the tag.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Stats summarizes the collection.
type Stats struct {
	TotalBooks int            `json:"total_books"`
	ByFormat   map[string]int `json:"by_format"`
	ByStatus   map[Status]int `json:"by_status"`
	TotalWords int            `json:"total_words"`
	Finished   int            `json:"finished"`
}
