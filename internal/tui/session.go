// Package tui provides the terminal reading view for parsed books.
package tui

import (
	"strings"

	"github.com/metcalfc/tome/internal/book"
)

// Session holds the state for a reading session over one book.
type Session struct {
	Book           *book.Book
	CurrentChapter int
	ScrollOffset   int

	// ShowTOC toggles the table-of-contents overlay.
	ShowTOC bool
	TOCCur  int
}

// NewSession creates a session positioned at the start of the book.
func NewSession(b *book.Book) *Session {
	return &Session{Book: b}
}

// Resume positions the session at a saved chapter index.
func (s *Session) Resume(chapter int) {
	s.CurrentChapter = clamp(chapter, 0, len(s.Book.Content.Chapters)-1)
	s.ScrollOffset = 0
}

// Chapter returns the chapter under the cursor, or nil for an empty book.
func (s *Session) Chapter() *book.Chapter {
	if s.CurrentChapter < 0 || s.CurrentChapter >= len(s.Book.Content.Chapters) {
		return nil
	}
	return &s.Book.Content.Chapters[s.CurrentChapter]
}

// NextChapter advances one chapter. Returns false at the last chapter.
func (s *Session) NextChapter() bool {
	if s.CurrentChapter >= len(s.Book.Content.Chapters)-1 {
		return false
	}
	s.CurrentChapter++
	s.ScrollOffset = 0
	return true
}

// PrevChapter moves back one chapter. Returns false at the first chapter.
func (s *Session) PrevChapter() bool {
	if s.CurrentChapter <= 0 {
		return false
	}
	s.CurrentChapter--
	s.ScrollOffset = 0
	return true
}

// JumpToChapter jumps to the given chapter index, clamped to the book.
func (s *Session) JumpToChapter(i int) {
	s.CurrentChapter = clamp(i, 0, len(s.Book.Content.Chapters)-1)
	s.ScrollOffset = 0
}

// Progress returns reading progress as a fraction of chapters covered.
func (s *Session) Progress() float64 {
	n := len(s.Book.Content.Chapters)
	if n == 0 {
		return 0
	}
	return float64(s.CurrentChapter+1) / float64(n)
}

// AtEnd reports whether the session is on the last chapter.
func (s *Session) AtEnd() bool {
	return s.CurrentChapter >= len(s.Book.Content.Chapters)-1
}

// TOCTitles returns the flattened TOC labels for the overlay, indented
// two spaces per nesting level.
func (s *Session) TOCTitles() []string {
	entries := s.flatTOC()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = strings.Repeat("  ", e.Level) + e.Title
	}
	return out
}

// JumpToTOC jumps to the chapter a flattened TOC entry points at. An
// entry whose href names a chapter id lands on that chapter; anchors
// inside a chapter fall back to the entry's position.
func (s *Session) JumpToTOC(i int) {
	entries := s.flatTOC()
	if i < 0 || i >= len(entries) {
		return
	}
	for ci := range s.Book.Content.Chapters {
		if s.Book.Content.Chapters[ci].ID == entries[i].Href {
			s.JumpToChapter(ci)
			return
		}
	}
	s.JumpToChapter(i)
}

func (s *Session) flatTOC() []book.TocEntry {
	var out []book.TocEntry
	var walk func(entries []book.TocEntry, depth int)
	walk = func(entries []book.TocEntry, depth int) {
		for _, e := range entries {
			flat := e
			flat.Level = depth
			flat.Children = nil
			out = append(out, flat)
			walk(e.Children, depth+1)
		}
	}
	walk(s.Book.Content.Toc, 0)
	return out
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
