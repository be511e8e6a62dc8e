package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metcalfc/tome/internal/book"
)

func threeChapterBook() *book.Book {
	return &book.Book{
		Metadata: book.Metadata{Title: "Nav Test"},
		Content: book.Content{
			Chapters: []book.Chapter{
				{ID: "chapter-0", Title: "One"},
				{ID: "chapter-1", Title: "Two"},
				{ID: "chapter-2", Title: "Three"},
			},
			Toc: []book.TocEntry{
				book.NewTocEntry("One", "chapter-0", 0),
				book.NewTocEntry("Two", "chapter-1", 0),
				book.NewTocEntry("Three", "chapter-2", 0),
			},
		},
	}
}

func TestSessionNavigation(t *testing.T) {
	s := NewSession(threeChapterBook())

	assert.Equal(t, 0, s.CurrentChapter)
	assert.False(t, s.PrevChapter(), "cannot move before the first chapter")

	assert.True(t, s.NextChapter())
	assert.True(t, s.NextChapter())
	assert.Equal(t, 2, s.CurrentChapter)
	assert.True(t, s.AtEnd())
	assert.False(t, s.NextChapter(), "cannot move past the last chapter")
	assert.Equal(t, 2, s.CurrentChapter)
}

func TestSessionJumpClamps(t *testing.T) {
	s := NewSession(threeChapterBook())

	s.JumpToChapter(99)
	assert.Equal(t, 2, s.CurrentChapter)

	s.JumpToChapter(-5)
	assert.Equal(t, 0, s.CurrentChapter)
}

func TestSessionResume(t *testing.T) {
	s := NewSession(threeChapterBook())
	s.Resume(1)
	assert.Equal(t, 1, s.CurrentChapter)

	s.Resume(50)
	assert.Equal(t, 2, s.CurrentChapter)
}

func TestSessionProgress(t *testing.T) {
	s := NewSession(threeChapterBook())
	assert.InDelta(t, 1.0/3.0, s.Progress(), 1e-9)

	s.JumpToChapter(2)
	assert.InDelta(t, 1.0, s.Progress(), 1e-9)

	empty := NewSession(&book.Book{})
	assert.Zero(t, empty.Progress())
	assert.Nil(t, empty.Chapter())
}

func TestSessionJumpToTOC(t *testing.T) {
	s := NewSession(threeChapterBook())

	s.JumpToTOC(1)
	assert.Equal(t, 1, s.CurrentChapter)

	// Out-of-range entries are ignored.
	s.JumpToTOC(42)
	assert.Equal(t, 1, s.CurrentChapter)
}

func TestSessionTOCTitlesIndented(t *testing.T) {
	b := threeChapterBook()
	b.Content.Toc = []book.TocEntry{
		{
			Title: "Part I",
			Href:  "chapter-0",
			Children: []book.TocEntry{
				{Title: "Nested", Href: "chapter-1"},
			},
		},
	}
	s := NewSession(b)

	titles := s.TOCTitles()
	require.Len(t, titles, 2)
	assert.Equal(t, "Part I", titles[0])
	assert.Equal(t, "  Nested", titles[1])
}
