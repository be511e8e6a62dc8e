// Package book defines the canonical document model every format
// parser produces and every consumer reads.
package book

import (
	"strconv"
	"strings"
)

// Book is the immutable result of parsing one file. The caller owns it
// after return; nothing in this package mutates it afterwards.
type Book struct {
	Metadata   Metadata `json:"metadata"`
	Content    Content  `json:"content"`
	SourcePath string   `json:"source_path"`
	Format     string   `json:"format"`
}

// Metadata holds bibliographic fields. Title is never empty in parser
// output; parsers fall back to the file stem.
type Metadata struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	Published   string   `json:"published,omitempty"`
	Language    string   `json:"language,omitempty"`
	ISBN        string   `json:"isbn,omitempty"`
	Description string   `json:"description,omitempty"`
	Subjects    []string `json:"subjects,omitempty"`
	SeriesName  string   `json:"series,omitempty"`
	SeriesIndex float64  `json:"series_index,omitempty"`

	// Cover bytes never serialize; only the MIME type survives a
	// round trip.
	Cover     []byte `json:"-"`
	CoverMime string `json:"cover_mime,omitempty"`

	WordCount   int `json:"word_count,omitempty"`
	ReadingTime int `json:"reading_time,omitempty"`
}

// Author returns the primary author, or "" if none.
func (m *Metadata) Author() string {
	if len(m.Authors) == 0 {
		return ""
	}
	return m.Authors[0]
}

// AuthorsString returns a human-readable author list.
func (m *Metadata) AuthorsString() string {
	switch len(m.Authors) {
	case 0:
		return "Unknown Author"
	case 1:
		return m.Authors[0]
	case 2:
		return m.Authors[0] + " and " + m.Authors[1]
	default:
		return strings.Join(m.Authors[:len(m.Authors)-1], ", ") + ", and " + m.Authors[len(m.Authors)-1]
	}
}

// CalculateReadingTime derives ReadingTime (minutes) from WordCount.
func (m *Metadata) CalculateReadingTime(wordsPerMinute int) {
	if wordsPerMinute > 0 && m.WordCount > 0 {
		m.ReadingTime = m.WordCount / wordsPerMinute
	}
}

// Content is the structured body of a book.
type Content struct {
	Chapters []Chapter  `json:"chapters"`
	Toc      []TocEntry `json:"toc,omitempty"`
}

// TotalParagraphs returns the block count across all chapters.
func (c *Content) TotalParagraphs() int {
	n := 0
	for i := range c.Chapters {
		n += len(c.Chapters[i].Blocks)
	}
	return n
}

// WordCount returns the word count across all chapters.
func (c *Content) WordCount() int {
	n := 0
	for i := range c.Chapters {
		n += c.Chapters[i].WordCount()
	}
	return n
}

// Chapter finds a chapter by ID, or nil.
func (c *Content) Chapter(id string) *Chapter {
	for i := range c.Chapters {
		if c.Chapters[i].ID == id {
			return &c.Chapters[i]
		}
	}
	return nil
}

// Chapter is one ordered unit of reading. Order always equals the
// chapter's index in Content.Chapters.
type Chapter struct {
	ID     string  `json:"id"`
	Title  string  `json:"title,omitempty"`
	Number int     `json:"number,omitempty"`
	Blocks []Block `json:"blocks"`
	Order  int     `json:"order"`
}

// NewChapter creates an empty chapter at the given position.
func NewChapter(id string, order int) Chapter {
	return Chapter{ID: id, Order: order}
}

// DisplayTitle returns a title suitable for lists and headers.
func (ch *Chapter) DisplayTitle() string {
	switch {
	case ch.Title != "" && ch.Number > 0:
		return "Chapter " + strconv.Itoa(ch.Number) + ": " + ch.Title
	case ch.Title != "":
		return ch.Title
	case ch.Number > 0:
		return "Chapter " + strconv.Itoa(ch.Number)
	default:
		return "Section " + strconv.Itoa(ch.Order+1)
	}
}

// WordCount returns the word count of all blocks in the chapter.
func (ch *Chapter) WordCount() int {
	n := 0
	for i := range ch.Blocks {
		n += ch.Blocks[i].WordCount()
	}
	return n
}

// TocEntry is one node of the recursive outline tree. Level 0 is
// top-level.
type TocEntry struct {
	Title    string     `json:"title"`
	Href     string     `json:"href"`
	Level    int        `json:"level"`
	Children []TocEntry `json:"children,omitempty"`
}

// NewTocEntry creates a leaf outline entry.
func NewTocEntry(title, href string, level int) TocEntry {
	return TocEntry{Title: title, Href: href, Level: level}
}
