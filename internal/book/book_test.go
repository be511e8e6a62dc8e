package book

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorsString(t *testing.T) {
	tests := []struct {
		name    string
		authors []string
		want    string
	}{
		{"none", nil, "Unknown Author"},
		{"one", []string{"Ursula K. Le Guin"}, "Ursula K. Le Guin"},
		{"two", []string{"Kernighan", "Ritchie"}, "Kernighan and Ritchie"},
		{"three", []string{"A", "B", "C"}, "A, B, and C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Metadata{Authors: tt.authors}
			assert.Equal(t, tt.want, m.AuthorsString())
		})
	}
}

func TestCalculateReadingTime(t *testing.T) {
	m := Metadata{WordCount: 500}
	m.CalculateReadingTime(250)
	assert.Equal(t, 2, m.ReadingTime)

	m.WordCount = 125000
	m.CalculateReadingTime(250)
	assert.Equal(t, 500, m.ReadingTime)

	// A zero rate leaves the estimate untouched.
	m.CalculateReadingTime(0)
	assert.Equal(t, 500, m.ReadingTime)
}

func TestChapterDisplayTitle(t *testing.T) {
	ch := NewChapter("chapter-1", 0)
	assert.Equal(t, "Section 1", ch.DisplayTitle())

	ch.Number = 3
	assert.Equal(t, "Chapter 3", ch.DisplayTitle())

	ch.Title = "The Beginning"
	assert.Equal(t, "Chapter 3: The Beginning", ch.DisplayTitle())

	ch.Number = 0
	assert.Equal(t, "The Beginning", ch.DisplayTitle())
}

func TestContentWordCount(t *testing.T) {
	c := Content{
		Chapters: []Chapter{
			{Blocks: []Block{Paragraph("one two three"), Heading(1, "four")}},
			{Blocks: []Block{Paragraph("five six")}},
		},
	}
	assert.Equal(t, 6, c.WordCount())
	assert.Equal(t, 2, c.TotalParagraphs())
}

func TestBlockPlainText(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{"paragraph", Paragraph("hello"), "hello"},
		{"heading", Heading(2, "Title"), "Title"},
		{"code", Code("go", "fmt.Println()"), "fmt.Println()"},
		{"image caption", Image("a.png", "alt", "A caption"), "A caption"},
		{"image alt", Image("a.png", "alt", ""), "alt"},
		{"list", List(false, []string{"a", "b"}), "a\nb"},
		{"separator", Separator(), ""},
		{"break", Break(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.block.PlainText())
		})
	}
}

func TestHeadingLevelClamped(t *testing.T) {
	assert.Equal(t, 1, Heading(0, "x").Level)
	assert.Equal(t, 1, Heading(-2, "x").Level)
	assert.Equal(t, 6, Heading(9, "x").Level)
	assert.Equal(t, 4, Heading(4, "x").Level)
}

func TestBlockJSONRoundTrip(t *testing.T) {
	blocks := []Block{
		Paragraph("plain text"),
		Heading(2, "Section"),
		Quote("said someone", "Someone"),
		Code("python", "print('hi')"),
		List(true, []string{"first", "second"}),
		Table([]string{"A", "B"}, [][]string{{"1", "2"}}),
		Footnote("1", "a note"),
		Separator(),
		RawHTML("<video/>"),
		Break(),
	}

	data, err := json.Marshal(blocks)
	require.NoError(t, err)

	var got []Block
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, blocks, got)
}

func TestImageDataExcludedFromJSON(t *testing.T) {
	img := Image("cover.png", "cover", "")
	img.Data = []byte{0x89, 0x50}

	data, err := json.Marshal(img)
	require.NoError(t, err)

	var got Block
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "cover.png", got.Src)
	assert.Nil(t, got.Data)
}

func TestCoverExcludedFromJSON(t *testing.T) {
	m := Metadata{Title: "T", Cover: []byte{1, 2, 3}, CoverMime: "image/png"}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got Metadata
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Nil(t, got.Cover)
	assert.Equal(t, "image/png", got.CoverMime)
}

func TestContentChapterLookup(t *testing.T) {
	c := Content{Chapters: []Chapter{NewChapter("intro", 0), NewChapter("chapter-1", 1)}}

	require.NotNil(t, c.Chapter("chapter-1"))
	assert.Equal(t, 1, c.Chapter("chapter-1").Order)
	assert.Nil(t, c.Chapter("missing"))
}
