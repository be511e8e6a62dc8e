package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metcalfc/tome/internal/book"
)

func TestParseMarkdownFrontmatter(t *testing.T) {
	src := `---
title: My Book
author: Jane Doe, John Smith
date: 2021-03-01
tags: fiction, short
language: en
---

# Ignored As Title

Body text.
`
	path := writeFixture(t, "front.md", src)

	b, err := ParseBook(path)
	require.NoError(t, err)

	assert.Equal(t, "My Book", b.Metadata.Title)
	assert.Equal(t, []string{"Jane Doe", "John Smith"}, b.Metadata.Authors)
	assert.Equal(t, "2021-03-01", b.Metadata.Published)
	assert.Equal(t, []string{"fiction", "short"}, b.Metadata.Subjects)
	assert.Equal(t, "en", b.Metadata.Language)
	assert.Equal(t, "markdown", b.Format)
}

func TestParseMarkdownTitleFromHeading(t *testing.T) {
	path := writeFixture(t, "headed.md", "# A Heading Title\n\nBody.\n")

	b, err := ParseBook(path)
	require.NoError(t, err)
	assert.Equal(t, "A Heading Title", b.Metadata.Title)
}

func TestParseMarkdownTitleFromStem(t *testing.T) {
	path := writeFixture(t, "notes-2024.md", "just a paragraph, no heading\n")

	b, err := ParseBook(path)
	require.NoError(t, err)
	assert.Equal(t, "notes-2024", b.Metadata.Title)
}

func TestParseMarkdownSingleChapter(t *testing.T) {
	path := writeFixture(t, "one.md", "# H\n\ntext\n\n## H2\n\nmore\n")

	b, err := ParseBook(path)
	require.NoError(t, err)
	require.Len(t, b.Content.Chapters, 1)
	assert.Equal(t, "main", b.Content.Chapters[0].ID)
}

func TestParseMarkdownTocLevels(t *testing.T) {
	src := "# Top\n\n## Nested\n\n### Deeper\n\n#### Skipped\n\ntext\n"
	path := writeFixture(t, "toc.md", src)

	b, err := ParseBook(path)
	require.NoError(t, err)

	toc := b.Content.Toc
	require.Len(t, toc, 3)
	assert.Equal(t, "Top", toc[0].Title)
	assert.Equal(t, 0, toc[0].Level)
	assert.Equal(t, "Nested", toc[1].Title)
	assert.Equal(t, 1, toc[1].Level)
	assert.Equal(t, "Deeper", toc[2].Title)
	assert.Equal(t, 2, toc[2].Level)
}

func TestMarkdownBlockMapping(t *testing.T) {
	src := "# Title\n\n" +
		"A paragraph with `code span` inside.\n\n" +
		"> quoted line\n\n" +
		"```go\nfmt.Println(\"hi\")\n```\n\n" +
		"- one\n- two\n\n" +
		"1. first\n2. second\n\n" +
		"| A | B |\n|---|---|\n| 1 | 2 |\n\n" +
		"---\n"
	path := writeFixture(t, "blocks.md", src)

	b, err := ParseBook(path)
	require.NoError(t, err)

	blocks := b.Content.Chapters[0].Blocks
	kinds := make([]book.BlockKind, len(blocks))
	for i, bl := range blocks {
		kinds[i] = bl.Kind
	}

	assert.Equal(t, []book.BlockKind{
		book.KindHeading,
		book.KindParagraph,
		book.KindQuote,
		book.KindCode,
		book.KindList,
		book.KindList,
		book.KindTable,
		book.KindSeparator,
	}, kinds)

	assert.Equal(t, "A paragraph with `code span` inside.", blocks[1].Text)
	assert.Equal(t, "quoted line", blocks[2].Text)
	assert.Equal(t, "go", blocks[3].Language)
	assert.Equal(t, "fmt.Println(\"hi\")\n", blocks[3].Text)
	assert.Equal(t, []string{"one", "two"}, blocks[4].Items)
	assert.False(t, blocks[4].Ordered)
	assert.True(t, blocks[5].Ordered)
	assert.Equal(t, []string{"A", "B"}, blocks[6].Headers)
	assert.Equal(t, [][]string{{"1", "2"}}, blocks[6].Rows)
}

func TestMarkdownImageParagraph(t *testing.T) {
	path := writeFixture(t, "img.md", "![a diagram](fig.png \"Figure 1\")\n")

	b, err := ParseBook(path)
	require.NoError(t, err)

	blocks := b.Content.Chapters[0].Blocks
	require.Len(t, blocks, 1)
	assert.Equal(t, book.KindImage, blocks[0].Kind)
	assert.Equal(t, "fig.png", blocks[0].Src)
	assert.Equal(t, "a diagram", blocks[0].Alt)
	assert.Equal(t, "Figure 1", blocks[0].Caption)
}

func TestMarkdownFootnotes(t *testing.T) {
	src := "Some text with a note.[^1]\n\n[^1]: The note body.\n"
	path := writeFixture(t, "fn.md", src)

	b, err := ParseBook(path)
	require.NoError(t, err)

	var fn *book.Block
	for i := range b.Content.Chapters[0].Blocks {
		if b.Content.Chapters[0].Blocks[i].Kind == book.KindFootnote {
			fn = &b.Content.Chapters[0].Blocks[i]
		}
	}
	require.NotNil(t, fn)
	assert.Equal(t, "1", fn.NoteID)
	assert.Equal(t, "The note body.", fn.Text)
}

func TestMarkdownTaskList(t *testing.T) {
	src := "- [x] done item\n- [ ] open item\n"
	path := writeFixture(t, "tasks.md", src)

	b, err := ParseBook(path)
	require.NoError(t, err)

	blocks := b.Content.Chapters[0].Blocks
	require.Len(t, blocks, 1)
	require.Equal(t, book.KindList, blocks[0].Kind)
	assert.Equal(t, []string{"[x] done item", "[ ] open item"}, blocks[0].Items)
}

func TestSplitFrontmatterAbsent(t *testing.T) {
	meta, body := splitFrontmatter("no frontmatter here\n")
	assert.Empty(t, meta.Title)
	assert.Equal(t, "no frontmatter here\n", body)
}

func TestSplitFrontmatterQuotedValues(t *testing.T) {
	meta, _ := splitFrontmatter("---\ntitle: \"Quoted Title\"\n---\nbody")
	assert.Equal(t, "Quoted Title", meta.Title)
}
