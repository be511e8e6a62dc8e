package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePDF renders a real PDF so the extraction path sees an honest
// content stream, not a synthetic one.
func writePDF(t *testing.T, title, author string, pages []string) string {
	t.Helper()

	doc := gofpdf.New("P", "mm", "A4", "")
	if title != "" {
		doc.SetTitle(title, false)
	}
	if author != "" {
		doc.SetAuthor(author, false)
	}
	doc.SetFont("Helvetica", "", 12)
	for _, page := range pages {
		doc.AddPage()
		doc.MultiCell(180, 6, page, "", "L", false)
	}

	path := filepath.Join(t.TempDir(), "test.pdf")
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

func TestParsePDFMetadata(t *testing.T) {
	path := writePDF(t, "A Study in Tests", "Arthur Author", []string{
		"Some body text that fills the single page of this document.",
	})

	b, err := ParseBook(path)
	require.NoError(t, err)

	assert.Equal(t, "pdf", b.Format)
	assert.Equal(t, "A Study in Tests", b.Metadata.Title)
	assert.Equal(t, []string{"Arthur Author"}, b.Metadata.Authors)
	require.NotEmpty(t, b.Content.Chapters)
}

func TestParsePDFTitleFallsBackToStem(t *testing.T) {
	path := writePDF(t, "", "", []string{"page text without any metadata set"})

	b, err := ParseBook(path)
	require.NoError(t, err)
	assert.Equal(t, "test", b.Metadata.Title)
}

func TestParsePDFUnmarkedStaysTogether(t *testing.T) {
	path := writePDF(t, "", "", []string{
		"The first page has ordinary prose with no chapter markers on it at all.",
		"The second page continues that prose without any marker either.",
	})

	b, err := ParseBook(path)
	require.NoError(t, err)

	// No chapter markers means no artificial splits.
	assert.Len(t, b.Content.Chapters, 1)
}

func TestParsePDFChapterOrder(t *testing.T) {
	path := writePDF(t, "", "", []string{"one page of text to extract"})

	b, err := ParseBook(path)
	require.NoError(t, err)
	for i, ch := range b.Content.Chapters {
		assert.Equal(t, i, ch.Order)
	}
}

func TestParsePDFCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 truncated garbage"), 0o644))

	_, err := ParseBook(path)
	require.Error(t, err)

	var ce *ContainerError
	assert.ErrorAs(t, err, &ce)
}

func TestParsePDFZeroByte(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := ParseBook(path)
	require.Error(t, err)
}

func TestPDFMetadataOnly(t *testing.T) {
	path := writePDF(t, "Meta Only", "Nobody", []string{"body"})

	meta, err := GetMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, "Meta Only", meta.Title)
	assert.Zero(t, meta.WordCount)
}

func TestParsePDFDate(t *testing.T) {
	assert.Equal(t, "2019-07-04", parsePDFDate("D:20190704120000Z"))
	assert.Equal(t, "2019-07", parsePDFDate("D:201907"))
	assert.Equal(t, "2019", parsePDFDate("D:2019"))
	assert.Equal(t, "", parsePDFDate("D:19"))
	assert.Equal(t, "1999-12-31", parsePDFDate("19991231"))
}

func TestPDFPlaceholderContent(t *testing.T) {
	c := pdfPlaceholderContent(12)
	require.Len(t, c.Chapters, 1)
	assert.Equal(t, "Document", c.Chapters[0].Title)

	c = pdfPlaceholderContent(35)
	require.Len(t, c.Chapters, 4)
	assert.Equal(t, "Pages 1-10", c.Chapters[0].Title)
	assert.Equal(t, "Pages 31-35", c.Chapters[3].Title)

	c = pdfPlaceholderContent(0)
	require.Len(t, c.Chapters, 1)
	assert.NotEmpty(t, c.Chapters[0].Blocks)
}
