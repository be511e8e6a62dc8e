package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/metcalfc/tome/internal/book"
)

// defaultWordsPerMinute seeds the derived reading-time estimate.
// Callers with a configured reading speed recalculate.
const defaultWordsPerMinute = 250

// ParseBook parses the file at path into a canonical book. The result
// is owned by the caller; nothing is cached between calls.
func ParseBook(path string) (*book.Book, error) {
	format := DetectFormat(path)
	if !format.Supported() {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, format.Name(), path)
	}

	var (
		b   *book.Book
		err error
	)
	switch format {
	case FormatEPUB:
		b, err = parseEPUB(path)
	case FormatPDF:
		b, err = parsePDF(path)
	case FormatMarkdown:
		b, err = parseMarkdown(path)
	case FormatPlainText, FormatHTML:
		b, err = parseText(path, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse book %s: %w", path, err)
	}

	b.Metadata.WordCount = b.Content.WordCount()
	b.Metadata.CalculateReadingTime(defaultWordsPerMinute)
	return b, nil
}

// GetMetadata reads bibliographic fields only. EPUB and PDF have cheap
// metadata-only paths; other formats pay for a full parse and discard
// the content.
func GetMetadata(path string) (book.Metadata, error) {
	switch DetectFormat(path) {
	case FormatEPUB:
		return epubMetadataOnly(path)
	case FormatPDF:
		return pdfMetadataOnly(path)
	default:
		b, err := ParseBook(path)
		if err != nil {
			return book.Metadata{}, err
		}
		return b.Metadata, nil
	}
}

// fileStem returns the file name without its extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
