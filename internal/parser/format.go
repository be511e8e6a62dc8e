// Package parser turns document files (EPUB, PDF, Markdown, plain
// text/HTML) into the canonical book model. Parsing is synchronous,
// stateless between calls, and safe to run concurrently across files.
package parser

import (
	"path/filepath"
	"strings"
)

// Format identifies a supported input format.
type Format int

const (
	FormatUnknown Format = iota
	FormatEPUB
	FormatPDF
	FormatMarkdown
	FormatPlainText
	FormatHTML
)

// DetectFormat maps a file path to a format by extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".epub":
		return FormatEPUB
	case ".pdf":
		return FormatPDF
	case ".md", ".markdown":
		return FormatMarkdown
	case ".txt", ".text":
		return FormatPlainText
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	default:
		return FormatUnknown
	}
}

// Name returns the display name of the format.
func (f Format) Name() string {
	switch f {
	case FormatEPUB:
		return "EPUB"
	case FormatPDF:
		return "PDF"
	case FormatMarkdown:
		return "Markdown"
	case FormatPlainText:
		return "Plain Text"
	case FormatHTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Tag returns the lowercase format tag stored on parsed books.
func (f Format) Tag() string {
	switch f {
	case FormatEPUB:
		return "epub"
	case FormatPDF:
		return "pdf"
	case FormatMarkdown:
		return "markdown"
	case FormatPlainText:
		return "txt"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// Supported reports whether a parser exists for the format.
func (f Format) Supported() bool {
	switch f {
	case FormatEPUB, FormatPDF, FormatMarkdown, FormatPlainText, FormatHTML:
		return true
	default:
		return false
	}
}

// SupportedExtensions lists the extensions DetectFormat recognizes.
func SupportedExtensions() []string {
	return []string{".epub", ".pdf", ".md", ".markdown", ".txt", ".text", ".html", ".htm", ".xhtml"}
}
