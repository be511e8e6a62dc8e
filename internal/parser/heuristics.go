package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/metcalfc/tome/internal/book"
)

// Pure, deterministic structure inference shared by the PDF and
// plain-text paths. Heuristic misclassification is an accepted
// characteristic, not an error: these functions only promise to be
// side-effect free and to return the same answer for the same input.

// chapterMarkerRe matches lines that open a chapter-sized division:
// "Chapter 3", "PART IV", "Section 2", bare roman numerals with a
// following word, or "1. Title" style markers.
var chapterMarkerRe = regexp.MustCompile(`(?mi)^(?:chapter|part|section)\s+(?:\d+|[ivxlcdm]+)|^[ivxlcdm]+\.\s+\w|^\d+\.\s*[A-Z]`)

// pageBreakRe matches form feeds and runs of four or more newlines.
var pageBreakRe = regexp.MustCompile(`\f|\n{4,}`)

var structuralKeywords = []string{
	"chapter", "part", "section", "introduction", "conclusion",
	"appendix", "preface", "prologue", "epilogue",
}

// IsHeadingLike reports whether a text block reads like a heading.
func IsHeadingLike(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) == 0 || len(trimmed) > 120 {
		return false
	}
	if strings.Count(trimmed, "\n") >= 2 {
		return false
	}
	if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, ",") {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, kw := range structuralKeywords {
		if strings.HasPrefix(lower, kw) {
			return true
		}
	}

	var alpha, upper int
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			alpha++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if alpha > 0 && float64(upper)/float64(alpha) > 0.6 && len(trimmed) < 80 {
		return true
	}

	if len(trimmed) < 60 {
		words := strings.Fields(trimmed)
		if len(words) > 0 && len(words) <= 10 {
			capitalized := 0
			for _, w := range words {
				r := []rune(w)[0]
				if unicode.IsUpper(r) {
					capitalized++
				}
			}
			if float64(capitalized)/float64(len(words)) > 0.5 {
				return true
			}
		}
	}

	return false
}

// HeadingLevel assigns a level (1-6) to heading text.
func HeadingLevel(text string) int {
	lower := strings.ToLower(strings.TrimSpace(text))

	if strings.HasPrefix(lower, "part") || strings.HasPrefix(lower, "book") {
		return 1
	}
	if strings.HasPrefix(lower, "chapter") {
		return 2
	}
	if strings.HasPrefix(lower, "section") {
		return 3
	}

	allUpper := true
	hasAlpha := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasAlpha = true
			if !unicode.IsUpper(r) {
				allUpper = false
				break
			}
		}
	}
	if hasAlpha && allUpper {
		return 2
	}
	return 3
}

// IsArtifact reports whether text is a PDF rendering artifact worth
// dropping: bare page numbers, "page N" headers/footers, boilerplate
// like "confidential", or lines that are one character repeated.
func IsArtifact(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	if _, err := strconv.Atoi(trimmed); err == nil {
		return true
	}

	if len(trimmed) < 50 {
		lower := strings.ToLower(trimmed)
		if strings.Contains(lower, "page ") && strings.ContainsFunc(lower, unicode.IsDigit) {
			return true
		}
		if lower == "confidential" || lower == "draft" || strings.HasPrefix(trimmed, "©") {
			return true
		}
	}

	runes := []rune(trimmed)
	if len(runes) > 3 {
		repeated := true
		for i := 0; i+2 < len(runes); i++ {
			if runes[i] != runes[i+1] || runes[i+1] != runes[i+2] {
				repeated = false
				break
			}
		}
		if repeated {
			return true
		}
	}

	return false
}

// IsRomanNumeral reports whether s consists only of roman numeral
// characters.
func IsRomanNumeral(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'i', 'v', 'x', 'l', 'c', 'd', 'm':
		default:
			return false
		}
	}
	return true
}

// FindChapterStarts locates chapter boundary offsets in unstructured
// text. The result always begins with 0. A marker is accepted only if
// at least 50 characters precede its line and the offset is new. With
// zero or one accepted markers it falls back to form-feed / blank-run
// splits, but only when those yield between 2 and 99 segments.
func FindChapterStarts(text string) []int {
	starts := []int{0}
	for _, loc := range chapterMarkerRe.FindAllStringIndex(text, -1) {
		lineStart := strings.LastIndexByte(text[:loc[0]], '\n') + 1
		if lineStart > 50 && !containsInt(starts, lineStart) {
			starts = append(starts, lineStart)
		}
	}

	if len(starts) == 1 {
		breaks := []int{0}
		for _, loc := range pageBreakRe.FindAllStringIndex(text, -1) {
			breaks = append(breaks, loc[1])
		}
		if len(breaks) > 1 && len(breaks) < 100 {
			starts = breaks
		}
	}

	return starts
}

// ClassifyBlocks splits text on blank lines and classifies each
// paragraph as Heading or Paragraph. With filterArtifacts set (the PDF
// path) page numbers and rendering glitches are dropped. Paragraph
// whitespace is normalized to single spaces.
func ClassifyBlocks(text string, filterArtifacts bool) []book.Block {
	var blocks []book.Block

	for _, para := range strings.Split(text, "\n\n") {
		trimmed := strings.TrimSpace(para)
		if trimmed == "" {
			continue
		}

		if filterArtifacts {
			if len(trimmed) < 5 && strings.TrimFunc(trimmed, func(r rune) bool {
				return unicode.IsDigit(r) || unicode.IsSpace(r)
			}) == "" {
				continue
			}
			if IsArtifact(trimmed) {
				continue
			}
		}

		if IsHeadingLike(trimmed) {
			blocks = append(blocks, book.Heading(HeadingLevel(trimmed), trimmed))
			continue
		}

		normalized := strings.Join(strings.Fields(trimmed), " ")
		if normalized != "" {
			blocks = append(blocks, book.Paragraph(normalized))
		}
	}

	return blocks
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
