package parser

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/metcalfc/tome/internal/book"
)

// textRenderWidth is the column width HTML input is normalized to
// before the plain-text rules run.
const textRenderWidth = 80

func parseText(path string, format Format) (*book.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	src := string(data)
	if format == FormatHTML {
		src = RenderText(src, textRenderWidth)
	}

	blocks := textBlocks(src)
	chapters := splitTextChapters(blocks)

	return &book.Book{
		Metadata:   book.Metadata{Title: fileStem(path)},
		Content:    book.Content{Chapters: chapters},
		SourcePath: path,
		Format:     format.Tag(),
	}, nil
}

// textBlocks groups lines into paragraphs at blank lines and promotes
// heading-looking lines. Heading lines coming out of the HTML
// normalizer keep their "#" level.
func textBlocks(src string) []book.Block {
	var blocks []book.Block
	var para strings.Builder

	flush := func() {
		if para.Len() > 0 {
			blocks = append(blocks, book.Paragraph(para.String()))
			para.Reset()
		}
	}

	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		if level, text, ok := hashHeading(trimmed); ok {
			flush()
			blocks = append(blocks, book.Heading(level, text))
			continue
		}

		if isTextHeading(trimmed) {
			flush()
			blocks = append(blocks, book.Heading(2, trimmed))
			continue
		}

		if para.Len() > 0 {
			para.WriteByte(' ')
		}
		para.WriteString(trimmed)
	}
	flush()

	return blocks
}

// hashHeading recognizes "#"-prefixed heading lines produced by the
// HTML normalizer.
func hashHeading(line string) (int, string, bool) {
	if !strings.HasPrefix(line, "#") {
		return 0, "", false
	}
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level > 6 || level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}
	text := strings.TrimSpace(line[level:])
	if text == "" {
		return 0, "", false
	}
	return level, text, true
}

// isTextHeading is the restricted plain-text heading variant: chapter
// keywords, a leading roman numeral, an "N."-style marker followed by
// one to nine more words, or a short all-caps line.
func isTextHeading(line string) bool {
	if len(line) > 80 {
		return false
	}
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ",") || strings.HasSuffix(line, ":") {
		return false
	}

	lower := strings.ToLower(line)
	if strings.HasPrefix(lower, "chapter ") || strings.HasPrefix(lower, "part ") || strings.HasPrefix(lower, "section ") {
		return true
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	if IsRomanNumeral(words[0]) {
		return true
	}

	marker := strings.TrimRight(words[0], ".:-")
	if marker != "" && (allDigits(marker) || IsRomanNumeral(marker)) {
		return len(words) > 1 && len(words) <= 10
	}

	if len(line) > 3 && strings.Contains(line, " ") {
		allUpper := true
		hasAlpha := false
		for _, r := range line {
			if unicode.IsLetter(r) {
				hasAlpha = true
				if !unicode.IsUpper(r) {
					allUpper = false
					break
				}
			}
		}
		if hasAlpha && allUpper {
			return true
		}
	}

	return false
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// splitTextChapters cuts the block stream at chapter-marker headings.
// A document without markers stays a single "Document" chapter; no TOC
// is built either way, matching the format's lack of native structure.
func splitTextChapters(blocks []book.Block) []book.Chapter {
	var cuts []int
	for i := range blocks {
		if blocks[i].Kind == book.KindHeading && isChapterMarker(blocks[i].Text) {
			cuts = append(cuts, i)
		}
	}

	if len(cuts) < 2 {
		ch := book.NewChapter("main", 0)
		ch.Title = "Document"
		ch.Blocks = blocks
		return []book.Chapter{ch}
	}

	// Anything before the first marker becomes a front-matter chapter.
	if cuts[0] != 0 {
		cuts = append([]int{0}, cuts...)
	}

	cuts = append(cuts, len(blocks))
	chapters := make([]book.Chapter, 0, len(cuts)-1)
	for i := 0; i+1 < len(cuts); i++ {
		ch := book.NewChapter(fmt.Sprintf("chapter-%d", i), i)
		if blocks[cuts[i]].Kind == book.KindHeading {
			ch.Title = blocks[cuts[i]].Text
		} else {
			ch.Title = "Front Matter"
		}
		ch.Blocks = blocks[cuts[i]:cuts[i+1]]
		chapters = append(chapters, ch)
	}
	return chapters
}

// isChapterMarker reports whether heading text opens a chapter-sized
// division.
func isChapterMarker(text string) bool {
	return chapterMarkerRe.MatchString(text)
}
