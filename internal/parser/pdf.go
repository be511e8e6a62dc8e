package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/metcalfc/tome/internal/book"
)

func parsePDF(path string) (*book.Book, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &ContainerError{Path: path, Err: err}
	}
	defer f.Close()

	meta := pdfMetadata(r, path)

	text := extractPDFText(r)
	var content book.Content
	if strings.TrimSpace(text) != "" {
		content = pdfTextContent(text)
	} else {
		// Extraction came back empty (scanned or image-only document).
		// Never drop the book: emit page-bucketed placeholder chapters
		// the reader can see and understand.
		content = pdfPlaceholderContent(r.NumPage())
	}

	return &book.Book{
		Metadata:   meta,
		Content:    content,
		SourcePath: path,
		Format:     FormatPDF.Tag(),
	}, nil
}

// extractPDFText pulls plain text from every page. An empty string
// means the primary strategy failed and the caller should fall back.
// The underlying reader panics on some malformed content streams, so
// a page that blows up is treated the same as an unreadable page.
func extractPDFText(r *pdf.Reader) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(pageText)
	}
	return sb.String()
}

// pdfTextContent segments extracted text into chapters and classifies
// each segment into blocks.
func pdfTextContent(text string) book.Content {
	var chapters []book.Chapter
	var toc []book.TocEntry

	starts := FindChapterStarts(text)
	starts = append(starts, len(text))

	for i := 0; i+1 < len(starts); i++ {
		chunk := text[starts[i]:starts[i+1]]
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		blocks := ClassifyBlocks(chunk, true)
		if len(blocks) == 0 {
			continue
		}

		order := len(chapters)
		ch := book.NewChapter(fmt.Sprintf("chapter-%d", order), order)
		ch.Title = segmentTitle(blocks, order)
		ch.Blocks = blocks

		toc = append(toc, book.NewTocEntry(ch.Title, ch.ID, 0))
		chapters = append(chapters, ch)
	}

	if len(chapters) == 0 {
		ch := book.NewChapter("main", 0)
		ch.Title = "Document"
		ch.Blocks = ClassifyBlocks(text, true)
		if len(ch.Blocks) == 0 {
			ch.Blocks = []book.Block{book.Paragraph(strings.TrimSpace(text))}
		}
		chapters = append(chapters, ch)
	}

	return book.Content{Chapters: chapters, Toc: toc}
}

// segmentTitle picks a chapter title: the first detected heading, else
// the first line of the first paragraph when it is short enough, else
// a positional name.
func segmentTitle(blocks []book.Block, order int) string {
	for i := range blocks {
		if blocks[i].Kind == book.KindHeading {
			return blocks[i].Text
		}
	}
	for i := range blocks {
		if blocks[i].Kind != book.KindParagraph || blocks[i].Text == "" {
			continue
		}
		firstLine, _, _ := strings.Cut(blocks[i].Text, "\n")
		if len(firstLine) < 100 {
			return firstLine
		}
		break
	}
	return fmt.Sprintf("Section %d", order+1)
}

// pdfPlaceholderContent buckets pages into chapters with explanatory
// placeholder paragraphs: a single chapter up to 20 pages, otherwise
// groups of 10.
func pdfPlaceholderContent(pageCount int) book.Content {
	var chapters []book.Chapter
	var toc []book.TocEntry

	if pageCount > 0 {
		pagesPerChapter := pageCount
		if pageCount > 20 {
			pagesPerChapter = 10
		}
		numChapters := (pageCount + pagesPerChapter - 1) / pagesPerChapter

		for i := 0; i < numChapters; i++ {
			startPage := i*pagesPerChapter + 1
			endPage := (i + 1) * pagesPerChapter
			if endPage > pageCount {
				endPage = pageCount
			}

			title := "Document"
			if numChapters > 1 {
				title = fmt.Sprintf("Pages %d-%d", startPage, endPage)
			}

			ch := book.NewChapter(fmt.Sprintf("pages-%d-%d", startPage, endPage), i)
			ch.Title = title
			ch.Blocks = []book.Block{book.Paragraph(fmt.Sprintf(
				"[PDF content from pages %d to %d. Text extraction may be limited for this document.]",
				startPage, endPage))}

			toc = append(toc, book.NewTocEntry(title, ch.ID, 0))
			chapters = append(chapters, ch)
		}
	}

	if len(chapters) == 0 {
		ch := book.NewChapter("main", 0)
		ch.Title = "Document"
		ch.Blocks = []book.Block{book.Paragraph(
			"[PDF text extraction failed. The document may be scanned or have complex formatting.]")}
		chapters = append(chapters, ch)
	}

	return book.Content{Chapters: chapters, Toc: toc}
}

func pdfMetadata(r *pdf.Reader, path string) book.Metadata {
	var meta book.Metadata

	info := r.Trailer().Key("Info")
	if info.Kind() == pdf.Dict {
		if title := pdfString(info, "Title"); title != "" {
			meta.Title = title
		}
		if author := pdfString(info, "Author"); author != "" {
			meta.Authors = []string{author}
		}
		if subject := pdfString(info, "Subject"); subject != "" {
			meta.Description = subject
		}
		if producer := pdfString(info, "Producer"); producer != "" {
			meta.Publisher = producer
		}
		if date := pdfString(info, "CreationDate"); date != "" {
			meta.Published = parsePDFDate(date)
		}
		if keywords := pdfString(info, "Keywords"); keywords != "" {
			for _, s := range strings.FieldsFunc(keywords, func(r rune) bool {
				return r == ',' || r == ';'
			}) {
				if t := strings.TrimSpace(s); t != "" {
					meta.Subjects = append(meta.Subjects, t)
				}
			}
		}
	}

	if meta.Title == "" {
		meta.Title = fileStem(path)
	}
	return meta
}

// pdfString reads a string entry from a PDF dictionary. Text handles
// the UTF-16 encoding Info strings often use; control characters are
// dropped afterwards.
func pdfString(dict pdf.Value, key string) string {
	v := dict.Key(key)
	if v.Kind() != pdf.String {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, v.Text())
	return strings.TrimSpace(cleaned)
}

// parsePDFDate turns "D:YYYYMMDDHHmmSS" into a readable date, keeping
// as much precision as the digits allow: year, then year-month, then
// year-month-day. Returns "" when even the year is missing.
func parsePDFDate(date string) string {
	cleaned := strings.TrimPrefix(date, "D:")
	switch {
	case len(cleaned) >= 8:
		return cleaned[0:4] + "-" + cleaned[4:6] + "-" + cleaned[6:8]
	case len(cleaned) >= 6:
		return cleaned[0:4] + "-" + cleaned[4:6]
	case len(cleaned) >= 4:
		return cleaned[0:4]
	default:
		return ""
	}
}

// pdfMetadataOnly reads the Info dictionary without extracting text.
func pdfMetadataOnly(path string) (book.Metadata, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return book.Metadata{}, &ContainerError{Path: path, Err: err}
	}
	defer f.Close()
	return pdfMetadata(r, path), nil
}
