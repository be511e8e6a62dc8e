package book

import "strings"

// BlockKind discriminates the closed set of content block variants.
// Consumers must switch exhaustively and keep an explicit default arm
// so that a future variant degrades instead of breaking them.
type BlockKind string

const (
	KindParagraph BlockKind = "paragraph"
	KindHeading   BlockKind = "heading"
	KindQuote     BlockKind = "quote"
	KindCode      BlockKind = "code"
	KindImage     BlockKind = "image"
	KindList      BlockKind = "list"
	KindTable     BlockKind = "table"
	KindFootnote  BlockKind = "footnote"
	KindSeparator BlockKind = "separator"
	KindRawHTML   BlockKind = "raw_html"
	KindBreak     BlockKind = "break"
)

// Block is one typed unit of chapter content. Kind selects which
// fields are meaningful; the rest stay zero.
type Block struct {
	Kind BlockKind `json:"type"`

	// Paragraph, Heading, Quote, Footnote
	Text   string      `json:"text,omitempty"`
	Styles []StyleSpan `json:"styles,omitempty"`

	// Heading
	Level int `json:"level,omitempty"`

	// Quote
	Attribution string `json:"attribution,omitempty"`

	// Code
	Language string `json:"language,omitempty"`

	// Image. Data never serializes; only Src and the caption fields do.
	Src     string `json:"src,omitempty"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
	Data    []byte `json:"-"`

	// List
	Ordered bool     `json:"ordered,omitempty"`
	Items   []string `json:"items,omitempty"`

	// Table
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`

	// Footnote
	NoteID string `json:"note_id,omitempty"`

	// RawHTML
	HTML string `json:"html,omitempty"`
}

// StyleSpan marks a styled range of a paragraph's text.
type StyleSpan struct {
	Start int   `json:"start"`
	End   int   `json:"end"`
	Style Style `json:"style"`
}

// Style is the kind of inline styling a span carries.
type Style string

const (
	StyleBold          Style = "bold"
	StyleItalic        Style = "italic"
	StyleUnderline     Style = "underline"
	StyleStrikethrough Style = "strikethrough"
	StyleCode          Style = "code"
	StyleLink          Style = "link"
)

// Paragraph creates a paragraph block.
func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

// Heading creates a heading block. Level is clamped to 1..6.
func Heading(level int, text string) Block {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Block{Kind: KindHeading, Level: level, Text: text}
}

// Quote creates a blockquote.
func Quote(text, attribution string) Block {
	return Block{Kind: KindQuote, Text: text, Attribution: attribution}
}

// Code creates a code block. Language may be empty.
func Code(language, code string) Block {
	return Block{Kind: KindCode, Language: language, Text: code}
}

// Image creates an image block.
func Image(src, alt, caption string) Block {
	return Block{Kind: KindImage, Src: src, Alt: alt, Caption: caption}
}

// List creates a list block.
func List(ordered bool, items []string) Block {
	return Block{Kind: KindList, Ordered: ordered, Items: items}
}

// Table creates a table block.
func Table(headers []string, rows [][]string) Block {
	return Block{Kind: KindTable, Headers: headers, Rows: rows}
}

// Footnote creates a footnote block.
func Footnote(id, text string) Block {
	return Block{Kind: KindFootnote, NoteID: id, Text: text}
}

// Separator creates a horizontal-rule block.
func Separator() Block {
	return Block{Kind: KindSeparator}
}

// RawHTML creates a raw markup block.
func RawHTML(html string) Block {
	return Block{Kind: KindRawHTML, HTML: html}
}

// Break creates an empty-space block.
func Break() Block {
	return Block{Kind: KindBreak}
}

// PlainText returns the readable text content of the block. Separator
// and Break are empty; unknown kinds fall back to the Text field.
func (b *Block) PlainText() string {
	switch b.Kind {
	case KindParagraph, KindHeading, KindQuote, KindFootnote:
		return b.Text
	case KindCode:
		return b.Text
	case KindImage:
		if b.Caption != "" {
			return b.Caption
		}
		return b.Alt
	case KindList:
		return strings.Join(b.Items, "\n")
	case KindTable:
		var sb strings.Builder
		sb.WriteString(strings.Join(b.Headers, " | "))
		for _, row := range b.Rows {
			sb.WriteByte('\n')
			sb.WriteString(strings.Join(row, " | "))
		}
		return sb.String()
	case KindRawHTML:
		return b.HTML
	case KindSeparator, KindBreak:
		return ""
	default:
		return b.Text
	}
}

// WordCount returns the number of words in the block's text content.
func (b *Block) WordCount() int {
	return len(strings.Fields(b.PlainText()))
}

// IsHeading reports whether the block is a heading.
func (b *Block) IsHeading() bool { return b.Kind == KindHeading }

// IsParagraph reports whether the block is a paragraph.
func (b *Block) IsParagraph() bool { return b.Kind == KindParagraph }
