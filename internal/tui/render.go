package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/metcalfc/tome/internal/book"
)

// Renderer turns content blocks into styled terminal text.
type Renderer struct {
	Width int

	headingStyle   lipgloss.Style
	chapterStyle   lipgloss.Style
	quoteStyle     lipgloss.Style
	codeStyle      lipgloss.Style
	captionStyle   lipgloss.Style
	separatorStyle lipgloss.Style
	footnoteStyle  lipgloss.Style
	faintStyle     lipgloss.Style
}

// NewRenderer builds a renderer for the given width and accent color.
func NewRenderer(width int, accent string) *Renderer {
	if width < 20 {
		width = 20
	}
	return &Renderer{
		Width: width,

		headingStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(accent)),

		chapterStyle: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color(accent)),

		quoteStyle: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#AAAAAA")).
			PaddingLeft(2),

		codeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#88CC88")).
			PaddingLeft(2),

		captionStyle: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#888888")),

		separatorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),

		footnoteStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAFF")),

		faintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")),
	}
}

// RenderChapter renders a full chapter, blocks separated by blank lines.
func (r *Renderer) RenderChapter(ch *book.Chapter) string {
	var sb strings.Builder

	sb.WriteString(r.chapterStyle.Render(ch.DisplayTitle()))
	sb.WriteString("\n\n")

	for _, b := range ch.Blocks {
		line := r.RenderBlock(b)
		if line == "" {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// RenderBlock renders a single block. Every kind produces output; an
// unknown kind falls back to its plain text so nothing silently
// disappears from the page.
func (r *Renderer) RenderBlock(b book.Block) string {
	switch b.Kind {
	case book.KindParagraph:
		return lipgloss.NewStyle().Width(r.Width).Render(b.Text)

	case book.KindHeading:
		prefix := strings.Repeat("#", b.Level) + " "
		return r.headingStyle.Render(prefix + b.Text)

	case book.KindQuote:
		return r.quoteStyle.Width(r.Width).Render(b.Text)

	case book.KindCode:
		label := ""
		if b.Language != "" {
			label = r.faintStyle.Render(b.Language) + "\n"
		}
		return label + r.codeStyle.Render(b.Text)

	case book.KindImage:
		caption := b.Caption
		if caption == "" {
			caption = b.Alt
		}
		if caption == "" {
			caption = b.Src
		}
		if caption == "" {
			caption = "image"
		}
		return r.captionStyle.Render(fmt.Sprintf("[Image: %s]", caption))

	case book.KindList:
		var sb strings.Builder
		for i, item := range b.Items {
			if i > 0 {
				sb.WriteString("\n")
			}
			if b.Ordered {
				sb.WriteString(fmt.Sprintf("  %d. %s", i+1, item))
			} else {
				sb.WriteString("  • " + item)
			}
		}
		return sb.String()

	case book.KindTable:
		var sb strings.Builder
		if len(b.Headers) > 0 {
			sb.WriteString(r.headingStyle.Render(strings.Join(b.Headers, " | ")))
		}
		for _, row := range b.Rows {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(strings.Join(row, " | "))
		}
		return sb.String()

	case book.KindFootnote:
		return r.footnoteStyle.Width(r.Width).Render(fmt.Sprintf("[%s] %s", b.NoteID, b.Text))

	case book.KindSeparator:
		return r.separatorStyle.Render(strings.Repeat("─", min(r.Width, 40)))

	case book.KindRawHTML:
		return r.faintStyle.Render("[html omitted]")

	case book.KindBreak:
		return " "

	default:
		return b.PlainText()
	}
}
