package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/metcalfc/tome/internal/book"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Footnote),
)

func parseMarkdown(path string) (*book.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	meta, body := splitFrontmatter(string(data))
	content := markdownContent(body)

	// Title fallback chain: frontmatter, first level-1 heading, stem.
	if meta.Title == "" {
		if len(content.Chapters) > 0 {
			for _, b := range content.Chapters[0].Blocks {
				if b.Kind == book.KindHeading && b.Level == 1 {
					meta.Title = b.Text
					break
				}
				break
			}
		}
	}
	if meta.Title == "" {
		meta.Title = fileStem(path)
	}

	return &book.Book{
		Metadata:   meta,
		Content:    content,
		SourcePath: path,
		Format:     FormatMarkdown.Tag(),
	}, nil
}

// splitFrontmatter parses a leading ----delimited block as flat
// "key: value" lines. This is deliberately not full YAML; unknown keys
// are ignored and values keep only their surrounding quotes trimmed.
func splitFrontmatter(src string) (book.Metadata, string) {
	var meta book.Metadata

	if !strings.HasPrefix(src, "---") {
		return meta, src
	}
	end := strings.Index(src[3:], "---")
	if end < 0 {
		return meta, src
	}

	frontmatter := src[3 : 3+end]
	body := src[3+end+3:]

	for _, line := range strings.Split(frontmatter, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if value == "" {
			continue
		}

		switch key {
		case "title":
			meta.Title = value
		case "author", "authors":
			for _, a := range strings.Split(value, ",") {
				if t := strings.TrimSpace(a); t != "" {
					meta.Authors = append(meta.Authors, t)
				}
			}
		case "date", "published":
			meta.Published = value
		case "description", "summary":
			meta.Description = value
		case "tags", "subjects":
			for _, s := range strings.Split(value, ",") {
				if t := strings.TrimSpace(s); t != "" {
					meta.Subjects = append(meta.Subjects, t)
				}
			}
		case "lang", "language":
			meta.Language = value
		}
	}

	return meta, body
}

// markdownContent maps the document's block-level constructs 1:1 onto
// content blocks. The whole document is one chapter; Markdown has no
// native chapter concept.
func markdownContent(src string) book.Content {
	source := []byte(src)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var blocks []book.Block
	var toc []book.TocEntry

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = appendMarkdownNode(blocks, &toc, n, source)
	}

	ch := book.NewChapter("main", 0)
	ch.Blocks = blocks

	return book.Content{Chapters: []book.Chapter{ch}, Toc: toc}
}

func appendMarkdownNode(blocks []book.Block, toc *[]book.TocEntry, n ast.Node, source []byte) []book.Block {
	switch node := n.(type) {
	case *ast.Heading:
		txt := markdownText(node, source)
		if node.Level <= 3 {
			*toc = append(*toc, book.NewTocEntry(txt, fmt.Sprintf("heading-%d", len(blocks)), node.Level-1))
		}
		blocks = append(blocks, book.Heading(node.Level, txt))

	case *ast.Paragraph:
		if img := soleImage(node); img != nil {
			blocks = append(blocks, imageBlock(img, source))
			return blocks
		}
		if txt := markdownText(node, source); txt != "" {
			blocks = append(blocks, book.Paragraph(txt))
		}

	case *ast.TextBlock:
		if txt := markdownText(node, source); txt != "" {
			blocks = append(blocks, book.Paragraph(txt))
		}

	case *ast.Blockquote:
		var parts []string
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			if txt := markdownText(c, source); txt != "" {
				parts = append(parts, txt)
			}
		}
		blocks = append(blocks, book.Quote(strings.Join(parts, "\n"), ""))

	case *ast.FencedCodeBlock:
		lang := ""
		if l := node.Language(source); l != nil {
			lang = string(l)
		}
		blocks = append(blocks, book.Code(lang, linesText(node, source)))

	case *ast.CodeBlock:
		blocks = append(blocks, book.Code("", linesText(node, source)))

	case *ast.List:
		var items []string
		for li := node.FirstChild(); li != nil; li = li.NextSibling() {
			var parts []string
			for c := li.FirstChild(); c != nil; c = c.NextSibling() {
				if txt := markdownText(c, source); txt != "" {
					parts = append(parts, txt)
				}
			}
			items = append(items, strings.Join(parts, " "))
		}
		blocks = append(blocks, book.List(node.IsOrdered(), items))

	case *extast.Table:
		var headers []string
		var rows [][]string
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			var cells []string
			for cell := c.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, markdownText(cell, source))
			}
			if _, ok := c.(*extast.TableHeader); ok {
				headers = cells
			} else if len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
		blocks = append(blocks, book.Table(headers, rows))

	case *extast.FootnoteList:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			if fn, ok := c.(*extast.Footnote); ok {
				var parts []string
				for cc := fn.FirstChild(); cc != nil; cc = cc.NextSibling() {
					if txt := markdownText(cc, source); txt != "" {
						parts = append(parts, txt)
					}
				}
				blocks = append(blocks, book.Footnote(string(fn.Ref), strings.Join(parts, "\n")))
			}
		}

	case *ast.ThematicBreak:
		blocks = append(blocks, book.Separator())

	case *ast.HTMLBlock:
		if raw := linesText(node, source); strings.TrimSpace(raw) != "" {
			blocks = append(blocks, book.RawHTML(strings.TrimRight(raw, "\n")))
		}
	}

	return blocks
}

// soleImage returns the image when a paragraph holds exactly one
// image and nothing else.
func soleImage(p *ast.Paragraph) *ast.Image {
	img, ok := p.FirstChild().(*ast.Image)
	if !ok || p.ChildCount() != 1 {
		return nil
	}
	return img
}

func imageBlock(img *ast.Image, source []byte) book.Block {
	alt := ""
	if img.FirstChild() != nil {
		alt = markdownText(img, source)
	}
	return book.Image(string(img.Destination), alt, string(img.Title))
}

// markdownText renders the inline text of a node, keeping code spans
// in backticks and line-break semantics.
func markdownText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			} else if t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.CodeSpan:
			sb.WriteByte('`')
			for cc := t.FirstChild(); cc != nil; cc = cc.NextSibling() {
				if txt, ok := cc.(*ast.Text); ok {
					sb.Write(txt.Segment.Value(source))
				}
			}
			sb.WriteByte('`')
			return ast.WalkSkipChildren, nil
		case *extast.TaskCheckBox:
			if t.IsChecked {
				sb.WriteString("[x] ")
			} else {
				sb.WriteString("[ ] ")
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// linesText joins the raw source lines of a block node.
func linesText(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}
