package parser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/metcalfc/tome/internal/book"
)

// RenderText converts markup to block-level plain text: one blank line
// between blocks, headings prefixed with "#" per level, blockquotes
// with "> ", and horizontal rules as "---". width > 0 wraps paragraph
// lines; pass 0 to keep each block on one line.
func RenderText(src string, width int) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return ""
	}

	var blocks []string
	var pending strings.Builder

	flush := func() {
		if t := strings.TrimSpace(pending.String()); t != "" {
			blocks = append(blocks, t)
		}
		pending.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				if pending.Len() > 0 {
					pending.WriteByte(' ')
				}
				pending.WriteString(t)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "head", "noscript":
				return
			case "h1", "h2", "h3", "h4", "h5", "h6":
				flush()
				level := int(n.Data[1] - '0')
				if t := inlineText(n); t != "" {
					blocks = append(blocks, strings.Repeat("#", level)+" "+t)
				}
				return
			case "blockquote":
				flush()
				if t := inlineText(n); t != "" {
					blocks = append(blocks, "> "+t)
				}
				return
			case "pre":
				flush()
				if t := strings.TrimRight(rawText(n), "\n"); strings.TrimSpace(t) != "" {
					blocks = append(blocks, t)
				}
				return
			case "hr":
				flush()
				blocks = append(blocks, "---")
				return
			case "br":
				pending.WriteByte('\n')
				return
			case "p", "div", "li", "dt", "dd", "figcaption", "tr", "section", "article":
				flush()
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				flush()
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	flush()

	if width > 0 {
		for i, b := range blocks {
			blocks[i] = wrapText(b, width)
		}
	}

	return strings.Join(blocks, "\n\n")
}

// inlineText collects the trimmed text of all descendants.
func inlineText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// rawText collects descendant text without whitespace normalization.
func rawText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// wrapText greedily wraps text at the given column width. Lines
// already shorter than width pass through untouched.
func wrapText(text string, width int) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if len(line) <= width {
			out = append(out, line)
			continue
		}
		var cur strings.Builder
		for _, word := range strings.Fields(line) {
			if cur.Len() > 0 && cur.Len()+1+len(word) > width {
				out = append(out, cur.String())
				cur.Reset()
			}
			if cur.Len() > 0 {
				cur.WriteByte(' ')
			}
			cur.WriteString(word)
		}
		if cur.Len() > 0 {
			out = append(out, cur.String())
		}
	}
	return strings.Join(out, "\n")
}

var (
	scriptRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	pTagRe   = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	hTagRe   = regexp.MustCompile(`(?is)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	bodyRe   = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&#x27;", "'",
	"&#8220;", "“",
	"&#8221;", "”",
	"&#8216;", "‘",
	"&#8217;", "’",
	"&#8212;", "—",
	"&#8211;", "–",
	"&#160;", " ",
)

// stripTags removes markup and decodes the common HTML entities.
func stripTags(src string) string {
	return entityReplacer.Replace(tagRe.ReplaceAllString(src, ""))
}

// extractTaggedBlocks is the regex fallback when full conversion comes
// back empty: scripts and styles are removed, then <p> and <h1>..<h6>
// contents become blocks in source order within each kind.
func extractTaggedBlocks(src string) []book.Block {
	cleaned := styleRe.ReplaceAllString(scriptRe.ReplaceAllString(src, ""), "")

	var blocks []book.Block
	for _, m := range pTagRe.FindAllStringSubmatch(cleaned, -1) {
		text := strings.TrimSpace(stripTags(m[1]))
		if len(text) > 1 {
			blocks = append(blocks, book.Paragraph(text))
		}
	}
	for _, m := range hTagRe.FindAllStringSubmatch(cleaned, -1) {
		text := strings.TrimSpace(stripTags(m[2]))
		if text != "" {
			level := int(m[1][0] - '0')
			blocks = append(blocks, book.Heading(level, text))
		}
	}
	return blocks
}

// extractBodyBlocks is the last-ditch fallback: strip every tag inside
// <body> and split on blank lines.
func extractBodyBlocks(src string) []book.Block {
	cleaned := styleRe.ReplaceAllString(scriptRe.ReplaceAllString(src, ""), "")
	m := bodyRe.FindStringSubmatch(cleaned)
	if m == nil {
		return nil
	}
	text := strings.TrimSpace(stripTags(m[1]))
	if len(text) <= 10 {
		return nil
	}

	var blocks []book.Block
	for _, para := range strings.Split(text, "\n\n") {
		if p := strings.TrimSpace(para); len(p) > 1 {
			blocks = append(blocks, book.Paragraph(p))
		}
	}
	return blocks
}

// blocksFromRendered classifies RenderText output into blocks: "#"
// prefixes become headings, "> " quotes, "---"/"***" separators, short
// single-line all-caps text a level-1 heading, everything else a
// paragraph.
func blocksFromRendered(text string) []book.Block {
	var blocks []book.Block

	for _, para := range strings.Split(text, "\n\n") {
		trimmed := strings.TrimSpace(para)
		if trimmed == "" {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "#"):
			level := 0
			for level < len(trimmed) && trimmed[level] == '#' {
				level++
			}
			if level <= 6 {
				if t := strings.TrimSpace(trimmed[level:]); t != "" {
					blocks = append(blocks, book.Heading(level, t))
					continue
				}
			}
			blocks = append(blocks, book.Paragraph(trimmed))
		case strings.HasPrefix(trimmed, ">"):
			blocks = append(blocks, book.Quote(strings.TrimSpace(strings.TrimLeft(trimmed, "> ")), ""))
		case trimmed == "---" || trimmed == "***" || trimmed == "* * *":
			blocks = append(blocks, book.Separator())
		case looksLikeShoutedHeading(trimmed):
			blocks = append(blocks, book.Heading(1, trimmed))
		default:
			blocks = append(blocks, book.Paragraph(trimmed))
		}
	}

	return blocks
}

// looksLikeShoutedHeading matches short single-line text with no
// lowercase letters and no sentence punctuation.
func looksLikeShoutedHeading(text string) bool {
	if len(text) <= 2 || len(text) >= 100 {
		return false
	}
	if strings.Contains(text, ".") || strings.Contains(text, "\n") {
		return false
	}
	for _, r := range text {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
