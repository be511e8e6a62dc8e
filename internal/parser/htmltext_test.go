package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metcalfc/tome/internal/book"
)

func TestRenderTextBasicStructure(t *testing.T) {
	src := `<html><body>
<h1>Title</h1>
<p>One paragraph.</p>
<blockquote>Quoted words.</blockquote>
<hr/>
<p>After the rule.</p>
</body></html>`

	got := RenderText(src, 0)
	want := "# Title\n\nOne paragraph.\n\n> Quoted words.\n\n---\n\nAfter the rule."
	assert.Equal(t, want, got)
}

func TestRenderTextSkipsScriptAndStyle(t *testing.T) {
	src := `<body><script>var x = 1;</script><style>p{color:red}</style><p>visible</p></body>`
	got := RenderText(src, 0)
	assert.Equal(t, "visible", got)
}

func TestRenderTextHeadingLevels(t *testing.T) {
	src := `<body><h2>Two</h2><h6>Six</h6></body>`
	got := RenderText(src, 0)
	assert.Equal(t, "## Two\n\n###### Six", got)
}

func TestRenderTextInlineMarkupFlattened(t *testing.T) {
	src := `<body><p>some <em>emphasized</em> and <strong>bold</strong> text</p></body>`
	got := RenderText(src, 0)
	assert.Equal(t, "some emphasized and bold text", got)
}

func TestRenderTextWraps(t *testing.T) {
	long := strings.Repeat("word ", 30)
	src := "<body><p>" + strings.TrimSpace(long) + "</p></body>"

	got := RenderText(src, 40)
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 40)
	}
	assert.Greater(t, strings.Count(got, "\n"), 0)
}

func TestWrapTextShortLinesUntouched(t *testing.T) {
	assert.Equal(t, "short line", wrapText("short line", 40))
}

func TestStripTags(t *testing.T) {
	got := stripTags(`<p>Tom &amp; Jerry &lt;3 &quot;cheese&quot;&nbsp;daily</p>`)
	assert.Equal(t, `Tom & Jerry <3 "cheese" daily`, got)
}

func TestExtractTaggedBlocks(t *testing.T) {
	src := `<html><body>
<script>ignore();</script>
<h1>Header</h1>
<p>First para.</p>
<p>Second para.</p>
</body></html>`

	blocks := extractTaggedBlocks(src)
	require.Len(t, blocks, 3)

	// Paragraphs come first in this fallback, then headings.
	assert.Equal(t, book.KindParagraph, blocks[0].Kind)
	assert.Equal(t, "First para.", blocks[0].Text)
	assert.Equal(t, "Second para.", blocks[1].Text)
	assert.Equal(t, book.KindHeading, blocks[2].Kind)
	assert.Equal(t, "Header", blocks[2].Text)
}

func TestExtractBodyBlocks(t *testing.T) {
	src := `<html><body><div>A long enough first chunk of text.

And a second chunk after a blank line.</div></body></html>`

	blocks := extractBodyBlocks(src)
	require.Len(t, blocks, 2)
	assert.Equal(t, book.KindParagraph, blocks[0].Kind)
}

func TestExtractBodyBlocksRejectsTiny(t *testing.T) {
	assert.Nil(t, extractBodyBlocks(`<body>hi</body>`))
	assert.Nil(t, extractBodyBlocks(`no body tag at all`))
}

func TestBlocksFromRendered(t *testing.T) {
	text := "## Section Two\n\nplain paragraph text here.\n\n> a quote\n\n---\n\nTHE SHOUTED HEADING"

	blocks := blocksFromRendered(text)
	require.Len(t, blocks, 5)

	assert.Equal(t, book.KindHeading, blocks[0].Kind)
	assert.Equal(t, 2, blocks[0].Level)
	assert.Equal(t, book.KindParagraph, blocks[1].Kind)
	assert.Equal(t, book.KindQuote, blocks[2].Kind)
	assert.Equal(t, "a quote", blocks[2].Text)
	assert.Equal(t, book.KindSeparator, blocks[3].Kind)
	assert.Equal(t, book.KindHeading, blocks[4].Kind)
	assert.Equal(t, 1, blocks[4].Level)
}

func TestLooksLikeShoutedHeading(t *testing.T) {
	assert.True(t, looksLikeShoutedHeading("PART THE FIRST"))
	assert.True(t, looksLikeShoutedHeading("1914"))
	assert.False(t, looksLikeShoutedHeading("Mixed Case"))
	assert.False(t, looksLikeShoutedHeading("ENDS WITH STOP."))
	assert.False(t, looksLikeShoutedHeading("OK"))
}
