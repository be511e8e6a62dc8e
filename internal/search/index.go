// Package search wraps a bleve full-text index over book content at
// block granularity: one indexed document per non-empty content block.
package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	_ "github.com/blevesearch/bleve/v2/search/highlight/highlighter/ansi"

	"github.com/metcalfc/tome/internal/book"
)

// Hit is one matching block.
type Hit struct {
	BookID       string
	Chapter      int
	Block        int
	ChapterTitle string
	Fragments    []string
	Score        float64
}

// Index is a full-text index over library books.
type Index struct {
	idx bleve.Index
}

// Open opens or creates an index at path.
func Open(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, indexMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("open search index %s: %w", path, err)
	}
	return &Index{idx: idx}, nil
}

// OpenMemory creates a throwaway in-memory index.
func OpenMemory() (*Index, error) {
	idx, err := bleve.NewMemOnly(indexMapping())
	if err != nil {
		return nil, fmt.Errorf("open in-memory index: %w", err)
	}
	return &Index{idx: idx}, nil
}

func indexMapping() *mapping.IndexMappingImpl {
	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name

	textField := bleve.NewTextFieldMapping()
	numField := bleve.NewNumericFieldMapping()

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("book_id", keywordField)
	doc.AddFieldMappingsAt("chapter_index", numField)
	doc.AddFieldMappingsAt("block_index", numField)
	doc.AddFieldMappingsAt("content", textField)
	doc.AddFieldMappingsAt("chapter_title", textField)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Close releases the index.
func (x *Index) Close() error { return x.idx.Close() }

// IndexBook adds every non-empty block of the book under the given
// library id. Indexing the same id again overwrites block documents
// in place.
func (x *Index) IndexBook(id string, b *book.Book) error {
	batch := x.idx.NewBatch()

	for ci := range b.Content.Chapters {
		ch := &b.Content.Chapters[ci]
		title := ch.Title
		if title == "" {
			title = fmt.Sprintf("Chapter %d", ci+1)
		}
		for bi := range ch.Blocks {
			content := strings.TrimSpace(ch.Blocks[bi].PlainText())
			if content == "" {
				continue
			}
			docID := fmt.Sprintf("%s/%d/%d", id, ci, bi)
			err := batch.Index(docID, map[string]interface{}{
				"book_id":       id,
				"chapter_index": ci,
				"block_index":   bi,
				"content":       content,
				"chapter_title": title,
			})
			if err != nil {
				return fmt.Errorf("index block %s: %w", docID, err)
			}
		}
	}

	if err := x.idx.Batch(batch); err != nil {
		return fmt.Errorf("index book %s: %w", id, err)
	}
	return nil
}

// RemoveBook deletes every block document for the library id.
func (x *Index) RemoveBook(id string) error {
	tq := bleve.NewTermQuery(id)
	tq.SetField("book_id")

	for {
		req := bleve.NewSearchRequestOptions(tq, 1000, 0, false)
		res, err := x.idx.Search(req)
		if err != nil {
			return fmt.Errorf("remove book %s: %w", id, err)
		}
		if len(res.Hits) == 0 {
			return nil
		}
		batch := x.idx.NewBatch()
		for _, hit := range res.Hits {
			batch.Delete(hit.ID)
		}
		if err := x.idx.Batch(batch); err != nil {
			return fmt.Errorf("remove book %s: %w", id, err)
		}
	}
}

// Search matches block content and chapter titles and returns up to
// limit hits with highlighted fragments.
func (x *Index) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 20
	}

	// Field-scoped queries keep match locations attached to the
	// fields, which the highlighter needs for fragments.
	cq := bleve.NewMatchQuery(query)
	cq.SetField("content")
	tq := bleve.NewMatchQuery(query)
	tq.SetField("chapter_title")
	q := bleve.NewDisjunctionQuery(cq, tq)

	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"book_id", "chapter_index", "block_index", "chapter_title"}
	req.Highlight = bleve.NewHighlightWithStyle("ansi")
	req.Highlight.AddField("content")

	res, err := x.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{Score: h.Score}
		if v, ok := h.Fields["book_id"].(string); ok {
			hit.BookID = v
		}
		if v, ok := h.Fields["chapter_index"].(float64); ok {
			hit.Chapter = int(v)
		}
		if v, ok := h.Fields["block_index"].(float64); ok {
			hit.Block = int(v)
		}
		if v, ok := h.Fields["chapter_title"].(string); ok {
			hit.ChapterTitle = v
		}
		hit.Fragments = h.Fragments["content"]
		hits = append(hits, hit)
	}
	return hits, nil
}

// DocCount reports the number of indexed blocks.
func (x *Index) DocCount() (uint64, error) {
	return x.idx.DocCount()
}
