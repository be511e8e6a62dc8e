package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"

	"github.com/metcalfc/tome/internal/book"
)

// epubRenderWidth keeps spine documents on long single lines so block
// classification sees whole paragraphs. 0 disables wrapping.
const epubRenderWidth = 0

// minConvertedLen is the threshold under which a converted spine item
// is treated as empty and the regex fallback kicks in.
const minConvertedLen = 20

func parseEPUB(path string) (*book.Book, error) {
	rc, err := epub.OpenReader(path)
	if err != nil {
		return nil, &ContainerError{Path: path, Err: err}
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, &ContainerError{Path: path, Err: errors.New("no rootfiles in container")}
	}
	rf := rc.Rootfiles[0]

	meta := epubMetadata(rf, path)

	var chapters []book.Chapter
	var toc []book.TocEntry

	for _, ref := range rf.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}

		blocks := spineItemBlocks(string(data))

		order := len(chapters)
		ch := book.NewChapter(ref.Item.ID, order)
		ch.Blocks = blocks
		for i := range blocks {
			if blocks[i].Kind == book.KindHeading && blocks[i].Level <= 2 {
				ch.Title = blocks[i].Text
				break
			}
		}
		chapters = append(chapters, ch)

		// The navigation document is deliberately not parsed; the TOC
		// is a flat list in spine order.
		toc = append(toc, book.NewTocEntry(fmt.Sprintf("Section %d", order+1), ref.Item.ID, 0))
	}

	return &book.Book{
		Metadata:   meta,
		Content:    book.Content{Chapters: chapters, Toc: toc},
		SourcePath: path,
		Format:     FormatEPUB.Tag(),
	}, nil
}

// spineItemBlocks recovers blocks from one spine document through the
// ordered fallback chain: full conversion, regex tag extraction, raw
// body split.
func spineItemBlocks(src string) []book.Block {
	return runChain(src, []blockStrategy{
		{name: "html-to-text", run: func(s string) []book.Block {
			text := RenderText(s, epubRenderWidth)
			if len(strings.TrimSpace(text)) < minConvertedLen {
				return nil
			}
			return blocksFromRendered(text)
		}},
		{name: "tag-extract", run: extractTaggedBlocks},
		{name: "body-split", run: extractBodyBlocks},
	})
}

func epubMetadata(rf *epub.Rootfile, path string) book.Metadata {
	meta := book.Metadata{
		Title:       strings.TrimSpace(rf.Title),
		Publisher:   strings.TrimSpace(rf.Publisher),
		Language:    strings.TrimSpace(rf.Language),
		Description: strings.TrimSpace(rf.Description),
		ISBN:        strings.TrimSpace(rf.Identifier),
	}
	if meta.Title == "" {
		meta.Title = fileStem(path)
	}
	if creator := strings.TrimSpace(rf.Creator); creator != "" {
		meta.Authors = []string{creator}
	}
	if subject := strings.TrimSpace(rf.Subject); subject != "" {
		for _, s := range strings.Split(subject, ",") {
			if t := strings.TrimSpace(s); t != "" {
				meta.Subjects = append(meta.Subjects, t)
			}
		}
	}
	for _, ev := range rf.Event {
		if date := strings.TrimSpace(ev.Date); date != "" {
			meta.Published = date
			break
		}
	}

	if data, mime := epubCover(rf); data != nil {
		meta.Cover = data
		meta.CoverMime = mime
	}

	return meta
}

// epubCover looks for a manifest image whose ID mentions "cover".
// Best effort; books without one simply have no cover.
func epubCover(rf *epub.Rootfile) ([]byte, string) {
	for i := range rf.Manifest.Items {
		item := &rf.Manifest.Items[i]
		if !strings.Contains(strings.ToLower(item.ID), "cover") {
			continue
		}
		if !strings.HasPrefix(item.MediaType, "image/") {
			continue
		}
		r, err := item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil || len(data) == 0 {
			continue
		}
		return data, item.MediaType
	}
	return nil, ""
}

// epubMetadataOnly reads bibliographic fields without walking the
// spine.
func epubMetadataOnly(path string) (book.Metadata, error) {
	rc, err := epub.OpenReader(path)
	if err != nil {
		return book.Metadata{}, &ContainerError{Path: path, Err: err}
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return book.Metadata{}, &ContainerError{Path: path, Err: errors.New("no rootfiles in container")}
	}
	return epubMetadata(rc.Rootfiles[0], path), nil
}
