package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. The title comes from the Info dictionary and
// the headings from the document outline (bookmarks).
type PDFParser struct{}

func (p *PDFParser) Parse(r io.Reader, filename string) (doc *doctree.Document, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	// ledongthuc/pdf panics on some malformed files.
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, fmt.Errorf("parse pdf: %v", rec)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	doc = &doctree.Document{
		Stem:  doctree.StemOf(filename),
		Title: strings.TrimSpace(reader.Trailer().Key("Info").Key("Title").Text()),
	}
	doc.Headings = pdfHeadings(reader.Outline().Child, 1)

	return doc, nil
}

func pdfHeadings(items []pdflib.Outline, level int) []*doctree.Heading {
	var out []*doctree.Heading
	for _, item := range items {
		out = append(out, &doctree.Heading{
			Title:    strings.TrimSpace(item.Title),
			Level:    level,
			Children: pdfHeadings(item.Child, level+1),
		})
	}
	return out
}
