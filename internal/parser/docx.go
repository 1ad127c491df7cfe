package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. The first paragraph styled "Title" supplies
// the document title; "Heading N" paragraphs form the heading tree.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	// go-docx needs a ReaderAt and the size.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	d, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	doc := &doctree.Document{Stem: doctree.StemOf(filename)}
	var headings doctree.HeadingStack

	for _, item := range d.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		style := docxStyle(para)
		switch {
		case style == "title":
			if doc.Title == "" {
				doc.Title = text
			}
		case strings.HasPrefix(style, "heading"):
			if level, err := strconv.Atoi(strings.TrimPrefix(style, "heading")); err == nil && level >= 1 && level <= 6 {
				headings.Push(text, level)
			}
		}
	}
	doc.Headings = headings.Headings()

	return doc, nil
}

// docxStyle returns the paragraph style lowercased with spaces removed, so
// "Heading 1" and "Heading1" compare equal.
func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
