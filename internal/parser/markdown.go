package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// MarkdownParser handles Markdown files using goldmark. A YAML front matter
// block, when present, may supply the title.
type MarkdownParser struct{}

type frontMatter struct {
	Title string `yaml:"title"`
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := &doctree.Document{Stem: doctree.StemOf(filename)}

	meta, body, ok := splitFrontMatter(src)
	if ok {
		var fm frontMatter
		if err := yaml.Unmarshal(meta, &fm); err != nil {
			return nil, fmt.Errorf("parse front matter: %w", err)
		}
		doc.Title = fm.Title
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var headings doctree.HeadingStack
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		headings.Push(InlineText(h, body), h.Level)
	}
	doc.Headings = headings.Headings()

	return doc, nil
}

// splitFrontMatter separates a leading "---" delimited YAML block from the
// Markdown body.
func splitFrontMatter(src []byte) (meta, body []byte, ok bool) {
	if !bytes.HasPrefix(src, []byte("---\n")) && !bytes.HasPrefix(src, []byte("---\r\n")) {
		return nil, src, false
	}
	lines := bytes.SplitAfter(src, []byte("\n"))
	// Skip the opening "---" line.
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			return bytes.Join(lines[1:i], nil), bytes.Join(lines[i+1:], nil), true
		}
	}
	return nil, src, false
}

// InlineText returns the plain text of a Markdown block or inline node,
// including nested emphasis, code spans and link text.
func InlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(InlineText(c, src))
		}
	}
	return string(bytes.TrimSpace(buf.Bytes()))
}
