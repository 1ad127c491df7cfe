// Package summary reads outlines written as Markdown link lists:
//
//	# Front Matter
//	- [Preface](preface.md)
//
//	# Main Matter
//	- [Chapter 1](chapter1.md)
//	  - [Section 1.1](ch1-sec1.md)
//	- Chapter 2, not written yet
//
// A heading naming a group routes the lists after it to that group; lists
// before any such heading belong to the main matter.
package summary

import (
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Parse reads a Markdown summary into an outline.
func Parse(src []byte) *outline.Outline {
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	o := &outline.Outline{}
	for _, g := range outline.Groups {
		o.SetChapters(g, []outline.Chapter{})
	}

	group := outline.MainMatter
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if g, ok := groupFor(parser.InlineText(node, src)); ok {
				group = g
			}
		case *ast.List:
			chapters := o.Chapters(group)
			for _, l := range links(node, src) {
				chapters = append(chapters, outline.FromLink(l))
			}
			o.SetChapters(group, chapters)
		}
	}
	return o
}

func links(list *ast.List, src []byte) []outline.Link {
	var out []outline.Link
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		var l outline.Link
		seen := false
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				l.Sections = append(l.Sections, links(sub, src)...)
				continue
			}
			if !seen {
				l.Title, l.Path = entry(c, src)
				seen = true
			}
		}
		out = append(out, l)
	}
	return out
}

// entry reads the first link of a list item block, or its plain text when
// the item has no link.
func entry(block ast.Node, src []byte) (title, dest string) {
	for c := block.FirstChild(); c != nil; c = c.NextSibling() {
		if link, ok := c.(*ast.Link); ok {
			return parser.InlineText(link, src), string(link.Destination)
		}
	}
	return parser.InlineText(block, src), ""
}

func groupFor(heading string) (outline.Group, bool) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(heading))
	for _, g := range outline.Groups {
		if key == string(g) {
			return g, true
		}
	}
	return "", false
}
