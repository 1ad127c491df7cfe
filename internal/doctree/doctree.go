package doctree

import (
	"path/filepath"
	"strings"
)

// Document is what a parser learns about a chapter file.
type Document struct {
	Title    string     // Metadata title (front matter, <title>, PDF Info); empty if absent
	Stem     string     // File name without extension
	Headings []*Heading // Top-level headings
}

// Heading is a recursive node of the document's heading hierarchy.
type Heading struct {
	Title    string
	Level    int // 1 for h1; 0 for the synthetic root
	Children []*Heading
}

// DisplayTitle returns the metadata title, else the first top-level heading,
// else the file stem.
func (d *Document) DisplayTitle() string {
	if t := strings.TrimSpace(d.Title); t != "" {
		return t
	}
	for _, h := range d.Headings {
		if t := strings.TrimSpace(h.Title); t != "" {
			return t
		}
	}
	return d.Stem
}

// StemOf strips the directory and extension from a file name.
func StemOf(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// HeadingStack nests headings by level as they are encountered in reading order.
type HeadingStack struct {
	root  Heading
	stack []*Heading
}

// Push adds a heading below the nearest open heading of a lower level.
func (s *HeadingStack) Push(title string, level int) {
	if s.stack == nil {
		s.stack = []*Heading{&s.root}
	}
	// Pop until we find a parent with a lower level.
	for len(s.stack) > 1 && s.stack[len(s.stack)-1].Level >= level {
		s.stack = s.stack[:len(s.stack)-1]
	}
	h := &Heading{Title: title, Level: level}
	parent := s.stack[len(s.stack)-1]
	parent.Children = append(parent.Children, h)
	s.stack = append(s.stack, h)
}

// Headings returns the top-level headings pushed so far.
func (s *HeadingStack) Headings() []*Heading {
	return s.root.Children
}
