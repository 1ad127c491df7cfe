// Package render prints outlines for people and other programs.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ddddddO/gtree"
	"github.com/dgallion1/docoutline/internal/outline"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatTree Format = "tree"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Write encodes o to w in the requested format.
func Write(w io.Writer, o *outline.Outline, format Format) error {
	switch format {
	case FormatTree, "":
		return Tree(w, o)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(o)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(o); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Tree draws the outline as a directory-style tree.
func Tree(w io.Writer, o *outline.Outline) error {
	root := gtree.NewRoot("outline")
	for _, g := range outline.Groups {
		addChapters(root.Add(string(g)), o.Chapters(g))
	}
	if err := gtree.OutputFromRoot(w, root); err != nil {
		return fmt.Errorf("render tree: %w", err)
	}
	return nil
}

// addChapters numbers each label; gtree merges siblings with identical text.
func addChapters(parent *gtree.Node, chapters []outline.Chapter) {
	for i, c := range chapters {
		addChapters(parent.Add(fmt.Sprintf("%d. %s", i+1, Label(c))), c.Sections)
	}
}

// Label is a one-line description of a chapter.
func Label(c outline.Chapter) string {
	if c.IsEmpty() {
		return "(empty)"
	}
	var b strings.Builder
	title := c.Title
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(title)
	if c.Path != "" {
		fmt.Fprintf(&b, " [%s]", c.Path)
	}
	if c.Draft {
		b.WriteString(" (draft)")
	}
	return b.String()
}
