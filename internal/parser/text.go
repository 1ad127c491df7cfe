package parser

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// maxTextTitle caps the length of a first line used as a plain text title.
const maxTextTitle = 200

// TextParser handles plain text files. The first non-blank line is the title
// when it is short enough to be one.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &doctree.Document{Stem: doctree.StemOf(filename)}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) <= maxTextTitle {
			doc.Title = line
		}
		break
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return doc, nil
}
