package markup

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/summary"
)

// IsSummary reports whether filename is a Markdown summary rather than YAML.
func IsSummary(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// Build reads an outline file and builds its chapters. A nil outline means
// the file itself could not be parsed. A non-nil outline may come with an
// outline.Errors value listing degraded nodes.
func Build(ctx context.Context, b *outline.Builder, filename string, src []byte) (*outline.Outline, error) {
	if IsSummary(filename) {
		return summary.Parse(src), nil
	}
	root, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return b.BuildOutline(ctx, root)
}
