package content

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"time"

	"github.com/dgallion1/docoutline/internal/parser"
)

// TitleFor reads a chapter file and returns its display title. Files no
// parser handles are titled by their file name. Missing files fail with an
// error wrapping fs.ErrNotExist.
func (d *Dir) TitleFor(ctx context.Context, p string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := clean(p)
	if err != nil {
		return "", err
	}
	info, err := fs.Stat(d.fsys, name)
	if err != nil {
		return "", fmt.Errorf("stat chapter: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("chapter %s is not a regular file: %w", p, fs.ErrInvalid)
	}
	if !parser.IsSupportedExtension(name) {
		return path.Base(name), nil
	}
	prs, err := parser.ForFile(name)
	if err != nil {
		return "", err
	}

	start := time.Now()
	f, err := d.fsys.Open(name)
	if err != nil {
		return "", fmt.Errorf("open chapter: %w", err)
	}
	defer f.Close()

	doc, err := prs.Parse(f, name)
	if err != nil {
		return "", fmt.Errorf("read title of %s: %w", p, err)
	}
	title := doc.DisplayTitle()
	d.log.Debug("title resolved", "path", p, "title", title, "duration_ms", time.Since(start).Milliseconds())
	return title, nil
}
