// Package content gives the outline builder access to chapter files under a
// content root: existence probes and title resolution.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
)

// Dir resolves chapter paths relative to a content root.
type Dir struct {
	fsys fs.FS
	log  *slog.Logger
}

// NewDir wraps fsys. Paths given to Exists and TitleFor are relative to its root.
func NewDir(fsys fs.FS, log *slog.Logger) *Dir {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Dir{fsys: fsys, log: log}
}

// OpenDir returns a Dir rooted at a directory on the local filesystem.
func OpenDir(root string, log *slog.Logger) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open content root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open content root: %s is not a directory", root)
	}
	return NewDir(os.DirFS(root), log), nil
}

// Exists reports whether p names a regular file. Invalid paths and stat
// failures count as missing.
func (d *Dir) Exists(p string) bool {
	name, err := clean(p)
	if err != nil {
		d.log.Debug("chapter path rejected", "path", p, "error", err)
		return false
	}
	info, err := fs.Stat(d.fsys, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			d.log.Debug("chapter probe failed", "path", p, "error", err)
		}
		return false
	}
	return info.Mode().IsRegular()
}

// clean maps a chapter path onto an fs.FS name. Absolute paths and paths
// escaping the root are rejected.
func clean(p string) (string, error) {
	name := path.Clean(filepath.ToSlash(p))
	if !fs.ValidPath(name) || name == "." {
		return "", fmt.Errorf("path %q is outside the content root: %w", p, fs.ErrInvalid)
	}
	return name, nil
}
