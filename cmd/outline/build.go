package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/docoutline/internal/content"
	"github.com/dgallion1/docoutline/internal/markup"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/render"
)

type BuildCommand struct {
	File         string        `arg:"" help:"Outline file (.yaml, .yml, .md)." type:"existingfile"`
	Root         string        `help:"Content root for chapter paths. Defaults to the outline file's directory." type:"existingdir"`
	Format       string        `help:"Output format." enum:"tree,json,yaml" default:"tree" short:"f"`
	DropEmpty    bool          `help:"Drop placeholder chapters for unrecognized entries."`
	MaxDepth     int           `help:"Maximum section nesting depth." default:"32"`
	TitleTimeout time.Duration `help:"Per-chapter title resolution timeout (0 disables)." default:"5s"`
	Strict       bool          `help:"Exit non-zero when any entry was degraded."`
}

func (r *BuildCommand) Run(app *App) error {
	ctx := context.Background()
	log := app.Log.With("file", r.File)

	src, err := os.ReadFile(r.File)
	if err != nil {
		return fmt.Errorf("read outline: %w", err)
	}

	root := r.Root
	if root == "" {
		root = filepath.Dir(r.File)
	}
	dir, err := content.OpenDir(root, app.Log)
	if err != nil {
		return err
	}

	builder := outline.NewBuilder(dir, dir, app.Log,
		outline.WithMaxDepth(r.MaxDepth),
		outline.WithTitleTimeout(r.TitleTimeout),
		outline.WithDropEmpty(r.DropEmpty),
	)

	start := time.Now()
	o, err := markup.Build(ctx, builder, filepath.Base(r.File), src)
	if o == nil {
		return fmt.Errorf("parse %s: %w", r.File, err)
	}

	var issues outline.Errors
	if err != nil && !errors.As(err, &issues) {
		return err
	}
	for _, issue := range issues {
		log.Warn("outline issue", "location", issue.Location, "kind", issue.Kind, "error", issue.Err)
	}

	stats := o.Stats()
	log.Debug("outline built",
		"chapters", stats.Chapters,
		"drafts", stats.Drafts,
		"issues", len(issues),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err := render.Write(os.Stdout, o, render.Format(r.Format)); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}
	if r.Strict && len(issues) > 0 {
		return fmt.Errorf("%d outline issue(s)", len(issues))
	}
	return nil
}
