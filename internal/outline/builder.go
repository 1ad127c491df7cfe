package outline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
)

// DefaultMaxDepth bounds chapter nesting unless overridden with WithMaxDepth.
const DefaultMaxDepth = 32

// UntitledTitle replaces a record title that is present but not a string.
const UntitledTitle = "Untitled"

// FileSystem answers whether a bare string names an existing chapter file.
// Implementations treat probe failures (permissions, bad paths) as false.
type FileSystem interface {
	Exists(path string) bool
}

// TitleResolver produces a display title for an existing chapter file.
type TitleResolver interface {
	TitleFor(ctx context.Context, path string) (string, error)
}

// Builder turns generic nodes into chapters.
type Builder struct {
	fs           FileSystem
	titles       TitleResolver
	log          *slog.Logger
	maxDepth     int
	titleTimeout time.Duration
	dropEmpty    bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithMaxDepth limits chapter nesting. Nodes below the limit become empty
// chapters and are reported with KindDepth.
func WithMaxDepth(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxDepth = n
		}
	}
}

// WithTitleTimeout bounds each title resolution. Zero disables the bound.
func WithTitleTimeout(d time.Duration) Option {
	return func(b *Builder) { b.titleTimeout = d }
}

// WithDropEmpty removes the empty chapters substituted for unrecognized nodes
// from every sequence. Chapters built from empty mappings are kept.
func WithDropEmpty(drop bool) Option {
	return func(b *Builder) { b.dropEmpty = drop }
}

// NewBuilder creates a Builder backed by the given collaborators.
func NewBuilder(fs FileSystem, titles TitleResolver, log *slog.Logger, opts ...Option) *Builder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	b := &Builder{
		fs:       fs,
		titles:   titles,
		log:      log,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// pass holds the state of one build call.
type pass struct {
	ctx  context.Context
	errs Errors
}

func (p *pass) add(e *BuildError) {
	p.errs = append(p.errs, e)
}

// Build converts a single node into a chapter. The chapter is always usable;
// a non-nil error is an Errors value listing the nodes that were degraded.
func (b *Builder) Build(ctx context.Context, n Node) (Chapter, error) {
	p := &pass{ctx: ctx}
	c, _ := b.chapter(p, n, "", 1)
	return c, p.errs.err()
}

// BuildSequence converts nodes in order. Without WithDropEmpty the result has
// the same length as nodes.
func (b *Builder) BuildSequence(ctx context.Context, nodes []Node) ([]Chapter, error) {
	p := &pass{ctx: ctx}
	return b.sequence(p, nodes, "", 1), p.errs.err()
}

// BuildOutline converts a document root into the three chapter groups. A
// missing group, or one that is not an array, is empty.
func (b *Builder) BuildOutline(ctx context.Context, root Node) (*Outline, error) {
	p := &pass{ctx: ctx}
	o := &Outline{}

	m, ok := root.(Mapping)
	if !ok {
		p.add(&BuildError{Kind: KindRoot, Err: fmt.Errorf("document root is %s, want mapping", kindName(root))})
	}
	for _, g := range Groups {
		var chapters []Chapter
		if ok {
			v, _ := m.Lookup(string(g))
			chapters = b.sequence(p, items(v), string(g), 1)
		}
		if chapters == nil {
			chapters = []Chapter{}
		}
		o.SetChapters(g, chapters)
	}
	return o, p.errs.err()
}

func (b *Builder) sequence(p *pass, nodes []Node, base string, depth int) []Chapter {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Chapter, 0, len(nodes))
	for i, n := range nodes {
		c, ok := b.chapter(p, n, fmt.Sprintf("%s[%d]", base, i), depth)
		if !ok && b.dropEmpty {
			continue
		}
		out = append(out, c)
	}
	return out
}

// chapter dispatches on the node shape. ok is false when the returned chapter
// is a sentinel standing in for a node with no chapter interpretation.
func (b *Builder) chapter(p *pass, n Node, loc string, depth int) (c Chapter, ok bool) {
	if depth > b.maxDepth {
		p.add(&BuildError{Location: loc, Kind: KindDepth, Err: fmt.Errorf("nesting deeper than %d", b.maxDepth)})
		return Chapter{}, false
	}
	switch Classify(n) {
	case ShapeString:
		return b.fromString(p, string(n.(String)), loc), true
	case ShapeRecord:
		return b.fromRecord(p, n.(Mapping), loc, depth), true
	}
	p.add(&BuildError{Location: loc, Kind: KindShape, Err: fmt.Errorf("%s is not a chapter", kindName(n))})
	return Chapter{}, false
}

// fromString builds a file chapter when s names an existing file and a draft
// titled s otherwise.
func (b *Builder) fromString(p *pass, s, loc string) Chapter {
	if s != "" && b.fs.Exists(s) {
		return Chapter{Title: b.title(p, s, loc), Path: s}
	}
	return Chapter{Title: s, Draft: true}
}

// fromRecord reads the recognized keys of m. A key with a value of the wrong
// type falls back to that field's default. Draft comes from the draft key only.
func (b *Builder) fromRecord(p *pass, m Mapping, loc string, depth int) Chapter {
	var (
		title, path string
		draft       bool
		sections    []Chapter
	)
	if v, ok := m.Lookup("title"); ok {
		if s, isStr := v.(String); isStr {
			title = string(s)
		} else {
			title = UntitledTitle
			b.coerced(loc, "title", v, UntitledTitle)
		}
	}
	if v, ok := m.Lookup("path"); ok {
		if s, isStr := v.(String); isStr {
			path = string(s)
		} else {
			b.coerced(loc, "path", v, "")
		}
	}
	if v, ok := m.Lookup("draft"); ok {
		if d, isBool := v.(Boolean); isBool {
			draft = bool(d)
		} else {
			b.coerced(loc, "draft", v, false)
		}
	}
	if v, ok := m.Lookup("sections"); ok {
		if _, isArr := v.(Array); !isArr {
			b.coerced(loc, "sections", v, "[]")
		}
		sections = b.sequence(p, items(v), field(loc, "sections"), depth+1)
	}
	return Chapter{Title: title, Path: path, Draft: draft, Sections: sections}
}

// title asks the resolver for a title and falls back to the file name.
func (b *Builder) title(p *pass, path, loc string) string {
	t, err := b.resolve(p.ctx, path)
	if err == nil {
		return t
	}
	fallback := filepath.Base(path)
	b.log.Warn("title resolution failed", "location", loc, "path", path, "fallback", fallback, "error", err)
	p.add(&BuildError{Location: loc, Path: path, Kind: KindTitle, Err: err})
	return fallback
}

func (b *Builder) resolve(ctx context.Context, path string) (string, error) {
	if b.titleTimeout <= 0 {
		return b.titles.TitleFor(ctx, path)
	}

	ctx, cancel := context.WithTimeout(ctx, b.titleTimeout)
	defer cancel()

	type result struct {
		title string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		t, err := b.titles.TitleFor(ctx, path)
		done <- result{title: t, err: err}
	}()

	select {
	case r := <-done:
		return r.title, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("resolve title: %w", ctx.Err())
	}
}

func (b *Builder) coerced(loc, key string, got Node, def any) {
	b.log.Debug("field coerced to default",
		"location", loc,
		"field", key,
		"got", kindName(got),
		"default", def,
	)
}

func items(n Node) []Node {
	if a, ok := n.(Array); ok {
		return a
	}
	return nil
}

func field(loc, name string) string {
	if loc == "" {
		return name
	}
	return loc + "." + name
}
