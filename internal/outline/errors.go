package outline

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a recoverable build problem.
type ErrorKind string

const (
	// KindTitle means the title collaborator failed and the file name was used.
	KindTitle ErrorKind = "title"
	// KindDepth means nesting exceeded the configured limit.
	KindDepth ErrorKind = "depth"
	// KindShape means a chapter slot held a node with no chapter interpretation.
	KindShape ErrorKind = "shape"
	// KindRoot means the document root was not a mapping.
	KindRoot ErrorKind = "root"
)

// BuildError describes a problem with a single node. The build continues past it.
type BuildError struct {
	Location string    // e.g. "mainmatter[1].sections[0]"
	Path     string    // chapter path, when relevant
	Kind     ErrorKind
	Err      error
}

func (e *BuildError) Error() string {
	var b strings.Builder
	if e.Location != "" {
		b.WriteString(e.Location)
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))
	if e.Path != "" {
		fmt.Fprintf(&b, " %q", e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *BuildError) Unwrap() error { return e.Err }

// Errors collects every BuildError from one build pass.
type Errors []*BuildError

func (es Errors) Error() string {
	switch len(es) {
	case 0:
		return "no build errors"
	case 1:
		return es[0].Error()
	}
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d build errors: %s", len(es), strings.Join(msgs, "; "))
}

func (es Errors) Unwrap() []error {
	out := make([]error, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

// Messages renders each error as a string, for JSON responses and job progress.
func (es Errors) Messages() []string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return msgs
}

// err returns es as an error, or nil when nothing was collected.
func (es Errors) err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}
