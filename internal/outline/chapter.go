package outline

// Chapter is one entry of a document outline.
type Chapter struct {
	Title    string    `json:"title" yaml:"title"`
	Path     string    `json:"path,omitempty" yaml:"path,omitempty"` // empty when the chapter has no file
	Draft    bool      `json:"draft" yaml:"draft"`
	Sections []Chapter `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// IsEmpty reports whether c carries no data at all. The sentinel produced for
// unrecognized nodes is empty, but so is a chapter built from an empty mapping.
func (c Chapter) IsEmpty() bool {
	return c.Title == "" && c.Path == "" && !c.Draft && len(c.Sections) == 0
}

// Group names one of the three top-level chapter collections.
type Group string

const (
	FrontMatter Group = "frontmatter"
	MainMatter  Group = "mainmatter"
	BackMatter  Group = "backmatter"
)

// Groups lists the groups in document order.
var Groups = []Group{FrontMatter, MainMatter, BackMatter}

// Outline is the table of contents of a document.
type Outline struct {
	FrontMatter []Chapter `json:"frontmatter" yaml:"frontmatter"`
	MainMatter  []Chapter `json:"mainmatter" yaml:"mainmatter"`
	BackMatter  []Chapter `json:"backmatter" yaml:"backmatter"`
}

// Chapters returns the chapters of group g.
func (o *Outline) Chapters(g Group) []Chapter {
	switch g {
	case FrontMatter:
		return o.FrontMatter
	case MainMatter:
		return o.MainMatter
	case BackMatter:
		return o.BackMatter
	}
	return nil
}

// SetChapters replaces the chapters of group g.
func (o *Outline) SetChapters(g Group, chapters []Chapter) {
	switch g {
	case FrontMatter:
		o.FrontMatter = chapters
	case MainMatter:
		o.MainMatter = chapters
	case BackMatter:
		o.BackMatter = chapters
	}
}

// Stats counts chapters across all groups and depths.
type Stats struct {
	Chapters int `json:"chapters"`
	Drafts   int `json:"drafts"`
	Empty    int `json:"empty"`
}

// Stats walks the outline and counts its chapters.
func (o *Outline) Stats() Stats {
	var s Stats
	var walk func([]Chapter)
	walk = func(chapters []Chapter) {
		for _, c := range chapters {
			s.Chapters++
			if c.Draft {
				s.Drafts++
			}
			if c.IsEmpty() {
				s.Empty++
			}
			walk(c.Sections)
		}
	}
	for _, g := range Groups {
		walk(o.Chapters(g))
	}
	return s
}
