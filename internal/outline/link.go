package outline

// Link is a list entry read from a Markdown summary: link text, target and
// any nested entries.
type Link struct {
	Title    string
	Path     string
	Sections []Link
}

// FromLink converts a summary link into a chapter. Unlike mapping records, a
// link without a target is a draft.
func FromLink(l Link) Chapter {
	c := Chapter{
		Title: l.Title,
		Path:  l.Path,
		Draft: l.Path == "",
	}
	if len(l.Sections) > 0 {
		c.Sections = make([]Chapter, len(l.Sections))
		for i, s := range l.Sections {
			c.Sections[i] = FromLink(s)
		}
	}
	return c
}
