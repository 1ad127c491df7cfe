package markup

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noFiles struct{}

func (noFiles) Exists(string) bool { return false }

func (noFiles) TitleFor(context.Context, string) (string, error) { return "", nil }

func TestParse_Scalars(t *testing.T) {
	root, err := Parse([]byte(dedent.Dedent(`
		s: chapter1.md
		q: "42"
		i: 42
		f: 1.5
		inf: .inf
		b: true
		n: ~
		bad: !!int abc
		date: 2001-12-14
		custom: !include part.md
	`)))
	require.NoError(t, err)

	m, ok := root.(outline.Mapping)
	require.True(t, ok, "root should be a mapping, got %T", root)

	get := func(k string) outline.Node {
		v, ok := m.Lookup(k)
		require.True(t, ok, "missing key %q", k)
		return v
	}
	assert.Equal(t, outline.String("chapter1.md"), get("s"))
	assert.Equal(t, outline.String("42"), get("q"))
	assert.Equal(t, outline.Integer(42), get("i"))
	assert.Equal(t, outline.Real(1.5), get("f"))
	assert.Equal(t, outline.Real(math.Inf(1)), get("inf"))
	assert.Equal(t, outline.Boolean(true), get("b"))
	assert.Equal(t, outline.Null{}, get("n"))
	assert.IsType(t, outline.Invalid{}, get("bad"))
	assert.Equal(t, outline.String("2001-12-14"), get("date"))
	assert.IsType(t, outline.Invalid{}, get("custom"))
}

func TestParse_EmptyInput(t *testing.T) {
	root, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, outline.Null{}, root)
}

func TestParse_FirstDocumentOnly(t *testing.T) {
	root, err := Parse([]byte("mainmatter: [a]\n---\nmainmatter: [b]\n"))
	require.NoError(t, err)

	v, ok := root.(outline.Mapping).Lookup("mainmatter")
	require.True(t, ok)
	assert.Equal(t, outline.Array{outline.String("a")}, v)
}

func TestParse_Aliases(t *testing.T) {
	root, err := Parse([]byte(dedent.Dedent(`
		shared: &appendix {title: Appendix, path: appendix.md}
		backmatter:
		  - *appendix
	`)))
	require.NoError(t, err)

	v, _ := root.(outline.Mapping).Lookup("backmatter")
	arr := v.(outline.Array)
	require.Len(t, arr, 1)
	rec, ok := arr[0].(outline.Mapping)
	require.True(t, ok)
	title, _ := rec.Lookup("title")
	assert.Equal(t, outline.String("Appendix"), title)
}

// aliasBomb returns a document whose aliases expand into 10^levels scalars.
func aliasBomb(levels int) string {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i < levels; i++ {
		ref := fmt.Sprintf("*l%d", i-1)
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, strings.TrimSuffix(strings.Repeat(ref+", ", 10), ", "))
	}
	fmt.Fprintf(&b, "mainmatter: *l%d\n", levels-1)
	return b.String()
}

func TestParse_ExcessiveAliasing(t *testing.T) {
	src := aliasBomb(6)
	require.Less(t, len(src), 512)

	root, err := Parse([]byte(src))
	assert.Nil(t, root)
	require.ErrorIs(t, err, ErrExcessiveAliasing)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestParse_ModestAliasing(t *testing.T) {
	// 10^3 scalars stay within the node budget.
	root, err := Parse([]byte(aliasBomb(3)))
	require.NoError(t, err)

	v, _ := root.(outline.Mapping).Lookup("mainmatter")
	require.Len(t, v.(outline.Array), 10)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("mainmatter: [unterminated\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestParse_BuildsOutline(t *testing.T) {
	src := dedent.Dedent(`
		frontmatter:
		- preface.md
		- intro.md

		mainmatter:
		- chapter1.md
		- {path: chapter2.md,  title: "Nameless Stone Labyrinth",
		   sections: [
		     ch2-sec1.md,
		     ch2-sec2.md
		   ]}
		- chapter3.md

		backmatter:
		- glossary.md
		- {title: "Appendix A", path: appendix-a.md}
		- {title: "Appendix B", path: appendix-b.md}
	`)
	root, err := Parse([]byte(src))
	require.NoError(t, err)

	b := outline.NewBuilder(noFiles{}, noFiles{}, nil)
	o, err := b.BuildOutline(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []outline.Chapter{
		{Title: "preface.md", Draft: true},
		{Title: "intro.md", Draft: true},
	}, o.FrontMatter)

	require.Len(t, o.MainMatter, 3)
	assert.Equal(t, outline.Chapter{Title: "chapter1.md", Draft: true}, o.MainMatter[0])
	assert.Equal(t, outline.Chapter{
		Title: "Nameless Stone Labyrinth",
		Path:  "chapter2.md",
		Sections: []outline.Chapter{
			{Title: "ch2-sec1.md", Draft: true},
			{Title: "ch2-sec2.md", Draft: true},
		},
	}, o.MainMatter[1])
	assert.Equal(t, outline.Chapter{Title: "chapter3.md", Draft: true}, o.MainMatter[2])

	assert.Equal(t, []outline.Chapter{
		{Title: "glossary.md", Draft: true},
		{Title: "Appendix A", Path: "appendix-a.md"},
		{Title: "Appendix B", Path: "appendix-b.md"},
	}, o.BackMatter)
}
