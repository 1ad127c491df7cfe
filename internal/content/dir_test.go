package content

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"preface.md":         {Data: []byte("# Preface\n\nWhy this book.\n")},
		"chapter2.md":        {Data: []byte("---\ntitle: Nameless Stone Labyrinth\n---\n# Two\n")},
		"part1/ch2-sec1.md":  {Data: []byte("## Deep Section\n")},
		"appendix-a.html":    {Data: []byte("<title>Appendix A</title><h1>Ignored</h1>")},
		"notes.txt":          {Data: []byte("Field Notes\nbody\n")},
		"figures.rst":        {Data: []byte("Figures\n=======\n")},
		"broken.md":          {Data: []byte("---\ntitle: [oops\n---\n")},
		"images":             {Mode: fs.ModeDir},
		"images/diagram.png": {Data: []byte{0x89, 'P', 'N', 'G'}},
	}
}

func TestDir_Exists(t *testing.T) {
	d := NewDir(testFS(), nil)

	tests := []struct {
		path string
		want bool
	}{
		{"preface.md", true},
		{"./preface.md", true},
		{"part1/ch2-sec1.md", true},
		{"part1/../preface.md", true},
		{"missing.md", false},
		{"images", false}, // directories are not chapters
		{"../preface.md", false},
		{"/preface.md", false},
		{"", false},
		{"Nameless Stone Labyrinth", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, d.Exists(tt.path), "Exists(%q)", tt.path)
	}
}

func TestDir_TitleFor(t *testing.T) {
	d := NewDir(testFS(), nil)
	ctx := context.Background()

	tests := []struct {
		path string
		want string
	}{
		{"preface.md", "Preface"},
		{"chapter2.md", "Nameless Stone Labyrinth"},
		{"part1/ch2-sec1.md", "Deep Section"},
		{"appendix-a.html", "Appendix A"},
		{"notes.txt", "Field Notes"},
		{"figures.rst", "figures.rst"},
	}
	for _, tt := range tests {
		got, err := d.TitleFor(ctx, tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestDir_TitleForErrors(t *testing.T) {
	d := NewDir(testFS(), nil)

	_, err := d.TitleFor(context.Background(), "broken.md")
	assert.ErrorContains(t, err, "front matter")

	_, err = d.TitleFor(context.Background(), "gone.md")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = d.TitleFor(context.Background(), "missing.rst")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = d.TitleFor(context.Background(), "images")
	assert.ErrorIs(t, err, fs.ErrInvalid)

	_, err = d.TitleFor(context.Background(), "../outside.md")
	assert.ErrorIs(t, err, fs.ErrInvalid)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.TitleFor(ctx, "preface.md")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDir_WithBuilder(t *testing.T) {
	d := NewDir(testFS(), nil)
	b := outline.NewBuilder(d, d, nil)

	chapters, err := b.BuildSequence(context.Background(), []outline.Node{
		outline.String("preface.md"),
		outline.String("broken.md"),
		outline.String("Epilogue"),
	})
	assert.Equal(t, []outline.Chapter{
		{Title: "Preface", Path: "preface.md"},
		{Title: "broken.md", Path: "broken.md"},
		{Title: "Epilogue", Draft: true},
	}, chapters)

	var errs outline.Errors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, outline.KindTitle, errs[0].Kind)
}

func TestOpenDir(t *testing.T) {
	root := t.TempDir()
	_, err := OpenDir(root, nil)
	require.NoError(t, err)

	_, err = OpenDir(root+"/nope", nil)
	assert.Error(t, err)
}
