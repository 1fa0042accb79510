package view_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaumitraLohokare/sizetree/internal/render"
	"github.com/SaumitraLohokare/sizetree/internal/sizetree"
	"github.com/SaumitraLohokare/sizetree/internal/view"
)

func sampleTree() *sizetree.Node {
	return &sizetree.Node{
		Name:     "root",
		Size:     sizetree.Known(2000),
		Expanded: true,
		Children: []*sizetree.Node{
			{Name: "a.txt", Size: sizetree.Known(500)},
			{
				Name: "sub",
				Size: sizetree.Known(1500),
				Children: []*sizetree.Node{
					{Name: "b.txt", Size: sizetree.Known(1500)},
				},
			},
			{Name: "locked", Size: sizetree.Unknown},
		},
	}
}

func texts(lines []view.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}

	return out
}

func TestFlattenExpandedRoot(t *testing.T) {
	t.Parallel()

	lines := view.Flatten(sampleTree(), 24, 0)

	want := []string{
		"root         2.00 KB",
		"  a.txt        500 B",
		"  sub        1.50 KB",
		"  locked           ?",
	}
	assert.Equal(t, want, texts(lines))

	for _, l := range lines {
		assert.Equal(t, view.LineWidth(24), render.TextWidth(l.Text))
	}

	assert.Equal(t, 0, lines[0].Depth)
	assert.Equal(t, 1, lines[2].Depth)
	assert.Equal(t, "sub", lines[2].Node.Name)
}

func TestFlattenCollapsedNodeIsOneLine(t *testing.T) {
	t.Parallel()

	root := sampleTree()
	root.Expanded = false

	lines := view.Flatten(root, 40, 0)
	require.Len(t, lines, 1)
	assert.Same(t, root, lines[0].Node)
}

func TestFlattenIsConcatenationOfChildren(t *testing.T) {
	t.Parallel()

	root := sampleTree()
	root.ExpandTo(3)

	lines := view.Flatten(root, 30, 0)

	want := view.Flatten(root, 30, 0)[:1]
	for _, child := range root.Children {
		want = append(want, view.Flatten(child, 30, 1)...)
	}

	assert.Equal(t, want, lines)
	assert.Len(t, lines, 5)
	assert.Equal(t, "b.txt", lines[3].Node.Name)
	assert.Equal(t, 2, lines[3].Depth)
	assert.True(t, strings.HasPrefix(lines[3].Text, "    b.txt"))
}

func TestLayoutTruncatesLongNames(t *testing.T) {
	t.Parallel()

	line := view.Layout("a-very-long-file-name.tar.gz", "1.50 GB", 20, 1)

	assert.Equal(t, "  a-very-lo… 1.50 GB", line)
	assert.Equal(t, 20, render.TextWidth(line))
}

func TestLayoutNarrowViewport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width int
		depth int
		want  string
	}{
		{name: "no room for name", width: 8, depth: 0, want: " 1.50 GB"},
		{name: "one name column", width: 9, depth: 0, want: "… 1.50 GB"},
		{name: "indent dropped", width: 10, depth: 3, want: "   1.50 GB"},
		{name: "size cut", width: 4, depth: 0, want: "1.50"},
		{name: "zero width", width: 0, depth: 0, want: ""},
		{name: "negative width", width: -3, depth: 0, want: ""},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := view.Layout("movie.mkv", "1.50 GB", tt.width, tt.depth)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, max(tt.width, 0), render.TextWidth(got))
		})
	}
}

func TestLayoutWideAndControlRunes(t *testing.T) {
	t.Parallel()

	line := view.Layout("写真フォルダ", "?", 10, 0)
	assert.Equal(t, 10, render.TextWidth(line))
	assert.True(t, strings.HasSuffix(line, " ?"))
	assert.Contains(t, line, view.Ellipsis)

	line = view.Layout("bad\nname", "1 B", 16, 0)
	assert.Equal(t, "bad?name     1 B", line)
}

func TestLineWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 76, view.LineWidth(80))
	assert.Equal(t, 0, view.LineWidth(3))
}
