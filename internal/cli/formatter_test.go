package cli_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaumitraLohokare/sizetree/internal/cli"
	"github.com/SaumitraLohokare/sizetree/internal/sizetree"
)

func sampleTree() *sizetree.Tree {
	tree := sizetree.NewTree(&sizetree.Node{
		Name: "data",
		Size: sizetree.Known(2500),
		Children: []*sizetree.Node{
			{Name: "a.txt", Size: sizetree.Known(1000)},
			{
				Name: "sub",
				Size: sizetree.Known(1500),
				Children: []*sizetree.Node{
					{Name: "b.txt", Size: sizetree.Known(1500)},
				},
			},
			{Name: "locked", Size: sizetree.Unknown},
		},
	})
	tree.Path = "/data"
	tree.Stats = sizetree.Stats{Files: 2, Dirs: 3, Unreadable: 1}

	return tree
}

func TestPrintTable(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, cli.PrintTable(sampleTree(), &out))

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 5)

	assert.Equal(t, []string{"Name", "Size", "Bytes"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"data", "2.50", "KB", "2,500"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"a.txt", "1.00", "KB", "1,000"}, strings.Fields(lines[2]))
	assert.True(t, strings.HasPrefix(lines[2], "  a.txt"))
	assert.Equal(t, []string{"sub", "1.50", "KB", "1,500"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"locked", "?", "?"}, strings.Fields(lines[4]))

	// sub is collapsed, so its child is not listed.
	assert.NotContains(t, out.String(), "b.txt")
	assert.Contains(t, out.String(), "Unreadable:")
	assert.NotContains(t, out.String(), "Skipped:")
}

func TestPrintTableFollowsExpansion(t *testing.T) {
	t.Parallel()

	tree := sampleTree()
	tree.Root.ExpandTo(2)

	var out bytes.Buffer
	require.NoError(t, cli.PrintTable(tree, &out))

	assert.Contains(t, out.String(), "    b.txt")

	tree.Root.ExpandTo(0)
	out.Reset()
	require.NoError(t, cli.PrintTable(tree, &out))

	assert.NotContains(t, out.String(), "a.txt")
}

func TestPrintJSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, cli.PrintJSON(sampleTree(), &out))

	var decoded struct {
		Path string `json:"path"`
		Root struct {
			Name     string  `json:"name"`
			Size     *uint64 `json:"size"`
			Children []struct {
				Name     string  `json:"name"`
				Size     *uint64 `json:"size"`
				Children []any   `json:"children"`
			} `json:"children"`
		} `json:"root"`
		Stats sizetree.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))

	assert.Equal(t, "/data", decoded.Path)
	assert.Equal(t, "data", decoded.Root.Name)
	require.NotNil(t, decoded.Root.Size)
	assert.Equal(t, uint64(2500), *decoded.Root.Size)

	require.Len(t, decoded.Root.Children, 3)
	// Collapsed directories are still encoded in full.
	assert.Len(t, decoded.Root.Children[1].Children, 1)
	assert.Nil(t, decoded.Root.Children[2].Size)
	assert.Equal(t, int64(1), decoded.Stats.Unreadable)
}
