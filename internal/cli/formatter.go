package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/SaumitraLohokare/sizetree/internal/sizetree"
	"github.com/SaumitraLohokare/sizetree/internal/view"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs the full tree in JSON format. Unknown sizes are null.
func PrintJSON(tree *sizetree.Tree, writer io.Writer) error {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the expanded part of the tree as an indented table,
// followed by the scan statistics.
//
//nolint:errcheck // Write errors surface from Flush.
func PrintTable(tree *sizetree.Tree, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "Name\tSize\tBytes")

	walkExpanded(tree.Root, 0, func(node *sizetree.Node, depth int) {
		exact := "?"
		if n, ok := node.Size.Bytes(); ok {
			exact = humanize.Comma(int64(n)) //nolint:gosec // Sizes fit in int64
		}

		fmt.Fprintf(w, "%s%s\t%s\t%s\n", strings.Repeat(" ", depth*view.Indent), node.Name, node.Size, exact)
	})

	stats := tree.Stats

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Path:\t%s\t\n", tree.Path)
	fmt.Fprintf(w, "Files:\t%s\t\n", humanize.Comma(stats.Files))
	fmt.Fprintf(w, "Directories:\t%s\t\n", humanize.Comma(stats.Dirs))

	if stats.Unreadable > 0 {
		fmt.Fprintf(w, "Unreadable:\t%s\t\n", humanize.Comma(stats.Unreadable))
	}

	if stats.Skipped > 0 {
		fmt.Fprintf(w, "Skipped:\t%s\t\n", humanize.Comma(stats.Skipped))
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\t\n", stats.Elapsed)

	return w.Flush()
}

// walkExpanded calls fn for node and, while expanded, its descendants in order.
func walkExpanded(node *sizetree.Node, depth int, fn func(*sizetree.Node, int)) {
	fn(node, depth)

	if !node.Expanded {
		return
	}

	for _, child := range node.Children {
		walkExpanded(child, depth+1, fn)
	}
}
