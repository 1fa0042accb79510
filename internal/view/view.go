// Package view lays out the expanded part of a size tree as fixed-width lines.
package view

import (
	"strings"
	"unicode"

	"github.com/SaumitraLohokare/sizetree/internal/render"
	"github.com/SaumitraLohokare/sizetree/internal/sizetree"
)

const (
	// Indent is the number of columns each depth level is indented by.
	Indent = 2
	// Margin is the number of columns kept free on each side of a line.
	Margin = 2
	// Ellipsis marks a truncated name.
	Ellipsis = "…"
)

// Line is one display line of the tree.
type Line struct {
	// Text is the laid-out line, exactly LineWidth columns wide.
	Text string
	// Node is the node the line shows.
	Node *sizetree.Node
	// Depth is the node's depth below the flattened root.
	Depth int
}

// LineWidth returns the width of every line for a viewport of the given width.
func LineWidth(viewport int) int {
	return max(viewport-2*Margin, 0)
}

// Flatten returns one line for node followed, if node is expanded,
// by the flattened lines of each of its children in order.
func Flatten(node *sizetree.Node, viewport, depth int) []Line {
	return appendLines(nil, node, viewport, depth)
}

func appendLines(lines []Line, node *sizetree.Node, viewport, depth int) []Line {
	lines = append(lines, Line{
		Text:  Layout(node.Name, node.Size.String(), LineWidth(viewport), depth),
		Node:  node,
		Depth: depth,
	})

	if !node.Expanded {
		return lines
	}

	for _, child := range node.Children {
		lines = appendLines(lines, child, viewport, depth+1)
	}

	return lines
}

// Layout renders "<indent><name><fill><size>" exactly width columns wide.
//
// The fill is never negative: a name that does not fit is truncated with an
// ellipsis, keeping at least one space before the size. When no column is
// left for the name the line holds only the right-aligned size.
func Layout(name, size string, width, depth int) string {
	if width <= 0 {
		return ""
	}

	name = sanitize(name)
	indent := strings.Repeat(" ", depth*Indent)
	sizeWidth := render.TextWidth(size)

	room := width - len(indent) - sizeWidth - 1
	if room < 1 {
		size = truncate(size, width, "")

		return pad(width-render.TextWidth(size)) + size
	}

	name = truncate(name, room, Ellipsis)
	fill := width - len(indent) - render.TextWidth(name) - sizeWidth

	return indent + name + pad(fill) + size
}

// truncate shortens s to at most width columns, ending in tail if cut.
func truncate(s string, width int, tail string) string {
	if render.TextWidth(s) <= width {
		return s
	}

	width -= render.TextWidth(tail)

	var b strings.Builder

	used := 0

	for _, r := range s {
		w := render.RuneWidth(r)
		if used+w > width {
			break
		}

		used += w
		b.WriteRune(r)
	}

	return b.String() + tail
}

// sanitize replaces control characters so a name stays on one line.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '?'
		}

		return r
	}, name)
}

func pad(n int) string {
	return strings.Repeat(" ", max(n, 0))
}
