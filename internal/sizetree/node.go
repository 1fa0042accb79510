package sizetree

import (
	"encoding/json"
	"strconv"
	"time"
)

// Size is a byte count that may be unknown.
// The zero value is Unknown, which is distinct from Known(0).
type Size struct {
	bytes uint64
	known bool
}

// Unknown is the size of an entry that could not be measured.
var Unknown = Size{}

// Known returns a measured size of n bytes.
func Known(n uint64) Size {
	return Size{bytes: n, known: true}
}

// Bytes returns the byte count and whether it is known.
func (s Size) Bytes() (uint64, bool) {
	return s.bytes, s.known
}

// IsKnown reports whether the size was measured.
func (s Size) IsKnown() bool {
	return s.known
}

// Or returns the byte count, or fallback when the size is unknown.
func (s Size) Or(fallback uint64) uint64 {
	if !s.known {
		return fallback
	}

	return s.bytes
}

// String returns the human-readable size, or "?" when unknown.
func (s Size) String() string {
	if !s.known {
		return "?"
	}

	return FormatSize(s.bytes)
}

// MarshalJSON encodes a known size as a number and an unknown size as null.
func (s Size) MarshalJSON() ([]byte, error) {
	if !s.known {
		return []byte("null"), nil
	}

	return []byte(strconv.FormatUint(s.bytes, 10)), nil
}

// UnmarshalJSON decodes a number or null.
func (s *Size) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Unknown

		return nil
	}

	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*s = Known(n)

	return nil
}

// Node is one file or directory entry.
type Node struct {
	// Name is the display name of the entry.
	Name string `json:"name"`
	// Size is the entry's size; for directories, the sum of its children.
	Size Size `json:"size"`
	// Children are the directory's entries in enumeration order.
	Children []*Node `json:"children,omitempty"`
	// Expanded controls whether the children are displayed.
	Expanded bool `json:"-"`
}

// newNode creates a childless node.
func newNode(name string, size Size) *Node {
	return &Node{Name: name, Size: size}
}

// addChild appends a child node.
func (n *Node) addChild(child *Node) {
	n.Children = append(n.Children, child)
}

// IsDir reports whether the node has children.
// Empty directories are indistinguishable from files.
func (n *Node) IsDir() bool {
	return len(n.Children) > 0
}

// Toggle flips the expanded state and returns the new state.
func (n *Node) Toggle() bool {
	n.Expanded = !n.Expanded

	return n.Expanded
}

// ExpandTo expands the node and its descendants down to depth levels;
// everything deeper is collapsed. Depth 0 collapses the node itself.
func (n *Node) ExpandTo(depth int) {
	n.Expanded = depth > 0
	for _, child := range n.Children {
		child.ExpandTo(depth - 1)
	}
}

// Stats holds aggregate statistics for a scan.
type Stats struct {
	// Files is the number of files measured or attempted.
	Files int64 `json:"files"`
	// Dirs is the number of directories scanned or attempted.
	Dirs int64 `json:"dirs"`
	// Unreadable is the number of entries left with an unknown size.
	Unreadable int64 `json:"unreadable"`
	// Skipped is the number of entries that were neither files nor directories.
	Skipped int64 `json:"skipped"`
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// Tree owns the root node of one scan.
type Tree struct {
	// Root is the root node. It starts out expanded.
	Root *Node `json:"root"`
	// Path is the path the scan started from.
	Path string `json:"path"`
	// Stats holds scan statistics.
	Stats Stats `json:"stats"`
}

// NewTree creates a tree around root and expands the root.
func NewTree(root *Node) *Tree {
	root.Expanded = true

	return &Tree{Root: root}
}
