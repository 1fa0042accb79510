package sizetree

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// UnknownName is the display name used when a root path has no usable name.
const UnknownName = "could not determine name"

// entryKind is the classification of a directory entry.
type entryKind int

const (
	kindOther entryKind = iota
	kindFile
	kindDir
)

// Builder scans a path into a Tree.
type Builder struct {
	// NoFollow classifies symbolic links as neither file nor directory,
	// so they are skipped. By default a link is classified by its target.
	NoFollow bool
	// Exclude holds glob patterns matched against the names of entries below
	// the root. Matching entries are skipped like unsupported entries.
	Exclude []string
	// Logger receives debug output for absorbed failures. Nil disables logging.
	Logger *zap.Logger

	log      *zap.Logger
	excludes []glob.Glob
	stats    Stats
}

// Build scans path with a default Builder.
func Build(path string) (*Tree, error) {
	return (&Builder{}).Build(path)
}

// Build scans path and returns its size tree.
//
// Failures on the root path are returned as a *ScanError. Failures on any
// entry below the root are absorbed: the entry is kept with an unknown size
// and the scan continues.
func (b *Builder) Build(path string) (*Tree, error) {
	b.log = b.Logger
	if b.log == nil {
		b.log = zap.NewNop()
	}

	b.stats = Stats{}

	b.excludes = make([]glob.Glob, 0, len(b.Exclude))
	for _, pattern := range b.Exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", pattern, err)
		}

		b.excludes = append(b.excludes, g)
	}

	if path == "" {
		path = "."
	}

	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return nil, wrap(path, err)
	}

	var root *Node

	switch {
	case info.Mode().IsRegular():
		b.stats.Files++
		root = newNode(rootName(path), Known(uint64(info.Size()))) //nolint:gosec // Regular file sizes are never negative
	case info.IsDir():
		b.stats.Dirs++

		root, err = b.scanDir(path, rootName(path))
		if err != nil {
			return nil, err
		}
	default:
		return nil, &ScanError{Kind: UnsupportedFileType, Path: path}
	}

	b.stats.Elapsed = time.Since(start)

	tree := NewTree(root)
	tree.Path = path
	tree.Stats = b.stats

	b.log.Debug("scan finished",
		zap.String("path", path),
		zap.Int64("files", b.stats.Files),
		zap.Int64("dirs", b.stats.Dirs),
		zap.Int64("unreadable", b.stats.Unreadable),
		zap.Int64("skipped", b.stats.Skipped),
		zap.Duration("elapsed", b.stats.Elapsed),
	)

	return tree, nil
}

// scanDir lists dir and recursively measures its entries in enumeration order.
// Only a failure to list dir itself is returned.
func (b *Builder) scanDir(dir, name string) (*Node, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, wrap(dir, err)
	}

	node := newNode(name, Unknown)

	var total uint64

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		childName := strings.ToValidUTF8(entry.Name(), "�")

		if b.excluded(entry.Name()) {
			b.stats.Skipped++
			b.log.Debug("excluding entry", zap.String("path", path))

			continue
		}

		kind, info := b.classifyEntry(path, entry)

		switch kind {
		case kindFile:
			b.stats.Files++

			var infoErr error
			if info == nil {
				info, infoErr = entry.Info()
			}

			if infoErr != nil {
				b.stats.Unreadable++
				b.log.Debug("cannot read file size", zap.String("path", path), zap.Error(infoErr))
				node.addChild(newNode(childName, Unknown))

				continue
			}

			size := uint64(info.Size()) //nolint:gosec // Regular file sizes are never negative
			total += size
			node.addChild(newNode(childName, Known(size)))
		case kindDir:
			b.stats.Dirs++

			child, err := b.scanDir(path, childName)
			if err != nil {
				b.stats.Unreadable++
				b.log.Debug("cannot scan directory", zap.String("path", path), zap.Error(err))
				node.addChild(newNode(childName, Unknown))

				continue
			}

			total += child.Size.Or(0)
			node.addChild(child)
		default:
			b.stats.Skipped++
			b.log.Debug("skipping entry", zap.String("path", path), zap.Stringer("type", entry.Type()))
		}
	}

	node.Size = Known(total)

	return node, nil
}

// excluded reports whether name matches an exclusion pattern.
func (b *Builder) excluded(name string) bool {
	for _, g := range b.excludes {
		if g.Match(name) {
			return true
		}
	}

	return false
}

// classifyEntry decides whether entry is a file, a directory or neither.
// For a followed symlink it also returns the target's FileInfo.
func (b *Builder) classifyEntry(path string, entry fs.DirEntry) (entryKind, fs.FileInfo) {
	mode := entry.Type()

	var info fs.FileInfo

	if mode&fs.ModeSymlink != 0 {
		if b.NoFollow {
			return kindOther, nil
		}

		target, err := os.Stat(path)
		if err != nil {
			// Broken or unresolvable links are neither kind.
			b.log.Debug("cannot resolve link", zap.String("path", path), zap.Error(err))

			return kindOther, nil
		}

		info = target
		mode = target.Mode().Type()
	}

	switch {
	case mode.IsRegular():
		return kindFile, info
	case mode.IsDir():
		return kindDir, info
	default:
		return kindOther, nil
	}
}

// readDir lists dir in the order the filesystem returns entries.
// Unlike os.ReadDir it does not sort.
func readDir(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.ReadDir(-1)
}

// rootName derives the display name of the scanned root.
// Paths without a final component fall back to their absolute form.
func rootName(path string) string {
	base := filepath.Base(filepath.Clean(path))

	switch base {
	case ".", "..", string(filepath.Separator):
	default:
		if !utf8.ValidString(base) {
			return UnknownName
		}

		return base
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return UnknownName
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	if !utf8.ValidString(abs) {
		return UnknownName
	}

	return abs
}
