// Package sizetree builds an in-memory tree of file and directory sizes.
//
// It walks a directory depth-first in enumeration order, aggregates the size
// of every directory from its children, and records entries it could not
// measure with an unknown size instead of failing the whole scan.
package sizetree
