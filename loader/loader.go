// Package loader discovers N3 prefab sources in a local filesystem tree
// when the target supports one; the embedded standard library comes from
// the stdlib package and is combined with these by the registry (spec §6's "on WASM targets the filesystem scan is skipped; only
// embedded prefabs are loaded").
package loader

import (
	"fmt"

	"github.com/n3lang/n3c/ast"
	"github.com/n3lang/n3c/location"
)

// Parser turns one source file's text into its AST. Callers inject the
// implementation; the one this module ships is astjson.Parser, which
// reads tagged JSON AST documents and extern stubs, not the full N3
// surface grammar.
type Parser interface {
	Parse(source string) (ast.File, error)
}

// Source is one discovered prefab: its origin id, its path and its raw
// text. The parsed file AST is carried by [Loaded].
type Source struct {
	ID   location.SourceID
	Path string
	Text string
}

// Loaded pairs a discovered Source with its parsed File.
type Loaded struct {
	Source Source
	File   ast.File
}

// ParseAll parses every source, short-circuiting on the first error.
// The returned slice preserves the input order (the filesystem walk
// already yields a deterministic, lexicographic order).
func ParseAll(sources []Source, p Parser) ([]Loaded, error) {
	out := make([]Loaded, 0, len(sources))
	for _, s := range sources {
		f, err := p.Parse(s.Text)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.ID, err)
		}
		out = append(out, Loaded{Source: s, File: f})
	}
	return out, nil
}

// pathEscapeError indicates a discovered path attempted to escape the
// scan root, the same condition the teacher's rootLoader reports for
// import resolution.
type pathEscapeError struct {
	path string
}

func (e *pathEscapeError) Error() string {
	return fmt.Sprintf("path %q escapes module root", e.path)
}
