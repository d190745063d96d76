// Package stdlib embeds the prefab standard library of extern leaf
// operators (Linear, ReLU, Conv2d, and friends) that every registry
// loads regardless of target, mirroring cuelang.org/go's embedded-CUE
// pattern (the teacher itself never embeds resources, so this package
// is grounded on that example instead).
package stdlib

import (
	"embed"
	"io/fs"
	"sort"

	"github.com/n3lang/n3c/loader"
	"github.com/n3lang/n3c/location"
)

//go:embed n3/*.n3
var files embed.FS

// Sources returns every embedded prefab source, sorted by name, each
// tagged with an "embedded://stdlib/<name>.n3" SourceID (the same
// "embedded://..." convention the location package already documents
// for synthetic, non-filesystem sources).
func Sources() ([]loader.Source, error) {
	entries, err := fs.ReadDir(files, "n3")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make([]loader.Source, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(files, "n3/"+name)
		if err != nil {
			return nil, err
		}
		id := location.NewSourceID("embedded://stdlib/" + name)
		out = append(out, loader.Source{ID: id, Path: name, Text: string(content)})
	}
	return out, nil
}
