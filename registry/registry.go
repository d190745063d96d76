// Package registry implements the Graph registry (spec §4.7,
// component C8): the name -> compiled [elaborate.Graph] cache, the
// in-progress recursion guard, and the public GraphRoot-equivalent
// entry points.
package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/n3lang/n3c/ast"
	"github.com/n3lang/n3c/compileerr"
	"github.com/n3lang/n3c/elaborate"
	"github.com/n3lang/n3c/loader"
	"github.com/n3lang/n3c/location"
	"github.com/n3lang/n3c/stdlib"
)

// Parser turns one source file's text into its AST. Injected by the
// caller: the parser itself is outside this module's scope.
type Parser = loader.Parser

// Root is the compiler's model registry (spec's GraphRoot): the sole
// shared, mutable state of a compilation. It is single-threaded
// cooperative (spec §5) — concurrent calls into the same Root are not
// supported, beyond the mutex guarding the bookkeeping maps themselves
// from concurrent top-level Find calls.
type Root struct {
	mu        sync.Mutex
	parser    Parser
	logger    *slog.Logger
	graphs    map[string]*elaborate.Graph
	compiling map[string]bool
	prefabs   map[string]ast.File
}

// New builds a Root from the embedded standard library, plus every .n3
// file discovered under WithPath (if given). WithParser is required:
// without it, New returns an error immediately, since nothing
// discovered can ever be compiled.
func New(opts ...Option) (*Root, error) {
	cfg := defaultConfig()
	applyOptions(cfg, opts)
	if cfg.parser == nil {
		return nil, fmt.Errorf("registry: WithParser is required")
	}

	r := &Root{
		parser:    cfg.parser,
		logger:    cfg.logger,
		graphs:    make(map[string]*elaborate.Graph),
		compiling: make(map[string]bool),
		prefabs:   make(map[string]ast.File),
	}

	embedded, err := stdlib.Sources()
	if err != nil {
		return nil, fmt.Errorf("registry: load embedded stdlib: %w", err)
	}
	if err := r.registerSources(embedded); err != nil {
		return nil, err
	}

	if cfg.path != "" {
		local, err := loader.ScanDir(cfg.path)
		if err != nil {
			return nil, fmt.Errorf("registry: scan %q: %w", cfg.path, err)
		}
		if err := r.registerSources(local); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Default builds an embed-only Root (spec's GraphRoot::default()).
func Default(p Parser) (*Root, error) {
	return New(WithParser(p))
}

// WithLocalPath builds a Root seeded from local .n3 files plus the
// embedded standard library (spec's GraphRoot::with_path(path)).
func WithLocalPath(path string, p Parser) (*Root, error) {
	return New(WithParser(p), WithPath(path))
}

func (r *Root) registerSources(sources []loader.Source) error {
	loaded, err := loader.ParseAll(sources, r.parser)
	if err != nil {
		return err
	}
	for _, l := range loaded {
		r.prefabs[l.File.Model.Name] = l.File
		r.logger.Debug("registered prefab", "model", l.File.Model.Name, "source", l.Source.ID.String())
	}
	return nil
}

// Find resolves name against origin (spec §4.7 find_graph): a cache
// hit returns a clone; an in-progress compile of the same name reports
// RecursiveUsage; otherwise the name is loaded and compiled under the
// recursion guard, cached, and a clone returned.
//
// The recursion guard is a scoped acquisition (spec §5): Find always
// releases compiling[name] on every exit path, including error, via
// defer.
func (r *Root) Find(name string, origin ast.UseOrigin) (*elaborate.Graph, error) {
	if origin.Kind() != ast.OriginLocal {
		return nil, compileerr.UnsupportedOrigin(origin.Kind().String())
	}

	r.mu.Lock()
	if g, ok := r.graphs[name]; ok {
		r.mu.Unlock()
		return g.Clone(), nil
	}
	if r.compiling[name] {
		r.mu.Unlock()
		return nil, compileerr.RecursiveUsage(name, name)
	}
	f, ok := r.prefabs[name]
	if !ok {
		r.mu.Unlock()
		return nil, compileerr.ModelNotFound(name)
	}
	r.compiling[name] = true
	delete(r.prefabs, name)
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.compiling, name)
		r.mu.Unlock()
	}()

	g, err := elaborate.CompileFile(f, r)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.graphs[name] = g
	r.mu.Unlock()

	return g.Clone(), nil
}

// CompileFromSource parses source as one standalone model (spec §4.7
// compile_from_source) and compiles it through the same path as a
// named prefab, without ever registering it in the cache: the caller
// owns the single resulting Graph.
//
// Unlike a file loaded from disk, a source string carries no path to
// label it in diagnostics, so each call is tagged with a fresh
// synthetic SourceID (the teacher uses uuid.Parse to validate instance
// data's UUID-typed fields; here a freshly minted uuid disambiguates
// otherwise-identical "<string>" labels across repeated calls).
func (r *Root) CompileFromSource(source string) (*elaborate.Graph, error) {
	id := location.NewSourceID("string://" + uuid.NewString())
	r.logger.Debug("compiling from source", "source", id.String())

	file, err := r.parser.Parse(source)
	if err != nil {
		return nil, compileerr.Parse(id.String(), err)
	}
	return elaborate.CompileFile(file, r)
}
