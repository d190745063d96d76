package registry

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n3lang/n3c/ast"
	"github.com/n3lang/n3c/compileerr"
	"github.com/n3lang/n3c/elaborate"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// shapePtr builds a *ast.ShapeSpec for a single-output node.
func shapePtr(dims ...ast.DimExpr) *ast.ShapeSpec {
	s := ast.SingleArgShape(dims)
	return &s
}

// newTestRoot builds a Root directly from a set of prefab files, bypassing
// New's embedded-stdlib and filesystem-scan steps entirely.
func newTestRoot(prefabs map[string]ast.File) *Root {
	return &Root{
		logger:    discardLogger(),
		graphs:    make(map[string]*elaborate.Graph),
		compiling: make(map[string]bool),
		prefabs:   prefabs,
	}
}

// echoModel builds a trivial one-node-to-one-node extern: Input=5,
// identity. Used where a test just needs some resolvable leaf prefab.
func echoModel(name string) ast.File {
	m := ast.NewModel(name)
	m.IsExtern = true
	m.Inner.Graph = []ast.GraphLine{
		{ID: 0, Passes: []ast.Pass{ast.NewPass("Input")}, Shapes: shapePtr(ast.FixedDim(5))},
		{ID: 1, Passes: []ast.Pass{ast.NewPass("identity")}},
	}
	return ast.File{Model: m}
}

func TestFindCachesCompiledGraph(t *testing.T) {
	r := newTestRoot(map[string]ast.File{"Echo": echoModel("Echo")})

	g1, err := r.Find("Echo", ast.LocalOrigin())
	require.NoError(t, err)
	require.NotNil(t, g1)

	_, stillPrefab := r.prefabs["Echo"]
	assert.False(t, stillPrefab, "a compiled prefab should be consumed")
	_, cached := r.graphs["Echo"]
	assert.True(t, cached, "a compiled graph should be cached for reuse")

	g2, err := r.Find("Echo", ast.LocalOrigin())
	require.NoError(t, err)
	assert.NotSame(t, g1, g2, "Find should hand back an independent clone on every call")
}

func TestFindReportsUnsupportedOrigin(t *testing.T) {
	r := newTestRoot(map[string]ast.File{"Echo": echoModel("Echo")})
	_, err := r.Find("Echo", ast.SiteOrigin("Echo"))
	assert.ErrorIs(t, err, compileerr.ErrUnsupportedOrigin)
}

func TestFindReportsModelNotFound(t *testing.T) {
	r := newTestRoot(map[string]ast.File{})
	_, err := r.Find("Nowhere", ast.LocalOrigin())
	assert.ErrorIs(t, err, compileerr.ErrModelNotFound)
}

// TestFindDetectsRecursiveUsage builds two prefabs that call each other
// by name (A's graph calls B, B's graph calls A) and confirms the
// recursion guard reports the cycle instead of recursing forever, and
// that compiling[...] is released on that error path so a later,
// unrelated Find is unaffected.
func TestFindDetectsRecursiveUsage(t *testing.T) {
	callOther := func(name, other string) ast.File {
		m := ast.NewModel(name)
		m.Inner.Graph = []ast.GraphLine{
			{ID: 0, Passes: []ast.Pass{ast.NewPass("Input")}, Shapes: shapePtr(ast.FixedDim(5))},
			{ID: 1, Passes: []ast.Pass{ast.NewPass(other)}},
		}
		return ast.File{Model: m}
	}

	r := newTestRoot(map[string]ast.File{
		"A": callOther("A", "B"),
		"B": callOther("B", "A"),
	})

	_, err := r.Find("A", ast.LocalOrigin())
	require.Error(t, err)
	assert.ErrorIs(t, err, compileerr.ErrRecursiveUsage)

	assert.Empty(t, r.compiling, "the recursion guard must be released on every exit path")

	r.prefabs["Echo"] = echoModel("Echo")
	_, err = r.Find("Echo", ast.LocalOrigin())
	assert.NoError(t, err)
}

// fakeParser implements [Parser] by returning a canned ast.File for any
// input, for exercising CompileFromSource without a real parser.
type fakeParser struct {
	file ast.File
	err  error
}

func (p fakeParser) Parse(string) (ast.File, error) {
	return p.file, p.err
}

func TestCompileFromSourceDoesNotCache(t *testing.T) {
	r := newTestRoot(nil)
	r.parser = fakeParser{file: echoModel("Echo")}

	g, err := r.CompileFromSource("irrelevant source text")
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Empty(t, r.graphs, "CompileFromSource must not register its result in the shared cache")
}
