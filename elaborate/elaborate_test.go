package elaborate

import (
	"github.com/n3lang/n3c/ast"
	"github.com/n3lang/n3c/compileerr"
)

// fakeResolver is a minimal, in-memory [Resolver] backed by a plain map of
// already-compiled graphs, standing in for the registry package (which
// this package may not import, since registry depends on elaborate).
type fakeResolver struct {
	graphs map[string]*Graph
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{graphs: make(map[string]*Graph)}
}

func (r *fakeResolver) add(name string, g *Graph) *fakeResolver {
	r.graphs[name] = g
	return r
}

func (r *fakeResolver) Find(name string, _ ast.UseOrigin) (*Graph, error) {
	g, ok := r.graphs[name]
	if !ok {
		return nil, compileerr.ModelNotFound(name)
	}
	return g.Clone(), nil
}

// linearModel builds the extern declaration for a fully-connected layer:
// an input of (batch, in_features), "fixed"-declaring a fresh, unrelated
// output of (batch, out_features).
func linearModel() ast.Model {
	m := ast.NewModel("Linear")
	m.IsExtern = true
	m.Inner.Graph = []ast.GraphLine{
		{
			ID:     0,
			Passes: []ast.Pass{ast.NewPass("Input")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{
				ast.SemanticDim("batch"), ast.SemanticDim("in_features"),
			})),
		},
		{
			ID:     1,
			Passes: []ast.Pass{ast.NewPass("fixed")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{
				ast.SemanticDim("batch"), ast.SemanticDim("out_features"),
			})),
		},
	}
	return m
}

// reluModel builds a shape-preserving extern declaration using the
// "identity" intrinsic, as an activation function would.
func reluModel() ast.Model {
	m := ast.NewModel("ReLU")
	m.IsExtern = true
	m.Inner.Graph = []ast.GraphLine{
		{
			ID:     0,
			Passes: []ast.Pass{ast.NewPass("Input")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{
				ast.SemanticDim("batch"), ast.SemanticDim("features"),
			})),
		},
		{
			ID:     1,
			Passes: []ast.Pass{ast.NewPass("identity")},
		},
	}
	return m
}

func shapePtr(s ast.ShapeSpec) *ast.ShapeSpec { return &s }

func mustCompileExtern(m ast.Model) *Graph {
	g, err := CompileModel(m, newFakeResolver())
	if err != nil {
		panic(err)
	}
	return g
}
