package elaborate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n3lang/n3c/ast"
	"github.com/n3lang/n3c/compileerr"
	"github.com/n3lang/n3c/dim"
	gnode "github.com/n3lang/n3c/node"
	"github.com/n3lang/n3c/symbol"
	"github.com/n3lang/n3c/value"
)

// TestFixedPipelineFullyStatic covers a pipeline built entirely from
// literal dims: every node's shape is fully determined the moment it is
// attached, with no placeholder surviving to the end.
func TestFixedPipelineFullyStatic(t *testing.T) {
	resolver := newFakeResolver().
		add("Linear", mustCompileExtern(linearModel())).
		add("ReLU", mustCompileExtern(reluModel()))

	m := ast.NewModel("M")
	m.Inner.Graph = []ast.GraphLine{
		{
			ID:     0,
			Passes: []ast.Pass{ast.NewPass("Input")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{
				ast.FixedDim(8), ast.FixedDim(16),
			})),
		},
		{
			ID:     1,
			Passes: []ast.Pass{ast.NewPass("Linear"), ast.NewPass("ReLU")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{
				ast.FixedDim(8), ast.FixedDim(22),
			})),
		},
	}

	g, err := CompileModel(m, resolver)
	require.NoError(t, err)

	shapes := g.GetShapes()
	assert.Len(t, shapes, 3)

	last, ok := shapes[gnode.NewGraphId(1, 1, 0)]
	require.True(t, ok)
	require.Len(t, last, 1)
	require.Len(t, last[0], 2)
	assert.True(t, last[0][0].Symbol().Equal(symbol.Const(8)))
	assert.True(t, last[0][1].Symbol().Equal(symbol.Const(22)))
}

// TestClassifierWithSemanticPlaceholder covers a classifier-shaped
// pipeline (conv, activation, a transform reshape, a final linear)
// whose input channel count is a semantic placeholder threaded through
// untouched, and whose terminal width is bound from a declared model
// variable rather than a literal.
func TestClassifierWithSemanticPlaceholder(t *testing.T) {
	resolver := newFakeResolver().
		add("Conv2d", mustCompileExtern(conv2dFixedModel())).
		add("ReLU3", mustCompileExtern(relu3Model())).
		add("Flatten", mustCompileExtern(flattenModel())).
		add("Linear10", mustCompileExtern(linear10Model()))

	m := ast.NewModel("LeNet")
	m.Inner.Variables = []ast.VariableDecl{
		ast.NewVariableDecl("N").WithDefault(value.UInt(10)),
	}
	m.Inner.Graph = []ast.GraphLine{
		{
			ID:     0,
			Passes: []ast.Pass{ast.NewPass("Input")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{
				ast.SemanticDim("Ic"), ast.FixedDim(28), ast.FixedDim(28),
			})),
		},
		{ID: 1, Passes: []ast.Pass{ast.NewPass("Conv2d"), ast.NewPass("ReLU3")}},
		{ID: 2, Passes: []ast.Pass{ast.NewPass("Flatten")}},
		{
			ID:     3,
			Passes: []ast.Pass{ast.NewPass("Linear10")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{ast.SemanticDim("N")})),
		},
	}

	g, err := CompileModel(m, resolver)
	require.NoError(t, err)

	shapes := g.GetShapes()
	assert.Len(t, shapes, 5)

	first, ok := shapes[gnode.NewGraphId(0, 0, 0)]
	require.True(t, ok)
	require.Len(t, first, 1)
	key, isKey := first[0][0].AsKey()
	require.True(t, isKey)
	assert.Equal(t, dim.KeyPlaceholder, key.Kind())
	assert.Equal(t, "Ic", key.Name())
	assert.True(t, key.IsInput())

	last, ok := shapes[gnode.NewGraphId(3, 0, 0)]
	require.True(t, ok)
	require.Len(t, last, 1)
	require.Len(t, last[0], 1)
	assert.True(t, last[0][0].IsExpr())
	assert.True(t, last[0][0].Symbol().Equal(symbol.Const(10)))
}

// conv2dFixedModel declares a rank-3 placeholder input and a hardcoded
// literal output, standing in for a real convolution's fixed-stride
// output-shape arithmetic.
func conv2dFixedModel() ast.Model {
	m := ast.NewModel("Conv2d")
	m.IsExtern = true
	m.Inner.Graph = []ast.GraphLine{
		{
			ID:     0,
			Passes: []ast.Pass{ast.NewPass("Input")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{
				ast.SemanticDim("Ic"), ast.SemanticDim("H"), ast.SemanticDim("W"),
			})),
		},
		{
			ID:     1,
			Passes: []ast.Pass{ast.NewPass("fixed")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{
				ast.FixedDim(32), ast.FixedDim(14), ast.FixedDim(14),
			})),
		},
	}
	return m
}

// relu3Model is a rank-3 shape-preserving activation.
func relu3Model() ast.Model {
	m := ast.NewModel("ReLU3")
	m.IsExtern = true
	m.Inner.Graph = []ast.GraphLine{
		{
			ID:     0,
			Passes: []ast.Pass{ast.NewPass("Input")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{
				ast.SemanticDim("c"), ast.SemanticDim("h"), ast.SemanticDim("w"),
			})),
		},
		{ID: 1, Passes: []ast.Pass{ast.NewPass("identity")}},
	}
	return m
}

// flattenModel reshapes a rank-3 input to its flattened product, via the
// "dynamic" transform intrinsic: the declared output re-multiplies the
// same three semantic names the input bound, so the Transform path's
// product-unification is structurally trivial.
func flattenModel() ast.Model {
	m := ast.NewModel("Flatten")
	m.IsExtern = true
	m.Inner.Graph = []ast.GraphLine{
		{
			ID:     0,
			Passes: []ast.Pass{ast.NewPass("Input")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{
				ast.SemanticDim("c"), ast.SemanticDim("h"), ast.SemanticDim("w"),
			})),
		},
		{
			ID: 1,
			Passes: []ast.Pass{{
				Name: "dynamic",
				Args: []ast.GraphPassArg{ast.KeywordArg("transform", value.Bool(true))},
			}},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{
				ast.BinaryDim(
					ast.BinaryDim(ast.SemanticDim("c"), ast.SemanticDim("h"), ast.OpMul),
					ast.SemanticDim("w"), ast.OpMul,
				),
			})),
		},
	}
	return m
}

// linear10Model is a fully-connected layer whose output width is its own
// freshly-coined placeholder, unrelated to its input width.
func linear10Model() ast.Model {
	m := ast.NewModel("Linear10")
	m.IsExtern = true
	m.Inner.Graph = []ast.GraphLine{
		{
			ID:     0,
			Passes: []ast.Pass{ast.NewPass("Input")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{ast.SemanticDim("f")})),
		},
		{
			ID:     1,
			Passes: []ast.Pass{ast.NewPass("fixed")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{ast.SemanticDim("out_f")})),
		},
	}
	return m
}

// TestModelElaboratorOverride covers the override path (spec §4.6's
// "override"): a child model declaration that names an already-`use`d
// extern and supplies concrete values for its Required variables,
// without declaring any graph of its own.
func TestModelElaboratorOverride(t *testing.T) {
	conv2d := ast.NewModel("Conv2d")
	conv2d.IsExtern = true
	conv2d.Inner.Variables = []ast.VariableDecl{
		ast.NewVariableDecl("kernel_size"),
		ast.NewVariableDecl("stride"),
	}
	conv2d.Inner.Graph = []ast.GraphLine{
		{
			ID:     0,
			Passes: []ast.Pass{ast.NewPass("Input")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{ast.SemanticDim("in_c")})),
		},
		{
			ID:     1,
			Passes: []ast.Pass{ast.NewPass("fixed")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{ast.SemanticDim("out_c")})),
		},
	}
	compiledConv2d, err := CompileModel(conv2d, newFakeResolver())
	require.NoError(t, err)

	resolver := newFakeResolver().add("Conv2d", compiledConv2d)

	t.Run("binds override variables", func(t *testing.T) {
		override := ast.NewModel("Conv2d")
		override.Inner.Variables = []ast.VariableDecl{
			ast.NewVariableDecl("kernel_size").WithDefault(value.UInt(5)),
			ast.NewVariableDecl("stride").WithDefault(value.UInt(2)),
		}
		g, err := compileModel(override, resolver, true)
		require.NoError(t, err)

		vars := g.GetVariables()
		ks, ok := vars["kernel_size"]
		require.True(t, ok)
		val, hasVal := ks.Value()
		require.True(t, hasVal)
		u, isUInt := val.UInt()
		require.True(t, isUInt)
		assert.EqualValues(t, 5, u)
	})

	t.Run("rejects graph lines", func(t *testing.T) {
		override := ast.NewModel("Conv2d")
		override.Inner.Variables = []ast.VariableDecl{
			ast.NewVariableDecl("kernel_size").WithDefault(value.UInt(5)),
			ast.NewVariableDecl("stride").WithDefault(value.UInt(2)),
		}
		override.Inner.Graph = []ast.GraphLine{
			{ID: 0, Passes: []ast.Pass{ast.NewPass("Input")}},
		}
		_, err := compileModel(override, resolver, true)
		assert.ErrorIs(t, err, compileerr.ErrOverrideGraph)
	})

	t.Run("rejects nested children", func(t *testing.T) {
		override := ast.NewModel("Conv2d")
		override.Inner.Children = []ast.Model{ast.NewModel("Nested")}
		_, err := compileModel(override, resolver, true)
		assert.ErrorIs(t, err, compileerr.ErrOverrideChild)
	})

	t.Run("requires every variable get a value", func(t *testing.T) {
		override := ast.NewModel("Conv2d")
		override.Inner.Variables = []ast.VariableDecl{
			ast.NewVariableDecl("kernel_size"),
		}
		_, err := compileModel(override, resolver, true)
		assert.ErrorIs(t, err, compileerr.ErrNoVariableValue)
	})
}

// TestDivideByZeroInShapeExpression covers a declared shape expression
// whose divisor reduces to the constant 0.
func TestDivideByZeroInShapeExpression(t *testing.T) {
	m := ast.NewModel("Reshape")
	m.Inner.Graph = []ast.GraphLine{
		{
			ID:     0,
			Passes: []ast.Pass{ast.NewPass("Input")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{ast.FixedDim(5)})),
		},
		{
			ID:     1,
			Passes: []ast.Pass{ast.NewPass("fixed")},
			Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{
				ast.BinaryDim(ast.FixedDim(10), ast.FixedDim(0), ast.OpQuo),
			})),
		},
	}

	_, err := CompileModel(m, newFakeResolver())
	require.Error(t, err)
	assert.ErrorIs(t, err, compileerr.ErrDivideByZero)
}

// TestInlineSubModelInheritingPlaceholder covers an inline sub-model
// declaration whose own input is the same semantic name as its caller's,
// so the two share one algebra symbol (spec §4.3's symbol-identity
// rule) rather than unifying as distinct dimensions.
func TestInlineSubModelInheritingPlaceholder(t *testing.T) {
	buildOuter := func(final ast.DimExpr) ast.Model {
		inner := ast.NewModel("Scaled")
		inner.Inner.Variables = []ast.VariableDecl{
			ast.NewVariableDecl("weight").WithDefault(value.UInt(2)),
		}
		inner.Inner.Graph = []ast.GraphLine{
			{
				ID:     0,
				Passes: []ast.Pass{ast.NewPass("Input")},
				Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{ast.SemanticDim("N")})),
			},
			{
				ID:     1,
				Passes: []ast.Pass{ast.NewPass("fixed")},
				Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{
					ast.BinaryDim(
						ast.BinaryDim(ast.SemanticDim("N"), ast.SemanticDim("weight"), ast.OpMul),
						ast.FixedDim(1), ast.OpAdd,
					),
				})),
			},
		}

		outer := ast.NewModel("Outer")
		outer.Inner.Graph = []ast.GraphLine{
			{
				ID:     0,
				Passes: []ast.Pass{ast.NewPass("Input")},
				Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{ast.SemanticDim("N")})),
			},
			{ID: 1, Inline: &inner},
			{
				ID:     2,
				Passes: []ast.Pass{ast.NewPass("identity")},
				Shapes: shapePtr(ast.SingleArgShape([]ast.DimExpr{final})),
			},
		}
		return outer
	}

	t.Run("echoing the same formula unifies", func(t *testing.T) {
		echo := ast.BinaryDim(
			ast.BinaryDim(ast.SemanticDim("N"), ast.FixedDim(2), ast.OpMul),
			ast.FixedDim(1), ast.OpAdd,
		)
		g, err := CompileModel(buildOuter(echo), newFakeResolver())
		require.NoError(t, err)

		shapes := g.GetShapes()
		last, ok := shapes[gnode.NewGraphId(2, 0, 0)]
		require.True(t, ok)
		require.Len(t, last, 1)
		require.Len(t, last[0], 1)
		assert.True(t, last[0][0].IsExpr())
	})

	t.Run("an inconsistent literal fails to unify", func(t *testing.T) {
		_, err := CompileModel(buildOuter(ast.FixedDim(25)), newFakeResolver())
		require.Error(t, err)
		assert.ErrorIs(t, err, compileerr.ErrDifferentDimension)
	})
}
