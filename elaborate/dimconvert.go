package elaborate

import (
	"github.com/n3lang/n3c/ast"
	"github.com/n3lang/n3c/compileerr"
	"github.com/n3lang/n3c/dim"
	"github.com/n3lang/n3c/symbol"
	"github.com/n3lang/n3c/value"
)

// findVar resolves a Semantic(name) dimension reference against g (spec
// §4.5.2 find_var): an already-coined placeholder of that name wins over
// a variable, checked input tier first, then local; otherwise a bound
// UInt variable or alias; otherwise, if the current shape-state allows
// it, a freshly coined placeholder. isInputContext marks the tier a
// newly coined placeholder is recorded under.
func (g *Graph) findVar(model string, node string, name string, isInputContext bool) (dim.Dim, bool, error) {
	if g.phInput[name] {
		return dim.Key(dim.PlaceholderKey(name, true)), false, nil
	}
	if g.phLocal[name] {
		return dim.Key(dim.PlaceholderKey(name, false)), false, nil
	}

	if desc, ok := g.variables.Resolve(name, name); ok {
		v, _ := g.variables.Get(desc)
		upgraded, ok := v.ExpectOrDefault(value.TypeUInt)
		if !ok {
			return dim.Dim{}, false, compileerr.DifferentVariableType(model, desc)
		}
		g.variables.Put(upgraded)
		return dim.Key(dim.VariableKey(desc)), false, nil
	}

	if !g.st.IsNewVarAvailable() {
		return dim.Dim{}, false, compileerr.FullShapeRequired(model, node)
	}

	if isInputContext {
		g.phInput[name] = true
	} else {
		g.phLocal[name] = true
	}
	return dim.Key(dim.PlaceholderKey(name, isInputContext)), true, nil
}

// convertDim lowers a surface DimExpr into the resolved dim.Dim algebra
// (spec §4.5.2 convert_dim), reporting whether a fresh placeholder was
// coined anywhere in the expression.
func (g *Graph) convertDim(model, node string, e ast.DimExpr, isInputContext bool) (dim.Dim, bool, error) {
	if n, ok := e.IsFixed(); ok {
		return dim.Expr(symbol.Const(int64(n))), false, nil
	}
	if name, ok := e.IsSemantic(); ok {
		return g.findVar(model, node, name, isInputContext)
	}

	lhsExpr, rhsExpr, op, ok := e.IsBinary()
	if !ok {
		return dim.Dim{}, false, compileerr.ShapeNotDefined(model, node)
	}

	lhs, lhsCoined, err := g.convertDim(model, node, lhsExpr, isInputContext)
	if err != nil {
		return dim.Dim{}, false, err
	}
	rhs, rhsCoined, err := g.convertDim(model, node, rhsExpr, isInputContext)
	if err != nil {
		return dim.Dim{}, false, err
	}
	coined := lhsCoined || rhsCoined

	switch op {
	case ast.OpAdd:
		return lhs.Add(rhs), coined, nil
	case ast.OpSub:
		return lhs.Sub(rhs), coined, nil
	case ast.OpMul:
		return lhs.Mul(rhs), coined, nil
	case ast.OpQuo:
		if rhs.Symbol().Eval(g.Bindings()).IsZero() {
			return dim.Dim{}, false, compileerr.DivideByZero(model, node)
		}
		result, err := lhs.Quo(rhs)
		if err != nil {
			return dim.Dim{}, false, compileerr.DivideByZero(model, node)
		}
		return result, coined, nil
	default:
		return dim.Dim{}, false, compileerr.ShapeNotDefined(model, node)
	}
}

// updateDim unifies the sub-graph's expected dim against the caller's
// ground dim (spec §4.5.1 update_dim), recording any resulting binding
// on g (the sub-graph being unified into).
func (g *Graph) updateDim(model, node string, expected, ground dim.Dim) (dim.Dim, error) {
	key, isKey := expected.AsKey()
	if !isKey || key.Kind() != dim.KeyPlaceholder {
		bindings := g.Bindings()
		expSym := expected.Symbol().Eval(bindings)
		groundSym := ground.Symbol().Eval(bindings)

		// expected may be an Expr that, once evaluated against this
		// graph's own bindings, turns out to still be a bare unresolved
		// variable reference rather than a literal computed value: this
		// happens when expected is a sub-model call's re-evaluated output
		// dim (attachResolved's reevaluateLastShapes), carrying a
		// placeholder's algebra name across the call boundary without
		// itself remaining a Key dim. Bind it here exactly as the
		// Placeholder branch below would, rather than requiring it to
		// already equal ground structurally.
		if name, isVar := expSym.AsVar(); isVar {
			if current, ok := g.Lookup(name); ok {
				if !current.Symbol().Eval(bindings).Equal(groundSym) {
					return dim.Dim{}, compileerr.DifferentDimension(model, node)
				}
			}
			g.Bind(name, dim.Expr(groundSym))
			return dim.Expr(groundSym), nil
		}

		if expSym.Equal(groundSym) {
			return ground, nil
		}
		return dim.Dim{}, compileerr.DifferentDimension(model, node)
	}

	keyStr := key.String()
	if current, ok := g.Lookup(keyStr); ok {
		bindings := g.Bindings()
		if !current.Symbol().Eval(bindings).Equal(ground.Symbol().Eval(bindings)) {
			return dim.Dim{}, compileerr.DifferentDimension(model, node)
		}
	}

	if gkey, isGKey := ground.AsKey(); isGKey && gkey.Kind() == dim.KeyPlaceholder {
		switch {
		case gkey.Name() == key.Name():
			return ground, nil
		case key.IsInput() && gkey.IsInput():
			g.Bind(keyStr, dim.Expr(symbol.Var(gkey.String())))
			return dim.Expr(symbol.Var(gkey.String())), nil
		default:
			return dim.Dim{}, compileerr.CannotEstimateShape(model, node)
		}
	}

	g.Bind(keyStr, ground)
	return dim.Expr(ground.Symbol()), nil
}
