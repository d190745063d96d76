package dim

import "github.com/n3lang/n3c/symbol"

// Dim is a single tensor dimension: either a bare [DimKey] reference, or
// a symbolic [symbol.Symbol] expression built from arithmetic over keys
// and rational constants. Arithmetic on a Dim always produces an Expr
// dim; equality is decided by the algebra's simplifier, after
// substituting through a graph's current key-bindings (see
// [Dim.EqualUnder]).
//
// The zero Dim is not meaningful; always construct via [Key] or [Expr].
type Dim struct {
	isExpr bool
	key    DimKey
	expr   symbol.Symbol
}

// Key builds a Dim that is a bare reference to k.
func Key(k DimKey) Dim {
	return Dim{key: k}
}

// Expr builds a Dim that is a symbolic expression.
func Expr(s symbol.Symbol) Dim {
	return Dim{isExpr: true, expr: s}
}

// IsKey reports whether this Dim is a bare DimKey reference.
func (d Dim) IsKey() bool { return !d.isExpr }

// IsExpr reports whether this Dim is a symbolic expression.
func (d Dim) IsExpr() bool { return d.isExpr }

// AsKey returns the referenced key and true, if this Dim is a Key dim.
func (d Dim) AsKey() (DimKey, bool) {
	return d.key, !d.isExpr
}

// AsExpr returns the expression and true, if this Dim is an Expr dim.
func (d Dim) AsExpr() (symbol.Symbol, bool) {
	return d.expr, d.isExpr
}

// Symbol returns the Dim's representation in the symbolic algebra: for a
// Key dim, the algebra variable named by the key's canonical symbol
// string; for an Expr dim, the expression itself.
func (d Dim) Symbol() symbol.Symbol {
	if d.isExpr {
		return d.expr
	}
	return symbol.Var(d.key.String())
}

// Add builds the Dim d + other.
func (d Dim) Add(other Dim) Dim {
	return Expr(d.Symbol().Add(other.Symbol()))
}

// Sub builds the Dim d − other.
func (d Dim) Sub(other Dim) Dim {
	return Expr(d.Symbol().Sub(other.Symbol()))
}

// Mul builds the Dim d × other.
func (d Dim) Mul(other Dim) Dim {
	return Expr(d.Symbol().Mul(other.Symbol()))
}

// Quo builds the Dim d ÷ other. Returns [symbol.ErrDivideByZero] if other
// is the constant 0.
func (d Dim) Quo(other Dim) (Dim, error) {
	s, err := d.Symbol().Quo(other.Symbol())
	if err != nil {
		return Dim{}, err
	}
	return Expr(s), nil
}

// EqualUnder reports whether d and other denote the same dimension once
// both are evaluated to a fixed point through bindings (a graph's current
// DimKey → Expr key-bindings, keyed by DimKey.String()).
func (d Dim) EqualUnder(other Dim, bindings map[string]symbol.Symbol) bool {
	return d.Symbol().Eval(bindings).Equal(other.Symbol().Eval(bindings))
}

// String renders the Dim for diagnostics.
func (d Dim) String() string {
	return d.Symbol().String()
}
