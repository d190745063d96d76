package ast

// Op identifies the arithmetic operator of a [DimExpr] in Expr form.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpQuo
)

// String returns the operator's surface symbol.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpQuo:
		return "/"
	default:
		return "?"
	}
}

// dimExprKind discriminates the alternatives of [DimExpr].
type dimExprKind uint8

const (
	dimExprFixed dimExprKind = iota
	dimExprSemantic
	dimExprBinary
)

// DimExpr is the surface-syntax representation of a single declared
// dimension: Fixed(u64) | Semantic(string) | Expr{lhs, rhs, op}. The
// Graph elaborator lowers this into the resolved [dim.Dim] algebra via
// convert_dim (spec §4.5.2).
//
// The zero DimExpr is not meaningful; always construct via [FixedDim],
// [SemanticDim], or [BinaryDim].
type DimExpr struct {
	kind  dimExprKind
	fixed uint64
	name  string
	lhs   *DimExpr
	rhs   *DimExpr
	op    Op
}

// FixedDim builds a literal dimension: Fixed(n).
func FixedDim(n uint64) DimExpr {
	return DimExpr{kind: dimExprFixed, fixed: n}
}

// SemanticDim builds a named-variable dimension: Semantic(name),
// resolved against the graph's variables/placeholders by find_var.
func SemanticDim(name string) DimExpr {
	return DimExpr{kind: dimExprSemantic, name: name}
}

// BinaryDim builds an arithmetic dimension: Expr{lhs, rhs, op}.
func BinaryDim(lhs, rhs DimExpr, op Op) DimExpr {
	return DimExpr{kind: dimExprBinary, lhs: &lhs, rhs: &rhs, op: op}
}

// IsFixed reports whether this is a Fixed(n) literal, returning n.
func (d DimExpr) IsFixed() (uint64, bool) {
	return d.fixed, d.kind == dimExprFixed
}

// IsSemantic reports whether this is a Semantic(name) reference,
// returning name.
func (d DimExpr) IsSemantic() (string, bool) {
	return d.name, d.kind == dimExprSemantic
}

// IsBinary reports whether this is an Expr{lhs,rhs,op}, returning its
// parts.
func (d DimExpr) IsBinary() (lhs, rhs DimExpr, op Op, ok bool) {
	if d.kind != dimExprBinary {
		return DimExpr{}, DimExpr{}, 0, false
	}
	return *d.lhs, *d.rhs, d.op, true
}
