// Package symbol implements the exact-rational symbolic algebra over which
// tensor dimension expressions are built, substituted, and compared.
//
// A Symbol is an immutable expression tree of named variables and rational
// constants combined with +, −, ×, ÷. The package never depends on the
// DimKey or Dim types that name its variables — those live in [dim] — so
// variable identity here is a plain string, normally the canonical encoding
// produced by dim.DimKey.String().
package symbol

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// ctx is the decimal context used for all constant folding. Precision is
// set generously above anything a tensor dimension needs; N3 dimensions are
// non-negative integers and small rational factors, never requiring more
// than a handful of significant digits.
var ctx = apd.BaseContext.WithPrecision(40)

// ErrDivideByZero is returned by Quo (and surfaces through Eval/EvalOnce)
// when the divisor reduces to the constant 0.
var ErrDivideByZero = errors.New("symbol: divide by zero")

// kind discriminates the nodes of a Symbol's expression tree.
type kind uint8

const (
	kindConst kind = iota
	kindVar
	kindAdd
	kindSub
	kindMul
	kindQuo
)

// Symbol is an immutable node in a multivariate expression tree over named
// symbols and exact rational constants.
//
// The zero Symbol is not valid; always construct via [Const], [Var], or the
// arithmetic methods.
type Symbol struct {
	kind     kind
	name     string
	value    apd.Decimal
	operands []Symbol
}

// Const builds a constant symbol from an integer.
func Const(n int64) Symbol {
	var d apd.Decimal
	d.SetInt64(n)
	return Symbol{kind: kindConst, value: d}
}

// ConstDecimal builds a constant symbol from an arbitrary-precision decimal,
// for rational constants that do not fit an int64 (e.g. the coefficient of
// a stride expressed as a fraction).
func ConstDecimal(d apd.Decimal) Symbol {
	return Symbol{kind: kindConst, value: d}
}

// Var builds a symbol referencing a named variable. name is normally the
// canonical symbol string of a DimKey (e.g. "var_Stride", "ph_Ic").
func Var(name string) Symbol {
	return Symbol{kind: kindVar, name: name}
}

// Build reconstructs a Symbol from its serialized parts (spec §6's
// self-describing tagged serialization): tag selects the node kind,
// name is meaningful only for "var", value only for "const", and
// operands only for the four arithmetic kinds. The result is
// re-simplified, so a round-tripped tree remains canonical even if the
// serialized form predates a later-loosened invariant.
func Build(tag, name string, value apd.Decimal, operands []Symbol) (Symbol, error) {
	switch tag {
	case "const":
		return ConstDecimal(value), nil
	case "var":
		return Var(name), nil
	case "add":
		if len(operands) < 2 {
			return Symbol{}, fmt.Errorf("symbol: add requires at least 2 operands, got %d", len(operands))
		}
		return Symbol{kind: kindAdd, operands: operands}.simplify(), nil
	case "sub":
		if len(operands) != 2 {
			return Symbol{}, fmt.Errorf("symbol: sub requires exactly 2 operands, got %d", len(operands))
		}
		return Symbol{kind: kindSub, operands: operands}.simplify(), nil
	case "mul":
		if len(operands) < 2 {
			return Symbol{}, fmt.Errorf("symbol: mul requires at least 2 operands, got %d", len(operands))
		}
		return Symbol{kind: kindMul, operands: operands}.simplify(), nil
	case "quo":
		if len(operands) != 2 {
			return Symbol{}, fmt.Errorf("symbol: quo requires exactly 2 operands, got %d", len(operands))
		}
		return Symbol{kind: kindQuo, operands: operands}.simplify(), nil
	default:
		return Symbol{}, fmt.Errorf("symbol: unknown tag %q", tag)
	}
}

// IsConst reports whether the symbol is, after its own construction (not
// necessarily after simplification of children), a bare constant leaf.
func (s Symbol) IsConst() bool {
	return s.kind == kindConst
}

// IsZero reports whether the symbol is the constant 0.
func (s Symbol) IsZero() bool {
	return s.kind == kindConst && s.value.IsZero()
}

// IsOne reports whether the symbol is the constant 1.
func (s Symbol) IsOne() bool {
	if s.kind != kindConst {
		return false
	}
	one := apd.New(1, 0)
	return s.value.Cmp(one) == 0
}

// Add builds the symbol s + other.
func (s Symbol) Add(other Symbol) Symbol {
	return Symbol{kind: kindAdd, operands: []Symbol{s, other}}.simplify()
}

// Sub builds the symbol s − other.
func (s Symbol) Sub(other Symbol) Symbol {
	return Symbol{kind: kindSub, operands: []Symbol{s, other}}.simplify()
}

// Mul builds the symbol s × other.
func (s Symbol) Mul(other Symbol) Symbol {
	return Symbol{kind: kindMul, operands: []Symbol{s, other}}.simplify()
}

// Quo builds the symbol s ÷ other. Returns [ErrDivideByZero] if other
// simplifies to the constant 0; the zero Symbol is returned alongside.
func (s Symbol) Quo(other Symbol) (Symbol, error) {
	if other.IsZero() {
		return Symbol{}, ErrDivideByZero
	}
	return Symbol{kind: kindQuo, operands: []Symbol{s, other}}.simplify(), nil
}

// Substitute replaces every Var symbol whose name is a key in bindings with
// the bound Symbol, recursively, in a single pass (no fixed-point
// iteration — see [Symbol.Eval] for that). Unbound variables are left as
// is.
func (s Symbol) Substitute(bindings map[string]Symbol) Symbol {
	switch s.kind {
	case kindConst:
		return s
	case kindVar:
		if bound, ok := bindings[s.name]; ok {
			return bound
		}
		return s
	default:
		next := make([]Symbol, len(s.operands))
		for i, op := range s.operands {
			next[i] = op.Substitute(bindings)
		}
		return Symbol{kind: s.kind, operands: next}.simplify()
	}
}

// EvalOnce performs a single substitution pass followed by canonicalization.
// It is equivalent to Substitute, exposed under its own name because the
// elaborator reasons about "one level of substitution" versus "to a fixed
// point" as distinct algorithm steps.
func (s Symbol) EvalOnce(bindings map[string]Symbol) Symbol {
	return s.Substitute(bindings)
}

// maxEvalSteps bounds the fixed-point loop in Eval. Binding chains in
// practice are a handful of symbols deep (one alias hop, one variable
// resolution); this is generous headroom against any cyclic binding that
// slipped past the registry's recursion guard.
const maxEvalSteps = 64

// Eval substitutes through bindings repeatedly until the symbol stops
// changing (a fixed point) or maxEvalSteps is exhausted, whichever comes
// first. Returns the final symbol; a binding table that never converges
// yields the symbol as of the last iteration rather than an error, since a
// non-terminating binding chain indicates a bug in the caller (bindings
// should be acyclic by construction) rather than a data error worth
// reporting through the compiler's error channel.
func (s Symbol) Eval(bindings map[string]Symbol) Symbol {
	cur := s
	for i := 0; i < maxEvalSteps; i++ {
		next := cur.EvalOnce(bindings)
		if next.Equal(cur) {
			return next
		}
		cur = next
	}
	return cur
}

// Equal reports structural equality after canonicalization. Canonicalization
// happens automatically as symbols are built (simplify runs on every
// arithmetic/substitution result), so Equal is a deep structural comparison
// of already-canonical trees.
func (s Symbol) Equal(other Symbol) bool {
	if s.kind != other.kind {
		return false
	}
	switch s.kind {
	case kindConst:
		return s.value.Cmp(&other.value) == 0
	case kindVar:
		return s.name == other.name
	default:
		if len(s.operands) != len(other.operands) {
			return false
		}
		for i := range s.operands {
			if !s.operands[i].Equal(other.operands[i]) {
				return false
			}
		}
		return true
	}
}

// Tag returns a stable, serializable name for the symbol's node kind:
// "const", "var", "add", "sub", "mul", or "quo".
func (s Symbol) Tag() string {
	switch s.kind {
	case kindConst:
		return "const"
	case kindVar:
		return "var"
	case kindAdd:
		return "add"
	case kindSub:
		return "sub"
	case kindMul:
		return "mul"
	case kindQuo:
		return "quo"
	default:
		return "invalid"
	}
}

// AsVar returns the variable name and true if the symbol is a Var leaf.
func (s Symbol) AsVar() (string, bool) {
	return s.name, s.kind == kindVar
}

// AsDecimal returns the constant's decimal value and true if the symbol
// is a Const leaf.
func (s Symbol) AsDecimal() (apd.Decimal, bool) {
	return s.value, s.kind == kindConst
}

// Operands returns the symbol's child nodes, in canonical order; nil
// for Const and Var leaves. The returned slice must not be mutated.
func (s Symbol) Operands() []Symbol {
	return s.operands
}

// String renders the symbol in a canonical, deterministic textual form.
func (s Symbol) String() string {
	switch s.kind {
	case kindConst:
		return s.value.String()
	case kindVar:
		return s.name
	case kindAdd:
		return s.joinOperands(" + ")
	case kindSub:
		return fmt.Sprintf("(%s - %s)", s.operands[0], s.operands[1])
	case kindMul:
		return s.joinOperands(" * ")
	case kindQuo:
		return fmt.Sprintf("(%s / %s)", s.operands[0], s.operands[1])
	default:
		return "<invalid symbol>"
	}
}

func (s Symbol) joinOperands(sep string) string {
	parts := make([]string, len(s.operands))
	for i, op := range s.operands {
		parts[i] = op.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// simplify canonicalizes a freshly-built node: it flattens nested Add/Mul
// chains, folds constant sub-expressions with exact decimal arithmetic, and
// applies the 0/1 identities the algebra is required to recognize.
func (s Symbol) simplify() Symbol {
	switch s.kind {
	case kindConst, kindVar:
		return s
	case kindAdd:
		return simplifyAdd(flatten(kindAdd, s.operands))
	case kindMul:
		return simplifyMul(flatten(kindMul, s.operands))
	case kindSub:
		return simplifySub(s.operands[0], s.operands[1])
	case kindQuo:
		return simplifyQuo(s.operands[0], s.operands[1])
	default:
		return s
	}
}

// flatten collects nested occurrences of the same associative, commutative
// operator into a single operand list (e.g. (a+b)+c and a+(b+c) both
// flatten to [a, b, c]).
func flatten(k kind, operands []Symbol) []Symbol {
	var out []Symbol
	for _, op := range operands {
		if op.kind == k {
			out = append(out, flatten(k, op.operands)...)
		} else {
			out = append(out, op)
		}
	}
	return out
}

func simplifyAdd(terms []Symbol) Symbol {
	sum := apd.New(0, 0)
	var rest []Symbol
	for _, t := range terms {
		if t.kind == kindConst {
			var next apd.Decimal
			_, _ = ctx.Add(&next, sum, &t.value)
			sum = &next
			continue
		}
		rest = append(rest, t)
	}
	sortSymbols(rest)

	if len(rest) == 0 {
		return ConstDecimal(*sum)
	}
	if sum.IsZero() {
		if len(rest) == 1 {
			return rest[0]
		}
		return Symbol{kind: kindAdd, operands: rest}
	}
	return Symbol{kind: kindAdd, operands: append(rest, ConstDecimal(*sum))}
}

func simplifyMul(factors []Symbol) Symbol {
	prod := apd.New(1, 0)
	var rest []Symbol
	for _, f := range factors {
		if f.kind == kindConst {
			if f.IsZero() {
				return Const(0)
			}
			var next apd.Decimal
			_, _ = ctx.Mul(&next, prod, &f.value)
			prod = &next
			continue
		}
		rest = append(rest, f)
	}
	sortSymbols(rest)

	one := apd.New(1, 0)
	if len(rest) == 0 {
		return ConstDecimal(*prod)
	}
	if prod.Cmp(one) == 0 {
		if len(rest) == 1 {
			return rest[0]
		}
		return Symbol{kind: kindMul, operands: rest}
	}
	return Symbol{kind: kindMul, operands: append(rest, ConstDecimal(*prod))}
}

func simplifySub(lhs, rhs Symbol) Symbol {
	if lhs.kind == kindConst && rhs.kind == kindConst {
		var d apd.Decimal
		_, _ = ctx.Sub(&d, &lhs.value, &rhs.value)
		return ConstDecimal(d)
	}
	if rhs.IsZero() {
		return lhs
	}
	return Symbol{kind: kindSub, operands: []Symbol{lhs, rhs}}
}

func simplifyQuo(lhs, rhs Symbol) Symbol {
	if rhs.IsOne() {
		return lhs
	}
	if lhs.kind == kindConst && rhs.kind == kindConst {
		var d apd.Decimal
		_, _ = ctx.Quo(&d, &lhs.value, &rhs.value)
		return ConstDecimal(d)
	}
	return Symbol{kind: kindQuo, operands: []Symbol{lhs, rhs}}
}

// sortSymbols imposes the canonical ordering used for commutative operand
// lists: sort by rendered string. This is what lets Equal treat a+b and b+a
// as the same canonical tree.
func sortSymbols(terms []Symbol) {
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].String() < terms[j].String()
	})
}
