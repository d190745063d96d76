package dim

import (
	"errors"

	"github.com/n3lang/n3c/symbol"
)

// ErrDifferentRank is returned by [Shape.ValidateRank] when two Fixed
// shapes being compared have different lengths. elaborate wraps this with
// model/node context as compileerr.DifferentRank.
var ErrDifferentRank = errors.New("dim: ranks differ")

// ErrDifferentArgs is returned by [Shapes.ValidateArgsRank] when two Fixed
// bundles being compared have different ArgIndex key sets. elaborate wraps
// this with model/node context as compileerr.DifferentArgs.
var ErrDifferentArgs = errors.New("dim: argument counts differ")

// ArgIndex identifies one argument/output slot of a [Shapes] bundle. Valid
// indexes form a contiguous range starting at 0.
type ArgIndex uint64

// Shape is a single node's dimension list: either Dynamic (unknown rank)
// or Fixed (an ordered list of dims whose length is the rank).
//
// The zero Shape is Fixed with rank 0; use [DynamicShape] for Dynamic.
type Shape struct {
	dynamic bool
	dims    []Dim
}

// DynamicShape builds a Shape of unknown rank.
func DynamicShape() Shape { return Shape{dynamic: true} }

// FixedShape builds a Shape with the given ordered dims.
func FixedShape(dims []Dim) Shape { return Shape{dims: dims} }

// IsDynamic reports whether the shape has unknown rank.
func (s Shape) IsDynamic() bool { return s.dynamic }

// Dims returns the ordered dims and whether the shape is Fixed.
func (s Shape) Dims() ([]Dim, bool) { return s.dims, !s.dynamic }

// Rank returns len(dims) for a Fixed shape, or (0, false) for Dynamic.
func (s Shape) Rank() (int, bool) {
	if s.dynamic {
		return 0, false
	}
	return len(s.dims), true
}

// Product returns the Shape reduced to a single dim, the product of all
// of its dims. Dynamic is returned unchanged.
func (s Shape) Product() Shape {
	if s.dynamic {
		return s
	}
	if len(s.dims) == 0 {
		return FixedShape([]Dim{Expr(symbol.Const(1))})
	}
	prod := s.dims[0]
	for _, d := range s.dims[1:] {
		prod = prod.Mul(d)
	}
	return FixedShape([]Dim{prod})
}

// ValidateRank reports whether s and other have equal rank. Both Fixed
// with equal length returns (true, nil); both Fixed with different
// length returns (false, [ErrDifferentRank]); either side Dynamic
// returns (false, nil) — rank comparison is simply not decidable yet.
func (s Shape) ValidateRank(other Shape) (bool, error) {
	if s.dynamic || other.dynamic {
		return false, nil
	}
	if len(s.dims) != len(other.dims) {
		return false, ErrDifferentRank
	}
	return true, nil
}

// Shapes is a bundle of per-argument [Shape]s: either Dynamic, or Fixed
// mapping each [ArgIndex] to a Shape. Ordered iteration by ArgIndex is
// required wherever Shapes is traversed (see [Shapes.Args]).
//
// The zero Shapes is Fixed with no arguments; use [DynamicShapes] for
// Dynamic.
type Shapes struct {
	dynamic bool
	args    map[ArgIndex]Shape
}

// DynamicShapes builds a Shapes bundle of unknown rank.
func DynamicShapes() Shapes { return Shapes{dynamic: true} }

// FixedShapes builds a Fixed Shapes bundle from an ArgIndex-keyed map.
func FixedShapes(args map[ArgIndex]Shape) Shapes {
	return Shapes{args: args}
}

// SingleShape builds a Fixed Shapes bundle with one arg at index 0.
func SingleShape(s Shape) Shapes {
	return Shapes{args: map[ArgIndex]Shape{0: s}}
}

// IsDynamic reports whether the bundle has unknown rank.
func (s Shapes) IsDynamic() bool { return s.dynamic }

// Len returns the number of args in a Fixed bundle, 0 for Dynamic.
func (s Shapes) Len() int { return len(s.args) }

// Get returns the Shape at index and whether it is present.
func (s Shapes) Get(idx ArgIndex) (Shape, bool) {
	sh, ok := s.args[idx]
	return sh, ok
}

// Args returns the bundle's (index, shape) pairs in ascending ArgIndex
// order, as required by spec §3's "ordered iteration by ArgIndex".
func (s Shapes) Args() []ArgShape {
	out := make([]ArgShape, 0, len(s.args))
	for idx, sh := range s.args {
		out = append(out, ArgShape{Index: idx, Shape: sh})
	}
	sortArgShapes(out)
	return out
}

// ArgShape pairs an ArgIndex with its Shape, used by [Shapes.Args] to
// hand back a Fixed bundle's contents in deterministic order.
type ArgShape struct {
	Index ArgIndex
	Shape Shape
}

func sortArgShapes(a []ArgShape) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j].Index < a[j-1].Index; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

// Product applies [Shape.Product] to every arg.
func (s Shapes) Product() Shapes {
	if s.dynamic {
		return s
	}
	out := make(map[ArgIndex]Shape, len(s.args))
	for idx, sh := range s.args {
		out[idx] = sh.Product()
	}
	return FixedShapes(out)
}

// ValidateArgsRank reports whether s and other have the same ArgIndex key
// set and, pairwise, the same rank. Both Fixed with matching key sets and
// ranks returns (true, nil); matching key sets but a differing rank
// returns (false, [ErrDifferentRank]); a differing key set returns
// (false, [ErrDifferentArgs]); either side Dynamic returns (false, nil).
func (s Shapes) ValidateArgsRank(other Shapes) (bool, error) {
	if s.dynamic || other.dynamic {
		return false, nil
	}
	if len(s.args) != len(other.args) {
		return false, ErrDifferentArgs
	}
	for idx := range s.args {
		if _, ok := other.args[idx]; !ok {
			return false, ErrDifferentArgs
		}
	}
	for idx, sh := range s.args {
		if _, err := sh.ValidateRank(other.args[idx]); err != nil {
			return false, err
		}
	}
	return true, nil
}

// IndexArgs selects the subset of args named by keys, reassigning them
// contiguous ArgIndexes in the order keys were given.
func (s Shapes) IndexArgs(keys []ArgIndex) Shapes {
	if s.dynamic {
		return s
	}
	out := make(map[ArgIndex]Shape, len(keys))
	for i, k := range keys {
		if sh, ok := s.args[k]; ok {
			out[ArgIndex(i)] = sh
		}
	}
	return FixedShapes(out)
}

// Append concatenates two Fixed bundles, reassigning ArgIndexes
// contiguously (s's args first, then other's). If either side is
// Dynamic, the result is Dynamic.
func (s Shapes) Append(other Shapes) Shapes {
	if s.dynamic || other.dynamic {
		return DynamicShapes()
	}
	sArgs := s.Args()
	oArgs := other.Args()
	out := make(map[ArgIndex]Shape, len(sArgs)+len(oArgs))
	next := ArgIndex(0)
	for _, a := range sArgs {
		out[next] = a.Shape
		next++
	}
	for _, a := range oArgs {
		out[next] = a.Shape
		next++
	}
	return FixedShapes(out)
}
