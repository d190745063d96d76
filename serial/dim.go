package serial

import (
	"fmt"

	"github.com/n3lang/n3c/dim"
)

// DimKey is the tagged DTO form of a [dim.DimKey].
type DimKey struct {
	Kind    string `json:"kind" yaml:"kind"`
	Name    string `json:"name" yaml:"name"`
	IsInput bool   `json:"is_input,omitempty" yaml:"is_input,omitempty"`
}

func fromDimKey(k dim.DimKey) DimKey {
	out := DimKey{Name: k.Name()}
	switch k.Kind() {
	case dim.KeyVariable:
		out.Kind = "variable"
	case dim.KeyPlaceholder:
		out.Kind = "placeholder"
		out.IsInput = k.IsInput()
	}
	return out
}

func (k DimKey) toDimKey() (dim.DimKey, error) {
	switch k.Kind {
	case "variable":
		return dim.VariableKey(k.Name), nil
	case "placeholder":
		return dim.PlaceholderKey(k.Name, k.IsInput), nil
	default:
		return dim.DimKey{}, fmt.Errorf("serial: unknown dim key kind %q", k.Kind)
	}
}

// Dim is the tagged DTO form of a [dim.Dim]: the sum Key(DimKey) |
// Expr(Symbol).
type Dim struct {
	Kind string  `json:"kind" yaml:"kind"`
	Key  *DimKey `json:"key,omitempty" yaml:"key,omitempty"`
	Expr *Symbol `json:"expr,omitempty" yaml:"expr,omitempty"`
}

func fromDim(d dim.Dim) Dim {
	if k, ok := d.AsKey(); ok {
		key := fromDimKey(k)
		return Dim{Kind: "key", Key: &key}
	}
	s := FromSymbol(d.Symbol())
	return Dim{Kind: "expr", Expr: &s}
}

func (d Dim) toDim() (dim.Dim, error) {
	switch d.Kind {
	case "key":
		if d.Key == nil {
			return dim.Dim{}, fmt.Errorf("serial: dim tagged key with no key payload")
		}
		k, err := d.Key.toDimKey()
		if err != nil {
			return dim.Dim{}, err
		}
		return dim.Key(k), nil
	case "expr":
		if d.Expr == nil {
			return dim.Dim{}, fmt.Errorf("serial: dim tagged expr with no expr payload")
		}
		s, err := d.Expr.ToSymbol()
		if err != nil {
			return dim.Dim{}, err
		}
		return dim.Expr(s), nil
	default:
		return dim.Dim{}, fmt.Errorf("serial: unknown dim kind %q", d.Kind)
	}
}

// Shape is the tagged DTO form of a [dim.Shape]: Dynamic, or a Fixed
// ordered list of dims.
type Shape struct {
	Dynamic bool  `json:"dynamic,omitempty" yaml:"dynamic,omitempty"`
	Dims    []Dim `json:"dims,omitempty" yaml:"dims,omitempty"`
}

func fromShape(s dim.Shape) Shape {
	if s.IsDynamic() {
		return Shape{Dynamic: true}
	}
	dims, _ := s.Dims()
	out := Shape{Dims: make([]Dim, len(dims))}
	for i, d := range dims {
		out.Dims[i] = fromDim(d)
	}
	return out
}

// Shapes is the tagged DTO form of a [dim.Shapes]: Dynamic, or a Fixed
// map of ArgIndex -> Shape, rendered as a slice sorted by index so the
// encoding is order-stable across JSON and YAML.
type Shapes struct {
	Dynamic bool       `json:"dynamic,omitempty" yaml:"dynamic,omitempty"`
	Args    []ShapeArg `json:"args,omitempty" yaml:"args,omitempty"`
}

// ShapeArg pairs one argument slot's index with its Shape.
type ShapeArg struct {
	Index uint64 `json:"index" yaml:"index"`
	Shape Shape  `json:"shape" yaml:"shape"`
}

func fromShapes(s dim.Shapes) Shapes {
	if s.IsDynamic() {
		return Shapes{Dynamic: true}
	}
	args := s.Args()
	out := Shapes{Args: make([]ShapeArg, len(args))}
	for i, a := range args {
		out.Args[i] = ShapeArg{Index: uint64(a.Index), Shape: fromShape(a.Shape)}
	}
	return out
}
