package ast

import "github.com/n3lang/n3c/value"

// NodePass pairs a node number with an ArgIndex, the element of a
// positional [GraphPassArg] NodeArg list (spec §6: {node: u64, arg:
// u64}).
type NodePass struct {
	Node uint64
	Arg  uint64
}

// passArgKind discriminates the alternatives of [GraphPassArg].
type passArgKind uint8

const (
	passArgNode passArgKind = iota
	passArgKeyword
)

// GraphPassArg is the sum NodeArg([]NodePass) | Keyword{name, value}: an
// argument attached to one [Pass] in a graph line.
//
// The zero GraphPassArg is an empty NodeArg list; always construct via
// [NodeArgs] or [KeywordArg].
type GraphPassArg struct {
	kind     passArgKind
	nodeArgs []NodePass
	name     string
	value    value.Value
}

// NodeArgs builds a positional NodeArg GraphPassArg from the given
// (node, arg) pairs.
func NodeArgs(pairs []NodePass) GraphPassArg {
	return GraphPassArg{kind: passArgNode, nodeArgs: pairs}
}

// KeywordArg builds a Keyword GraphPassArg.
func KeywordArg(name string, val value.Value) GraphPassArg {
	return GraphPassArg{kind: passArgKeyword, name: name, value: val}
}

// AsNodeArgs returns the positional (node, arg) pairs and whether this
// is a NodeArg.
func (a GraphPassArg) AsNodeArgs() ([]NodePass, bool) {
	return a.nodeArgs, a.kind == passArgNode
}

// AsKeyword returns the keyword name/value and whether this is a
// Keyword arg.
func (a GraphPassArg) AsKeyword() (string, value.Value, bool) {
	return a.name, a.value, a.kind == passArgKeyword
}

// Pass is one operator in a chained graph line (e.g. the "ReLU" of
// "Conv2d + ReLU"): a model name, a repeat count (0 for no repetition),
// and its positional/keyword arguments.
type Pass struct {
	Name   string
	Repeat uint64
	Args   []GraphPassArg
}

// NewPass builds a Pass with no repeats and no args.
func NewPass(name string) Pass {
	return Pass{Name: name}
}

// ShapeArg is one declared argument of a node's output [ShapeSpec]: the
// ArgIndex it's declared under, plus its ordered dims.
type ShapeArg struct {
	Index uint64
	Dims  []DimExpr
}

// ShapeSpec is the surface-syntax declaration of a node's output
// shape(s), one [ShapeArg] per argument slot. A single-output node
// (the common case) has exactly one ShapeArg at index 0.
type ShapeSpec struct {
	Args []ShapeArg
}

// SingleArgShape builds a ShapeSpec for the common single-output case:
// one ShapeArg at index 0 with the given dims.
func SingleArgShape(dims []DimExpr) ShapeSpec {
	return ShapeSpec{Args: []ShapeArg{{Index: 0, Dims: dims}}}
}

// GraphLine is one declared line of a model's graph: a node number, an
// optional inlined sub-model (in place of a by-name reference), the
// chained passes attached to it, and an optional declared output
// shape.
type GraphLine struct {
	ID     uint64
	Inline *Model
	Passes []Pass
	Shapes *ShapeSpec
}
