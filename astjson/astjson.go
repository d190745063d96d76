// Package astjson bridges the external [ast.File] surface (spec §6) to a
// tagged JSON wire form, for callers that have no surface-syntax parser of
// their own handy: the surface parser itself stays an out-of-scope external
// collaborator (spec §1), but a caller that already has a parsed tree in
// some other language can still hand it to this compiler by encoding it as
// the DTOs below, the same "self-describing tagged representation" spec §6
// asks for on the output side (mirrored here on the input side, grounded on
// the same convention as the [serial] package's Graph DTOs).
package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/n3lang/n3c/ast"
	"github.com/n3lang/n3c/value"
)

// File is the tagged DTO form of [ast.File].
type File struct {
	Uses  []Use `json:"uses,omitempty"`
	Model Model `json:"model"`
}

// Use is the tagged DTO form of [ast.Use]. Origin is one of "local",
// "site:<name>", or "user:<name>"; an empty Origin defaults to "local".
type Use struct {
	Model  string `json:"model"`
	Origin string `json:"origin,omitempty"`
}

// Model is the tagged DTO form of [ast.Model].
type Model struct {
	Name      string         `json:"name"`
	IsExtern  bool           `json:"is_extern,omitempty"`
	Children  []Model        `json:"children,omitempty"`
	Variables []VariableDecl `json:"variables,omitempty"`
	Graph     []GraphLine    `json:"graph,omitempty"`
}

// VariableDecl is the tagged DTO form of [ast.VariableDecl].
type VariableDecl struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description"`
	Default     *Value `json:"default,omitempty"`
	IsModel     bool   `json:"is_model,omitempty"`
}

// Value is the tagged DTO form of [value.Value]. Kind is one of "bool",
// "int", "uint", "real", or "model"; exactly the matching payload field is
// read.
type Value struct {
	Kind  string  `json:"kind"`
	Bool  bool    `json:"bool,omitempty"`
	Int   int64   `json:"int,omitempty"`
	UInt  uint64  `json:"uint,omitempty"`
	Real  float64 `json:"real,omitempty"`
	Model string  `json:"model,omitempty"`
}

// GraphLine is the tagged DTO form of [ast.GraphLine].
type GraphLine struct {
	ID     uint64     `json:"id"`
	Inline *Model     `json:"inline,omitempty"`
	Passes []Pass     `json:"passes"`
	Shapes *ShapeSpec `json:"shapes,omitempty"`
}

// Pass is the tagged DTO form of [ast.Pass].
type Pass struct {
	Name   string         `json:"name"`
	Repeat uint64         `json:"repeat,omitempty"`
	Args   []GraphPassArg `json:"args,omitempty"`
}

// GraphPassArg is the tagged DTO form of [ast.GraphPassArg]. Kind is one
// of "node" (reads NodeArgs) or "keyword" (reads Name and Value).
type GraphPassArg struct {
	Kind     string     `json:"kind"`
	NodeArgs []NodePass `json:"node_args,omitempty"`
	Name     string     `json:"name,omitempty"`
	Value    *Value     `json:"value,omitempty"`
}

// NodePass is the tagged DTO form of [ast.NodePass].
type NodePass struct {
	Node uint64 `json:"node"`
	Arg  uint64 `json:"arg"`
}

// ShapeSpec is the tagged DTO form of [ast.ShapeSpec].
type ShapeSpec struct {
	Args []ShapeArg `json:"args"`
}

// ShapeArg is the tagged DTO form of [ast.ShapeArg].
type ShapeArg struct {
	Index uint64    `json:"index"`
	Dims  []DimExpr `json:"dims"`
}

// DimExpr is the tagged DTO form of [ast.DimExpr]. Kind is one of
// "fixed" (reads Fixed), "semantic" (reads Name), or "expr" (reads LHS,
// RHS, Op, where Op is one of "+", "-", "*", "/").
type DimExpr struct {
	Kind  string   `json:"kind"`
	Fixed uint64   `json:"fixed,omitempty"`
	Name  string   `json:"name,omitempty"`
	LHS   *DimExpr `json:"lhs,omitempty"`
	RHS   *DimExpr `json:"rhs,omitempty"`
	Op    string   `json:"op,omitempty"`
}

// Decode parses data as a tagged File DTO and lowers it to an [ast.File].
func Decode(data []byte) (ast.File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return ast.File{}, fmt.Errorf("astjson: decode: %w", err)
	}
	return f.ToAST()
}

// ToAST lowers f to an [ast.File].
func (f File) ToAST() (ast.File, error) {
	uses := make([]ast.Use, 0, len(f.Uses))
	for _, u := range f.Uses {
		au, err := u.ToAST()
		if err != nil {
			return ast.File{}, err
		}
		uses = append(uses, au)
	}
	m, err := f.Model.ToAST()
	if err != nil {
		return ast.File{}, err
	}
	return ast.File{Uses: uses, Model: m}, nil
}

// ToAST lowers u to an [ast.Use].
func (u Use) ToAST() (ast.Use, error) {
	origin, err := parseOrigin(u.Origin)
	if err != nil {
		return ast.Use{}, fmt.Errorf("astjson: use %q: %w", u.Model, err)
	}
	return ast.Use{Model: u.Model, Origin: origin}, nil
}

func parseOrigin(s string) (ast.UseOrigin, error) {
	switch {
	case s == "" || s == "local":
		return ast.LocalOrigin(), nil
	case len(s) > 5 && s[:5] == "site:":
		return ast.SiteOrigin(s[5:]), nil
	case len(s) > 5 && s[:5] == "user:":
		return ast.UserOrigin(s[5:]), nil
	default:
		return ast.UseOrigin{}, fmt.Errorf("unrecognized origin %q", s)
	}
}

// ToAST lowers m to an [ast.Model].
func (m Model) ToAST() (ast.Model, error) {
	out := ast.NewModel(m.Name)
	out.IsExtern = m.IsExtern

	for _, c := range m.Children {
		child, err := c.ToAST()
		if err != nil {
			return ast.Model{}, err
		}
		out.Inner.Children = append(out.Inner.Children, child)
	}

	for _, v := range m.Variables {
		decl, err := v.ToAST()
		if err != nil {
			return ast.Model{}, fmt.Errorf("astjson: model %q: %w", m.Name, err)
		}
		out.Inner.Variables = append(out.Inner.Variables, decl)
	}

	for _, l := range m.Graph {
		line, err := l.ToAST()
		if err != nil {
			return ast.Model{}, fmt.Errorf("astjson: model %q: %w", m.Name, err)
		}
		out.Inner.Graph = append(out.Inner.Graph, line)
	}

	return out, nil
}

// ToAST lowers v to an [ast.VariableDecl].
func (v VariableDecl) ToAST() (ast.VariableDecl, error) {
	decl := ast.NewVariableDecl(v.Description)
	if v.Name != "" {
		decl = decl.WithAlias(v.Name)
	}
	if v.IsModel {
		decl = decl.AsModel()
	}
	if v.Default != nil {
		val, err := v.Default.ToValue()
		if err != nil {
			return ast.VariableDecl{}, fmt.Errorf("variable %q: %w", v.Description, err)
		}
		decl = decl.WithDefault(val)
	}
	return decl, nil
}

// ToValue lowers v to a [value.Value].
func (v Value) ToValue() (value.Value, error) {
	switch v.Kind {
	case "bool":
		return value.Bool(v.Bool), nil
	case "int":
		return value.Int(v.Int), nil
	case "uint":
		return value.UInt(v.UInt), nil
	case "real":
		return value.Real(v.Real), nil
	case "model":
		return value.Model(v.Model), nil
	default:
		return value.Value{}, fmt.Errorf("unrecognized value kind %q", v.Kind)
	}
}

// ToAST lowers l to an [ast.GraphLine].
func (l GraphLine) ToAST() (ast.GraphLine, error) {
	out := ast.GraphLine{ID: l.ID}

	if l.Inline != nil {
		inline, err := l.Inline.ToAST()
		if err != nil {
			return ast.GraphLine{}, err
		}
		out.Inline = &inline
	}

	for _, p := range l.Passes {
		pass, err := p.ToAST()
		if err != nil {
			return ast.GraphLine{}, fmt.Errorf("graph line #%d: %w", l.ID, err)
		}
		out.Passes = append(out.Passes, pass)
	}

	if l.Shapes != nil {
		shapes, err := l.Shapes.ToAST()
		if err != nil {
			return ast.GraphLine{}, fmt.Errorf("graph line #%d: %w", l.ID, err)
		}
		out.Shapes = &shapes
	}

	return out, nil
}

// ToAST lowers p to an [ast.Pass].
func (p Pass) ToAST() (ast.Pass, error) {
	out := ast.NewPass(p.Name)
	out.Repeat = p.Repeat
	for _, a := range p.Args {
		arg, err := a.ToAST()
		if err != nil {
			return ast.Pass{}, fmt.Errorf("pass %q: %w", p.Name, err)
		}
		out.Args = append(out.Args, arg)
	}
	return out, nil
}

// ToAST lowers a to an [ast.GraphPassArg].
func (a GraphPassArg) ToAST() (ast.GraphPassArg, error) {
	switch a.Kind {
	case "node":
		pairs := make([]ast.NodePass, 0, len(a.NodeArgs))
		for _, np := range a.NodeArgs {
			pairs = append(pairs, ast.NodePass{Node: np.Node, Arg: np.Arg})
		}
		return ast.NodeArgs(pairs), nil
	case "keyword":
		if a.Value == nil {
			return ast.GraphPassArg{}, fmt.Errorf("keyword arg %q: missing value", a.Name)
		}
		val, err := a.Value.ToValue()
		if err != nil {
			return ast.GraphPassArg{}, fmt.Errorf("keyword arg %q: %w", a.Name, err)
		}
		return ast.KeywordArg(a.Name, val), nil
	default:
		return ast.GraphPassArg{}, fmt.Errorf("unrecognized pass arg kind %q", a.Kind)
	}
}

// ToAST lowers s to an [ast.ShapeSpec].
func (s ShapeSpec) ToAST() (ast.ShapeSpec, error) {
	out := ast.ShapeSpec{Args: make([]ast.ShapeArg, 0, len(s.Args))}
	for _, a := range s.Args {
		arg, err := a.ToAST()
		if err != nil {
			return ast.ShapeSpec{}, err
		}
		out.Args = append(out.Args, arg)
	}
	return out, nil
}

// ToAST lowers a to an [ast.ShapeArg].
func (a ShapeArg) ToAST() (ast.ShapeArg, error) {
	dims := make([]ast.DimExpr, 0, len(a.Dims))
	for _, d := range a.Dims {
		dim, err := d.ToAST()
		if err != nil {
			return ast.ShapeArg{}, fmt.Errorf("shape arg %d: %w", a.Index, err)
		}
		dims = append(dims, dim)
	}
	return ast.ShapeArg{Index: a.Index, Dims: dims}, nil
}

// ToAST lowers d to an [ast.DimExpr].
func (d DimExpr) ToAST() (ast.DimExpr, error) {
	switch d.Kind {
	case "fixed":
		return ast.FixedDim(d.Fixed), nil
	case "semantic":
		return ast.SemanticDim(d.Name), nil
	case "expr":
		if d.LHS == nil || d.RHS == nil {
			return ast.DimExpr{}, fmt.Errorf("expr dim missing lhs/rhs")
		}
		lhs, err := d.LHS.ToAST()
		if err != nil {
			return ast.DimExpr{}, err
		}
		rhs, err := d.RHS.ToAST()
		if err != nil {
			return ast.DimExpr{}, err
		}
		op, err := parseOp(d.Op)
		if err != nil {
			return ast.DimExpr{}, err
		}
		return ast.BinaryDim(lhs, rhs, op), nil
	default:
		return ast.DimExpr{}, fmt.Errorf("unrecognized dim kind %q", d.Kind)
	}
}

func parseOp(s string) (ast.Op, error) {
	switch s {
	case "+":
		return ast.OpAdd, nil
	case "-":
		return ast.OpSub, nil
	case "*":
		return ast.OpMul, nil
	case "/":
		return ast.OpQuo, nil
	default:
		return 0, fmt.Errorf("unrecognized dim operator %q", s)
	}
}
