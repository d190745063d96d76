package elaborate

import (
	"github.com/n3lang/n3c/ast"
	"github.com/n3lang/n3c/compileerr"
	"github.com/n3lang/n3c/dim"
	gnode "github.com/n3lang/n3c/node"
	"github.com/n3lang/n3c/state"
	"github.com/n3lang/n3c/value"
)

// ElaborateGraphLine attaches every pass of one AST graph line to g, in
// order, expanding each pass's repeat count into successive GraphIds,
// then applies the line's declared output shapes, if any.
func (g *Graph) ElaborateGraphLine(model string, line ast.GraphLine, resolver Resolver) error {
	if line.Inline != nil {
		if err := g.attachInline(model, line.ID, *line.Inline); err != nil {
			return err
		}
	} else {
		for passIdx, pass := range line.Passes {
			attachCount := pass.Repeat + 1
			for repeat := uint64(0); repeat < attachCount; repeat++ {
				id := gnode.NewGraphId(line.ID, uint64(passIdx), repeat)
				args := pass.Args
				if repeat > 0 {
					args = dropPositional(args)
				}
				if err := g.attachOne(model, id, pass.Name, args, resolver); err != nil {
					return err
				}
			}
		}
	}

	if line.Shapes != nil {
		last, _ := g.LastNode()
		isInputContext := last.ID.IsInput()
		if err := g.adjustShapes(model, last.ID.String(), *line.Shapes, isInputContext); err != nil {
			return err
		}
	}
	return nil
}

// dropPositional removes NodeArg entries, keeping Keyword entries, per
// the rule that positional args are silently ignored on repeat > 0.
func dropPositional(args []ast.GraphPassArg) []ast.GraphPassArg {
	out := make([]ast.GraphPassArg, 0, len(args))
	for _, a := range args {
		if _, _, isKw := a.AsKeyword(); isKw {
			out = append(out, a)
		}
	}
	return out
}

// attachInline elaborates an inline sub-model declaration: the inline
// AST model is compiled in place (via compileModel, the Model
// elaborator entry point) and attached as a one-pass, repeat-0 node.
func (g *Graph) attachInline(model string, nodeNum uint64, inline ast.Model) error {
	id := gnode.NewGraphId(nodeNum, 0, 0)
	sub, err := CompileModel(inline, noopResolver{})
	if err != nil {
		return err
	}
	return g.attachResolved(model, id, inline.Name, sub, nil)
}

// attachOne implements spec §4.5 steps 1-6 for a single GraphId.
func (g *Graph) attachOne(model string, id gnode.GraphId, name string, args []ast.GraphPassArg, resolver Resolver) error {
	nodeLabel := id.String()

	// 1. First-node rule.
	if len(g.nodes) == 0 {
		if !id.IsInput() {
			return compileerr.FirstNodeNotFound(model)
		}
	} else {
		// 2. Sequencing rule.
		if !id.IsValidSuccessorOf(g.LastID()) {
			return compileerr.UnvalidNodeID(model, nodeLabel)
		}
	}

	if id.IsInput() {
		g.st = state.RequiredState(state.Weak)
		g.insert(Node{ID: id, Name: name, Shapes: dim.DynamicShapes()})
		return nil
	}

	switch classifyIntrinsic(name) {
	case intrinsicDynamic:
		transform, _ := boolKeyword(args, "transform")
		// Only a transform (reshape) node needs the actual predecessor
		// shape on hand, to validate its declared output's product
		// against it; a plain dynamic declaration starts the node from
		// Dynamic so its trailing "= shape" clause (adjustShapes) is
		// accepted verbatim rather than rank/dim-unified against
		// whatever happened to precede it (spec §4.4's "identity... shape
		// = previous shape" callout implies the other intrinsics do not
		// inherit by default).
		shapes := dim.DynamicShapes()
		switch {
		case transform:
			g.st = state.TransformState()
			last, _ := g.LastNode()
			shapes = last.Shapes
		case len(g.nodes) == 1:
			g.st = state.RequiredState(state.Full)
		default:
			return compileerr.FullShapeRequired(model, nodeLabel)
		}
		n := Node{ID: id, Name: name, Shapes: shapes, Inputs: []gnode.GraphIdArg{gnode.DefaultGraphIdArg(g.LastID())}}
		g.insert(n)
		return nil

	case intrinsicFixed:
		if g.st.IsTransform() {
			return compileerr.ShapeNotDefined(model, nodeLabel)
		}
		g.st = state.RequiredState(state.Weak)
		n := Node{ID: id, Name: name, Shapes: dim.DynamicShapes(), Inputs: []gnode.GraphIdArg{gnode.DefaultGraphIdArg(g.LastID())}}
		g.insert(n)
		return nil

	case intrinsicIdentity:
		last, ok := g.LastNode()
		if !ok {
			return compileerr.NoSuchNode(model, nodeLabel)
		}
		if g.st.Equal(state.FixedState(state.Weak)) {
			g.st = state.FixedState(state.Full)
		}
		n := Node{ID: id, Name: name, Shapes: last.Shapes, Inputs: []gnode.GraphIdArg{gnode.DefaultGraphIdArg(g.LastID())}}
		g.insert(n)
		return nil

	default:
		return g.attachSubModel(model, id, name, args, resolver)
	}
}

// boolKeyword finds a boolean-valued Keyword arg named key.
func boolKeyword(args []ast.GraphPassArg, key string) (bool, bool) {
	for _, a := range args {
		if name, val, ok := a.AsKeyword(); ok && name == key {
			b, isBool := val.Bool()
			return b, isBool
		}
	}
	return false, false
}

// attachSubModel implements spec §4.5(4): resolving, applying args to,
// and unifying shapes against a called sub-model.
func (g *Graph) attachSubModel(model string, id gnode.GraphId, name string, args []ast.GraphPassArg, resolver Resolver) error {
	var sub *Graph
	if child, ok := g.Child(name); ok {
		sub = child.Clone()
	} else if resolver != nil {
		found, err := resolver.Find(name, ast.LocalOrigin())
		if err != nil {
			return err
		}
		sub = found.Clone()
		g.AddChild(name, found)
	} else {
		return compileerr.ModelNotFoundGraph(model, id.String(), name)
	}

	return g.attachResolved(model, id, name, sub, args)
}

// attachResolved applies args to an already-resolved sub Graph and
// performs shape unification, completing spec §4.5(4)(b)-(e).
func (g *Graph) attachResolved(model string, id gnode.GraphId, name string, sub *Graph, args []ast.GraphPassArg) error {
	var inputs []gnode.GraphIdArg

	if id.Repeat == 0 {
		for _, a := range args {
			pairs, ok := a.AsNodeArgs()
			if !ok {
				continue
			}
			for _, p := range pairs {
				refID, found := g.MostRecentByNodeNumber(p.Node)
				if !found {
					return compileerr.NoSuchNode(model, id.String())
				}
				inputs = append(inputs, gnode.NewGraphIdArg(refID, dim.ArgIndex(p.Arg)))
			}
		}
	}

	for _, a := range args {
		kwName, val, ok := a.AsKeyword()
		if !ok {
			continue
		}
		ty := inferValueType(val)
		result, ok := sub.variables.UpdateVariable("", kwName, val, ty)
		if !ok {
			return compileerr.DifferentVariableType(model, kwName)
		}
		bindUIntVariable(sub, result)
	}

	incoming, err := g.resolveIncoming(model, id, inputs)
	if err != nil {
		return err
	}

	expected := sub.InputShapes()
	final := incoming

	switch {
	case !expected.IsDynamic() && !incoming.IsDynamic():
		if ok, verr := expected.ValidateArgsRank(incoming); verr != nil {
			return wrapShapeErr(model, id.String(), verr)
		} else if ok {
			if err := g.unifySubGraphInputs(model, id.String(), sub, expected, incoming); err != nil {
				return err
			}
			final = sub.reevaluateLastShapes()
		} else {
			return compileerr.CannotEstimateShape(model, id.String())
		}
	case expected.IsDynamic():
		final = incoming
	case len(inputs) == 0 && id.IsFirst():
		promoted, perr := g.promoteChildShapes(model, id.String(), expected)
		if perr != nil {
			return perr
		}
		final = promoted
	default:
		return compileerr.CannotEstimateShape(model, id.String())
	}

	g.st = sub.st
	n := Node{ID: id, Name: name, Graph: sub, Inputs: inputs, Shapes: final}
	if len(n.Inputs) == 0 {
		n.Inputs = []gnode.GraphIdArg{gnode.DefaultGraphIdArg(g.LastID())}
	}
	g.insert(n)
	return nil
}

// unifySubGraphInputs runs update_dim pairwise on sub (mutating its
// key-bindings) to unify its declared input contract against the
// caller's actual incoming shapes.
func (g *Graph) unifySubGraphInputs(model, node string, sub *Graph, expected, incoming dim.Shapes) error {
	for _, a := range expected.Args() {
		groundShape, ok := incoming.Get(a.Index)
		if !ok {
			return compileerr.DifferentArgs(model, node)
		}
		expDims, _ := a.Shape.Dims()
		groundDims, _ := groundShape.Dims()
		for i := range expDims {
			if _, err := sub.updateDim(model, node, expDims[i], groundDims[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// reevaluateLastShapes re-evaluates the sub-graph's last node's shapes
// against its now-updated key-bindings, converting every dim to its
// evaluated Expr form in the caller's symbol space.
func (sub *Graph) reevaluateLastShapes() dim.Shapes {
	last, ok := sub.LastNode()
	if !ok || last.Shapes.IsDynamic() {
		return dim.DynamicShapes()
	}
	bindings := sub.Bindings()
	out := make(map[dim.ArgIndex]dim.Shape)
	for _, a := range last.Shapes.Args() {
		dims, _ := a.Shape.Dims()
		evaluated := make([]dim.Dim, len(dims))
		for i, d := range dims {
			evaluated[i] = dim.Expr(d.Symbol().Eval(bindings))
		}
		out[a.Index] = dim.FixedShape(evaluated)
	}
	return dim.FixedShapes(out)
}

// promoteChildShapes adopts a sub-graph's declared input shape as the
// caller's own last-node shape, registering any remaining placeholders
// as local variables through find_var (spec §4.5(4)(c), third bullet).
func (g *Graph) promoteChildShapes(model, node string, expected dim.Shapes) (dim.Shapes, error) {
	if expected.IsDynamic() {
		return expected, nil
	}
	out := make(map[dim.ArgIndex]dim.Shape)
	for _, a := range expected.Args() {
		dims, _ := a.Shape.Dims()
		promoted := make([]dim.Dim, len(dims))
		for i, d := range dims {
			key, isKey := d.AsKey()
			if isKey && key.Kind() == dim.KeyPlaceholder {
				resolved, _, err := g.findVar(model, node, key.Name(), false)
				if err != nil {
					return dim.Shapes{}, err
				}
				promoted[i] = resolved
				continue
			}
			promoted[i] = d
		}
		out[a.Index] = dim.FixedShape(promoted)
	}
	return dim.FixedShapes(out), nil
}

// resolveIncoming computes the "current graph's last shapes" selected
// by explicit inputs if any, else the last-node default; multi-input
// concatenates via Shapes.Append (spec §4.5(4)(c)).
func (g *Graph) resolveIncoming(model string, id gnode.GraphId, inputs []gnode.GraphIdArg) (dim.Shapes, error) {
	if len(inputs) == 0 {
		last, ok := g.LastNode()
		if !ok {
			return dim.DynamicShapes(), nil
		}
		return last.Shapes, nil
	}

	result := dim.Shapes{}
	first := true
	for _, in := range inputs {
		n, ok := g.NodeByID(in.ID)
		var shapes dim.Shapes
		if in.ID.IsInput() && !ok {
			shapes = g.InputShapes()
		} else if !ok {
			return dim.Shapes{}, compileerr.UnvalidNodeID(model, id.String())
		} else {
			shapes = n.Shapes
		}

		var picked dim.Shapes
		if arg, hasArg := in.Arg(); hasArg {
			sh, found := shapes.Get(arg)
			if !found {
				return dim.Shapes{}, compileerr.UnvalidNodeArg(model, id.String(), argIndexString(uint64(arg)))
			}
			picked = dim.SingleShape(sh)
		} else {
			picked = shapes
		}

		if first {
			result = picked
			first = false
		} else {
			result = result.Append(picked)
		}
	}
	return result, nil
}

// inferValueType maps a Value's Kind to the matching Type, for
// update_variable's ty argument (spec §4.5(4)(b)).
func inferValueType(v value.Value) value.Type {
	return v.Kind().Type()
}

// noopResolver rejects every lookup; used while compiling an inline
// sub-model, which may not itself call out to other named models
// (it has no `use` imports of its own — it is fully self-contained AST
// nested directly in the parent).
type noopResolver struct{}

func (noopResolver) Find(name string, origin ast.UseOrigin) (*Graph, error) {
	return nil, compileerr.ModelNotFound(name)
}
