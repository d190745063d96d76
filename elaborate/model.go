package elaborate

import (
	"github.com/n3lang/n3c/ast"
	"github.com/n3lang/n3c/compileerr"
	"github.com/n3lang/n3c/dim"
	"github.com/n3lang/n3c/state"
	"github.com/n3lang/n3c/symbol"
	"github.com/n3lang/n3c/value"
)

// CompileModel is the Model elaborator's entry point (spec §4.6),
// invoked by the registry for a freshly loaded top-level prefab or by
// [Graph.attachInline] for a nested sub-model literal. It is
// never itself treated as an override of anything already in resolver.
func CompileModel(m ast.Model, resolver Resolver) (*Graph, error) {
	return compileModel(m, resolver, false)
}

// CompileFile is the Model elaborator's File-level entry point: it
// compiles f.Model the same way [CompileModel] does, but first wraps
// resolver so that a sub-model call resolves against the loader origin
// its `use` declaration named (spec §4.7's origin hint selecting Site |
// User | Local), rather than always assuming Local. A name with no
// matching `use` entry (an inline model's own nested children, e.g.)
// falls back to Local, the only implemented origin (spec §9).
func CompileFile(f ast.File, resolver Resolver) (*Graph, error) {
	return compileModel(f.Model, useScopedResolver(f.Uses, resolver), false)
}

// useScopedResolver wraps resolver so Find consults origins for the
// names declared by a file's `use` list, ignoring whatever origin a
// call site happens to pass in (attachSubModel always passes Local: the
// real per-name origin now lives here instead).
func useScopedResolver(uses []ast.Use, resolver Resolver) Resolver {
	if len(uses) == 0 {
		return resolver
	}
	origins := make(map[string]ast.UseOrigin, len(uses))
	for _, u := range uses {
		origins[u.Model] = u.Origin
	}
	return &scopedResolver{origins: origins, inner: resolver}
}

type scopedResolver struct {
	origins map[string]ast.UseOrigin
	inner   Resolver
}

func (r *scopedResolver) Find(name string, _ ast.UseOrigin) (*Graph, error) {
	origin, ok := r.origins[name]
	if !ok {
		origin = ast.LocalOrigin()
	}
	return r.inner.Find(name, origin)
}

// compileModel walks one AST model, dispatching to the extern, override,
// or fresh path. asNestedChild gates the override-path lookup: only a
// model appearing in its enclosing model's Inner.Children can override
// an already-`use`d prefab: a file's own top-level model never does.
func compileModel(m ast.Model, resolver Resolver, asNestedChild bool) (*Graph, error) {
	if m.IsExtern {
		return compileExtern(m, resolver)
	}

	if asNestedChild {
		if existing, err := resolver.Find(m.Name, ast.LocalOrigin()); err == nil && existing != nil {
			return compileOverride(m, existing)
		}
	}

	return compileFresh(m, resolver)
}

func compileExtern(m ast.Model, resolver Resolver) (*Graph, error) {
	if len(m.Inner.Children) != 0 {
		return nil, compileerr.ExternUnexpectedChild(m.Name, m.Inner.Children[0].Name)
	}

	g := NewGraph(m.Name)
	g.SetExtern()
	addVariables(g, m.Inner.Variables)

	if len(m.Inner.Graph) != 2 {
		return nil, compileerr.ExternMalformedShape(m.Name)
	}
	for _, line := range m.Inner.Graph {
		if err := g.ElaborateGraphLine(m.Name, line, resolver); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func compileOverride(m ast.Model, existing *Graph) (*Graph, error) {
	if len(m.Inner.Children) != 0 {
		return nil, compileerr.OverrideChild(m.Name, m.Inner.Children[0].Name)
	}
	if len(m.Inner.Graph) != 0 {
		return nil, compileerr.OverrideGraph(m.Name)
	}

	sub := existing.Clone()
	for _, v := range m.Inner.Variables {
		if v.Default == nil {
			return nil, compileerr.NoVariableValue(m.Name, v.Description)
		}
		ty := v.Default.Kind().Type()
		if v.IsModel {
			ty = value.TypeModel
		}
		alias := ""
		if v.HasName {
			alias = v.Name
		}
		result, ok := sub.variables.UpdateVariable(v.Description, alias, *v.Default, ty)
		if !ok {
			return nil, compileerr.DifferentVariableType(m.Name, v.Description)
		}
		bindUIntVariable(sub, result)
	}
	return sub, nil
}

// bindUIntVariable records a UInt-valued variable's current value as a
// dim key-binding, so a declared shape referencing it by name (spec
// §4.5.2 find_var's Variable branch) evaluates to a concrete Expr rather
// than staying a bare unresolved reference.
func bindUIntVariable(g *Graph, result value.UpdateResult) {
	if !result.IsUInt {
		return
	}
	key := dim.VariableKey(result.Description)
	g.Bind(key.String(), dim.Expr(symbol.Const(int64(result.UIntValue))))
}

func compileFresh(m ast.Model, resolver Resolver) (*Graph, error) {
	if len(m.Inner.Graph) == 0 {
		return nil, compileerr.NoGraph(m.Name)
	}

	g := NewGraph(m.Name)
	for _, child := range m.Inner.Children {
		childGraph, err := compileModel(child, resolver, true)
		if err != nil {
			return nil, err
		}
		g.AddChild(child.Name, childGraph)
	}

	addVariables(g, m.Inner.Variables)

	for _, line := range m.Inner.Graph {
		if err := g.ElaborateGraphLine(m.Name, line, resolver); err != nil {
			return nil, err
		}
	}

	if err := g.finalize(m.Name); err != nil {
		return nil, err
	}
	return g, nil
}

// finalize clears the child-graph table and requires the graph's state
// be Fixed(Full) (spec §4.6 final paragraph).
func (g *Graph) finalize(model string) error {
	g.ClearChildren()
	if !g.st.Equal(state.FixedState(state.Full)) {
		return compileerr.FullShapeRequired(model, "")
	}
	return nil
}

// addVariables declares m's variables on g, inferring each one's type
// from its default literal (or Model, for an is_model declaration) when
// present, else leaving it Required.
func addVariables(g *Graph, decls []ast.VariableDecl) {
	for _, v := range decls {
		alias := ""
		if v.HasName {
			alias = v.Name
		}

		var variable value.Variable
		switch {
		case v.Default != nil:
			variable = value.NewBoundVariable(v.Description, v.Default.Kind().Type(), *v.Default)
		case v.IsModel:
			variable = value.NewVariable(v.Description, value.TypeModel)
		default:
			variable = value.NewVariable(v.Description, value.TypeRequired)
		}
		g.variables.AddVariable(alias, variable)
		if val, ok := variable.Value(); ok {
			if u, isUInt := val.UInt(); isUInt {
				bindUIntVariable(g, value.UpdateResult{Description: variable.Description(), IsUInt: true, UIntValue: u})
			}
		}
	}
}
