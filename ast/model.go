package ast

// ModelInner holds the body of a [Model]: nested child models, declared
// variables, and the ordered graph lines.
type ModelInner struct {
	Children  []Model
	Variables []VariableDecl
	Graph     []GraphLine
}

// Model is a named, possibly-extern model declaration.
type Model struct {
	Name     string
	IsExtern bool
	Inner    ModelInner
}

// NewModel builds a fresh (non-extern) model with an empty body.
func NewModel(name string) Model {
	return Model{Name: name}
}

// Use is a `use` import declaration: the referenced model name and
// which loader origin resolves it.
type Use struct {
	Model  string
	Origin UseOrigin
}

// LocalUse builds a Use resolved against the Local origin (the only
// implemented origin).
func LocalUse(model string) Use {
	return Use{Model: model, Origin: LocalOrigin()}
}

// File is one parsed source file: its `use` imports plus the single
// model it declares.
type File struct {
	Uses  []Use
	Model Model
}
