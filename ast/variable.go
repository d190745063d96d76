package ast

import "github.com/n3lang/n3c/value"

// VariableDecl is the surface-syntax declaration of one model parameter:
// an optional short alias (Name), the canonical Description, an
// optional literal Default, and whether the declared type is Model
// (IsModel) rather than inferred from Default.
type VariableDecl struct {
	Name        string
	HasName     bool
	Description string
	Default     *value.Value
	IsModel     bool
}

// NewVariableDecl builds a VariableDecl with no default value.
func NewVariableDecl(description string) VariableDecl {
	return VariableDecl{Description: description}
}

// WithAlias sets the declaration's short alias.
func (v VariableDecl) WithAlias(name string) VariableDecl {
	v.Name = name
	v.HasName = true
	return v
}

// WithDefault sets the declaration's literal default value.
func (v VariableDecl) WithDefault(val value.Value) VariableDecl {
	v.Default = &val
	return v
}

// AsModel marks the declaration's type as Model.
func (v VariableDecl) AsModel() VariableDecl {
	v.IsModel = true
	return v
}
