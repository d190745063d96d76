// Package dim implements the symbolic dimension types a graph's node
// shapes are built from: DimKey, Dim, Shape, and Shapes.
package dim

import "github.com/n3lang/n3c/internal/ident"

// KeyKind discriminates the two alternatives of [DimKey].
type KeyKind uint8

const (
	// KeyVariable references a model parameter by its canonical name.
	KeyVariable KeyKind = iota

	// KeyPlaceholder represents an unknown symbolic dimension coined
	// during shape inference.
	KeyPlaceholder
)

// DimKey identifies a single symbolic dimension: either a model
// Variable(name), or a Placeholder(name, isInput) coined by the
// elaborator. isInput marks placeholders introduced at a graph's input
// boundary, which are eligible for cross-graph unification; local
// placeholders are not.
//
// The zero DimKey is a Variable with an empty name and is not meaningful;
// always construct via [VariableKey] or [PlaceholderKey].
type DimKey struct {
	kind    KeyKind
	name    string
	isInput bool
}

// VariableKey builds a DimKey referencing model parameter name.
func VariableKey(name string) DimKey {
	return DimKey{kind: KeyVariable, name: name}
}

// PlaceholderKey builds a DimKey for a coined placeholder dimension.
func PlaceholderKey(name string, isInput bool) DimKey {
	return DimKey{kind: KeyPlaceholder, name: name, isInput: isInput}
}

// Kind reports which alternative this key is.
func (k DimKey) Kind() KeyKind { return k.kind }

// Name returns the key's name.
func (k DimKey) Name() string { return k.name }

// IsInput reports whether a Placeholder key was introduced at the
// graph's input boundary. Meaningless for Variable keys.
func (k DimKey) IsInput() bool { return k.isInput }

// Equal reports whether two keys are the same DimKey (same kind, name,
// and — for placeholders — the same isInput bit).
//
// This is a stricter comparison than symbol identity: see [DimKey.String],
// whose encoding deliberately drops isInput so that an input and a local
// placeholder of the same name share one algebra symbol while remaining
// distinguishable here.
func (k DimKey) Equal(other DimKey) bool {
	return k.kind == other.kind && k.name == other.name && k.isInput == other.isInput
}

// String returns the deterministic symbol-identity encoding used as the
// variable name in the symbolic algebra: "var_<CamelCase(name)>" for a
// Variable key, "ph_<CamelCase(name)>" for a Placeholder key. The
// isInput bit is intentionally not part of this encoding.
func (k DimKey) String() string {
	camel := ident.ToUpperCamel(k.name)
	switch k.kind {
	case KeyPlaceholder:
		return "ph_" + camel
	default:
		return "var_" + camel
	}
}
