// Package value implements the scalar literal union and the variable
// store that parameterizes a model's graph.
package value

import "fmt"

// Type is the declared type of a [Variable]. Required denotes a variable
// that was declared with no default and has not yet been bound; every
// other tag matches the corresponding [Value] constructor.
type Type uint8

const (
	TypeRequired Type = iota
	TypeBool
	TypeInt
	TypeUInt
	TypeReal
	TypeModel
)

// String returns a human-readable name for the type.
func (t Type) String() string {
	switch t {
	case TypeRequired:
		return "Required"
	case TypeBool:
		return "Bool"
	case TypeInt:
		return "Int"
	case TypeUInt:
		return "UInt"
	case TypeReal:
		return "Real"
	case TypeModel:
		return "Model"
	default:
		return "unknown"
	}
}

// Kind identifies which alternative of the [Value] union is populated.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindUInt
	KindReal
	KindModel
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindUInt:
		return "UInt"
	case KindReal:
		return "Real"
	case KindModel:
		return "Model"
	default:
		return "unknown"
	}
}

// Type returns the [Type] tag that matches this kind.
func (k Kind) Type() Type {
	switch k {
	case KindBool:
		return TypeBool
	case KindInt:
		return TypeInt
	case KindUInt:
		return TypeUInt
	case KindReal:
		return TypeReal
	case KindModel:
		return TypeModel
	default:
		return TypeRequired
	}
}

// Value is an immutable tagged union of scalar literals: Bool, Int
// (signed), UInt (unsigned, semantically non-negative), Real (floating),
// or Model (a name reference to another graph).
//
// The zero Value is not meaningful; always construct via [Bool], [Int],
// [UInt], [Real], or [Model].
type Value struct {
	kind  Kind
	b     bool
	i     int64
	u     uint64
	r     float64
	model string
}

// Bool constructs a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int constructs a signed Int value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// UInt constructs an unsigned UInt value.
func UInt(u uint64) Value { return Value{kind: KindUInt, u: u} }

// Real constructs a floating-point Real value.
func Real(r float64) Value { return Value{kind: KindReal, r: r} }

// Model constructs a Model value referencing the named sub-model.
func Model(name string) Value { return Value{kind: KindModel, model: name} }

// Kind reports which alternative is populated.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload and whether v.Kind() == KindBool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Int returns the signed-integer payload and whether v.Kind() == KindInt.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// UInt returns the unsigned-integer payload and whether v.Kind() == KindUInt.
func (v Value) UInt() (uint64, bool) { return v.u, v.kind == KindUInt }

// Real returns the floating-point payload and whether v.Kind() == KindReal.
func (v Value) Real() (float64, bool) { return v.r, v.kind == KindReal }

// ModelName returns the referenced model name and whether v.Kind() == KindModel.
func (v Value) ModelName() (string, bool) { return v.model, v.kind == KindModel }

// String renders the value for diagnostics and debugging.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindUInt:
		return fmt.Sprintf("%d", v.u)
	case KindReal:
		return fmt.Sprintf("%g", v.r)
	case KindModel:
		return v.model
	default:
		return "<invalid value>"
	}
}

// Variable is the triple (description, type, optional value) that
// parameterizes a model.
//
// Invariant: if Value() reports ok == true, the returned value's Kind
// matches Type()'s corresponding kind. This invariant is enforced at
// construction and by [Variable.Bind], with one exception:
// [NewBoundVariable] accepts a value of any kind when the type is
// Required.
type Variable struct {
	description string
	ty          Type
	value       Value
	hasValue    bool
}

// NewVariable declares a variable with no value yet.
func NewVariable(description string, ty Type) Variable {
	return Variable{description: description, ty: ty}
}

// NewBoundVariable declares a variable already bound to val. Panics if
// val's kind does not match ty; this constructor is for callers building
// a Variable from a source-level default, where the mismatch would be a
// parser/AST-construction bug, not a data error to report through
// [compileerr].
func NewBoundVariable(description string, ty Type, val Value) Variable {
	if ty != TypeRequired && val.Kind().Type() != ty {
		panic(fmt.Sprintf("value: NewBoundVariable: %s value does not match declared type %s", val.Kind(), ty))
	}
	return Variable{description: description, ty: ty, value: val, hasValue: true}
}

// Description returns the variable's canonical name.
func (v Variable) Description() string { return v.description }

// Type returns the variable's declared type.
func (v Variable) Type() Type { return v.ty }

// Value returns the bound value, if any.
func (v Variable) Value() (Value, bool) { return v.value, v.hasValue }

// ExpectOrDefault checks an expected type against the variable's declared
// type per the `expect_or_default` rule: passes if they're equal; if the
// variable's declared type is Required, the expected type upgrades it;
// otherwise it's a type mismatch.
//
// Returns the (possibly upgraded) Variable and whether the check passed.
func (v Variable) ExpectOrDefault(expected Type) (Variable, bool) {
	switch {
	case v.ty == expected:
		return v, true
	case v.ty == TypeRequired:
		v.ty = expected
		return v, true
	default:
		return v, false
	}
}

// Bind sets the variable's value, upgrading a Required declared type to
// val's kind. Returns ok == false (and the Variable unchanged) if the
// declared type is concrete and disagrees with val's kind — callers
// report this as [compileerr.DifferentVariableType].
func (v Variable) Bind(val Value) (Variable, bool) {
	switch {
	case v.ty == TypeRequired:
		v.ty = val.Kind().Type()
	case v.ty != val.Kind().Type():
		return v, false
	}
	v.value = val
	v.hasValue = true
	return v, true
}
