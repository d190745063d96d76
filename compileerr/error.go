// Package compileerr defines the single algebraic compile error the N3
// compiler returns. Per spec, all failures abort the current compilation
// with one error value; there are no partial results and no retry.
package compileerr

import (
	"errors"
	"fmt"

	"github.com/n3lang/n3c/diag"
)

// Error is the compiler's single error type. Every compile failure — from
// model resolution through graph elaboration — is reported as one *Error,
// labeled with a stable [diag.Code] and carrying whatever of model/node/arg
// is meaningful for that code.
//
// Error implements Unwrap so a wrapped Parse or Os failure remains
// inspectable via errors.As, and Is so callers can test the failure kind
// with errors.Is against the package's sentinel values without caring about
// the specific model/node/arg payload.
type Error struct {
	Code     diag.Code
	Model    string
	Node     string
	Arg      string
	Variable string
	Message  string
	Cause    error
}

// Error renders the code and message. Message is expected to already read
// as a complete sentence naming whatever model/node/variable is relevant;
// Code/Model/Node/Arg/Variable remain available as structured fields for
// callers that want them without re-parsing the string.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes a wrapped Parse/Os failure for errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a sentinel for the same [diag.Code]. Two
// *Error values compare equal under errors.Is when their Codes match,
// regardless of Model/Node/Arg payload.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Issue converts the error into a [diag.Issue] for structured rendering.
func (e *Error) Issue() diag.Issue {
	b := diag.NewIssue(diag.Error, e.Code, e.Message)
	if e.Model != "" {
		b = b.WithDetail(diag.DetailKeyModel, e.Model)
	}
	if e.Node != "" {
		b = b.WithDetail(diag.DetailKeyNode, e.Node)
	}
	if e.Arg != "" {
		b = b.WithDetail(diag.DetailKeyArg, e.Arg)
	}
	if e.Variable != "" {
		b = b.WithDetail(diag.DetailKeyVariable, e.Variable)
	}
	return b.Build()
}

// Sentinels. Compare against these with errors.Is; the Model/Node/Arg
// fields are irrelevant to the comparison.
var (
	ErrExternUnknown         = &Error{Code: diag.E_EXTERN_UNKNOWN}
	ErrExternMalformedShape  = &Error{Code: diag.E_EXTERN_MALFORMED_SHAPE}
	ErrExternUnexpectedChild = &Error{Code: diag.E_EXTERN_UNEXPECTED_CHILD}

	ErrNoGraph         = &Error{Code: diag.E_NO_GRAPH}
	ErrNoVariableValue = &Error{Code: diag.E_NO_VARIABLE_VALUE}
	ErrOverrideChild   = &Error{Code: diag.E_OVERRIDE_CHILD}
	ErrOverrideGraph   = &Error{Code: diag.E_OVERRIDE_GRAPH}

	ErrModelNotFound     = &Error{Code: diag.E_MODEL_NOT_FOUND}
	ErrRecursiveUsage    = &Error{Code: diag.E_RECURSIVE_USAGE}
	ErrUnsupportedOrigin = &Error{Code: diag.E_UNSUPPORTED_ORIGIN}

	ErrInputNodeNotFound   = &Error{Code: diag.E_INPUT_NODE_NOT_FOUND}
	ErrFirstNodeNotFound   = &Error{Code: diag.E_FIRST_NODE_NOT_FOUND}
	ErrUnvalidNodeID       = &Error{Code: diag.E_UNVALID_NODE_ID}
	ErrUnvalidNodeArg      = &Error{Code: diag.E_UNVALID_NODE_ARG}
	ErrNoSuchNode          = &Error{Code: diag.E_NO_SUCH_NODE}
	ErrShapeNotDefined     = &Error{Code: diag.E_SHAPE_NOT_DEFINED}
	ErrFullShapeRequired   = &Error{Code: diag.E_FULL_SHAPE_REQUIRED}
	ErrNoSuchVariable      = &Error{Code: diag.E_NO_SUCH_VARIABLE}
	ErrNoVariableValueG    = &Error{Code: diag.E_NO_VARIABLE_VALUE_G}
	ErrCannotEstimateShape = &Error{Code: diag.E_CANNOT_ESTIMATE_SHAPE}
	ErrDifferentDimension  = &Error{Code: diag.E_DIFFERENT_DIMENSION}
	ErrDifferentArgs       = &Error{Code: diag.E_DIFFERENT_ARGS}
	ErrDifferentRank       = &Error{Code: diag.E_DIFFERENT_RANK}
	ErrDifferentVarType    = &Error{Code: diag.E_DIFFERENT_VAR_TYPE}
	ErrDivideByZero        = &Error{Code: diag.E_DIVIDE_BY_ZERO}
	ErrModelNotFoundG      = &Error{Code: diag.E_MODEL_NOT_FOUND_G}

	ErrParse = &Error{Code: diag.E_PARSE}
	ErrOs    = &Error{Code: diag.E_OS}
)

// As reports whether err is a *Error (of any code), unwrapping via
// errors.As. It is a convenience for callers that want the structured
// payload without a specific-code comparison.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
