package compileerr

import (
	"fmt"

	"github.com/n3lang/n3c/diag"
)

// Constructors. Each mirrors one spec error variant and fills in the
// model/node/arg/variable fields that are meaningful for it.

// ExternUnknown reports that an `extern` model has no matching shape
// declaration registered for its input rank/kind.
func ExternUnknown(model string) *Error {
	return &Error{
		Code:    diag.E_EXTERN_UNKNOWN,
		Model:   model,
		Message: fmt.Sprintf("extern model %q has no matching shape declaration", model),
	}
}

// ExternMalformedShape reports that an `extern` model's graph body is not
// exactly an input declaration followed by a single shape declaration.
func ExternMalformedShape(model string) *Error {
	return &Error{
		Code:    diag.E_EXTERN_MALFORMED_SHAPE,
		Model:   model,
		Message: fmt.Sprintf("extern model %q must declare exactly one input and one shape", model),
	}
}

// ExternUnexpectedChild reports that an `extern` model declared a nested
// sub-model, which is never legal.
func ExternUnexpectedChild(model, child string) *Error {
	return &Error{
		Code:    diag.E_EXTERN_UNEXPECTED_CHILD,
		Model:   model,
		Node:    child,
		Message: fmt.Sprintf("extern model %q must not declare child model %q", model, child),
	}
}

// NoGraph reports that a fresh (non-extern, non-override) model declared
// no graph lines at all.
func NoGraph(model string) *Error {
	return &Error{
		Code:    diag.E_NO_GRAPH,
		Model:   model,
		Message: fmt.Sprintf("model %q declares no graph", model),
	}
}

// NoVariableValue reports that an override declared a variable with no
// value expression.
func NoVariableValue(model, variable string) *Error {
	return &Error{
		Code:     diag.E_NO_VARIABLE_VALUE,
		Model:    model,
		Variable: variable,
		Message:  fmt.Sprintf("override of %q must give variable %q a value", model, variable),
	}
}

// OverrideChild reports that an override model declared a nested child.
func OverrideChild(model, child string) *Error {
	return &Error{
		Code:    diag.E_OVERRIDE_CHILD,
		Model:   model,
		Node:    child,
		Message: fmt.Sprintf("override of %q must not declare child model %q", model, child),
	}
}

// OverrideGraph reports that an override model declared graph lines of
// its own (an override may only bind variables).
func OverrideGraph(model string) *Error {
	return &Error{
		Code:    diag.E_OVERRIDE_GRAPH,
		Model:   model,
		Message: fmt.Sprintf("override of %q must not declare graph lines", model),
	}
}

// ModelNotFound reports that a `use`d or called model name has no prefab
// registered anywhere on the search path.
func ModelNotFound(model string) *Error {
	return &Error{
		Code:    diag.E_MODEL_NOT_FOUND,
		Model:   model,
		Message: fmt.Sprintf("model %q has no prefab", model),
	}
}

// RecursiveUsage reports that the recursion guard detected a `use` cycle
// while resolving model. cycle is rendered as "a -> b -> a".
func RecursiveUsage(model, cycle string) *Error {
	msg := fmt.Sprintf("model %q is used recursively", model)
	if cycle != "" {
		msg = fmt.Sprintf("%s: %s", msg, cycle)
	}
	return &Error{
		Code:    diag.E_RECURSIVE_USAGE,
		Model:   model,
		Message: msg,
	}
}

// UnsupportedOrigin reports that a Site or User loader origin was
// requested; only Stdlib and filesystem origins are implemented.
func UnsupportedOrigin(origin string) *Error {
	return &Error{
		Code:    diag.E_UNSUPPORTED_ORIGIN,
		Message: fmt.Sprintf("unsupported loader origin %q", origin),
	}
}

// InputNodeNotFound reports that a node referenced an input index that
// has no corresponding caller-side argument.
func InputNodeNotFound(model, node string) *Error {
	return &Error{
		Code:    diag.E_INPUT_NODE_NOT_FOUND,
		Model:   model,
		Node:    node,
		Message: fmt.Sprintf("model %q, node %s: input node not found", model, node),
	}
}

// FirstNodeNotFound reports that a graph's first node failed the
// first-node rule (the first node must be the input sentinel).
func FirstNodeNotFound(model string) *Error {
	return &Error{
		Code:    diag.E_FIRST_NODE_NOT_FOUND,
		Model:   model,
		Message: fmt.Sprintf("model %q: graph has no valid first node", model),
	}
}

// UnvalidNodeID reports a node GraphId that is not valid where it is
// used: a node id that is not a valid successor of the previous node, or
// an input edge naming a GraphId that no node already added carries.
func UnvalidNodeID(model, node string) *Error {
	return &Error{
		Code:    diag.E_UNVALID_NODE_ID,
		Model:   model,
		Node:    node,
		Message: fmt.Sprintf("model %q: node id %s does not identify a prior node", model, node),
	}
}

// UnvalidNodeArg reports that a node referenced an ArgIndex that does not
// exist on the node it points to.
func UnvalidNodeArg(model, node, arg string) *Error {
	return &Error{
		Code:    diag.E_UNVALID_NODE_ARG,
		Model:   model,
		Node:    node,
		Arg:     arg,
		Message: fmt.Sprintf("model %q, node %s: no such argument %s", model, node, arg),
	}
}

// NoSuchNode reports that a sequencing or input reference named a node
// that was never added to the graph.
func NoSuchNode(model, node string) *Error {
	return &Error{
		Code:    diag.E_NO_SUCH_NODE,
		Model:   model,
		Node:    node,
		Message: fmt.Sprintf("model %q: no such node %s", model, node),
	}
}

// ShapeNotDefined reports that a node's shape cannot be determined: a
// fixed pass applied after a transform, a declared shape with no node to
// apply it to, or a dim expression that cannot be converted.
func ShapeNotDefined(model, node string) *Error {
	return &Error{
		Code:    diag.E_SHAPE_NOT_DEFINED,
		Model:   model,
		Node:    node,
		Message: fmt.Sprintf("model %q, node %s: shape not defined", model, node),
	}
}

// FullShapeRequired reports that an operation needed a Fixed(Full) shape
// but the node's shape was still Weak or Dynamic.
func FullShapeRequired(model, node string) *Error {
	return &Error{
		Code:    diag.E_FULL_SHAPE_REQUIRED,
		Model:   model,
		Node:    node,
		Message: fmt.Sprintf("model %q, node %s: a fully-determined shape is required here", model, node),
	}
}

// NoSuchVariable reports that an expression referenced a variable name or
// alias not bound in the enclosing graph.
func NoSuchVariable(model, variable string) *Error {
	return &Error{
		Code:     diag.E_NO_SUCH_VARIABLE,
		Model:    model,
		Variable: variable,
		Message:  fmt.Sprintf("model %q: no such variable %q", model, variable),
	}
}

// NoVariableValueGraph reports that a graph-level variable was read
// before a value was ever bound to it.
func NoVariableValueGraph(model, variable string) *Error {
	return &Error{
		Code:     diag.E_NO_VARIABLE_VALUE_G,
		Model:    model,
		Variable: variable,
		Message:  fmt.Sprintf("model %q: variable %q has no value", model, variable),
	}
}

// CannotEstimateShape reports that a multi-input node could not combine
// its inputs' shapes into a single estimate (no fallthrough rule applies).
func CannotEstimateShape(model, node string) *Error {
	return &Error{
		Code:    diag.E_CANNOT_ESTIMATE_SHAPE,
		Model:   model,
		Node:    node,
		Message: fmt.Sprintf("model %q, node %s: cannot estimate shape from inputs", model, node),
	}
}

// DifferentDimension reports a dimension-unification failure between two
// occurrences of what should be the same symbolic dimension.
func DifferentDimension(model, node string) *Error {
	return &Error{
		Code:    diag.E_DIFFERENT_DIMENSION,
		Model:   model,
		Node:    node,
		Message: fmt.Sprintf("model %q, node %s: dimensions do not unify", model, node),
	}
}

// DifferentArgs reports that two shapes expected to match had a different
// number of arguments (graph id positions).
func DifferentArgs(model, node string) *Error {
	return &Error{
		Code:    diag.E_DIFFERENT_ARGS,
		Model:   model,
		Node:    node,
		Message: fmt.Sprintf("model %q, node %s: argument counts differ", model, node),
	}
}

// DifferentRank reports that two shapes expected to match had different
// ranks (dimension counts).
func DifferentRank(model, node string) *Error {
	return &Error{
		Code:    diag.E_DIFFERENT_RANK,
		Model:   model,
		Node:    node,
		Message: fmt.Sprintf("model %q, node %s: ranks differ", model, node),
	}
}

// DifferentVariableType reports that a variable was given a value whose
// ValueType does not match its declared type.
func DifferentVariableType(model, variable string) *Error {
	return &Error{
		Code:     diag.E_DIFFERENT_VAR_TYPE,
		Model:    model,
		Variable: variable,
		Message:  fmt.Sprintf("model %q: variable %q has an incompatible value type", model, variable),
	}
}

// DivideByZero reports that dimension arithmetic attempted to divide by a
// symbolic expression that evaluated to zero.
func DivideByZero(model, node string) *Error {
	return &Error{
		Code:    diag.E_DIVIDE_BY_ZERO,
		Model:   model,
		Node:    node,
		Message: fmt.Sprintf("model %q, node %s: divide by zero", model, node),
	}
}

// ModelNotFoundGraph reports that a sub-model call within a graph named a
// model with no prefab (graph-scoped variant of [ModelNotFound]).
func ModelNotFoundGraph(model, node, called string) *Error {
	return &Error{
		Code:    diag.E_MODEL_NOT_FOUND_G,
		Model:   model,
		Node:    node,
		Message: fmt.Sprintf("model %q, node %s: called model %q has no prefab", model, node, called),
	}
}

// Parse wraps a surface-syntax parser failure, propagated unchanged.
func Parse(source string, cause error) *Error {
	return &Error{
		Code:    diag.E_PARSE,
		Model:   source,
		Message: cause.Error(),
		Cause:   cause,
	}
}

// Os wraps a filesystem/loader failure, propagated unchanged.
func Os(path string, cause error) *Error {
	return &Error{
		Code:    diag.E_OS,
		Model:   path,
		Message: cause.Error(),
		Cause:   cause,
	}
}
