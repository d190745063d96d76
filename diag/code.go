package diag

// CodeCategory represents the semantic domain of an error code.
//
// Categories represent the semantic domain of an error, not necessarily the
// API layer that emits it. Most codes are emitted exclusively by their
// category's layer, but some codes represent cross-cutting concerns.
type CodeCategory uint8

const (
	// CategorySentinel is for sentinel codes like E_LIMIT_REACHED and E_INTERNAL.
	CategorySentinel CodeCategory = iota

	// CategoryExternModel is for errors elaborating `extern` models.
	CategoryExternModel

	// CategoryNonExternModel is for errors elaborating ordinary/override models.
	CategoryNonExternModel

	// CategoryModel is for model registry resolution errors.
	CategoryModel

	// CategoryGraph is for graph-elaboration (shape inference) errors.
	CategoryGraph

	// CategoryParse is for surface parser errors, propagated unchanged.
	CategoryParse

	// CategoryOs is for filesystem/loader errors, propagated unchanged.
	CategoryOs
)

// String returns a human-readable label for the category.
func (c CodeCategory) String() string {
	switch c {
	case CategorySentinel:
		return "sentinel"
	case CategoryExternModel:
		return "extern_model"
	case CategoryNonExternModel:
		return "non_extern_model"
	case CategoryModel:
		return "model"
	case CategoryGraph:
		return "graph"
	case CategoryParse:
		return "parse"
	case CategoryOs:
		return "os"
	default:
		return "unknown"
	}
}

// Code is a stable programmatic identifier for an Issue.
//
// Error codes are stable identifiers that tools can match on, even when
// message text changes. The Code type uses unexported fields to enforce
// a closed set of valid codes — only codes defined in this package are valid.
//
// Code.String() values are globally unique across all categories. The
// CodeCategory is informational metadata for filtering and grouping.
type Code struct {
	value string
	cat   CodeCategory
}

// String returns the code's string representation (e.g., "E_RECURSIVE_USAGE").
func (c Code) String() string {
	return c.value
}

// Category returns the programmatic category for this code.
func (c Code) Category() CodeCategory {
	return c.cat
}

// IsZero reports whether the code is unset.
func (c Code) IsZero() bool {
	return c.value == ""
}

// code is the unexported constructor—callers cannot create arbitrary codes.
func code(value string, cat CodeCategory) Code {
	return Code{value: value, cat: cat}
}

// Sentinel codes.
var (
	// E_LIMIT_REACHED is a sentinel code for explicit limit notification.
	E_LIMIT_REACHED = code("E_LIMIT_REACHED", CategorySentinel)

	// E_INTERNAL indicates an unexpected invariant failure (internal bug indicator).
	E_INTERNAL = code("E_INTERNAL", CategorySentinel)
)

// ExternModel codes — §7 `ExternModel{Unknown,MalformedShape,UnexpectedChild}`.
var (
	// E_EXTERN_UNKNOWN indicates an `extern` model has no matching shape declaration.
	E_EXTERN_UNKNOWN = code("E_EXTERN_UNKNOWN", CategoryExternModel)

	// E_EXTERN_MALFORMED_SHAPE indicates an `extern` model's graph lines are not
	// exactly an input declaration followed by one shape declaration.
	E_EXTERN_MALFORMED_SHAPE = code("E_EXTERN_MALFORMED_SHAPE", CategoryExternModel)

	// E_EXTERN_UNEXPECTED_CHILD indicates an `extern` model declares nested children.
	E_EXTERN_UNEXPECTED_CHILD = code("E_EXTERN_UNEXPECTED_CHILD", CategoryExternModel)
)

// NonExternModel codes — §7 `NonExternModel{NoGraph, NotFound, OverrideChild, OverrideGraph}`.
var (
	// E_NO_GRAPH indicates a fresh (non-override) model declares no graph lines.
	E_NO_GRAPH = code("E_NO_GRAPH", CategoryNonExternModel)

	// E_NO_VARIABLE_VALUE indicates an override declares a variable with no value.
	E_NO_VARIABLE_VALUE = code("E_NO_VARIABLE_VALUE", CategoryNonExternModel)

	// E_OVERRIDE_CHILD indicates an override model declares nested children.
	E_OVERRIDE_CHILD = code("E_OVERRIDE_CHILD", CategoryNonExternModel)

	// E_OVERRIDE_GRAPH indicates an override model declares graph lines.
	E_OVERRIDE_GRAPH = code("E_OVERRIDE_GRAPH", CategoryNonExternModel)
)

// Model (registry) codes — §7 `Model{NotFound, RecursiveUsage}`.
var (
	// E_MODEL_NOT_FOUND indicates a `use`d or called model name has no prefab.
	E_MODEL_NOT_FOUND = code("E_MODEL_NOT_FOUND", CategoryModel)

	// E_RECURSIVE_USAGE indicates a `use` cycle was detected by the recursion guard.
	E_RECURSIVE_USAGE = code("E_RECURSIVE_USAGE", CategoryModel)

	// E_UNSUPPORTED_ORIGIN indicates a Site or User loader origin was requested.
	E_UNSUPPORTED_ORIGIN = code("E_UNSUPPORTED_ORIGIN", CategoryModel)
)

// Graph codes — §7 `Graph{...}`.
var (
	E_INPUT_NODE_NOT_FOUND  = code("E_INPUT_NODE_NOT_FOUND", CategoryGraph)
	E_FIRST_NODE_NOT_FOUND  = code("E_FIRST_NODE_NOT_FOUND", CategoryGraph)
	E_UNVALID_NODE_ID       = code("E_UNVALID_NODE_ID", CategoryGraph)
	E_UNVALID_NODE_ARG      = code("E_UNVALID_NODE_ARG", CategoryGraph)
	E_NO_SUCH_NODE          = code("E_NO_SUCH_NODE", CategoryGraph)
	E_SHAPE_NOT_DEFINED     = code("E_SHAPE_NOT_DEFINED", CategoryGraph)
	E_FULL_SHAPE_REQUIRED   = code("E_FULL_SHAPE_REQUIRED", CategoryGraph)
	E_NO_SUCH_VARIABLE      = code("E_NO_SUCH_VARIABLE", CategoryGraph)
	E_NO_VARIABLE_VALUE_G   = code("E_NO_VARIABLE_VALUE_GRAPH", CategoryGraph)
	E_CANNOT_ESTIMATE_SHAPE = code("E_CANNOT_ESTIMATE_SHAPE", CategoryGraph)
	E_DIFFERENT_DIMENSION   = code("E_DIFFERENT_DIMENSION", CategoryGraph)
	E_DIFFERENT_ARGS        = code("E_DIFFERENT_ARGS", CategoryGraph)
	E_DIFFERENT_RANK        = code("E_DIFFERENT_RANK", CategoryGraph)
	E_DIFFERENT_VAR_TYPE    = code("E_DIFFERENT_VARIABLE_TYPE", CategoryGraph)
	E_DIVIDE_BY_ZERO        = code("E_DIVIDE_BY_ZERO", CategoryGraph)
	E_MODEL_NOT_FOUND_G     = code("E_MODEL_NOT_FOUND_GRAPH", CategoryGraph)
)

// Parse/Os pass-through codes.
var (
	// E_PARSE wraps a surface-syntax parser failure, propagated unchanged.
	E_PARSE = code("E_PARSE", CategoryParse)

	// E_OS wraps a filesystem/loader failure, propagated unchanged.
	E_OS = code("E_OS", CategoryOs)
)

// allCodes lists every defined code, used by [CodesByCategory].
var allCodes = []Code{
	E_LIMIT_REACHED,
	E_INTERNAL,

	E_EXTERN_UNKNOWN,
	E_EXTERN_MALFORMED_SHAPE,
	E_EXTERN_UNEXPECTED_CHILD,

	E_NO_GRAPH,
	E_NO_VARIABLE_VALUE,
	E_OVERRIDE_CHILD,
	E_OVERRIDE_GRAPH,

	E_MODEL_NOT_FOUND,
	E_RECURSIVE_USAGE,
	E_UNSUPPORTED_ORIGIN,

	E_INPUT_NODE_NOT_FOUND,
	E_FIRST_NODE_NOT_FOUND,
	E_UNVALID_NODE_ID,
	E_UNVALID_NODE_ARG,
	E_NO_SUCH_NODE,
	E_SHAPE_NOT_DEFINED,
	E_FULL_SHAPE_REQUIRED,
	E_NO_SUCH_VARIABLE,
	E_NO_VARIABLE_VALUE_G,
	E_CANNOT_ESTIMATE_SHAPE,
	E_DIFFERENT_DIMENSION,
	E_DIFFERENT_ARGS,
	E_DIFFERENT_RANK,
	E_DIFFERENT_VAR_TYPE,
	E_DIVIDE_BY_ZERO,
	E_MODEL_NOT_FOUND_G,

	E_PARSE,
	E_OS,
}

// AllCodes returns every defined code.
//
// The returned slice is a new allocation; modifications do not affect
// internal state.
func AllCodes() []Code {
	result := make([]Code, len(allCodes))
	copy(result, allCodes)
	return result
}

// CodesByCategory returns codes in the given category.
//
// The returned slice is a new allocation; modifications do not affect
// internal state.
func CodesByCategory(cat CodeCategory) []Code {
	var result []Code
	for _, c := range allCodes {
		if c.cat == cat {
			result = append(result, c)
		}
	}
	return result
}
