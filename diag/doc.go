// Package diag provides structured diagnostics for the N3 compiler.
//
// This package sits at the foundation tier alongside [location], providing the
// single diagnostic infrastructure used across model loading, parsing, and
// graph elaboration (shape inference).
//
// # Design Principles
//
// The diag package follows several key design principles:
//
//   - Structured data, string-last presentation: issue context travels as
//     [Detail] key-value pairs, never embedded in message strings.
//   - Immutable issues: [Issue] stores its fields in unexported fields and
//     exposes accessor methods that return defensive copies.
//   - Stable error codes: [Code] values are stable identifiers that tools can
//     match on, even when message text changes. The Code type uses an unexported
//     struct to enforce a closed set of valid codes.
//   - Builder pattern: [IssueBuilder] is the only valid construction path for
//     [Issue] values, eliminating common construction mistakes.
//
// # Single-Error Model
//
// The compiler aborts a compilation on its first failure and returns exactly
// one [github.com/n3lang/n3c/compileerr.Error] rather than accumulating a
// batch of issues: there are no partial results to report alongside one
// another, so diag has no collector or multi-issue result type. An Issue
// carries whatever of model/node/arg/variable is relevant as [Detail] pairs
// rather than a source span: the compiler's parser seam ([astjson]) does not
// track source positions, so diag does not either.
//
// # Issue Construction
//
// Issues must be constructed using [NewIssue] and [IssueBuilder]:
//
//	issue := diag.NewIssue(diag.Error, diag.E_MODEL_NOT_FOUND, `model "Encoder" has no prefab`).
//	    WithDetail(diag.DetailKeyModel, "Encoder").
//	    WithHint("check the use path or register the prefab").
//	    Build()
//
// Direct struct literal construction bypasses validity checks and will cause
// panics when the issue is rendered.
//
// # Rendering
//
// The [Renderer] formats a single [Issue] as text or JSON:
//
//	renderer := diag.NewRenderer(diag.WithColors(false))
//	output := renderer.FormatIssue(issue)
//
// # Package Dependencies
//
// Per the Foundation Rule, diag imports only stdlib and [location]. It must not
// import higher-level packages like registry, elaborate, or node.
package diag
