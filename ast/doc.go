// Package ast defines the surface-syntax AST the N3 core compiler
// consumes from the parser (spec §6). The parser itself is out of
// scope (spec §1); this package is purely the data shapes the core
// depends on, plus a handful of builder helpers used by tests to
// construct ASTs without a real parser.
package ast
