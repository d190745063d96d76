// Package elaborate implements the core of the N3 compiler: the Graph
// elaborator (spec §4.5, component C6) and the Model elaborator (spec
// §4.6, component C7). Together they walk one model's AST and produce
// a fully resolved Graph whose every node carries a determinate shape.
package elaborate
