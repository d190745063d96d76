// Command n3c is a thin CLI entry point over the N3 core compiler: it
// compiles one model source (a file path, or stdin with "-") against a
// registry seeded from the embedded standard library plus an optional
// local module root, and prints the resulting graph's resolved shapes.
//
// Grounded on the teacher's lsp/cmd/yammm-lsp binary layout (a small
// main wiring flags, logging, and a core package together) but using
// github.com/spf13/cobra for flag parsing, the way cue-lang/cue's own
// cmd/cue does.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "n3c: %v\n", err)
		os.Exit(1)
	}
}
