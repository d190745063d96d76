package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/n3lang/n3c/astjson"
	"github.com/n3lang/n3c/compileerr"
	"github.com/n3lang/n3c/diag"
	"github.com/n3lang/n3c/elaborate"
	"github.com/n3lang/n3c/registry"
	"github.com/n3lang/n3c/serial"
)

func newCompileCmd(flags *rootFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "compile [source-file | -]",
		Short: "compile one model source and print its resolved shape graph",
		Long: `compile elaborates a single N3 model source into a fully resolved
shape graph: every use-reference is looked up in a registry seeded with
the embedded standard library (and --module-root, if given), and every
node's output shape is unified and finalized.

Source may be a path to a file, or "-" to read from stdin. It is read
either as a tagged JSON AST document or as the narrow extern-stub text
grammar the embedded standard library itself uses (see the astjson
package) - the full N3 surface grammar is parsed by a collaborator
outside this module's scope.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, flags, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text|json|yaml")
	return cmd
}

func runCompile(cmd *cobra.Command, flags *rootFlags, path, format string) error {
	source, err := readSource(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	logger, err := flags.logger()
	if err != nil {
		return err
	}

	opts := []registry.Option{
		registry.WithParser(astjson.Parser{}),
		registry.WithLogger(logger),
	}
	if flags.moduleRoot != "" {
		opts = append(opts, registry.WithPath(flags.moduleRoot))
	}

	root, err := registry.New(opts...)
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}

	g, err := root.CompileFromSource(source)
	if err != nil {
		return renderCompileError(cmd.ErrOrStderr(), err)
	}

	return writeGraph(cmd.OutOrStdout(), g, format)
}

func readSource(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// renderCompileError renders a *compileerr.Error through diag's text
// renderer (spec §7: compile failures carry a stable Code and whatever
// of model/node/arg is meaningful), falling back to the bare error text
// for anything else (e.g. a registry setup failure).
func renderCompileError(w io.Writer, err error) error {
	if cerr, ok := compileerr.As(err); ok {
		r := diag.NewRenderer(diag.WithColors(false))
		fmt.Fprintln(w, r.FormatIssue(cerr.Issue()))
		return cerr
	}
	return err
}

func writeGraph(w io.Writer, g *elaborate.Graph, format string) error {
	switch strings.ToLower(format) {
	case "json":
		data, err := serial.ToJSON(g)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := serial.ToYAML(g)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, string(data))
		return err
	case "text", "":
		return writeGraphText(w, g)
	default:
		return fmt.Errorf("unrecognized --format %q (want text|json|yaml)", format)
	}
}

func writeGraphText(w io.Writer, g *elaborate.Graph) error {
	fmt.Fprintf(w, "%s", g.Name())
	if g.IsExtern() {
		fmt.Fprintf(w, " (extern)")
	}
	fmt.Fprintln(w)

	for _, n := range g.GetNodes() {
		fmt.Fprintf(w, "  %s %s", n.ID, n.Name)
		if n.Shapes.IsDynamic() {
			fmt.Fprintln(w, " = dynamic")
			continue
		}
		fmt.Fprint(w, " = ")
		args := n.Shapes.Args()
		for i, a := range args {
			if i > 0 {
				fmt.Fprint(w, "; ")
			}
			dims, _ := a.Shape.Dims()
			for j, d := range dims {
				if j > 0 {
					fmt.Fprint(w, ", ")
				}
				fmt.Fprint(w, d.String())
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}
