package astjson

import (
	"fmt"
	"strings"

	"github.com/n3lang/n3c/ast"
)

// Parser implements [loader.Parser] (and therefore [registry.Parser])
// over the two source forms this module ships a reader for: a tagged
// JSON [File] (for caller-supplied models of arbitrary shape — uses,
// nested children, chained passes, keyword args) and the narrow extern
// stub grammar [ParseExternStub] understands (what the embedded
// standard library's `.n3` files are written in). Source text starting
// with '{' is decoded as JSON; source text starting with "extern [" is
// decoded as an extern stub; anything else is reported as unsupported.
//
// This is the compiler's only shipped Parser: the full N3 surface
// grammar remains an out-of-scope external collaborator (spec §1), so
// any caller wanting to compile full `use`/multi-pass model sources
// supplies its own, or authors the equivalent as a tagged JSON [File].
type Parser struct{}

// Parse implements [loader.Parser].
func (Parser) Parse(source string) (ast.File, error) {
	trimmed := strings.TrimSpace(source)
	switch {
	case strings.HasPrefix(trimmed, "{"):
		return Decode([]byte(trimmed))
	case strings.HasPrefix(trimmed, "extern ["):
		return ParseExternStub(trimmed)
	default:
		return ast.File{}, fmt.Errorf("astjson: unrecognized source form (expected JSON or an extern stub)")
	}
}
