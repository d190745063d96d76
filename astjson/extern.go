package astjson

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/n3lang/n3c/ast"
)

// ParseExternStub parses the narrow extern-prefab text grammar used by
// the embedded standard library (spec §6's "filesystem prefab loader"
// supplies source strings; the full N3 surface grammar is an
// out-of-scope external collaborator per spec §1, but this tiny, fixed
// shape — a header plus exactly two declaration lines — is regular
// enough to read directly, the same way [loader] reads a file's bytes
// without needing a general-purpose filesystem library).
//
// Grammar:
//
//	extern [Name]
//	#0 Input = (dim, dim, ...)
//	#1 (identity | fixed = (dim, dim, ...))
//
// where each dim is either a bare identifier (a semantic placeholder) or
// a left-associative chain of identifiers/integers joined by +, -, *, /.
// This is the entire surface this parser understands; anything else
// returns an error naming the offending line.
func ParseExternStub(source string) (ast.File, error) {
	lines := nonEmptyLines(source)
	if len(lines) != 3 {
		return ast.File{}, fmt.Errorf("astjson: extern stub must have exactly 3 non-empty lines, got %d", len(lines))
	}

	name, err := parseExternHeader(lines[0])
	if err != nil {
		return ast.File{}, err
	}

	// The pass name on line #0 is irrelevant: id (0,0,0) is always the
	// input sentinel regardless of name (spec §4.5(3)).
	input, err := parseDeclLine(lines[1], 0)
	if err != nil {
		return ast.File{}, err
	}

	second, err := parseDeclLine(lines[2], 1)
	if err != nil {
		return ast.File{}, err
	}

	m := ast.NewModel(name)
	m.IsExtern = true
	m.Inner.Graph = []ast.GraphLine{input.line, second.line}
	return ast.File{Model: m}, nil
}

func nonEmptyLines(source string) []string {
	var out []string
	for _, raw := range strings.Split(source, "\n") {
		l := strings.TrimSpace(raw)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func parseExternHeader(line string) (string, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "extern [") || !strings.HasSuffix(line, "]") {
		return "", fmt.Errorf("astjson: malformed extern header %q", line)
	}
	return strings.TrimSuffix(strings.TrimPrefix(line, "extern ["), "]"), nil
}

// declLine wraps one parsed graph line.
type declLine struct {
	line ast.GraphLine
}

// parseDeclLine parses one "#<id> <name> [= (<dims>)]" line.
func parseDeclLine(line string, wantID uint64) (declLine, error) {
	if !strings.HasPrefix(line, "#") {
		return declLine{}, fmt.Errorf("astjson: graph line %q does not start with '#'", line)
	}
	rest := line[1:]

	idStr, rest, ok := cutField(rest)
	if !ok {
		return declLine{}, fmt.Errorf("astjson: malformed graph line %q", line)
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return declLine{}, fmt.Errorf("astjson: graph line %q: bad node id: %w", line, err)
	}
	if id != wantID {
		return declLine{}, fmt.Errorf("astjson: graph line %q: expected node id #%d", line, wantID)
	}

	var passName, shapeText string
	hasShape := false
	if eq := strings.Index(rest, "="); eq >= 0 {
		passName = strings.TrimSpace(rest[:eq])
		shapeText = strings.TrimSpace(rest[eq+1:])
		hasShape = true
	} else {
		passName = strings.TrimSpace(rest)
	}
	if passName == "" {
		return declLine{}, fmt.Errorf("astjson: graph line %q: missing pass name", line)
	}

	gl := ast.GraphLine{ID: id, Passes: []ast.Pass{ast.NewPass(passName)}}
	if hasShape {
		dims, err := parseDimList(shapeText)
		if err != nil {
			return declLine{}, fmt.Errorf("astjson: graph line %q: %w", line, err)
		}
		shape := ast.SingleArgShape(dims)
		gl.Shapes = &shape
	}
	return declLine{line: gl}, nil
}

// cutField splits s on the first run of whitespace, returning the first
// field and the (left-trimmed) remainder.
func cutField(s string) (field, rest string, ok bool) {
	s = strings.TrimSpace(s)
	idx := strings.IndexFunc(s, func(r rune) bool { return r == ' ' || r == '\t' })
	if idx < 0 {
		return s, "", s != ""
	}
	return s[:idx], strings.TrimSpace(s[idx:]), true
}

// parseDimList parses a parenthesized, comma-separated dim list:
// "(batch, channels * height * width)".
func parseDimList(s string) ([]ast.DimExpr, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("malformed shape %q: expected parenthesized list", s)
	}
	inner := s[1 : len(s)-1]
	parts := strings.Split(inner, ",")
	dims := make([]ast.DimExpr, 0, len(parts))
	for _, p := range parts {
		d, err := parseDimExpr(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return dims, nil
}

// parseDimExpr parses a single dim: a left-associative chain of
// identifiers/integers joined by +, -, *, /, e.g. "channels * height *
// width". No operator precedence is needed since the grammar admits
// only one level of chaining in practice.
func parseDimExpr(s string) (ast.DimExpr, error) {
	tokens := tokenizeDim(s)
	if len(tokens) == 0 {
		return ast.DimExpr{}, fmt.Errorf("empty dim expression")
	}

	acc, err := dimTerm(tokens[0])
	if err != nil {
		return ast.DimExpr{}, err
	}

	for i := 1; i < len(tokens); i += 2 {
		if i+1 >= len(tokens) {
			return ast.DimExpr{}, fmt.Errorf("dangling operator in dim expression %q", s)
		}
		op, err := parseOp(tokens[i])
		if err != nil {
			return ast.DimExpr{}, err
		}
		rhs, err := dimTerm(tokens[i+1])
		if err != nil {
			return ast.DimExpr{}, err
		}
		acc = ast.BinaryDim(acc, rhs, op)
	}
	return acc, nil
}

func dimTerm(tok string) (ast.DimExpr, error) {
	if n, err := strconv.ParseUint(tok, 10, 64); err == nil {
		return ast.FixedDim(n), nil
	}
	if !isIdent(tok) {
		return ast.DimExpr{}, fmt.Errorf("invalid dim token %q", tok)
	}
	return ast.SemanticDim(tok), nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func tokenizeDim(s string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch r {
		case '+', '-', '*', '/':
			flush()
			out = append(out, string(r))
		case ' ', '\t':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}
