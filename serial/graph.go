// Package serial implements the compiler's optional output
// serialization (spec §6): a self-describing tagged representation of
// a compiled Graph, in both a tagged-JSON and a YAML form, grounded on
// the teacher's adapter/json package (a dedicated serialization
// package separate from the domain types themselves, with a
// WriteOption-style encode entry point).
package serial

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/n3lang/n3c/elaborate"
	gnode "github.com/n3lang/n3c/node"
	"github.com/n3lang/n3c/value"
)

// GraphId is the tagged DTO form of a [node.GraphId].
type GraphId struct {
	Node   uint64 `json:"node" yaml:"node"`
	Pass   uint64 `json:"pass" yaml:"pass"`
	Repeat uint64 `json:"repeat" yaml:"repeat"`
}

func fromGraphId(id gnode.GraphId) GraphId {
	return GraphId{Node: id.Node, Pass: id.Pass, Repeat: id.Repeat}
}

// GraphIdArg is the tagged DTO form of a [node.GraphIdArg].
type GraphIdArg struct {
	ID  GraphId `json:"id" yaml:"id"`
	Arg *uint64 `json:"arg,omitempty" yaml:"arg,omitempty"`
}

func fromGraphIdArg(a gnode.GraphIdArg) GraphIdArg {
	out := GraphIdArg{ID: fromGraphId(a.ID)}
	if idx, ok := a.Arg(); ok {
		v := uint64(idx)
		out.Arg = &v
	}
	return out
}

// Variable is the tagged DTO form of a [value.Variable].
type Variable struct {
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type" yaml:"type"`
	Value       string `json:"value,omitempty" yaml:"value,omitempty"`
	HasValue    bool   `json:"has_value,omitempty" yaml:"has_value,omitempty"`
}

func fromVariable(v value.Variable) Variable {
	out := Variable{Description: v.Description(), Type: v.Type().String()}
	if val, ok := v.Value(); ok {
		out.Value = val.String()
		out.HasValue = true
	}
	return out
}

// Node is the tagged DTO form of an [elaborate.Node].
type Node struct {
	ID     GraphId      `json:"id" yaml:"id"`
	Name   string       `json:"name" yaml:"name"`
	Inputs []GraphIdArg `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Shapes Shapes       `json:"shapes" yaml:"shapes"`
}

func fromNode(n elaborate.Node) Node {
	out := Node{ID: fromGraphId(n.ID), Name: n.Name, Shapes: fromShapes(n.Shapes)}
	for _, in := range n.Inputs {
		out.Inputs = append(out.Inputs, fromGraphIdArg(in))
	}
	return out
}

// Graph is the tagged DTO form of a compiled [elaborate.Graph]: every
// field spec §6's Graph::get_variables/get_nodes/get_shapes/is_extern
// accessors expose, flattened into one self-describing document.
type Graph struct {
	Name      string     `json:"name" yaml:"name"`
	IsExtern  bool       `json:"is_extern,omitempty" yaml:"is_extern,omitempty"`
	Variables []Variable `json:"variables,omitempty" yaml:"variables,omitempty"`
	Nodes     []Node     `json:"nodes" yaml:"nodes"`
}

// FromGraph converts a compiled Graph into its serializable DTO.
// Variables are emitted sorted by description for deterministic output
// (map iteration order is otherwise unspecified).
func FromGraph(g *elaborate.Graph) Graph {
	out := Graph{Name: g.Name(), IsExtern: g.IsExtern()}

	vars := g.GetVariables()
	descs := make([]string, 0, len(vars))
	for d := range vars {
		descs = append(descs, d)
	}
	sortStrings(descs)
	for _, d := range descs {
		out.Variables = append(out.Variables, fromVariable(vars[d]))
	}

	for _, n := range g.GetNodes() {
		out.Nodes = append(out.Nodes, fromNode(n))
	}
	return out
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// ToJSON renders g as indented JSON.
func ToJSON(g *elaborate.Graph) ([]byte, error) {
	data, err := json.MarshalIndent(FromGraph(g), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serial: marshal json: %w", err)
	}
	return data, nil
}

// ToYAML renders g as YAML, the human-readable alternative the
// teacher's own ecosystem (and cue-lang/cue) treats as a first-class
// serialization target for tree-shaped data.
func ToYAML(g *elaborate.Graph) ([]byte, error) {
	data, err := yaml.Marshal(FromGraph(g))
	if err != nil {
		return nil, fmt.Errorf("serial: marshal yaml: %w", err)
	}
	return data, nil
}

// FromJSON parses a Graph DTO previously produced by [ToJSON]. It
// returns the DTO only: no [elaborate.Graph] is rebuilt from it, and
// [ToJSON] does not accept the result.
func FromJSON(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("serial: unmarshal json: %w", err)
	}
	return g, nil
}

// FromYAML parses a Graph DTO previously produced by [ToYAML].
func FromYAML(data []byte) (Graph, error) {
	var g Graph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("serial: unmarshal yaml: %w", err)
	}
	return g, nil
}
