package elaborate

import (
	"maps"

	"github.com/n3lang/n3c/dim"
	gnode "github.com/n3lang/n3c/node"
	"github.com/n3lang/n3c/state"
	"github.com/n3lang/n3c/symbol"
	"github.com/n3lang/n3c/value"
)

// Graph is one elaborated model (spec §3): its variables, alias map
// (carried inside variables, a *value.Store), the symbolic
// key-bindings accumulated so far, its used sub-models (children, by
// name), its ordered nodes, the current shape-state, and whether it is
// an extern leaf.
//
// A Graph is built once by the Model elaborator and is immutable to
// external callers from that point on: [Root.Find] always hands back a
// deep-enough [Graph.Clone] so that a caller's subsequent variable
// overrides (the override path, spec §4.6) cannot leak back into the
// registry's cached original (spec §9's clone-vs-share resolution).
type Graph struct {
	name      string
	variables *value.Store
	bindings  map[string]dimBinding
	children  map[string]*Graph
	nodes     []Node
	byID      map[gnode.GraphId]int // index into nodes
	st        state.State
	isExtern  bool

	// phInput/phLocal record, by bare name, which placeholder names have
	// already been coined and at which is_input tier, so find_var reuses
	// the same DimKey for repeated occurrences of the same name (spec
	// §4.5.2's find_var: "look up placeholder-input, then
	// placeholder-local").
	phInput map[string]bool
	phLocal map[string]bool
}

// dimBinding is one entry of a graph's DimKey -> Expr key-bindings,
// keyed by the DimKey's canonical symbol string (spec §3's
// "symbolic key-bindings (DimKey → Expr)").
type dimBinding = dim.Dim

// NewGraph builds an empty Graph named name, in its initial
// Fixed(Weak) state.
func NewGraph(name string) *Graph {
	return &Graph{
		name:      name,
		variables: value.NewStore(),
		bindings:  make(map[string]dimBinding),
		children:  make(map[string]*Graph),
		byID:      make(map[gnode.GraphId]int),
		st:        state.FixedState(state.Weak),
		phInput:   make(map[string]bool),
		phLocal:   make(map[string]bool),
	}
}

// Name returns the graph's model name.
func (g *Graph) Name() string { return g.name }

// IsExtern reports whether this graph is an extern leaf.
func (g *Graph) IsExtern() bool { return g.isExtern }

// SetExtern marks the graph as an extern leaf.
func (g *Graph) SetExtern() { g.isExtern = true }

// State returns the graph's current shape-state.
func (g *Graph) State() state.State { return g.st }

// SetState sets the graph's current shape-state.
func (g *Graph) SetState(s state.State) { g.st = s }

// Variables returns the graph's variable store.
func (g *Graph) Variables() *value.Store { return g.variables }

// GetVariables returns a snapshot of the graph's variables, keyed by
// canonical description, for the public API (spec §6).
func (g *Graph) GetVariables() map[string]value.Variable {
	return g.variables.Snapshot()
}

// Child looks up a used sub-model by name.
func (g *Graph) Child(name string) (*Graph, bool) {
	c, ok := g.children[name]
	return c, ok
}

// AddChild registers a used sub-model under name.
func (g *Graph) AddChild(name string, child *Graph) {
	g.children[name] = child
}

// ClearChildren drops the child-graph table, per finalize's "clear the
// child-graph table" step (spec §4.6).
func (g *Graph) ClearChildren() {
	g.children = make(map[string]*Graph)
}

// Nodes returns the graph's nodes in GraphId order.
func (g *Graph) Nodes() []Node { return g.nodes }

// GetNodes is the public-API accessor (spec §6) for the graph's nodes.
func (g *Graph) GetNodes() []Node { return g.nodes }

// NodeByID looks up a previously-inserted node by its GraphId.
func (g *Graph) NodeByID(id gnode.GraphId) (Node, bool) {
	i, ok := g.byID[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// LastNode returns the most recently inserted node, if any.
func (g *Graph) LastNode() (Node, bool) {
	if len(g.nodes) == 0 {
		return Node{}, false
	}
	return g.nodes[len(g.nodes)-1], true
}

// LastID returns the GraphId of the most recently inserted node, or the
// input sentinel if the graph is empty.
func (g *Graph) LastID() gnode.GraphId {
	n, ok := g.LastNode()
	if !ok {
		return gnode.InputID()
	}
	return n.ID
}

// MostRecentByNodeNumber returns the most recently inserted node whose
// GraphId.Node equals nodeNum, used by positional NodeArg resolution
// (spec §4.5(4)(b)): "find the most recent recorded GraphId whose
// node-number equals node".
func (g *Graph) MostRecentByNodeNumber(nodeNum uint64) (gnode.GraphId, bool) {
	for i := len(g.nodes) - 1; i >= 0; i-- {
		if g.nodes[i].ID.Node == nodeNum {
			return g.nodes[i].ID, true
		}
	}
	if nodeNum == 0 {
		return gnode.InputID(), true
	}
	return gnode.GraphId{}, false
}

// insert appends n to the node list; n.ID must already validate as the
// correct successor (checked by the caller, attachOne).
func (g *Graph) insert(n Node) {
	g.byID[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
}

// SetLastShapes overwrites the most recently inserted node's Shapes, as
// adjust_shapes does after converting a declared shape expression.
func (g *Graph) SetLastShapes(s dim.Shapes) {
	if len(g.nodes) == 0 {
		return
	}
	g.nodes[len(g.nodes)-1].Shapes = s
}

// InputShapes returns the graph's first node's Shapes (the declared
// input contract), or Dynamic if the graph has no nodes yet.
func (g *Graph) InputShapes() dim.Shapes {
	if len(g.nodes) == 0 {
		return dim.DynamicShapes()
	}
	return g.nodes[0].Shapes
}

// Bindings returns the graph's current DimKey -> Expr key-bindings as a
// Symbol substitution map, keyed by DimKey.String().
func (g *Graph) Bindings() map[string]symbol.Symbol {
	out := make(map[string]symbol.Symbol, len(g.bindings))
	for k, v := range g.bindings {
		out[k] = v.Symbol()
	}
	return out
}

// Bind records key -> val in the graph's key-bindings.
func (g *Graph) Bind(keyString string, val dim.Dim) {
	g.bindings[keyString] = val
}

// Lookup returns the current binding for keyString, if any.
func (g *Graph) Lookup(keyString string) (dim.Dim, bool) {
	d, ok := g.bindings[keyString]
	return d, ok
}

// GetShapes is the public-API accessor (spec §6): every node's output
// shapes, as raw dim lists per arg, keyed by GraphId. A Dynamic node
// shape contributes no entry to its inner slice.
func (g *Graph) GetShapes() map[gnode.GraphId][][]dim.Dim {
	out := make(map[gnode.GraphId][][]dim.Dim, len(g.nodes))
	for _, n := range g.nodes {
		if n.Shapes.IsDynamic() {
			out[n.ID] = nil
			continue
		}
		args := n.Shapes.Args()
		rows := make([][]dim.Dim, len(args))
		for i, a := range args {
			dims, _ := a.Shape.Dims()
			rows[i] = dims
		}
		out[n.ID] = rows
	}
	return out
}

// Clone returns a deep-enough copy of g: variables, bindings, children,
// and nodes are all independently copyable, so mutating the clone
// (e.g. via the override path's UpdateVariable calls) never affects g
// or anything else holding a reference to it.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		name:      g.name,
		variables: g.variables.Clone(),
		bindings:  maps.Clone(g.bindings),
		children:  make(map[string]*Graph, len(g.children)),
		byID:      maps.Clone(g.byID),
		st:        g.st,
		isExtern:  g.isExtern,
		phInput:   maps.Clone(g.phInput),
		phLocal:   maps.Clone(g.phLocal),
	}
	for name, child := range g.children {
		clone.children[name] = child.Clone()
	}
	clone.nodes = make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		clone.nodes[i] = n
		if n.Graph != nil {
			clone.nodes[i].Graph = n.Graph.Clone()
		}
	}
	return clone
}
