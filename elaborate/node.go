package elaborate

import (
	"github.com/n3lang/n3c/dim"
	"github.com/n3lang/n3c/node"
)

// Node is one attached element of a Graph: a name (an intrinsic, the
// input sentinel, or a sub-model's name), the resolved sub-Graph when
// this node is a sub-model call (nil for intrinsics and the input),
// its input edges, and its elaborated output Shapes.
type Node struct {
	ID     node.GraphId
	Name   string
	Graph  *Graph
	Inputs []node.GraphIdArg
	Shapes dim.Shapes
}
