// Package node implements GraphId and GraphIdArg: the sequential node
// identity scheme a graph's nodes are ordered and addressed by (spec §3,
// §4.5). [elaborate.Node] and [elaborate.Graph] themselves live in the
// elaborate package rather than here, since Node and Graph are mutually
// recursive (a Node may carry a resolved sub-Graph) and Go packages
// cannot import each other cyclically; GraphId/GraphIdArg have no such
// dependency and so are factored out as the identity primitives shared
// by the elaborate and serial packages.
package node

import (
	"fmt"

	"github.com/n3lang/n3c/dim"
)

// GraphId is a node's sequential identity: (node, pass, repeat), each a
// u64, compared lexicographically in that order. The sentinel (0,0,0)
// denotes the implicit input node; the first user-declared node is
// (1,0,0). pass increments for chained operators attached to the same
// node number (e.g. "Conv2d + ReLU"); repeat increments for loop
// repetitions of the same (node, pass).
type GraphId struct {
	Node   uint64
	Pass   uint64
	Repeat uint64
}

// InputID is the sentinel identity of the implicit input node.
func InputID() GraphId { return GraphId{} }

// NewGraphId builds a GraphId from its three components.
func NewGraphId(n, pass, repeat uint64) GraphId {
	return GraphId{Node: n, Pass: pass, Repeat: repeat}
}

// IsInput reports whether id is the input sentinel (0,0,0).
func (id GraphId) IsInput() bool {
	return id.Node == 0 && id.Pass == 0 && id.Repeat == 0
}

// IsFirst reports whether id is the first user node, (1,0,0).
func (id GraphId) IsFirst() bool {
	return id.Node == 1 && id.Pass == 0 && id.Repeat == 0
}

// Compare returns -1, 0, or 1 as id is lexicographically less than,
// equal to, or greater than other, comparing Node, then Pass, then
// Repeat.
func (id GraphId) Compare(other GraphId) int {
	switch {
	case id.Node != other.Node:
		return cmpUint64(id.Node, other.Node)
	case id.Pass != other.Pass:
		return cmpUint64(id.Pass, other.Pass)
	default:
		return cmpUint64(id.Repeat, other.Repeat)
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether id sorts before other.
func (id GraphId) Less(other GraphId) bool {
	return id.Compare(other) < 0
}

// Equal reports whether id and other are the same identity.
func (id GraphId) Equal(other GraphId) bool {
	return id.Compare(other) == 0
}

// IsValidSuccessorOf implements spec §4.5's sequencing rule: id is a
// valid successor of last if it is one of:
//
//   - same node, same pass, repeat+1 (a loop repetition)
//   - same node, pass+1, repeat=0 (a chained operator, e.g. "+ReLU")
//   - node+1, pass=0, repeat=0 (the next sequential node)
func (id GraphId) IsValidSuccessorOf(last GraphId) bool {
	switch {
	case id.Node == last.Node && id.Pass == last.Pass && id.Repeat == last.Repeat+1:
		return true
	case id.Node == last.Node && id.Pass == last.Pass+1 && id.Repeat == 0:
		return true
	case id.Node == last.Node+1 && id.Pass == 0 && id.Repeat == 0:
		return true
	default:
		return false
	}
}

// String renders id as "node.pass.repeat".
func (id GraphId) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Node, id.Pass, id.Repeat)
}

// GraphIdArg identifies a specific output of an upstream node: the
// node's GraphId, plus an optional ArgIndex selecting one of its output
// slots (absent means "the node's sole/default output").
type GraphIdArg struct {
	ID     GraphId
	arg    dim.ArgIndex
	hasArg bool
}

// NewGraphIdArg builds a GraphIdArg with an explicit ArgIndex.
func NewGraphIdArg(id GraphId, arg dim.ArgIndex) GraphIdArg {
	return GraphIdArg{ID: id, arg: arg, hasArg: true}
}

// DefaultGraphIdArg builds a GraphIdArg with no explicit ArgIndex (the
// node's default output).
func DefaultGraphIdArg(id GraphId) GraphIdArg {
	return GraphIdArg{ID: id}
}

// Arg returns the explicit ArgIndex and whether one was given.
func (a GraphIdArg) Arg() (dim.ArgIndex, bool) {
	return a.arg, a.hasArg
}

// String renders the GraphIdArg for diagnostics.
func (a GraphIdArg) String() string {
	if a.hasArg {
		return fmt.Sprintf("%s#%d", a.ID, a.arg)
	}
	return a.ID.String()
}
