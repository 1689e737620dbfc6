// Package journey implements the append-only arena of labelled
// journey-tree nodes the solver builds per request: spec.md §3
// "Journey-tree nodes" and §4.F.
//
// Nodes are never removed. A dominated node simply becomes
// unreachable from any surviving Pareto front; the arena itself keeps
// growing for the lifetime of one request and is discarded afterward
// (spec.md §5).
package journey

import (
	"github.com/transitkit/laxago/gtfstime"
	"github.com/transitkit/laxago/transitdata"
)

// Handle is an opaque index into a Tree's node arena. Handles start
// at 0; the "no parent" marker is the separate NoParent value below.
type Handle int

// NoParent marks a node with no predecessor: an origin's Waiting node.
const NoParent Handle = -1

// Kind tags which of the four disjoint node shapes a Node holds.
type Kind int

const (
	KindWaiting Kind = iota
	KindOnboard
	KindDebarked
	KindArrived
)

// Node is one arena entry. Only the fields relevant to Kind are
// meaningful; the others are zero.
type Node struct {
	Kind   Kind
	Parent Handle

	// Waiting
	Stop      transitdata.StopIdx
	ArrivedAt gtfstime.UTCInstant

	// Onboard
	Trip            transitdata.Trip
	BoardedPosition int
	BoardedAt       gtfstime.UTCInstant

	// Debarked
	DebarkedStop transitdata.StopIdx
	DebarkedAt   gtfstime.UTCInstant

	// Arrived carries no extra data beyond Parent: its criteria value
	// lives alongside the handle in the owning Pareto front, not on
	// the node itself (spec.md §3's "Arrived(criteria_values)" is
	// represented by the (node, criteria) pair the front stores).
}

// Tree is an append-only arena of Node values, owned by a single
// request. Cycles are impossible by construction: every node's parent
// was inserted strictly before it.
type Tree struct {
	nodes []Node
}

// NewTree creates an empty Tree.
func NewTree() *Tree {
	return &Tree{}
}

// Node returns the node at h.
func (t *Tree) Node(h Handle) Node { return t.nodes[h] }

// Len returns the number of nodes inserted so far.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) insert(n Node) Handle {
	h := Handle(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return h
}

// InsertWaiting records a Waiting(stop, arrived_at) node.
func (t *Tree) InsertWaiting(parent Handle, stop transitdata.StopIdx, arrivedAt gtfstime.UTCInstant) Handle {
	return t.insert(Node{Kind: KindWaiting, Parent: parent, Stop: stop, ArrivedAt: arrivedAt})
}

// InsertOnboard records an Onboard(trip, boarded_position, boarded_at)
// node.
func (t *Tree) InsertOnboard(parent Handle, trip transitdata.Trip, boardedPosition int, boardedAt gtfstime.UTCInstant) Handle {
	return t.insert(Node{Kind: KindOnboard, Parent: parent, Trip: trip, BoardedPosition: boardedPosition, BoardedAt: boardedAt})
}

// InsertDebarked records a Debarked(stop, at) node.
func (t *Tree) InsertDebarked(parent Handle, stop transitdata.StopIdx, at gtfstime.UTCInstant) Handle {
	return t.insert(Node{Kind: KindDebarked, Parent: parent, DebarkedStop: stop, DebarkedAt: at})
}

// InsertArrived records an Arrived node.
func (t *Tree) InsertArrived(parent Handle) Handle {
	return t.insert(Node{Kind: KindArrived, Parent: parent})
}
