// Package graph provides the generic ownership/reference arena underlying
// the property model. Records are addressed by stable integer IDs and
// connected by named, ordered edges. Edges are tagged as owned or shared;
// disposal cascades across owned edges only and emits one event per record.
//
// An Arena is not safe for concurrent use. Two Arenas are fully independent:
// linking records from different Arenas fails.
package graph

import (
	"fmt"

	"github.com/sceneform/gltf/debug"
	"github.com/sceneform/gltf/wire"
)

// ID addresses a record within its Arena. IDs are never reused.
type ID int

// EdgeKind selects ownership semantics for an edge.
type EdgeKind int

const (
	// OwnedSingle is a one-to-one owning edge; disposal of the parent
	// disposes the child.
	OwnedSingle EdgeKind = iota
	// OwnedList is an owning edge that is part of an ordered list under
	// one name; disposal of the parent disposes each child.
	OwnedList
	// Shared is a non-owning reference; disposal of the parent leaves the
	// child alive.
	Shared
)

// Edge is a named, directed connection between two records.
type Edge struct {
	Name   string
	Kind   EdgeKind
	parent *Node
	child  *Node
	dead   bool
}

// Dead reports whether the edge has been unlinked or disposed. Holders of an
// Edge use this instead of dispose-event plumbing to drop stale references.
func (e *Edge) Dead() bool { return e.dead }

// Parent returns the record the edge starts from.
func (e *Edge) Parent() *Node { return e.parent }

// Child returns the record the edge points to.
func (e *Edge) Child() *Node { return e.child }

// Node is a record registered in an Arena.
type Node struct {
	arena *Arena
	id    ID
	alive bool
	out   []*Edge
	in    []*Edge
}

// ID returns the record's stable identifier.
func (n *Node) ID() ID { return n.id }

// Alive reports whether the record has not been disposed.
func (n *Node) Alive() bool { return n.alive }

// ParentEdges returns the incoming edges in insertion order.
func (n *Node) ParentEdges() []*Edge { return n.in }

// ChildEdges returns the outgoing edges in insertion order.
func (n *Node) ChildEdges() []*Edge { return n.out }

// Arena owns a set of records and their edges.
type Arena struct {
	nextID    ID
	count     int
	onDispose []func(*Node)
}

func New() *Arena {
	return &Arena{nextID: 1}
}

// Register creates a new live record in the arena.
func (g *Arena) Register() *Node {
	n := &Node{arena: g, id: g.nextID, alive: true}
	g.nextID++
	g.count++
	return n
}

// Len returns the number of live records.
func (g *Arena) Len() int { return g.count }

// OnDispose registers f to be called once for every record disposal.
func (g *Arena) OnDispose(f func(*Node)) {
	g.onDispose = append(g.onDispose, f)
}

// Link connects parent to child with a named edge. Both records must be
// live members of this arena.
func (g *Arena) Link(name string, parent, child *Node, kind EdgeKind) (*Edge, error) {
	if parent == nil || child == nil {
		return nil, fmt.Errorf("%w: link %q with nil record", wire.ErrUsage, name)
	}
	if parent.arena != g || child.arena != g {
		return nil, fmt.Errorf("%w: link %q across graph instances", wire.ErrUsage, name)
	}
	if !parent.alive || !child.alive {
		return nil, fmt.Errorf("%w: link %q with disposed record", wire.ErrUsage, name)
	}
	e := &Edge{Name: name, Kind: kind, parent: parent, child: child}
	parent.out = append(parent.out, e)
	child.in = append(child.in, e)
	return e, nil
}

// Unlink removes the edge from both endpoints and marks it dead. Removing
// an edge that is already gone is a no-op.
func (g *Arena) Unlink(e *Edge) {
	if e == nil || e.dead {
		return
	}
	e.dead = true
	e.parent.out = removeEdge(e.parent.out, e)
	e.child.in = removeEdge(e.child.in, e)
}

// Dispose removes the record and all of its edges, recursively disposing
// children reached over owned edges. One dispose event fires per record.
// Disposing a dead record is a no-op.
func (g *Arena) Dispose(n *Node) {
	if n == nil || !n.alive || n.arena != g {
		return
	}
	if debug.Graph() {
		debug.Logf("graph: dispose #%d", int(n.id))
	}
	n.alive = false
	g.count--
	out := n.out
	n.out = nil
	for _, e := range out {
		if e.dead {
			continue
		}
		e.dead = true
		e.child.in = removeEdge(e.child.in, e)
		if e.Kind != Shared {
			g.Dispose(e.child)
		}
	}
	in := n.in
	n.in = nil
	for _, e := range in {
		if e.dead {
			continue
		}
		e.dead = true
		e.parent.out = removeEdge(e.parent.out, e)
	}
	for _, f := range g.onDispose {
		f(n)
	}
}

func removeEdge(edges []*Edge, e *Edge) []*Edge {
	for i, x := range edges {
		if x == e {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return edges
}
