// Package graph provides the mutable node/edge container that every
// other component of graphweave builds on.
//
// A Graph owns a dense node space 0..n-1 fixed at creation time and an
// insertion-ordered set of edges. Orientation (directed or undirected)
// is a graph-level property: an undirected graph treats (a,b) and (b,a)
// as the same edge. Community subgraphs produced in local id space are
// merged into a larger graph with MergeAt, which remaps every local id
// i to offset+i.
package graph

import (
	"errors"
	"fmt"
	"iter"
)

// Orientation selects between directed and undirected edge semantics.
type Orientation int

const (
	Directed Orientation = iota
	Undirected
)

// String returns the lowercase name used in CLI flags and job files.
func (o Orientation) String() string {
	if o == Undirected {
		return "undirected"
	}
	return "directed"
}

// ParseOrientation converts a CLI/job-file string into an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "directed":
		return Directed, nil
	case "undirected":
		return Undirected, nil
	default:
		return Directed, fmt.Errorf("unknown orientation %q (want directed or undirected)", s)
	}
}

var (
	// ErrInvalidNode reports an edge endpoint outside the node space.
	ErrInvalidNode = errors.New("invalid node id")

	// ErrCapacityOverflow reports a merge that would exceed the target's
	// declared node count.
	ErrCapacityOverflow = errors.New("capacity overflow")

	// ErrOrientationMismatch reports a merge between graphs of different
	// orientations.
	ErrOrientationMismatch = errors.New("orientation mismatch")
)

// Edge is a single edge in node-id terms. For undirected graphs the
// stored From/To order is the insertion order; equality ignores it.
type Edge struct {
	From int
	To   int
}

// Graph is a fixed-node-count, insertion-ordered edge container.
//
// Graphs are not safe for concurrent mutation. The generation pipeline
// never shares a graph between goroutines: each community graph is
// owned by the goroutine that builds it and ownership transfers to the
// merge step.
type Graph struct {
	orientation Orientation
	nodes       int
	edges       []Edge
	seen        map[Edge]struct{}
}

// New creates an empty graph with the given orientation and node count.
func New(o Orientation, nodes int) *Graph {
	return &Graph{
		orientation: o,
		nodes:       nodes,
		seen:        make(map[Edge]struct{}),
	}
}

// Orientation returns the graph's orientation.
func (g *Graph) Orientation() Orientation { return g.orientation }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return g.nodes }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// key normalizes an edge for duplicate detection. Undirected edges are
// keyed with the smaller endpoint first.
func (g *Graph) key(from, to int) Edge {
	if g.orientation == Undirected && to < from {
		return Edge{From: to, To: from}
	}
	return Edge{From: from, To: to}
}

// AddEdge inserts the edge (from, to). Inserting an edge that is
// already present (for the graph's orientation) is a no-op. Self-loops
// are allowed; generators that forbid them must not produce them.
func (g *Graph) AddEdge(from, to int) error {
	if from < 0 || from >= g.nodes {
		return fmt.Errorf("%w: %d (graph has %d nodes)", ErrInvalidNode, from, g.nodes)
	}
	if to < 0 || to >= g.nodes {
		return fmt.Errorf("%w: %d (graph has %d nodes)", ErrInvalidNode, to, g.nodes)
	}
	k := g.key(from, to)
	if _, ok := g.seen[k]; ok {
		return nil
	}
	g.seen[k] = struct{}{}
	g.edges = append(g.edges, Edge{From: from, To: to})
	return nil
}

// HasEdge reports whether (from, to) is present, honoring orientation.
func (g *Graph) HasEdge(from, to int) bool {
	_, ok := g.seen[g.key(from, to)]
	return ok
}

// Nodes returns a restartable iterator over node ids in ascending order.
func (g *Graph) Nodes() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < g.nodes; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// Edges returns a restartable iterator over edges in insertion order.
// Insertion order is what makes two identical runs render identically.
func (g *Graph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, e := range g.edges {
			if !yield(e) {
				return
			}
		}
	}
}

// MergeAt copies every edge of src into g, remapping each local node id
// i to offset+i. The target range [offset, offset+src.NodeCount()) must
// fit inside g's declared node count; target ranges of distinct merges
// never overlap, so merges at different offsets are independent.
func (g *Graph) MergeAt(src *Graph, offset int) error {
	if src.orientation != g.orientation {
		return fmt.Errorf("%w: merging %s into %s", ErrOrientationMismatch, src.orientation, g.orientation)
	}
	if offset < 0 || offset+src.nodes > g.nodes {
		return fmt.Errorf("%w: range [%d,%d) exceeds %d nodes",
			ErrCapacityOverflow, offset, offset+src.nodes, g.nodes)
	}
	for _, e := range src.edges {
		if err := g.AddEdge(e.From+offset, e.To+offset); err != nil {
			return err
		}
	}
	return nil
}
