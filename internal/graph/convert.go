package graph

import "math/rand/v2"

// AsDirected converts an undirected graph into a directed one. Each
// undirected edge becomes exactly one directed edge whose direction is
// chosen uniformly at random, independently per edge, from rng. The rng
// is the owning component's seeded PRNG, never the pipeline's master,
// so the conversion is reproducible per component.
//
// A graph that is already directed is returned unchanged.
func AsDirected(g *Graph, rng *rand.Rand) *Graph {
	if g.orientation == Directed {
		return g
	}
	out := New(Directed, g.nodes)
	for _, e := range g.edges {
		if rng.IntN(2) == 0 {
			_ = out.AddEdge(e.From, e.To)
		} else {
			_ = out.AddEdge(e.To, e.From)
		}
	}
	return out
}

// AsUndirected converts a directed graph into an undirected one. A pair
// of opposite edges collapses into a single undirected edge; a directed
// edge without a reverse counterpart also becomes one undirected edge.
// No edge is dropped, only multiplicity is reduced.
//
// A graph that is already undirected is returned unchanged.
func AsUndirected(g *Graph) *Graph {
	if g.orientation == Undirected {
		return g
	}
	out := New(Undirected, g.nodes)
	for _, e := range g.edges {
		_ = out.AddEdge(e.From, e.To)
	}
	return out
}
