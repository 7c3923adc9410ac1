package linkers

import (
	"math/rand/v2"
	"sync"

	"github.com/bwelter/graphweave/internal/graph"
)

// minIncomingLinker joins every minimal-incoming-degree node of the
// first community to every such node of the second. The candidate set
// only depends on a community's graph, so it is computed once per
// community index and cached; link calls for different pairs run
// concurrently against the same cache.
type minIncomingLinker struct {
	bidirectional bool
	cache         *sync.Map // community index -> []int
}

func newMinIncomingLinker(bidirectional bool) Linker {
	return minIncomingLinker{bidirectional: bidirectional, cache: &sync.Map{}}
}

func (l minIncomingLinker) Link(first, second Community, _ *rand.Rand) ([]InterEdge, error) {
	var edges []InterEdge
	for _, from := range l.minIncoming(first) {
		for _, to := range l.minIncoming(second) {
			edges = append(edges, InterEdge{From: from, To: to})
			if l.bidirectional {
				edges = append(edges, InterEdge{From: from, To: to, Reversed: true})
			}
		}
	}
	return edges, nil
}

func (l minIncomingLinker) minIncoming(c Community) []int {
	if cached, ok := l.cache.Load(c.Index); ok {
		return cached.([]int)
	}
	nodes := minIncomingNodes(c.Graph)
	actual, _ := l.cache.LoadOrStore(c.Index, nodes)
	return actual.([]int)
}

// minIncomingNodes returns the nodes with minimal incoming degree, in
// ascending order. Undirected edges count towards both endpoints.
func minIncomingNodes(g *graph.Graph) []int {
	if g.NodeCount() == 0 {
		return nil
	}
	incoming := make([]int, g.NodeCount())
	for e := range g.Edges() {
		incoming[e.To]++
		if g.Orientation() == graph.Undirected && e.From != e.To {
			incoming[e.From]++
		}
	}
	min := incoming[0]
	for _, d := range incoming[1:] {
		if d < min {
			min = d
		}
	}
	var nodes []int
	for n, d := range incoming {
		if d == min {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
