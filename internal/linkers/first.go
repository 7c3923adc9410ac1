package linkers

import (
	"math/rand/v2"
)

// firstLinker joins node 0 of the first community to node 0 of the
// second. Communities without nodes contribute no edges.
type firstLinker struct {
	bidirectional bool
}

func (l firstLinker) Link(first, second Community, _ *rand.Rand) ([]InterEdge, error) {
	if first.Graph.NodeCount() == 0 || second.Graph.NodeCount() == 0 {
		return nil, nil
	}
	edges := []InterEdge{{From: 0, To: 0}}
	if l.bidirectional {
		edges = append(edges, InterEdge{From: 0, To: 0, Reversed: true})
	}
	return edges, nil
}
