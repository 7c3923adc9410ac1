package linkers

import (
	"math/rand/v2"
)

// randomLinker draws one coin per node pair, in node order, and links
// the pairs that win. The bidirectional variant spends the same single
// coin on both directions, so the reverse edges mirror the forward
// ones exactly.
type randomLinker struct {
	p             float64
	bidirectional bool
}

func newRandomLinker(p float64, bidirectional bool) (Linker, error) {
	if err := checkProbability(p); err != nil {
		return nil, err
	}
	return randomLinker{p: p, bidirectional: bidirectional}, nil
}

func (l randomLinker) Link(first, second Community, rng *rand.Rand) ([]InterEdge, error) {
	var edges []InterEdge
	for from := range first.Graph.Nodes() {
		for to := range second.Graph.Nodes() {
			if rng.Float64() >= l.p {
				continue
			}
			edges = append(edges, InterEdge{From: from, To: to})
			if l.bidirectional {
				edges = append(edges, InterEdge{From: from, To: to, Reversed: true})
			}
		}
	}
	return edges, nil
}
