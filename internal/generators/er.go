package generators

import (
	"math/rand/v2"

	"github.com/bwelter/graphweave/internal/graph"
)

// erdosRenyi produces G(n,p) graphs. Directed graphs draw a coin for
// every ordered pair of distinct nodes, undirected ones for every
// unordered pair, so the orientations are generated natively instead
// of through the adapter.
type erdosRenyi struct {
	n           int
	p           float64
	orientation graph.Orientation
}

func (e erdosRenyi) NodeCount() int { return e.n }

func (e erdosRenyi) Generate(rng *rand.Rand) (*graph.Graph, error) {
	g := graph.New(e.orientation, e.n)
	for from := 0; from < e.n; from++ {
		to := 0
		if e.orientation == graph.Undirected {
			to = from + 1
		}
		for ; to < e.n; to++ {
			if to == from {
				continue
			}
			if rng.Float64() < e.p {
				if err := g.AddEdge(from, to); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}
