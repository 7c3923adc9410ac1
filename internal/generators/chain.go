package generators

import (
	"math/rand/v2"

	"github.com/bwelter/graphweave/internal/graph"
)

// chain produces a path 0 -> 1 -> ... -> n-1. Zero nodes gives the
// empty graph, one node a single isolated node.
type chain struct {
	n           int
	orientation graph.Orientation
}

func (c chain) NodeCount() int { return c.n }

func (c chain) Generate(_ *rand.Rand) (*graph.Graph, error) {
	g := graph.New(c.orientation, c.n)
	for i := 0; i < c.n-1; i++ {
		if err := g.AddEdge(i, i+1); err != nil {
			return nil, err
		}
	}
	return g, nil
}
