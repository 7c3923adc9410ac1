package generators

import (
	"math/rand/v2"

	"github.com/bwelter/graphweave/internal/graph"
)

// tree produces a complete binary tree in heap layout: node i is the
// parent of 2i+1 and 2i+2, edges pointing towards the leaves.
type tree struct {
	n           int
	orientation graph.Orientation
}

func (t tree) NodeCount() int { return t.n }

func (t tree) Generate(_ *rand.Rand) (*graph.Graph, error) {
	g := graph.New(t.orientation, t.n)
	for i := 0; i < t.n; i++ {
		for _, child := range []int{2*i + 1, 2*i + 2} {
			if child >= t.n {
				break
			}
			if err := g.AddEdge(i, child); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
