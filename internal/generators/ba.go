package generators

import (
	"math/rand/v2"
	"slices"

	"github.com/bwelter/graphweave/internal/graph"
)

// barabasiAlbert grows a directed graph by preferential attachment.
// The seed is a star of m+1 nodes around node 0; every later node
// attaches to m distinct existing nodes, picked proportionally to
// degree by sampling a list that repeats every edge endpoint.
type barabasiAlbert struct {
	n, m int
}

func (b barabasiAlbert) NodeCount() int { return b.n }

func (b barabasiAlbert) Generate(rng *rand.Rand) (*graph.Graph, error) {
	g := graph.New(graph.Directed, b.n)

	endpoints := make([]int, 0, 2*b.m*b.n)
	for i := 1; i <= b.m; i++ {
		if err := g.AddEdge(0, i); err != nil {
			return nil, err
		}
		endpoints = append(endpoints, 0, i)
	}

	for node := b.m + 1; node < b.n; node++ {
		targets := make([]int, 0, b.m)
		for len(targets) < b.m {
			t := endpoints[rng.IntN(len(endpoints))]
			if slices.Contains(targets, t) {
				continue
			}
			targets = append(targets, t)
		}
		for _, t := range targets {
			if err := g.AddEdge(node, t); err != nil {
				return nil, err
			}
			endpoints = append(endpoints, node, t)
		}
	}
	return g, nil
}
