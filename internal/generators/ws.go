package generators

import (
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/bwelter/graphweave/internal/graph"
)

// wattsStrogatz produces small-world graphs: a ring lattice where each
// node reaches its k/2 nearest neighbors on either side, with every
// lattice edge rewired to a random endpoint with probability p.
type wattsStrogatz struct {
	n, k int
	p    float64
}

func (w wattsStrogatz) NodeCount() int { return w.n }

func (w wattsStrogatz) Generate(rng *rand.Rand) (*graph.Graph, error) {
	g := graph.New(graph.Undirected, w.n)
	if w.n == 0 || w.k == 0 {
		return g, nil
	}

	adj := make([]map[int]struct{}, w.n)
	for i := range adj {
		adj[i] = make(map[int]struct{}, w.k)
	}
	add := func(a, b int) {
		adj[a][b] = struct{}{}
		adj[b][a] = struct{}{}
	}
	has := func(a, b int) bool {
		_, ok := adj[a][b]
		return ok
	}

	for j := 1; j <= w.k/2; j++ {
		for i := 0; i < w.n; i++ {
			add(i, (i+j)%w.n)
		}
	}

	for j := 1; j <= w.k/2; j++ {
		for i := 0; i < w.n; i++ {
			if rng.Float64() >= w.p {
				continue
			}
			// A node adjacent to everything has nowhere to rewire to.
			if len(adj[i]) >= w.n-1 {
				continue
			}
			target := rng.IntN(w.n)
			for target == i || has(i, target) {
				target = rng.IntN(w.n)
			}
			old := (i + j) % w.n
			delete(adj[i], old)
			delete(adj[old], i)
			add(i, target)
		}
	}

	// Materialize each unordered pair once, in sorted order, so the
	// edge sequence only depends on the PRNG draws above.
	for i := 0; i < w.n; i++ {
		for _, nb := range slices.Sorted(maps.Keys(adj[i])) {
			if nb < i {
				continue
			}
			if err := g.AddEdge(i, nb); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
