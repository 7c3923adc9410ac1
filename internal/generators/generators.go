// Package generators provides the built-in graph generators.
//
// A generator declares its node count up front and produces the same
// graph for the same PRNG state. Generators with a fixed native
// orientation (ba builds directed graphs, ws undirected ones) are
// wrapped in an orientation adapter at resolve time, so every catalog
// entry can serve both orientations.
package generators

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/bwelter/graphweave/internal/graph"
	"github.com/bwelter/graphweave/internal/registry"
)

// ErrParameterRange reports a parameter that parsed fine but falls
// outside the generator's valid range.
var ErrParameterRange = errors.New("parameter out of range")

// Generator produces graphs of a size known before generation. The
// declared node count is what the pipeline sizes offsets from; the
// produced graph must match it.
type Generator interface {
	// NodeCount is the number of nodes every produced graph has.
	NodeCount() int

	// Generate builds a new graph using draws from rng only.
	Generate(rng *rand.Rand) (*graph.Graph, error)
}

var catalog = buildCatalog()

// Catalog returns the registry holding all built-in generators.
func Catalog() *registry.Registry[Generator] {
	return catalog
}

func buildCatalog() *registry.Registry[Generator] {
	r := registry.New[Generator]()

	r.MustRegister("ba", "preferential-attachment graphs (Barabasi-Albert)", registry.Both,
		[]registry.Param{{Name: "n", Kind: registry.KindInt}, {Name: "m", Kind: registry.KindInt}},
		func(args []registry.Value, o graph.Orientation) (Generator, error) {
			n, m := args[0].Int(), args[1].Int()
			if n < 1 {
				return nil, fmt.Errorf("%w: n must be at least 1, got %d", ErrParameterRange, n)
			}
			if m < 1 || m >= n {
				return nil, fmt.Errorf("%w: m must satisfy 1 <= m < n, got m=%d n=%d", ErrParameterRange, m, n)
			}
			return adapt(barabasiAlbert{n: n, m: m}, graph.Directed, o), nil
		})

	r.MustRegister("chain", "chain graphs (a path of n nodes)", registry.Both,
		[]registry.Param{{Name: "n", Kind: registry.KindInt}},
		func(args []registry.Value, o graph.Orientation) (Generator, error) {
			n := args[0].Int()
			if n < 0 {
				return nil, fmt.Errorf("%w: n must not be negative, got %d", ErrParameterRange, n)
			}
			return chain{n: n, orientation: o}, nil
		})

	r.MustRegister("er", "Erdos-Renyi graphs (each possible edge drawn with probability p)", registry.Both,
		[]registry.Param{{Name: "n", Kind: registry.KindInt}, {Name: "p", Kind: registry.KindFloat}},
		func(args []registry.Value, o graph.Orientation) (Generator, error) {
			n, p := args[0].Int(), args[1].Float()
			if n < 0 {
				return nil, fmt.Errorf("%w: n must not be negative, got %d", ErrParameterRange, n)
			}
			if p < 0 || p > 1 {
				return nil, fmt.Errorf("%w: p must be a probability, got %v", ErrParameterRange, p)
			}
			return erdosRenyi{n: n, p: p, orientation: o}, nil
		})

	r.MustRegister("tree", "complete binary trees laid out in heap order", registry.Both,
		[]registry.Param{{Name: "n", Kind: registry.KindInt}},
		func(args []registry.Value, o graph.Orientation) (Generator, error) {
			n := args[0].Int()
			if n < 0 {
				return nil, fmt.Errorf("%w: n must not be negative, got %d", ErrParameterRange, n)
			}
			return tree{n: n, orientation: o}, nil
		})

	r.MustRegister("ws", "small-world graphs (Watts-Strogatz ring rewiring)", registry.Both,
		[]registry.Param{
			{Name: "n", Kind: registry.KindInt},
			{Name: "k", Kind: registry.KindInt},
			{Name: "p", Kind: registry.KindFloat},
		},
		func(args []registry.Value, o graph.Orientation) (Generator, error) {
			n, k, p := args[0].Int(), args[1].Int(), args[2].Float()
			if k < 0 || k%2 != 0 {
				return nil, fmt.Errorf("%w: k must be even and not negative, got %d", ErrParameterRange, k)
			}
			if n <= k {
				return nil, fmt.Errorf("%w: n must be greater than k, got n=%d k=%d", ErrParameterRange, n, k)
			}
			if p < 0 || p > 1 {
				return nil, fmt.Errorf("%w: p must be a probability, got %v", ErrParameterRange, p)
			}
			return adapt(wattsStrogatz{n: n, k: k, p: p}, graph.Undirected, o), nil
		})

	return r
}

// adapt wraps a generator with a fixed native orientation so it serves
// the requested one. Orientation coin flips for undirected-to-directed
// conversion come from the generator's own PRNG, after generation, so
// the adapted output stays reproducible.
func adapt(inner Generator, native, want graph.Orientation) Generator {
	if native == want {
		return inner
	}
	return adapted{inner: inner, want: want}
}

type adapted struct {
	inner Generator
	want  graph.Orientation
}

func (a adapted) NodeCount() int { return a.inner.NodeCount() }

func (a adapted) Generate(rng *rand.Rand) (*graph.Graph, error) {
	g, err := a.inner.Generate(rng)
	if err != nil {
		return nil, err
	}
	if a.want == graph.Directed {
		return graph.AsDirected(g, rng), nil
	}
	return graph.AsUndirected(g), nil
}
