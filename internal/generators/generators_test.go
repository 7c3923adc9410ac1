package generators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwelter/graphweave/internal/graph"
	"github.com/bwelter/graphweave/internal/registry"
	"github.com/bwelter/graphweave/internal/seedseq"
)

func resolve(t *testing.T, config string, o graph.Orientation) Generator {
	t.Helper()
	gen, err := Catalog().Resolve(config, o)
	require.NoError(t, err)
	return gen
}

func generate(t *testing.T, config string, o graph.Orientation, seed uint64) *graph.Graph {
	t.Helper()
	g, err := resolve(t, config, o).Generate(seedseq.New(seed))
	require.NoError(t, err)
	return g
}

func edgesOf(g *graph.Graph) []graph.Edge {
	var edges []graph.Edge
	for e := range g.Edges() {
		edges = append(edges, e)
	}
	return edges
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	var names []string
	for l := range Catalog().List() {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"ba", "chain", "er", "tree", "ws"}, names)
}

func TestChain(t *testing.T) {
	t.Parallel()

	t.Run("Path", func(t *testing.T) {
		t.Parallel()
		g := generate(t, "chain/4", graph.Directed, 1)

		assert.Equal(t, 4, g.NodeCount())
		assert.Equal(t, []graph.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}}, edgesOf(g))
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		g := generate(t, "chain/0", graph.Directed, 1)

		assert.Equal(t, 0, g.NodeCount())
		assert.Equal(t, 0, g.EdgeCount())
	})

	t.Run("SingleNode", func(t *testing.T) {
		t.Parallel()
		g := generate(t, "chain/1", graph.Undirected, 1)

		assert.Equal(t, 1, g.NodeCount())
		assert.Equal(t, 0, g.EdgeCount())
	})

	t.Run("NegativeCount", func(t *testing.T) {
		t.Parallel()
		_, err := Catalog().Resolve("chain/-1", graph.Directed)

		assert.ErrorIs(t, err, ErrParameterRange)
	})
}

func TestTree(t *testing.T) {
	t.Parallel()

	t.Run("HeapLayout", func(t *testing.T) {
		t.Parallel()
		g := generate(t, "tree/6", graph.Directed, 1)

		assert.Equal(t, []graph.Edge{
			{From: 0, To: 1}, {From: 0, To: 2},
			{From: 1, To: 3}, {From: 1, To: 4},
			{From: 2, To: 5},
		}, edgesOf(g))
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		g := generate(t, "tree/0", graph.Undirected, 1)

		assert.Equal(t, 0, g.NodeCount())
	})
}

func TestErdosRenyi(t *testing.T) {
	t.Parallel()

	t.Run("FullProbabilityDirected", func(t *testing.T) {
		t.Parallel()
		g := generate(t, "er/5,1", graph.Directed, 1)

		assert.Equal(t, 5*4, g.EdgeCount())
	})

	t.Run("FullProbabilityUndirected", func(t *testing.T) {
		t.Parallel()
		g := generate(t, "er/5,1", graph.Undirected, 1)

		assert.Equal(t, 5*4/2, g.EdgeCount())
	})

	t.Run("ZeroProbability", func(t *testing.T) {
		t.Parallel()
		g := generate(t, "er/50,0", graph.Directed, 1)

		assert.Equal(t, 0, g.EdgeCount())
	})

	t.Run("Deterministic", func(t *testing.T) {
		t.Parallel()
		a := generate(t, "er/30,0.2", graph.Directed, 99)
		b := generate(t, "er/30,0.2", graph.Directed, 99)

		assert.Equal(t, edgesOf(a), edgesOf(b))
	})

	t.Run("ProbabilityRange", func(t *testing.T) {
		t.Parallel()
		_, err := Catalog().Resolve("er/10,1.5", graph.Directed)

		assert.ErrorIs(t, err, ErrParameterRange)
	})
}

func TestBarabasiAlbert(t *testing.T) {
	t.Parallel()

	t.Run("EdgeCount", func(t *testing.T) {
		t.Parallel()
		// m seed-star edges plus m per node after the star.
		g := generate(t, "ba/20,3", graph.Directed, 7)

		assert.Equal(t, graph.Directed, g.Orientation())
		assert.Equal(t, 20, g.NodeCount())
		assert.Equal(t, 3*(20-3), g.EdgeCount())
	})

	t.Run("StarSeed", func(t *testing.T) {
		t.Parallel()
		g := generate(t, "ba/10,2", graph.Directed, 7)

		assert.True(t, g.HasEdge(0, 1))
		assert.True(t, g.HasEdge(0, 2))
	})

	t.Run("UndirectedThroughAdapter", func(t *testing.T) {
		t.Parallel()
		g := generate(t, "ba/20,3", graph.Undirected, 7)

		assert.Equal(t, graph.Undirected, g.Orientation())
		assert.Equal(t, 3*(20-3), g.EdgeCount())
	})

	t.Run("Deterministic", func(t *testing.T) {
		t.Parallel()
		a := generate(t, "ba/50,4", graph.Directed, 21)
		b := generate(t, "ba/50,4", graph.Directed, 21)

		assert.Equal(t, edgesOf(a), edgesOf(b))
	})

	t.Run("AttachmentRange", func(t *testing.T) {
		t.Parallel()
		_, err := Catalog().Resolve("ba/10,0", graph.Directed)
		assert.ErrorIs(t, err, ErrParameterRange)

		_, err = Catalog().Resolve("ba/10,10", graph.Directed)
		assert.ErrorIs(t, err, ErrParameterRange)
	})
}

func TestWattsStrogatz(t *testing.T) {
	t.Parallel()

	t.Run("RingWithoutRewiring", func(t *testing.T) {
		t.Parallel()
		g := generate(t, "ws/10,4,0", graph.Undirected, 7)

		assert.Equal(t, graph.Undirected, g.Orientation())
		assert.Equal(t, 10*4/2, g.EdgeCount())
		assert.True(t, g.HasEdge(0, 1))
		assert.True(t, g.HasEdge(0, 2))
		assert.True(t, g.HasEdge(9, 0))
	})

	t.Run("RewiringKeepsEdgeCount", func(t *testing.T) {
		t.Parallel()
		g := generate(t, "ws/30,6,0.5", graph.Undirected, 7)

		assert.Equal(t, 30*6/2, g.EdgeCount())
	})

	t.Run("DirectedThroughAdapter", func(t *testing.T) {
		t.Parallel()
		g := generate(t, "ws/10,4,0.1", graph.Directed, 7)

		assert.Equal(t, graph.Directed, g.Orientation())
		assert.Equal(t, 10*4/2, g.EdgeCount())
	})

	t.Run("Deterministic", func(t *testing.T) {
		t.Parallel()
		a := generate(t, "ws/40,8,0.3", graph.Undirected, 13)
		b := generate(t, "ws/40,8,0.3", graph.Undirected, 13)

		assert.Equal(t, edgesOf(a), edgesOf(b))
	})

	t.Run("OddDegree", func(t *testing.T) {
		t.Parallel()
		_, err := Catalog().Resolve("ws/10,3,0.1", graph.Undirected)

		assert.ErrorIs(t, err, ErrParameterRange)
	})

	t.Run("TooFewNodes", func(t *testing.T) {
		t.Parallel()
		_, err := Catalog().Resolve("ws/4,4,0.1", graph.Undirected)

		assert.ErrorIs(t, err, ErrParameterRange)
	})
}

func TestCatalogParameterErrors(t *testing.T) {
	t.Parallel()

	_, err := Catalog().Resolve("ba/100", graph.Directed)
	assert.ErrorIs(t, err, registry.ErrParameterCount)

	_, err = Catalog().Resolve("nope/1", graph.Directed)
	assert.ErrorIs(t, err, registry.ErrUnknownComponent)
}
