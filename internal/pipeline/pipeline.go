// Package pipeline assembles community-structured graphs.
//
// A run generates an outer graph whose nodes stand for communities,
// generates one inner graph per community in parallel, merges the
// inner graphs into one node space, and then links the communities
// joined by an outer edge, again in parallel.
//
// Reproducibility rests on two rules. Every seed a parallel task uses
// is drawn from the master PRNG up front, in index order, before the
// tasks are dispatched. And every result produced in parallel lands in
// a pre-sized slot keyed by its index, then gets folded into the
// merged graph sequentially, in index order. Worker count and
// scheduling can therefore not change the output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bwelter/graphweave/internal/generators"
	"github.com/bwelter/graphweave/internal/graph"
	"github.com/bwelter/graphweave/internal/linkers"
	"github.com/bwelter/graphweave/internal/seedseq"
)

// ErrSizeMismatch reports an inner generator that produced a graph of
// a different size than it declared.
var ErrSizeMismatch = errors.New("generated node count differs from declared node count")

// Phase names passed to the progress callback, in execution order.
const (
	PhaseOuter = "outer"
	PhaseInner = "inner"
	PhaseMerge = "merge"
	PhaseLink  = "link"
)

// Options tune a run without affecting its output.
type Options struct {
	// Workers caps the number of concurrent generation and linking
	// tasks. Zero or negative means one worker per CPU.
	Workers int

	// Progress, when set, is called at the start of each phase.
	Progress func(phase string)
}

// Stats summarizes a run.
type Stats struct {
	Communities    int
	CommunityNodes int
	OuterEdges     int
	Nodes          int
	Edges          int
	CrossEdges     int
}

// Result is a finished run: the merged graph, the master seed that
// reproduces it, and summary figures.
type Result struct {
	Graph    *graph.Graph
	Seed     uint64
	Stats    Stats
	Duration time.Duration
}

// Run executes one full generation. The same seed, generators, linker
// and orientation always produce the same graph, whatever the worker
// count.
func Run(ctx context.Context, outer, inner generators.Generator, link linkers.Linker, o graph.Orientation, seed uint64, opts Options) (*Result, error) {
	start := time.Now()
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	progress := opts.Progress
	if progress == nil {
		progress = func(string) {}
	}

	progress(PhaseOuter)
	master := seedseq.New(seed)
	outerGraph, err := outer.Generate(master)
	if err != nil {
		return nil, fmt.Errorf("generating outer graph: %w", err)
	}

	communityCount := outerGraph.NodeCount()
	communitySeeds := seedseq.Derive(master, communityCount)

	var outerEdges []graph.Edge
	for e := range outerGraph.Edges() {
		outerEdges = append(outerEdges, e)
	}
	linkSeeds := seedseq.Derive(master, len(outerEdges))

	communitySize := inner.NodeCount()
	offsets := make([]int, communityCount)
	for i := range offsets {
		offsets[i] = i * communitySize
	}

	progress(PhaseInner)
	communities, err := generateCommunities(ctx, inner, communitySeeds, workers)
	if err != nil {
		return nil, err
	}

	progress(PhaseMerge)
	merged := graph.New(o, communityCount*communitySize)
	innerEdges := 0
	for i, c := range communities {
		if err := merged.MergeAt(c, offsets[i]); err != nil {
			return nil, fmt.Errorf("merging community %d: %w", i, err)
		}
		innerEdges += c.EdgeCount()
	}

	progress(PhaseLink)
	crossEdges, err := linkCommunities(ctx, link, communities, outerEdges, offsets, linkSeeds, workers)
	if err != nil {
		return nil, err
	}
	for i, edges := range crossEdges {
		for _, e := range edges {
			if err := merged.AddEdge(e.From, e.To); err != nil {
				return nil, fmt.Errorf("inserting edges for outer edge %d: %w", i, err)
			}
		}
	}

	return &Result{
		Graph: merged,
		Seed:  seed,
		Stats: Stats{
			Communities:    communityCount,
			CommunityNodes: communitySize,
			OuterEdges:     len(outerEdges),
			Nodes:          merged.NodeCount(),
			Edges:          merged.EdgeCount(),
			CrossEdges:     merged.EdgeCount() - innerEdges,
		},
		Duration: time.Since(start),
	}, nil
}

// generateCommunities builds one inner graph per seed, at most workers
// at a time. Results land in a pre-sized slice; on failure the lowest
// failing index wins, so the reported error does not depend on
// scheduling.
func generateCommunities(ctx context.Context, inner generators.Generator, seeds []uint64, workers int) ([]*graph.Graph, error) {
	communities := make([]*graph.Graph, len(seeds))
	errs := make([]error, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range seeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			community, err := inner.Generate(seedseq.New(s))
			if err == nil && community.NodeCount() != inner.NodeCount() {
				err = fmt.Errorf("%w: declared %d, produced %d", ErrSizeMismatch, inner.NodeCount(), community.NodeCount())
			}
			if err != nil {
				errs[i] = err
				return err
			}
			communities[i] = community
			return nil
		})
	}
	waitErr := g.Wait()
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("generating community %d: %w", i, err)
		}
	}
	if waitErr != nil {
		return nil, waitErr
	}
	return communities, nil
}

// linkCommunities runs the linker for every outer edge, at most
// workers at a time, and translates the local node ids into merged
// graph ids. Slot k holds the edges for outer edge k.
func linkCommunities(ctx context.Context, link linkers.Linker, communities []*graph.Graph, outerEdges []graph.Edge, offsets []int, seeds []uint64, workers int) ([][]graph.Edge, error) {
	crossEdges := make([][]graph.Edge, len(outerEdges))
	errs := make([]error, len(outerEdges))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k, oe := range outerEdges {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			first := linkers.Community{Index: oe.From, Graph: communities[oe.From]}
			second := linkers.Community{Index: oe.To, Graph: communities[oe.To]}
			inter, err := link.Link(first, second, seedseq.New(seeds[k]))
			if err != nil {
				errs[k] = err
				return err
			}
			edges, err := translate(inter, first, second, offsets)
			if err != nil {
				errs[k] = err
				return err
			}
			crossEdges[k] = edges
			return nil
		})
	}
	waitErr := g.Wait()
	for k, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("linking outer edge %d (%d, %d): %w", k, outerEdges[k].From, outerEdges[k].To, err)
		}
	}
	if waitErr != nil {
		return nil, waitErr
	}
	return crossEdges, nil
}

func translate(inter []linkers.InterEdge, first, second linkers.Community, offsets []int) ([]graph.Edge, error) {
	edges := make([]graph.Edge, 0, len(inter))
	for _, e := range inter {
		if e.From < 0 || e.From >= first.Graph.NodeCount() {
			return nil, fmt.Errorf("%w: node %d in community %d", graph.ErrInvalidNode, e.From, first.Index)
		}
		if e.To < 0 || e.To >= second.Graph.NodeCount() {
			return nil, fmt.Errorf("%w: node %d in community %d", graph.ErrInvalidNode, e.To, second.Index)
		}
		from := offsets[first.Index] + e.From
		to := offsets[second.Index] + e.To
		if e.Reversed {
			from, to = to, from
		}
		edges = append(edges, graph.Edge{From: from, To: to})
	}
	return edges, nil
}
