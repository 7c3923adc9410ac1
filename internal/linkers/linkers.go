// Package linkers provides the built-in inter-community linkers.
//
// A linker is handed an ordered pair of communities and decides which
// cross-community edges to create. Node ids in the returned edges are
// local to each community; translating them into the merged graph is
// the caller's concern.
package linkers

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/bwelter/graphweave/internal/graph"
	"github.com/bwelter/graphweave/internal/registry"
)

// ErrParameterRange reports a parameter that parsed fine but falls
// outside the linker's valid range.
var ErrParameterRange = errors.New("parameter out of range")

// Community is one inner graph together with its position in the
// outer graph. The index is stable across a run, which lets linkers
// cache per-community work.
type Community struct {
	Index int
	Graph *graph.Graph
}

// InterEdge is one cross-community edge. From is local to the first
// community, To local to the second. Reversed edges run from the
// second community to the first; in undirected graphs the flag makes
// no difference.
type InterEdge struct {
	From, To int
	Reversed bool
}

// Linker produces the cross-community edges for one ordered pair of
// communities. The same linker instance is shared across concurrent
// calls, so implementations must be safe for concurrent use.
type Linker interface {
	Link(first, second Community, rng *rand.Rand) ([]InterEdge, error)
}

var catalog = buildCatalog()

// Catalog returns the registry holding all built-in linkers.
func Catalog() *registry.Registry[Linker] {
	return catalog
}

func buildCatalog() *registry.Registry[Linker] {
	r := registry.New[Linker]()

	r.MustRegister("first", "links the first node of a community to the first node of the other", registry.Both,
		nil,
		func(_ []registry.Value, _ graph.Orientation) (Linker, error) {
			return firstLinker{bidirectional: false}, nil
		})

	r.MustRegister("first_bi", "links the first nodes of both communities in both directions", registry.DirectedOnly,
		nil,
		func(_ []registry.Value, _ graph.Orientation) (Linker, error) {
			return firstLinker{bidirectional: true}, nil
		})

	r.MustRegister("random", "links each node pair with probability p", registry.Both,
		[]registry.Param{{Name: "p", Kind: registry.KindFloat}},
		func(args []registry.Value, _ graph.Orientation) (Linker, error) {
			return newRandomLinker(args[0].Float(), false)
		})

	r.MustRegister("random_bi", "links each node pair in both directions with probability p", registry.DirectedOnly,
		[]registry.Param{{Name: "p", Kind: registry.KindFloat}},
		func(args []registry.Value, _ graph.Orientation) (Linker, error) {
			return newRandomLinker(args[0].Float(), true)
		})

	r.MustRegister("min_incoming", "links the minimal-incoming-degree nodes of both communities", registry.Both,
		nil,
		func(_ []registry.Value, _ graph.Orientation) (Linker, error) {
			return newMinIncomingLinker(false), nil
		})

	r.MustRegister("min_incoming_bi", "links the minimal-incoming-degree nodes of both communities in both directions", registry.DirectedOnly,
		nil,
		func(_ []registry.Value, _ graph.Orientation) (Linker, error) {
			return newMinIncomingLinker(true), nil
		})

	return r
}

func checkProbability(p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: p must be a probability, got %v", ErrParameterRange, p)
	}
	return nil
}
