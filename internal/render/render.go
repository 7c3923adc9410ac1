// Package render writes graphs in the supported output formats.
//
// Formats sit behind the same registry mechanism as generators and
// linkers, resolved from a bare name ("dot", "graphml", "iccma",
// "apx"). Output is streamed; node ids are the merged graph's global
// ids.
package render

import (
	"io"

	"github.com/bwelter/graphweave/internal/graph"
	"github.com/bwelter/graphweave/internal/registry"
)

// Format renders one graph to a writer.
type Format interface {
	Render(w io.Writer, g *graph.Graph) error
}

var catalog = buildCatalog()

// Catalog returns the registry holding all built-in output formats.
func Catalog() *registry.Registry[Format] {
	return catalog
}

func buildCatalog() *registry.Registry[Format] {
	r := registry.New[Format]()

	r.MustRegister("apx", "the Aspartix argumentation framework format", registry.DirectedOnly,
		nil,
		func(_ []registry.Value, _ graph.Orientation) (Format, error) {
			return apxFormat{}, nil
		})

	r.MustRegister("dot", "the Graphviz dot format", registry.Both,
		nil,
		func(_ []registry.Value, _ graph.Orientation) (Format, error) {
			return dotFormat{}, nil
		})

	r.MustRegister("graphml", "the GraphML XML format", registry.Both,
		nil,
		func(_ []registry.Value, _ graph.Orientation) (Format, error) {
			return graphmlFormat{}, nil
		})

	r.MustRegister("iccma", "the ICCMA competition format", registry.Both,
		nil,
		func(_ []registry.Value, _ graph.Orientation) (Format, error) {
			return iccmaFormat{}, nil
		})

	return r
}
