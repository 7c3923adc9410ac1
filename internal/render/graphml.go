package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bwelter/graphweave/internal/graph"
)

// graphmlFormat writes GraphML. The orientation maps onto the graph
// element's edgedefault attribute; node ids carry an "n" prefix as the
// format requires ids to be XML names.
type graphmlFormat struct{}

func (graphmlFormat) Render(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)

	edgedefault := "directed"
	if g.Orientation() == graph.Undirected {
		edgedefault = "undirected"
	}
	fmt.Fprintln(bw, `<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintln(bw, `<graphml xmlns="http://graphml.graphdrawing.org/xmlns">`)
	fmt.Fprintf(bw, "  <graph edgedefault=%q>\n", edgedefault)
	for n := range g.Nodes() {
		fmt.Fprintf(bw, "    <node id=\"n%d\"/>\n", n)
	}
	for e := range g.Edges() {
		fmt.Fprintf(bw, "    <edge source=\"n%d\" target=\"n%d\"/>\n", e.From, e.To)
	}
	fmt.Fprintln(bw, "  </graph>")
	fmt.Fprintln(bw, "</graphml>")

	return bw.Flush()
}
