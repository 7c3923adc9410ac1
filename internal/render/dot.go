package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bwelter/graphweave/internal/graph"
)

// dotFormat writes Graphviz dot. Directed graphs become a digraph with
// "->" edges, undirected ones a graph with "--" edges. Every node is
// declared so isolated nodes survive the round trip.
type dotFormat struct{}

func (dotFormat) Render(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)

	keyword, arrow := "digraph", "->"
	if g.Orientation() == graph.Undirected {
		keyword, arrow = "graph", "--"
	}
	fmt.Fprintf(bw, "%s {\n", keyword)
	for n := range g.Nodes() {
		fmt.Fprintf(bw, "    %d;\n", n)
	}
	for e := range g.Edges() {
		fmt.Fprintf(bw, "    %d %s %d;\n", e.From, arrow, e.To)
	}
	fmt.Fprintln(bw, "}")

	return bw.Flush()
}
