package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bwelter/graphweave/internal/graph"
)

// iccmaFormat writes the ICCMA competition format: a "p af n" header
// followed by one attack per line, arguments numbered from 1. An
// undirected edge is an attack both ways, so it is written twice.
type iccmaFormat struct{}

func (iccmaFormat) Render(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "p af %d\n", g.NodeCount())
	for e := range g.Edges() {
		fmt.Fprintf(bw, "%d %d\n", e.From+1, e.To+1)
		if g.Orientation() == graph.Undirected && e.From != e.To {
			fmt.Fprintf(bw, "%d %d\n", e.To+1, e.From+1)
		}
	}

	return bw.Flush()
}
