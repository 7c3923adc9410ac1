package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bwelter/graphweave/internal/graph"
)

// apxFormat writes Aspartix facts: arg(aN) declarations followed by
// att(aFrom,aTo) attacks. Attacks are inherently directed, so the
// format only registers for directed graphs.
type apxFormat struct{}

func (apxFormat) Render(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)

	for n := range g.Nodes() {
		fmt.Fprintf(bw, "arg(a%d).\n", n)
	}
	for e := range g.Edges() {
		fmt.Fprintf(bw, "att(a%d,a%d).\n", e.From, e.To)
	}

	return bw.Flush()
}
