// Graphweave - reproducible generator for community-structured graphs.
//
// Graphweave builds graphs from an outer community topology,
// per-community inner graphs, and configurable cross-community
// linking, all derived deterministically from a single seed.
package main

import (
	"fmt"
	"os"

	"github.com/bwelter/graphweave/cmd"
)

func main() {
	cli := cmd.NewCLI()

	if err := cli.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
