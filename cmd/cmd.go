// Package cmd provides CLI command implementations for graphweave.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/bwelter/graphweave/internal/batch"
	"github.com/bwelter/graphweave/internal/generators"
	"github.com/bwelter/graphweave/internal/graph"
	"github.com/bwelter/graphweave/internal/linkers"
	"github.com/bwelter/graphweave/internal/pipeline"
	"github.com/bwelter/graphweave/internal/registry"
	"github.com/bwelter/graphweave/internal/render"
	"github.com/bwelter/graphweave/internal/seedseq"
	"github.com/bwelter/graphweave/mcp"
)

// Version is set at build time via ldflags.
var Version = "dev"

// GenerateCmd generates one community-structured graph.
type GenerateCmd struct {
	Outer       string  `short:"o" required:"" help:"Outer generator configuration (e.g. ba/20,3)"`
	Inner       string  `short:"i" required:"" help:"Inner generator configuration (e.g. ws/50,4,0.25)"`
	Linker      string  `short:"l" required:"" help:"Linker configuration (e.g. random/0.1)"`
	Orientation string  `default:"directed" enum:"directed,undirected" help:"Graph orientation"`
	Format      string  `short:"f" default:"dot" help:"Output format (apx|dot|graphml|iccma)"`
	Output      string  `type:"path" help:"Write the graph to this file instead of stdout"`
	Seed        *uint64 `help:"Master seed; omitted means a random seed, reported on stderr"`
	Workers     int     `short:"j" help:"Maximum parallel tasks (default: one per CPU)"`
}

// Run executes the generate command.
func (c *GenerateCmd) Run() error {
	ctx := context.Background()

	o, err := graph.ParseOrientation(c.Orientation)
	if err != nil {
		return err
	}
	outer, err := generators.Catalog().Resolve(c.Outer, o)
	if err != nil {
		return fmt.Errorf("outer generator: %w", err)
	}
	inner, err := generators.Catalog().Resolve(c.Inner, o)
	if err != nil {
		return fmt.Errorf("inner generator: %w", err)
	}
	link, err := linkers.Catalog().Resolve(c.Linker, o)
	if err != nil {
		return fmt.Errorf("linker: %w", err)
	}
	format, err := render.Catalog().Resolve(c.Format, o)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}

	seed := seedseq.Entropy()
	if c.Seed != nil {
		seed = *c.Seed
	}

	result, err := pipeline.Run(ctx, outer, inner, link, o, seed, pipeline.Options{Workers: c.Workers})
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	if c.Output == "" {
		// The graph goes to stdout, so everything else goes to stderr.
		fmt.Fprintf(os.Stderr, "Seed: %d\n", result.Seed)
		return format.Render(os.Stdout, result.Graph)
	}

	if err := os.MkdirAll(filepath.Dir(c.Output), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", c.Output, err)
	}
	if err := format.Render(f, result.Graph); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", c.Output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	color.Green("✓ Wrote %s", c.Output)
	fmt.Printf("  Seed:         %d\n", result.Seed)
	fmt.Printf("  Communities:  %d x %d nodes\n", result.Stats.Communities, result.Stats.CommunityNodes)
	fmt.Printf("  Nodes:        %d\n", result.Stats.Nodes)
	fmt.Printf("  Edges:        %d (%d cross-community)\n", result.Stats.Edges, result.Stats.CrossEdges)
	fmt.Printf("  Duration:     %.2fs\n", result.Duration.Seconds())

	return nil
}

// GeneratorsCmd lists the available generators.
type GeneratorsCmd struct {
	Orientation string `help:"Restrict to generators usable for this orientation"`
}

// Run executes the generators command.
func (c *GeneratorsCmd) Run() error {
	return printCatalog(generators.Catalog(), c.Orientation)
}

// LinkersCmd lists the available linkers.
type LinkersCmd struct {
	Orientation string `help:"Restrict to linkers usable for this orientation"`
}

// Run executes the linkers command.
func (c *LinkersCmd) Run() error {
	return printCatalog(linkers.Catalog(), c.Orientation)
}

// FormatsCmd lists the available output formats.
type FormatsCmd struct {
	Orientation string `help:"Restrict to formats usable for this orientation"`
}

// Run executes the formats command.
func (c *FormatsCmd) Run() error {
	return printCatalog(render.Catalog(), c.Orientation)
}

func printCatalog[T any](r *registry.Registry[T], orientation string) error {
	if orientation == "" {
		fmt.Print(registry.Columns(r.List()))
		return nil
	}
	o, err := graph.ParseOrientation(orientation)
	if err != nil {
		return err
	}
	fmt.Print(registry.Columns(r.ListFor(o)))
	return nil
}

// BatchCmd runs the jobs in a YAML job file.
type BatchCmd struct {
	File string `arg:"" type:"existingfile" help:"Job file (YAML)"`
}

// Run executes the batch command.
func (c *BatchCmd) Run() error {
	cfg, err := batch.Load(c.File)
	if err != nil {
		return err
	}

	absFile, err := filepath.Abs(c.File)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", c.File, err)
	}

	return batch.Run(context.Background(), cfg, filepath.Dir(absFile), reportJob)
}

// WatchCmd runs a job file and re-runs it on every change.
type WatchCmd struct {
	File string `arg:"" type:"existingfile" help:"Job file (YAML)"`
}

// Run executes the watch command.
func (c *WatchCmd) Run() error {
	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", c.File)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		<-osSignalChannel()
		fmt.Println("\nStopping watch mode...")
		cancel()
	}()

	err := batch.Watch(ctx, c.File, reportJob)
	if err != nil && err != context.Canceled {
		return fmt.Errorf("watch error: %w", err)
	}

	fmt.Println("Watch mode stopped.")
	return nil
}

func reportJob(r batch.JobResult) {
	color.Green("✓ %s", r.Job.Name)
	fmt.Printf("  Output:  %s\n", r.Output)
	fmt.Printf("  Seed:    %d\n", r.Result.Seed)
	fmt.Printf("  Nodes:   %d\n", r.Result.Stats.Nodes)
	fmt.Printf("  Edges:   %d (%d cross-community)\n", r.Result.Stats.Edges, r.Result.Stats.CrossEdges)
}

// MCPCmd starts the MCP server.
type MCPCmd struct{}

// Run executes the mcp command.
func (c *MCPCmd) Run() error {
	ctx := context.Background()
	server := mcp.NewServer(Version)

	// Note: No output to stderr - MCP server uses stdio for JSON-RPC only
	return server.Run(ctx, os.Stdin, os.Stdout)
}

// osSignalChannel returns a channel that receives OS signals for graceful shutdown.
func osSignalChannel() <-chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	return sigChan
}

// CLI is the root Kong command structure.
type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`

	// Commands
	Generate   GenerateCmd   `cmd:"" help:"Generate a community-structured graph"`
	Generators GeneratorsCmd `cmd:"" help:"List available generators"`
	Linkers    LinkersCmd    `cmd:"" help:"List available linkers"`
	Formats    FormatsCmd    `cmd:"" help:"List available output formats"`
	Batch      BatchCmd      `cmd:"" help:"Run the jobs in a YAML job file"`
	Watch      WatchCmd      `cmd:"" help:"Run a job file and re-run it on changes"`
	MCP        MCPCmd        `cmd:"" help:"Start MCP server (stdio transport)"`
}

// NewCLI creates a new CLI instance.
func NewCLI() *CLI {
	return &CLI{}
}

// Execute parses command-line arguments and executes the selected command.
func (c *CLI) Execute(args []string) error {
	kongCtx := kong.Parse(c,
		kong.Name("graphweave"),
		kong.Description("Reproducible generator for community-structured graphs"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": Version,
		},
	)

	return kongCtx.Run()
}
