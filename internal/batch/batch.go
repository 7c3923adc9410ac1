// Package batch runs generation jobs described in a YAML file.
//
// A job file bundles several named runs, each with its own generator,
// linker, format and output path. Jobs run one after the other so
// their seeds and outputs stay attributable; parallelism lives inside
// each run.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bwelter/graphweave/internal/generators"
	"github.com/bwelter/graphweave/internal/graph"
	"github.com/bwelter/graphweave/internal/linkers"
	"github.com/bwelter/graphweave/internal/pipeline"
	"github.com/bwelter/graphweave/internal/render"
	"github.com/bwelter/graphweave/internal/seedseq"
)

// Job is one generation run in a job file. Seed is optional; a job
// without one draws a fresh seed on every run and reports it.
type Job struct {
	Name        string  `yaml:"name"`
	Outer       string  `yaml:"outer"`
	Inner       string  `yaml:"inner"`
	Linker      string  `yaml:"linker"`
	Orientation string  `yaml:"orientation"`
	Format      string  `yaml:"format"`
	Output      string  `yaml:"output"`
	Seed        *uint64 `yaml:"seed"`
	Workers     int     `yaml:"workers"`
}

// Config is a parsed job file.
type Config struct {
	Jobs []Job `yaml:"jobs"`
}

// Load reads and validates a job file. Missing orientations default to
// directed, missing formats to dot; everything else is required.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing job file: %w", err)
	}
	if len(cfg.Jobs) == 0 {
		return nil, fmt.Errorf("job file %s declares no jobs", path)
	}

	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		if job.Name == "" {
			job.Name = fmt.Sprintf("job-%d", i+1)
		}
		if job.Orientation == "" {
			job.Orientation = graph.Directed.String()
		}
		if job.Format == "" {
			job.Format = "dot"
		}
		for field, value := range map[string]string{
			"outer":  job.Outer,
			"inner":  job.Inner,
			"linker": job.Linker,
			"output": job.Output,
		} {
			if value == "" {
				return nil, fmt.Errorf("job %q: %s is required", job.Name, field)
			}
		}
	}
	return &cfg, nil
}

// JobResult pairs a finished job with its run result and the path the
// graph was written to.
type JobResult struct {
	Job    Job
	Result *pipeline.Result
	Output string
}

// Run executes every job in order. Output paths are resolved relative
// to baseDir, normally the job file's directory. The report callback,
// when set, fires after each job completes.
func Run(ctx context.Context, cfg *Config, baseDir string, report func(JobResult)) error {
	for _, job := range cfg.Jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, output, err := runJob(ctx, job, baseDir)
		if err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}
		if report != nil {
			report(JobResult{Job: job, Result: result, Output: output})
		}
	}
	return nil
}

func runJob(ctx context.Context, job Job, baseDir string) (*pipeline.Result, string, error) {
	o, err := graph.ParseOrientation(job.Orientation)
	if err != nil {
		return nil, "", err
	}
	outer, err := generators.Catalog().Resolve(job.Outer, o)
	if err != nil {
		return nil, "", fmt.Errorf("outer generator: %w", err)
	}
	inner, err := generators.Catalog().Resolve(job.Inner, o)
	if err != nil {
		return nil, "", fmt.Errorf("inner generator: %w", err)
	}
	link, err := linkers.Catalog().Resolve(job.Linker, o)
	if err != nil {
		return nil, "", fmt.Errorf("linker: %w", err)
	}
	format, err := render.Catalog().Resolve(job.Format, o)
	if err != nil {
		return nil, "", fmt.Errorf("format: %w", err)
	}

	seed := seedseq.Entropy()
	if job.Seed != nil {
		seed = *job.Seed
	}

	result, err := pipeline.Run(ctx, outer, inner, link, o, seed, pipeline.Options{Workers: job.Workers})
	if err != nil {
		return nil, "", err
	}

	output := job.Output
	if !filepath.IsAbs(output) {
		output = filepath.Join(baseDir, output)
	}
	if err := writeGraph(output, format, result.Graph); err != nil {
		return nil, "", err
	}
	return result, output, nil
}

func writeGraph(path string, format render.Format, g *graph.Graph) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := format.Render(f, g); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
