package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwelter/graphweave/internal/registry"
)

func writeJobFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("FullJob", func(t *testing.T) {
		t.Parallel()
		path := writeJobFile(t, `
jobs:
  - name: small
    outer: chain/3
    inner: ba/10,2
    linker: first
    orientation: undirected
    format: graphml
    output: small.graphml
    seed: 42
    workers: 4
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Len(t, cfg.Jobs, 1)
		job := cfg.Jobs[0]
		assert.Equal(t, "small", job.Name)
		assert.Equal(t, "chain/3", job.Outer)
		assert.Equal(t, "undirected", job.Orientation)
		assert.Equal(t, "graphml", job.Format)
		require.NotNil(t, job.Seed)
		assert.Equal(t, uint64(42), *job.Seed)
		assert.Equal(t, 4, job.Workers)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Parallel()
		path := writeJobFile(t, `
jobs:
  - outer: chain/2
    inner: chain/2
    linker: first
    output: out.dot
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		job := cfg.Jobs[0]
		assert.Equal(t, "job-1", job.Name)
		assert.Equal(t, "directed", job.Orientation)
		assert.Equal(t, "dot", job.Format)
		assert.Nil(t, job.Seed)
	})

	t.Run("MissingOutput", func(t *testing.T) {
		t.Parallel()
		path := writeJobFile(t, `
jobs:
  - outer: chain/2
    inner: chain/2
    linker: first
`)

		_, err := Load(path)

		assert.ErrorContains(t, err, "output is required")
	})

	t.Run("NoJobs", func(t *testing.T) {
		t.Parallel()
		path := writeJobFile(t, "jobs: []\n")

		_, err := Load(path)

		assert.ErrorContains(t, err, "declares no jobs")
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		t.Parallel()
		path := writeJobFile(t, "jobs: [\n")

		_, err := Load(path)

		assert.ErrorContains(t, err, "parsing job file")
	})

	t.Run("MissingFile", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

		assert.ErrorContains(t, err, "reading job file")
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("WritesEachOutput", func(t *testing.T) {
		t.Parallel()
		path := writeJobFile(t, `
jobs:
  - name: a
    outer: chain/3
    inner: chain/1
    linker: first
    output: out/a.dot
    seed: 7
  - name: b
    outer: chain/2
    inner: chain/2
    linker: first
    format: iccma
    output: out/b.af
    seed: 7
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		baseDir := filepath.Dir(path)

		var results []JobResult
		err = Run(context.Background(), cfg, baseDir, func(r JobResult) { results = append(results, r) })

		require.NoError(t, err)
		require.Len(t, results, 2)

		a, err := os.ReadFile(filepath.Join(baseDir, "out", "a.dot"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(a), "digraph {"))

		b, err := os.ReadFile(filepath.Join(baseDir, "out", "b.af"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(b), "p af 4"))

		assert.Equal(t, uint64(7), results[0].Result.Seed)
		assert.Equal(t, filepath.Join(baseDir, "out", "a.dot"), results[0].Output)
	})

	t.Run("SeededJobsReproduce", func(t *testing.T) {
		t.Parallel()
		path := writeJobFile(t, `
jobs:
  - outer: er/6,0.5
    inner: ba/8,2
    linker: random/0.4
    output: g.dot
    seed: 99
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		baseDir := filepath.Dir(path)

		require.NoError(t, Run(context.Background(), cfg, baseDir, nil))
		first, err := os.ReadFile(filepath.Join(baseDir, "g.dot"))
		require.NoError(t, err)

		require.NoError(t, Run(context.Background(), cfg, baseDir, nil))
		second, err := os.ReadFile(filepath.Join(baseDir, "g.dot"))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("UnknownLinker", func(t *testing.T) {
		t.Parallel()
		path := writeJobFile(t, `
jobs:
  - name: broken
    outer: chain/2
    inner: chain/2
    linker: nope
    output: g.dot
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		err = Run(context.Background(), cfg, filepath.Dir(path), nil)

		assert.ErrorIs(t, err, registry.ErrUnknownComponent)
		assert.ErrorContains(t, err, `job "broken"`)
	})

	t.Run("ApxRejectsUndirected", func(t *testing.T) {
		t.Parallel()
		path := writeJobFile(t, `
jobs:
  - outer: chain/2
    inner: chain/2
    linker: first
    orientation: undirected
    format: apx
    output: g.apx
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		err = Run(context.Background(), cfg, filepath.Dir(path), nil)

		assert.ErrorIs(t, err, registry.ErrUnknownComponent)
	})
}

func TestWatch_CancelledContext(t *testing.T) {
	t.Parallel()
	path := writeJobFile(t, `
jobs:
  - outer: chain/2
    inner: chain/1
    linker: first
    output: g.dot
    seed: 1
`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Watch(ctx, path, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
