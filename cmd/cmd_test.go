package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPtr(s uint64) *uint64 { return &s }

func TestGenerateCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("WritesDotFile", func(t *testing.T) {
		t.Parallel()
		output := filepath.Join(t.TempDir(), "out", "g.dot")
		cmd := &GenerateCmd{
			Outer:       "chain/3",
			Inner:       "ba/10,2",
			Linker:      "first",
			Orientation: "directed",
			Format:      "dot",
			Output:      output,
			Seed:        seedPtr(42),
		}

		require.NoError(t, cmd.Run())

		content, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "digraph {"))
	})

	t.Run("SameSeedSameFile", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		run := func(name string, workers int) string {
			output := filepath.Join(dir, name)
			cmd := &GenerateCmd{
				Outer:       "er/8,0.4",
				Inner:       "ws/12,4,0.3",
				Linker:      "random/0.2",
				Orientation: "undirected",
				Format:      "graphml",
				Output:      output,
				Seed:        seedPtr(7),
				Workers:     workers,
			}
			require.NoError(t, cmd.Run())
			content, err := os.ReadFile(output)
			require.NoError(t, err)
			return string(content)
		}

		assert.Equal(t, run("a.graphml", 1), run("b.graphml", 8))
	})

	t.Run("UnknownGenerator", func(t *testing.T) {
		t.Parallel()
		cmd := &GenerateCmd{
			Outer:       "nope/3",
			Inner:       "chain/1",
			Linker:      "first",
			Orientation: "directed",
			Format:      "dot",
			Output:      filepath.Join(t.TempDir(), "g.dot"),
		}

		assert.ErrorContains(t, cmd.Run(), "outer generator")
	})

	t.Run("ApxNeedsDirected", func(t *testing.T) {
		t.Parallel()
		cmd := &GenerateCmd{
			Outer:       "chain/2",
			Inner:       "chain/2",
			Linker:      "first",
			Orientation: "undirected",
			Format:      "apx",
			Output:      filepath.Join(t.TempDir(), "g.apx"),
		}

		assert.ErrorContains(t, cmd.Run(), "format")
	})

	t.Run("BadParameterCount", func(t *testing.T) {
		t.Parallel()
		cmd := &GenerateCmd{
			Outer:       "chain/2",
			Inner:       "ba/10",
			Linker:      "first",
			Orientation: "directed",
			Format:      "dot",
			Output:      filepath.Join(t.TempDir(), "g.dot"),
		}

		assert.ErrorContains(t, cmd.Run(), "inner generator")
	})
}

func TestListingCmds_Run(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&GeneratorsCmd{}).Run())
	assert.NoError(t, (&LinkersCmd{Orientation: "undirected"}).Run())
	assert.NoError(t, (&FormatsCmd{Orientation: "directed"}).Run())
	assert.Error(t, (&FormatsCmd{Orientation: "sideways"}).Run())
}

func TestBatchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("RunsAllJobs", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		jobFile := filepath.Join(dir, "jobs.yaml")
		require.NoError(t, os.WriteFile(jobFile, []byte(`
jobs:
  - name: demo
    outer: chain/2
    inner: chain/3
    linker: first
    format: iccma
    output: demo.af
    seed: 5
`), 0o644))

		cmd := &BatchCmd{File: jobFile}
		require.NoError(t, cmd.Run())

		content, err := os.ReadFile(filepath.Join(dir, "demo.af"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "p af 6"))
	})

	t.Run("InvalidJobFile", func(t *testing.T) {
		t.Parallel()
		jobFile := filepath.Join(t.TempDir(), "jobs.yaml")
		require.NoError(t, os.WriteFile(jobFile, []byte("jobs: []\n"), 0o644))

		cmd := &BatchCmd{File: jobFile}
		assert.Error(t, cmd.Run())
	})
}
