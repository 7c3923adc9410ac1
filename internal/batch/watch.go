package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long the watcher waits after the last write before
// re-running the jobs. Editors often produce several events per save.
const debounce = 2 * time.Second

// Watch runs the job file once, then re-runs it whenever it changes.
// Blocks until the context is cancelled. The file's directory is
// watched rather than the file itself, so editors that replace the
// file on save keep being tracked.
func Watch(ctx context.Context, path string, report func(JobResult)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	runOnce := func() {
		cfg, err := Load(absPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Job file error: %v\n", err)
			return
		}
		if err := Run(ctx, cfg, filepath.Dir(absPath), report); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "Job error: %v\n", err)
		}
	}
	runOnce()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			pending = true
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-timer.C:
			if pending {
				pending = false
				runOnce()
			}
		}
	}
}
