package gitcore

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces bursts of filesystem events (e.g. a checkout
// touching dozens of files) into a single status recomputation.
const debounceWindow = 150 * time.Millisecond

// Watch recomputes and delivers the repository's status to onChange
// whenever something in the working directory or HEAD changes, until ctx
// is cancelled. The initial status is delivered once before watching
// begins.
//
// Grounded on the teacher's internal/server/watcher.go, which debounces
// an fsnotify watch on refs/HEAD the same way; generalized here to also
// watch the working directory, since `status --watch` cares about
// untracked and modified files, not just ref movement.
func (r *Repository) Watch(ctx context.Context, onChange func(*Status)) error {
	if err := r.requireRepo(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("Watch: %w", err)
	}
	defer watcher.Close() //nolint:errcheck // best-effort cleanup on the way out

	if err := addRecursive(watcher, r.workDir, r.gitDir); err != nil {
		return fmt.Errorf("Watch: %w", err)
	}

	emit := func() error {
		status, err := r.ComputeStatus()
		if err != nil {
			return err
		}
		onChange(status)
		return nil
	}
	if err := emit(); err != nil {
		return fmt.Errorf("Watch: %w", err)
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("Watch: %w", err)
		case <-timerC(timer):
			if err := emit(); err != nil {
				return fmt.Errorf("Watch: %w", err)
			}
		}
	}
}

// timerC returns t's channel, or nil (which blocks forever in a select)
// when t hasn't been started yet.
func timerC(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// addRecursive registers every directory under workDir with watcher. Inside
// the repository's own metadata directory only the directory itself (HEAD
// and the index) and refs/heads (branch tips) are watched; objects/ is not,
// since writing an object changes no status on its own.
func addRecursive(watcher *fsnotify.Watcher, workDir, gitDir string) error {
	return filepath.WalkDir(workDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path == gitDir {
			for _, dir := range []string{gitDir, filepath.Join(gitDir, "refs", "heads")} {
				if err := watcher.Add(dir); err != nil {
					return err
				}
			}
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
