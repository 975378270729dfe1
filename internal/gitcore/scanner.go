package gitcore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// AddResult reports what a single call to Add staged.
type AddResult struct {
	// Files maps each staged path to the blob hash it was staged at.
	Files map[string]Hash

	// DirectoriesWalked holds, for every directory target passed to Add,
	// how many files were discovered and staged underneath it — the
	// "Added N files from directory 'path'" summary.
	DirectoriesWalked map[string]int
}

// Add stages each of the given paths (files or directories, relative to
// the repository's working directory or absolute) into the index. A
// directory is walked recursively; ignored paths (per .gitignore and the
// repository's own metadata directory) are skipped during that walk, but
// a file passed explicitly by name is staged even if it would otherwise be
// ignored, matching Git's own convention.
//
// Discovered files are hashed concurrently (bounded by GOMAXPROCS) via
// errgroup; a failure on one path does not abort the others — every
// per-path error is accumulated with multierr and returned together,
// alongside whatever did succeed.
func (r *Repository) Add(paths []string) (*AddResult, error) {
	if err := r.requireRepo(); err != nil {
		return nil, err
	}

	matcher := loadIgnoreMatcher(r.workDir, r.gitDir)

	type discovered struct {
		relPath string
		fromDir string // set if this path was discovered while walking a directory target
	}
	var targets []discovered
	var errs error

	result := &AddResult{
		Files:             make(map[string]Hash),
		DirectoriesWalked: make(map[string]int),
	}

	for _, target := range paths {
		abs := target
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(r.workDir, target)
		}

		info, err := os.Stat(abs)
		if err != nil {
			if os.IsNotExist(err) {
				errs = multierr.Append(errs, fmt.Errorf("Add: %s: %w", target, ErrPathNotFound))
			} else {
				errs = multierr.Append(errs, fmt.Errorf("Add: stat %s: %w", target, err))
			}
			continue
		}

		relBase, err := filepath.Rel(r.workDir, abs)
		if err != nil {
			return nil, fmt.Errorf("Add: %s: %w", target, err)
		}
		relBase = filepath.ToSlash(relBase)

		if !info.IsDir() {
			targets = append(targets, discovered{relPath: relBase})
			continue
		}

		result.DirectoriesWalked[relBase] = 0
		walkErr := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(r.workDir, path)
			if relErr != nil {
				return relErr
			}
			rel = filepath.ToSlash(rel)
			if matcher.isIgnored(rel, d.IsDir()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			targets = append(targets, discovered{relPath: rel, fromDir: relBase})
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("Add: walking %s: %w", target, walkErr)
		}
	}

	type hashed struct {
		relPath string
		hash    Hash
	}
	hashes := make([]hashed, len(targets))

	group := new(errgroup.Group)
	group.SetLimit(runtime.GOMAXPROCS(0))
	var mu sync.Mutex
	for i, t := range targets {
		i, t := i, t
		group.Go(func() error {
			content, err := os.ReadFile(filepath.Join(r.workDir, filepath.FromSlash(t.relPath))) //nolint:gosec // path derived from repository working dir
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", t.relPath, err))
				mu.Unlock()
				return nil
			}
			hash, err := r.objects.Put(KindBlob, content)
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", t.relPath, err))
				mu.Unlock()
				return nil
			}
			hashes[i] = hashed{relPath: t.relPath, hash: hash}
			return nil
		})
	}
	_ = group.Wait() // per-path errors are accumulated above, not returned via Wait

	index, err := r.ReadIndex()
	if err != nil {
		return nil, fmt.Errorf("Add: reading index: %w", err)
	}
	for i, t := range targets {
		h := hashes[i].hash
		if h == "" {
			continue // this path failed to hash; recorded in errs
		}
		index[t.relPath] = h
		result.Files[t.relPath] = h
		if t.fromDir != "" {
			result.DirectoriesWalked[t.fromDir]++
		}
	}
	if err := r.WriteIndex(index); err != nil {
		return nil, fmt.Errorf("Add: writing index: %w", err)
	}

	return result, errs
}

// StagedPaths returns the index's paths in sorted order.
func (r *Repository) StagedPaths() ([]string, error) {
	index, err := r.ReadIndex()
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(index))
	for p := range index {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}
