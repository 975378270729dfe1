package gitcore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStatus describes a single path that differs from HEAD, differs from
// the index, or is present on disk but untracked.
type FileStatus struct {
	// Path is the slash-separated path relative to the repository root.
	Path string

	// IndexStatus describes the change staged relative to HEAD:
	//   "added"    — new path added to the index
	//   "modified" — path exists in both HEAD and index with different content
	//   "deleted"  — path present in HEAD has been removed from the index
	//   ""         — no staged change
	IndexStatus string

	// WorkStatus describes the change on disk relative to the index:
	//   "modified" — path exists on disk but differs from the staged content
	//   "deleted"  — path is staged but absent from disk
	//   ""         — working tree matches the index (or the path is untracked)
	WorkStatus string

	// Untracked is true when the path exists on disk but is not recorded in
	// the index at all. WorkStatus is empty in that case; IndexStatus is
	// "deleted" if HEAD still records the path, and empty otherwise.
	Untracked bool
}

// Status is the full working tree status: every path that differs from
// HEAD, differs from the index, or is untracked.
type Status struct {
	Files []FileStatus
}

// ComputeStatus computes the repository's status in a single pass over
// three states: the HEAD tree, the staging index, and the working
// directory on disk. Ignored paths (per .gitignore and .ugit/info/exclude,
// plus the repository's own metadata directory) are excluded from the
// untracked set.
func (r *Repository) ComputeStatus() (*Status, error) {
	if err := r.requireRepo(); err != nil {
		return nil, err
	}

	headTree := map[string]Hash{}
	headState, err := r.refs.ReadHead()
	if err != nil {
		return nil, fmt.Errorf("ComputeStatus: reading HEAD: %w", err)
	}
	if !headState.Commit.IsZero() {
		commit, err := r.GetCommit(headState.Commit)
		if err != nil {
			return nil, fmt.Errorf("ComputeStatus: reading HEAD commit: %w", err)
		}
		tree, err := r.GetTree(commit.Tree)
		if err != nil {
			return nil, fmt.Errorf("ComputeStatus: reading HEAD tree: %w", err)
		}
		headTree = tree.ToMap()
	}

	index, err := r.ReadIndex()
	if err != nil {
		return nil, fmt.Errorf("ComputeStatus: reading index: %w", err)
	}

	results := make(map[string]*FileStatus)
	entry := func(path string) *FileStatus {
		fs, ok := results[path]
		if !ok {
			fs = &FileStatus{Path: path}
			results[path] = fs
		}
		return fs
	}

	// HEAD tree vs index: staged additions and modifications.
	for path, hash := range index {
		if headHash, inHead := headTree[path]; !inHead {
			entry(path).IndexStatus = "added"
		} else if headHash != hash {
			entry(path).IndexStatus = "modified"
		}
	}
	// HEAD tree vs index: staged deletions.
	for path := range headTree {
		if _, staged := index[path]; !staged {
			entry(path).IndexStatus = "deleted"
		}
	}

	// Index vs working tree: unstaged modifications and deletions.
	workDir := r.workDir
	for path, hash := range index {
		diskPath := filepath.Join(workDir, filepath.FromSlash(path))
		content, readErr := os.ReadFile(diskPath) //nolint:gosec // path is relative to the repository working directory
		if readErr != nil {
			if os.IsNotExist(readErr) {
				entry(path).WorkStatus = "deleted"
				continue
			}
			return nil, fmt.Errorf("ComputeStatus: reading %s: %w", diskPath, readErr)
		}
		if hashBlob(content) != hash {
			entry(path).WorkStatus = "modified"
		}
	}

	// Working tree walk: untracked files not present in the index and not
	// covered by an ignore rule.
	matcher := loadIgnoreMatcher(workDir, r.gitDir)
	walkErr := filepath.WalkDir(workDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries rather than aborting status
		}
		relPath, relErr := filepath.Rel(workDir, path)
		if relErr != nil {
			return relErr
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		if matcher.isIgnored(relPath, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			// Rules from this directory's own .gitignore apply to
			// everything beneath it.
			matcher.loadFile(workDir, relPath+"/")
			return nil
		}
		if _, tracked := index[relPath]; tracked {
			return nil
		}
		entry(relPath).Untracked = true
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("ComputeStatus: walking working tree: %w", walkErr)
	}

	status := &Status{Files: make([]FileStatus, 0, len(results))}
	for _, fs := range results {
		status.Files = append(status.Files, *fs)
	}
	return status, nil
}

// hashBlob computes the blob hash of raw file content: the SHA-1 of the
// framed bytes "blob <len>\0<content>", matching ObjectStore.Put's framing
// so a status check never has to round-trip through the object store.
func hashBlob(content []byte) Hash {
	return hashFramed(frame(KindBlob, content))
}
