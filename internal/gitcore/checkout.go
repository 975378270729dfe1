package gitcore

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// resolveCommitTree loads the tree of the commit at hash.
func (r *Repository) resolveCommitTree(hash Hash) (map[string]Hash, error) {
	commit, err := r.GetCommit(hash)
	if err != nil {
		return nil, err
	}
	tree, err := r.GetTree(commit.Tree)
	if err != nil {
		return nil, err
	}
	return tree.ToMap(), nil
}

// applyTree removes every tracked file that target does not contain,
// writes out the blobs named by target, then replaces the index with
// target (only if every file was handled without error). Per-file I/O
// failures during the clear and restore passes are
// accumulated with multierr rather than aborting partway through, so a
// caller sees everything that went wrong in one report instead of just
// the first.
//
// Grounded on original_source/ugit/commands/checkout.py's
// _clear_working_directory/_restore_file two-pass shape.
func (r *Repository) applyTree(target map[string]Hash) error {
	previous, err := r.ReadIndex()
	if err != nil {
		return fmt.Errorf("checkout: reading index: %w", err)
	}

	var errs error
	dirs := make(map[string]struct{})
	for path := range previous {
		if _, keep := target[path]; keep {
			continue
		}
		full := filepath.Join(r.workDir, filepath.FromSlash(path))
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			errs = multierr.Append(errs, fmt.Errorf("removing %s: %w", path, err))
			continue
		}
		dirs[filepath.Dir(full)] = struct{}{}
	}
	r.pruneEmptyDirs(dirs)

	for path, hash := range target {
		full := filepath.Join(r.workDir, filepath.FromSlash(path))
		_, payload, err := r.objects.Get(hash)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("reading blob for %s: %w", path, err))
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("creating directory for %s: %w", path, err))
			continue
		}
		if err := os.WriteFile(full, payload, 0o644); err != nil { //nolint:gosec // G306: working tree files are not secrets
			errs = multierr.Append(errs, fmt.Errorf("writing %s: %w", path, err))
		}
	}

	if errs != nil {
		return errs
	}

	return r.WriteIndex(target)
}

// pruneEmptyDirs removes directories left empty by applyTree's removal pass,
// walking upward toward the working tree root until a non-empty directory
// or a removal failure is hit. Best-effort: OS errors (permissions, races
// with concurrent writers) are silently tolerated rather than surfaced,
// since leaving an empty directory behind is harmless.
//
// Grounded on original_source/ugit/commands/checkout.py's
// _clear_working_directory, which os.rmdir's emptied directories as it goes.
func (r *Repository) pruneEmptyDirs(dirs map[string]struct{}) {
	root := filepath.Clean(r.workDir)
	for dir := range dirs {
		dir = filepath.Clean(dir)
		for dir != root && len(dir) > len(root) {
			if err := os.Remove(dir); err != nil {
				break
			}
			dir = filepath.Dir(dir)
		}
	}
}

// CheckoutBranch switches the working directory and index to the tip of
// the named branch and points HEAD symbolically at it. This is the
// "ordinary" checkout: subsequent commits advance the named branch.
//
// Per the design decision recorded in DESIGN.md, branch-name checkout and
// commit-hash checkout are two distinct operations rather than one
// argument-sniffing command, precisely so this HEAD-state distinction is
// never ambiguous.
func (r *Repository) CheckoutBranch(name string) error {
	if err := r.requireRepo(); err != nil {
		return err
	}

	tip, err := r.refs.ReadBranch(name)
	if err != nil {
		return fmt.Errorf("CheckoutBranch: %w", err)
	}
	if tip.IsZero() {
		return fmt.Errorf("CheckoutBranch %q: %w", name, ErrUnknownRevision)
	}

	tree, err := r.resolveCommitTree(tip)
	if err != nil {
		return fmt.Errorf("CheckoutBranch: %w", err)
	}
	if err := r.applyTree(tree); err != nil {
		return fmt.Errorf("CheckoutBranch: %w", err)
	}

	return r.refs.SetSymbolic(name)
}

// CheckoutCommit switches the working directory and index to the given
// commit hash and puts HEAD into the detached state. Committing afterward
// still works (the new commit's parent is this hash) but no branch tip
// advances.
func (r *Repository) CheckoutCommit(hash Hash) error {
	if err := r.requireRepo(); err != nil {
		return err
	}

	if _, err := r.GetCommit(hash); err != nil {
		return fmt.Errorf("CheckoutCommit %s: %w", hash, ErrUnknownRevision)
	}

	tree, err := r.resolveCommitTree(hash)
	if err != nil {
		return fmt.Errorf("CheckoutCommit: %w", err)
	}
	if err := r.applyTree(tree); err != nil {
		return fmt.Errorf("CheckoutCommit: %w", err)
	}

	return r.refs.SetDetached(hash)
}
