package gitcore

import (
	"fmt"
	"os"
	"path/filepath"
)

// GitDirName is the name of the metadata directory ugit keeps at the root
// of a working tree, the systems-language analog of Git's ".git".
const GitDirName = ".ugit"

// Repository is an explicit handle to a ugit repository: its working
// directory, its ".ugit" metadata directory, and the three stores that
// live under it (objects, refs, config). Every gitcore operation takes a
// *Repository rather than relying on the process's current directory.
type Repository struct {
	workDir string
	gitDir  string

	objects *ObjectStore
	refs    *RefStore
	config  *Config
}

// Init creates a new repository rooted at workDir: the ".ugit" directory,
// its objects/ and refs/heads/ subdirectories, and a HEAD pointing
// symbolically at the default branch (no branch file yet — an unborn
// branch). Returns an error if workDir already contains a ".ugit"
// directory.
func Init(workDir string) (*Repository, error) {
	gitDir := filepath.Join(workDir, GitDirName)
	if _, err := os.Stat(gitDir); err == nil {
		return nil, fmt.Errorf("Init: %s already exists", gitDir)
	}

	if err := os.MkdirAll(filepath.Join(gitDir, "refs", "heads"), 0o755); err != nil {
		return nil, fmt.Errorf("Init: %w", err)
	}

	objects := NewObjectStore(filepath.Join(gitDir, "objects"))
	if err := objects.EnsureDir(); err != nil {
		return nil, fmt.Errorf("Init: %w", err)
	}

	refs := NewRefStore(gitDir)
	if err := refs.InitHead(); err != nil {
		return nil, fmt.Errorf("Init: %w", err)
	}

	return &Repository{
		workDir: workDir,
		gitDir:  gitDir,
		objects: objects,
		refs:    refs,
		config:  &Config{values: map[string]string{}},
	}, nil
}

// Open locates a repository starting from path (which may be the working
// directory itself or any of its subdirectories) by walking upward looking
// for a ".ugit" directory, and returns a handle to it. Returns
// ErrNotARepository if none is found before reaching the filesystem root.
func Open(path string) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}

	current := abs
	for {
		candidate := filepath.Join(current, GitDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			config, err := ReadConfig(candidate)
			if err != nil {
				return nil, fmt.Errorf("Open: %w", err)
			}
			return &Repository{
				workDir: current,
				gitDir:  candidate,
				objects: NewObjectStore(filepath.Join(candidate, "objects")),
				refs:    NewRefStore(candidate),
				config:  config,
			}, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, ErrNotARepository
		}
		current = parent
	}
}

// requireRepo guards operations that dereference the repository's stores.
// Open and Init are the only constructors, so a non-nil *Repository is
// always fully initialized; this exists so Commit and friends read the
// same way as future operations that might relax that invariant.
func (r *Repository) requireRepo() error {
	if r == nil {
		return ErrNotARepository
	}
	return nil
}

// WorkDir returns the repository's working directory.
func (r *Repository) WorkDir() string { return r.workDir }

// GitDir returns the repository's ".ugit" metadata directory.
func (r *Repository) GitDir() string { return r.gitDir }

// Objects returns the repository's object store.
func (r *Repository) Objects() *ObjectStore { return r.objects }

// Refs returns the repository's reference store.
func (r *Repository) Refs() *RefStore { return r.refs }

// Config returns the repository's configuration.
func (r *Repository) Config() *Config { return r.config }

// Head returns the repository's current HEAD state.
func (r *Repository) Head() (HeadState, error) {
	return r.refs.ReadHead()
}
