package gitcore

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Commit is the payload of a commit object: one tree, zero-or-one parent
// (this system's data model only ever permits a linear history), an
// author string, an ISO-8601 local timestamp, and a message.
type Commit struct {
	Tree      Hash
	Parent    Hash // zero value means "no parent" (a root commit)
	Author    string
	Timestamp string
	Message   string
}

// commitWire is the on-disk JSON shape of a commit object. Parent is a
// pointer so an absent parent serializes as JSON null, matching
// original_source/ugit/commands/commit.py's `"parent": parent` where
// parent is Python None for a root commit.
type commitWire struct {
	Tree      string  `json:"tree"`
	Parent    *string `json:"parent"`
	Author    string  `json:"author"`
	Timestamp string  `json:"timestamp"`
	Message   string  `json:"message"`
}

// Marshal serializes the commit deterministically: given identical field
// values, Marshal always produces identical bytes, which is what makes
// commit hashes reproducible (spec's "commit determinism" property).
func (c *Commit) Marshal() ([]byte, error) {
	wire := commitWire{
		Tree:      string(c.Tree),
		Author:    c.Author,
		Timestamp: c.Timestamp,
		Message:   c.Message,
	}
	if !c.Parent.IsZero() {
		p := string(c.Parent)
		wire.Parent = &p
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("Commit.Marshal: %w", err)
	}
	return data, nil
}

// ParseCommit decodes a commit object's payload into a Commit.
func ParseCommit(payload []byte) (*Commit, error) {
	var wire commitWire
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("%w: invalid commit payload: %v", ErrCorrupt, err)
	}

	tree, err := NewHash(wire.Tree)
	if err != nil {
		return nil, fmt.Errorf("%w: commit tree field: %v", ErrCorrupt, err)
	}

	c := &Commit{
		Tree:      tree,
		Author:    wire.Author,
		Timestamp: wire.Timestamp,
		Message:   wire.Message,
	}

	if wire.Parent != nil && *wire.Parent != "" {
		parent, err := NewHash(*wire.Parent)
		if err != nil {
			return nil, fmt.Errorf("%w: commit parent field: %v", ErrCorrupt, err)
		}
		c.Parent = parent
	}

	return c, nil
}

// CommitOptions carries the inputs to Repository.Commit that come from the
// caller (CLI flags) rather than from repository state.
type CommitOptions struct {
	Message string
	Author  string // overrides the repository's configured author, if set
}

// Commit builds a tree object from the current index, appends a commit
// object linking it to the current branch tip, and advances the tip to the
// new commit. Returns ErrEmptyMessage if the trimmed message is empty, and
// ErrEmptyIndex (informational, not a failure a caller should alarm on) if
// nothing is staged.
//
// Per spec.md section 4.6 / section 9's "Open question", the index is NOT
// cleared after a commit: subsequent commits reuse its contents as the new
// baseline, matching original_source/ugit.py's commit(), which never
// resets the index either.
func (r *Repository) Commit(opts CommitOptions) (Hash, error) {
	if err := r.requireRepo(); err != nil {
		return "", err
	}

	message := strings.TrimSpace(opts.Message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	index, err := r.ReadIndex()
	if err != nil {
		return "", fmt.Errorf("Commit: reading index: %w", err)
	}
	if len(index) == 0 {
		return "", ErrEmptyIndex
	}

	tree := NewTree(index)
	treePayload, err := tree.Marshal()
	if err != nil {
		return "", fmt.Errorf("Commit: marshaling tree: %w", err)
	}
	treeHash, err := r.objects.Put(KindTree, treePayload)
	if err != nil {
		return "", fmt.Errorf("Commit: storing tree: %w", err)
	}

	parent, err := r.refs.ResolveHead()
	if err != nil {
		return "", fmt.Errorf("Commit: resolving HEAD: %w", err)
	}

	author := opts.Author
	if author == "" {
		author = r.config.AuthorString()
	}

	commit := &Commit{
		Tree:      treeHash,
		Parent:    parent,
		Author:    author,
		Timestamp: time.Now().Format("2006-01-02T15:04:05.000000"),
		Message:   message,
	}
	commitPayload, err := commit.Marshal()
	if err != nil {
		return "", fmt.Errorf("Commit: marshaling commit: %w", err)
	}
	commitHash, err := r.objects.Put(KindCommit, commitPayload)
	if err != nil {
		return "", fmt.Errorf("Commit: storing commit: %w", err)
	}

	if err := r.refs.AdvanceHead(commitHash); err != nil {
		return "", fmt.Errorf("Commit: advancing branch tip: %w", err)
	}

	return commitHash, nil
}

// GetCommit reads and parses the commit stored at hash.
func (r *Repository) GetCommit(hash Hash) (*Commit, error) {
	kind, payload, err := r.objects.Get(hash)
	if err != nil {
		return nil, err
	}
	if kind != KindCommit {
		return nil, fmt.Errorf("%w: %s is a %s, not a commit", ErrBadKind, hash, kind)
	}
	return ParseCommit(payload)
}

// GetTree reads and parses the tree stored at hash.
func (r *Repository) GetTree(hash Hash) (*Tree, error) {
	kind, payload, err := r.objects.Get(hash)
	if err != nil {
		return nil, err
	}
	if kind != KindTree {
		return nil, fmt.Errorf("%w: %s is a %s, not a tree", ErrBadKind, hash, kind)
	}
	return ParseTree(payload)
}
