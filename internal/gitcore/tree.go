package gitcore

import (
	"encoding/json"
	"fmt"
	"sort"
)

// TreeEntry is a single (path, blob-hash) pair within a flat tree object.
type TreeEntry struct {
	Path string `json:"path"`
	Hash Hash   `json:"hash"`
}

// Tree is a flat mapping of repository-relative paths to blob hashes,
// sorted ascending by path. Unlike real Git, ugit's trees are never
// nested — a path containing "/" is still a single leaf entry.
type Tree struct {
	Entries []TreeEntry
}

// treeWireEntry is the JSON shape persisted for each entry: a two-element
// array "[path, hash]", matching original_source/ugit/commands/commit.py's
// _write_tree (`tree_entries.append([path, sha])`).
type treeWireEntry [2]string

// NewTree builds a Tree from an index snapshot (path -> blob hash),
// producing entries sorted ascending by path so that identical index
// contents always serialize to identical bytes.
func NewTree(paths map[string]Hash) *Tree {
	entries := make([]TreeEntry, 0, len(paths))
	for path, hash := range paths {
		entries = append(entries, TreeEntry{Path: path, Hash: hash})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return &Tree{Entries: entries}
}

// Marshal serializes the tree as a deterministic JSON array of [path, hash]
// pairs sorted by path. Two trees with the same entries always produce
// byte-identical output, which is what makes the tree's hash stable.
func (t *Tree) Marshal() ([]byte, error) {
	wire := make([]treeWireEntry, len(t.Entries))
	for i, e := range t.Entries {
		wire[i] = treeWireEntry{e.Path, string(e.Hash)}
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("Tree.Marshal: %w", err)
	}
	return data, nil
}

// ParseTree decodes a tree object's payload into a Tree.
func ParseTree(payload []byte) (*Tree, error) {
	var wire []treeWireEntry
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("%w: invalid tree payload: %v", ErrCorrupt, err)
	}
	entries := make([]TreeEntry, len(wire))
	for i, w := range wire {
		hash, err := NewHash(w[1])
		if err != nil {
			return nil, fmt.Errorf("%w: tree entry %q: %v", ErrCorrupt, w[0], err)
		}
		entries[i] = TreeEntry{Path: w[0], Hash: hash}
	}
	return &Tree{Entries: entries}, nil
}

// ToMap returns the tree's entries as a path -> hash map, the shape Status
// and Checkout operate on.
func (t *Tree) ToMap() map[string]Hash {
	m := make(map[string]Hash, len(t.Entries))
	for _, e := range t.Entries {
		m[e.Path] = e.Hash
	}
	return m
}
