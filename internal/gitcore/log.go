package gitcore

import "fmt"

// LogEntry is a single commit as returned by Log, paired with its hash
// (the commit payload itself doesn't carry its own hash).
type LogEntry struct {
	Hash   Hash
	Commit *Commit
}

// Log walks the commit history starting at HEAD (or, if start is
// non-zero, at the given commit) following the single-parent chain until
// it reaches a root commit. This system's data model never has more than
// one parent, so there is no merge topology to traverse — the walk is a
// straight line, newest first.
//
// If maxCount is positive, at most that many entries are returned.
func (r *Repository) Log(start Hash, maxCount int) ([]LogEntry, error) {
	if err := r.requireRepo(); err != nil {
		return nil, err
	}

	current := start
	if current.IsZero() {
		head, err := r.refs.ResolveHead()
		if err != nil {
			return nil, fmt.Errorf("Log: resolving HEAD: %w", err)
		}
		current = head
	}

	var entries []LogEntry
	for !current.IsZero() {
		if maxCount > 0 && len(entries) >= maxCount {
			break
		}
		commit, err := r.GetCommit(current)
		if err != nil {
			return nil, fmt.Errorf("Log: reading commit %s: %w", current, err)
		}
		entries = append(entries, LogEntry{Hash: current, Commit: commit})
		current = commit.Parent
	}

	return entries, nil
}
