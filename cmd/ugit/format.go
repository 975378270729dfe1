package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/night-slayer18/ugit/internal/gitcore"
)

// ugitDateFormat formats a timestamp the same way `log` does elsewhere in
// this corpus: "Mon Jan 2 15:04:05 2006 -0700".
func ugitDateFormat(ts string) string {
	t, err := time.ParseInLocation("2006-01-02T15:04:05.000000", ts, time.Local)
	if err != nil {
		return ts
	}
	return t.Format("Mon Jan 2 15:04:05 2006 -0700")
}

// resolveRevision resolves a revision string to a full commit hash.
// Supports: "HEAD", a full 40-hex hash, a branch name, and an unambiguous
// hash prefix (scanning the object store).
func resolveRevision(repo *gitcore.Repository, rev string) (gitcore.Hash, error) {
	if rev == "HEAD" {
		head, err := repo.Refs().ResolveHead()
		if err != nil {
			return "", err
		}
		if head.IsZero() {
			return "", fmt.Errorf("HEAD has no commits yet")
		}
		return head, nil
	}

	if len(rev) == 40 {
		if hash, err := gitcore.NewHash(rev); err == nil {
			return hash, nil
		}
	}

	if tip, err := repo.Refs().ReadBranch(rev); err == nil && !tip.IsZero() {
		return tip, nil
	}

	if len(rev) >= 4 && len(rev) < 40 {
		entries, err := os.ReadDir(filepath.Join(repo.GitDir(), "objects"))
		if err == nil {
			var match gitcore.Hash
			count := 0
			for _, e := range entries {
				if strings.HasPrefix(e.Name(), rev) {
					if hash, err := gitcore.NewHash(e.Name()); err == nil {
						match = hash
						count++
					}
				}
			}
			if count == 1 {
				return match, nil
			}
			if count > 1 {
				return "", fmt.Errorf("short hash %q is ambiguous", rev)
			}
		}
	}

	return "", fmt.Errorf("%w: %s", gitcore.ErrUnknownRevision, rev)
}
