package gitcore

import "testing"

func commitTwoRevisions(t *testing.T) (repo *Repository, oldHash, newHash Hash) {
	t.Helper()
	repo = newTestRepo(t)
	stageFile(t, repo, "kept.txt", "same")
	stageFile(t, repo, "changed.txt", "v1")
	stageFile(t, repo, "removed.txt", "bye")
	oldHash, err := repo.Commit(CommitOptions{Message: "one", Author: "a"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	index, err := repo.ReadIndex()
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	delete(index, "removed.txt")
	if err := repo.WriteIndex(index); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}
	stageFile(t, repo, "changed.txt", "v2")
	stageFile(t, repo, "added.txt", "fresh")
	newHash, err = repo.Commit(CommitOptions{Message: "two", Author: "a"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return repo, oldHash, newHash
}

func TestDiff_ClassifiesAddedModifiedDeleted(t *testing.T) {
	repo, oldHash, newHash := commitTwoRevisions(t)

	diff, err := repo.Diff(oldHash, newHash)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}

	byPath := make(map[string]DiffEntry)
	for _, e := range diff.Entries {
		byPath[e.Path] = e
	}

	if _, ok := byPath["kept.txt"]; ok {
		t.Errorf("kept.txt unexpectedly present in diff: %+v", byPath["kept.txt"])
	}
	if e, ok := byPath["changed.txt"]; !ok || e.Status != DiffModified {
		t.Errorf("changed.txt = %+v, want DiffModified", e)
	}
	if e, ok := byPath["removed.txt"]; !ok || e.Status != DiffDeleted {
		t.Errorf("removed.txt = %+v, want DiffDeleted", e)
	}
	if e, ok := byPath["added.txt"]; !ok || e.Status != DiffAdded {
		t.Errorf("added.txt = %+v, want DiffAdded", e)
	}
}

func TestDiff_StatCounts(t *testing.T) {
	repo, oldHash, newHash := commitTwoRevisions(t)

	diff, err := repo.Diff(oldHash, newHash)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	added, modified, deleted := diff.Stat()
	if added != 1 || modified != 1 || deleted != 1 {
		t.Errorf("Stat() = (%d, %d, %d), want (1, 1, 1)", added, modified, deleted)
	}
}

func TestDiff_IdenticalCommitsHaveNoEntries(t *testing.T) {
	repo := newTestRepo(t)
	stageFile(t, repo, "a.txt", "same")
	hash, err := repo.Commit(CommitOptions{Message: "one", Author: "a"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	diff, err := repo.Diff(hash, hash)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(diff.Entries) != 0 {
		t.Errorf("Entries = %+v, want empty diffing a commit against itself", diff.Entries)
	}
}
