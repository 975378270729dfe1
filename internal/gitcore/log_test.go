package gitcore

import "testing"

func TestLog_EmptyHistory(t *testing.T) {
	repo := newTestRepo(t)
	entries, err := repo.Log("", 0)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v, want empty on an unborn HEAD", entries)
	}
}

func TestLog_WalksNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	stageFile(t, repo, "a.txt", "v1")
	first, err := repo.Commit(CommitOptions{Message: "one", Author: "a"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	stageFile(t, repo, "a.txt", "v2")
	second, err := repo.Commit(CommitOptions{Message: "two", Author: "a"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	entries, err := repo.Log("", 0)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Hash != second || entries[1].Hash != first {
		t.Errorf("entries = %+v, want [second, first]", entries)
	}
}

func TestLog_MaxCountTruncates(t *testing.T) {
	repo := newTestRepo(t)
	for i := 0; i < 3; i++ {
		stageFile(t, repo, "a.txt", string(rune('a'+i)))
		if _, err := repo.Commit(CommitOptions{Message: "c", Author: "a"}); err != nil {
			t.Fatalf("Commit: %v", err)
		}
	}

	entries, err := repo.Log("", 2)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len(entries) = %d, want 2", len(entries))
	}
}

func TestLog_StartsAtGivenCommit(t *testing.T) {
	repo := newTestRepo(t)
	stageFile(t, repo, "a.txt", "v1")
	first, err := repo.Commit(CommitOptions{Message: "one", Author: "a"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	stageFile(t, repo, "a.txt", "v2")
	if _, err := repo.Commit(CommitOptions{Message: "two", Author: "a"}); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	entries, err := repo.Log(first, 0)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(entries) != 1 || entries[0].Hash != first {
		t.Errorf("entries = %+v, want a single entry at %s", entries, first)
	}
}
