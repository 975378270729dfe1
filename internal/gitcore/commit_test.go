package gitcore

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	dir := t.TempDir()
	repo, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return repo
}

func stageFile(t *testing.T, repo *Repository, path, content string) Hash {
	t.Helper()
	full := filepath.Join(repo.WorkDir(), path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	result, err := repo.Add([]string{path})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	return result.Files[path]
}

func TestCommit_EmptyMessageRejected(t *testing.T) {
	repo := newTestRepo(t)
	stageFile(t, repo, "a.txt", "hello")

	if _, err := repo.Commit(CommitOptions{Message: "   "}); err == nil {
		t.Error("Commit with blank message: want error, got nil")
	}
}

func TestCommit_EmptyIndexRejected(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.Commit(CommitOptions{Message: "first"}); err == nil {
		t.Error("Commit with nothing staged: want error, got nil")
	}
}

func TestCommit_AdvancesHeadAndIsDeterministic(t *testing.T) {
	repo := newTestRepo(t)
	stageFile(t, repo, "a.txt", "hello")

	hash, err := repo.Commit(CommitOptions{Message: "first commit", Author: "Test <t@example.com>"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if head.Kind != HeadSymbolic {
		t.Fatalf("HEAD kind = %v, want HeadSymbolic", head.Kind)
	}
	if head.Commit != hash {
		t.Errorf("HEAD commit = %s, want %s", head.Commit, hash)
	}

	commit, err := repo.GetCommit(hash)
	if err != nil {
		t.Fatalf("GetCommit: %v", err)
	}
	if !commit.Parent.IsZero() {
		t.Errorf("root commit Parent = %s, want zero", commit.Parent)
	}
	if commit.Message != "first commit" {
		t.Errorf("Message = %q, want %q", commit.Message, "first commit")
	}

	// Serializing the same field values again must reproduce the same hash.
	payload, err := commit.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := repo.Objects().Put(KindCommit, payload)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if again != hash {
		t.Errorf("re-stored commit hash = %s, want %s", again, hash)
	}
}

func TestCommit_SecondCommitHasFirstAsParent(t *testing.T) {
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

	commit, err := repo.GetCommit(second)
	if err != nil {
		t.Fatalf("GetCommit: %v", err)
	}
	if commit.Parent != first {
		t.Errorf("Parent = %s, want %s", commit.Parent, first)
	}
}

func TestCommit_DoesNotClearIndex(t *testing.T) {
	repo := newTestRepo(t)
	stageFile(t, repo, "a.txt", "v1")
	if _, err := repo.Commit(CommitOptions{Message: "one", Author: "a"}); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	index, err := repo.ReadIndex()
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if _, ok := index["a.txt"]; !ok {
		t.Error("index was cleared by Commit; ugit preserves it as the new baseline")
	}
}

func TestCommit_FallsBackToConfiguredAuthor(t *testing.T) {
	repo := newTestRepo(t)
	repo.Config().Set("user.name", "Configured Name")
	repo.Config().Set("user.email", "configured@example.com")
	if err := repo.Config().Write(repo.GitDir()); err != nil {
		t.Fatalf("Config.Write: %v", err)
	}

	stageFile(t, repo, "a.txt", "v1")
	hash, err := repo.Commit(CommitOptions{Message: "one"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	commit, err := repo.GetCommit(hash)
	if err != nil {
		t.Fatalf("GetCommit: %v", err)
	}
	want := "Configured Name <configured@example.com>"
	if commit.Author != want {
		t.Errorf("Author = %q, want %q", commit.Author, want)
	}
}
