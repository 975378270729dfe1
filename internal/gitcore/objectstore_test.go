package gitcore

import (
	"path/filepath"
	"testing"
)

func TestObjectStore_PutGetRoundTrip(t *testing.T) {
	store := NewObjectStore(filepath.Join(t.TempDir(), "objects"))

	hash, err := store.Put(KindBlob, []byte("hello world"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	kind, payload, err := store.Get(hash)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if kind != KindBlob {
		t.Errorf("kind = %q, want %q", kind, KindBlob)
	}
	if string(payload) != "hello world" {
		t.Errorf("payload = %q, want %q", payload, "hello world")
	}
}

func TestObjectStore_PutIsIdempotent(t *testing.T) {
	store := NewObjectStore(filepath.Join(t.TempDir(), "objects"))

	h1, err := store.Put(KindBlob, []byte("same content"))
	if err != nil {
		t.Fatalf("first Put: %v", err)
	}
	h2, err := store.Put(KindBlob, []byte("same content"))
	if err != nil {
		t.Fatalf("second Put: %v", err)
	}
	if h1 != h2 {
		t.Errorf("hashes differ across identical Puts: %s vs %s", h1, h2)
	}
}

func TestObjectStore_HashDependsOnKind(t *testing.T) {
	store := NewObjectStore(filepath.Join(t.TempDir(), "objects"))

	blobHash, err := store.Put(KindBlob, []byte("x"))
	if err != nil {
		t.Fatalf("Put blob: %v", err)
	}
	treeHash, err := store.Put(KindTree, []byte("x"))
	if err != nil {
		t.Fatalf("Put tree: %v", err)
	}
	if blobHash == treeHash {
		t.Error("blob and tree objects with the same payload must hash differently (framing includes kind)")
	}
}

func TestObjectStore_GetUnknownHash(t *testing.T) {
	store := NewObjectStore(filepath.Join(t.TempDir(), "objects"))
	hash, err := NewHash("000000000000000000000000000000000000000a")
	if err != nil {
		t.Fatalf("NewHash: %v", err)
	}
	if _, _, err := store.Get(hash); err == nil {
		t.Error("Get on unknown hash: want error, got nil")
	}
}

func TestObjectStore_Exists(t *testing.T) {
	store := NewObjectStore(filepath.Join(t.TempDir(), "objects"))
	hash, err := store.Put(KindBlob, []byte("content"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !store.Exists(hash) {
		t.Error("Exists: want true after Put")
	}

	other, err := NewHash("111111111111111111111111111111111111111a")
	if err != nil {
		t.Fatalf("NewHash: %v", err)
	}
	if store.Exists(other) {
		t.Error("Exists: want false for an unstored hash")
	}
}

func TestHash_ShortAndIsZero(t *testing.T) {
	var zero Hash
	if !zero.IsZero() {
		t.Error("zero value Hash.IsZero() = false, want true")
	}

	hash, err := NewHash("abcdef0123456789abcdef0123456789abcdef01")
	if err != nil {
		t.Fatalf("NewHash: %v", err)
	}
	if hash.IsZero() {
		t.Error("non-empty Hash.IsZero() = true, want false")
	}
	if hash.Short() != "abcdef0" {
		t.Errorf("Short() = %q, want %q", hash.Short(), "abcdef0")
	}
}

func TestNewHash_RejectsInvalid(t *testing.T) {
	cases := []string{"", "short", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"}
	for _, c := range cases {
		if _, err := NewHash(c); err == nil {
			t.Errorf("NewHash(%q): want error, got nil", c)
		}
	}
}
