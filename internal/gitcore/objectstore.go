package gitcore

import (
	"bytes"
	"context"
	"crypto/sha1" //nolint:gosec // ugit follows Git's object model; SHA-1 here is a content-addressing
	// scheme, not a security boundary.
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// ObjectStore is the content-addressed, write-once key/value store backing
// a repository's objects/ directory. Keys are the 40-hex SHA-1 of the
// object's framed bytes; values are those exact bytes.
type ObjectStore struct {
	dir string
}

// NewObjectStore returns an ObjectStore rooted at dir (a repository's
// ".ugit/objects" directory). The directory is not created here; callers
// that need a fresh store call EnsureDir.
func NewObjectStore(dir string) *ObjectStore {
	return &ObjectStore{dir: dir}
}

// EnsureDir creates the objects directory if it does not already exist.
func (s *ObjectStore) EnsureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

// frame returns the exact bytes stored on disk for an object of the given
// kind and payload: "<kind> <decimal-len>\0<payload>".
func frame(kind ObjectKind, payload []byte) []byte {
	header := fmt.Sprintf("%s %d\x00", kind, len(payload))
	buf := make([]byte, 0, len(header)+len(payload))
	buf = append(buf, header...)
	buf = append(buf, payload...)
	return buf
}

// hashFramed returns the lowercase 40-hex SHA-1 digest of framed bytes.
func hashFramed(framed []byte) Hash {
	sum := sha1.Sum(framed) //nolint:gosec // see package-level rationale above
	return Hash(fmt.Sprintf("%x", sum))
}

// path returns the on-disk path for an object with the given hash.
func (s *ObjectStore) path(hash Hash) string {
	return filepath.Join(s.dir, string(hash))
}

// Exists reports whether an object with the given hash is already stored.
func (s *ObjectStore) Exists(hash Hash) bool {
	_, err := os.Stat(s.path(hash))
	return err == nil
}

// Put stores payload framed as kind and returns its hash. If an object with
// that hash already exists, Put is a no-op (content addressing guarantees
// the existing bytes are identical) and returns the hash immediately.
//
// Writes go through a temp file in the same directory, synced and renamed
// into place, so a crash leaves either no file or a complete one — never a
// torn object. The rename is retried a bounded number of times to absorb
// transient OS-level contention (e.g. a concurrent reader briefly holding
// the destination open on platforms where that blocks a rename).
func (s *ObjectStore) Put(kind ObjectKind, payload []byte) (Hash, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("Put: invalid object kind %q", kind)
	}

	framed := frame(kind, payload)
	hash := hashFramed(framed)

	if s.Exists(hash) {
		return hash, nil
	}

	if err := s.EnsureDir(); err != nil {
		return "", fmt.Errorf("Put: creating objects dir: %w", err)
	}

	tmpName := filepath.Join(s.dir, fmt.Sprintf(".tmp-%d-%d", os.Getpid(), rand.Int63())) //nolint:gosec // not security sensitive
	//nolint:gosec // G302: object files are not secrets
	tmp, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("Put: creating temp object: %w", err)
	}
	_, err = tmp.Write(framed)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("Put: writing temp object: %w", err)
	}

	dest := s.path(hash)
	backoff := retry.WithMaxRetries(5, retry.NewConstant(10*time.Millisecond))
	renameErr := retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		err := os.Rename(tmpName, dest)
		if err != nil && !errors.Is(err, os.ErrExist) {
			return retry.RetryableError(err)
		}
		return err
	})
	if renameErr != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("Put: renaming object into place: %w", renameErr)
	}

	return hash, nil
}

// Get reads the object stored under hash and returns its kind and payload.
// Returns an error wrapping ErrUnknownObject if no such object exists, or
// ErrCorrupt if the stored framing is malformed.
func (s *ObjectStore) Get(hash Hash) (ObjectKind, []byte, error) {
	//nolint:gosec // G304: hash is validated 40-hex before reaching here by callers
	data, err := os.ReadFile(s.path(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("%w: %s", ErrUnknownObject, hash)
		}
		return "", nil, fmt.Errorf("Get: reading object %s: %w", hash, err)
	}

	nullIdx := bytes.IndexByte(data, 0)
	if nullIdx == -1 {
		return "", nil, fmt.Errorf("%w: %s: missing NUL separator", ErrCorrupt, hash)
	}

	header := string(data[:nullIdx])
	payload := data[nullIdx+1:]

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("%w: %s: malformed header %q", ErrCorrupt, hash, header)
	}

	kind := ObjectKind(parts[0])
	if !kind.Valid() {
		return "", nil, fmt.Errorf("%w: %s: unknown kind %q", ErrCorrupt, hash, parts[0])
	}

	declaredLen, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: bad length field %q", ErrCorrupt, hash, parts[1])
	}
	if declaredLen != len(payload) {
		return "", nil, fmt.Errorf("%w: %s: length mismatch: header says %d, payload is %d bytes",
			ErrCorrupt, hash, declaredLen, len(payload))
	}

	return kind, payload, nil
}

// GetKind reads an object and returns only its kind, verifying the stored
// length matches but without returning the payload; used by callers that only need
// to check a hash resolves to the expected kind (e.g. commit vs. tree).
func (s *ObjectStore) GetKind(hash Hash) (ObjectKind, error) {
	kind, _, err := s.Get(hash)
	return kind, err
}
