package gitcore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ReadIndex parses the ".ugit/index" file into an ordered path->hash map.
// A missing index file (a freshly initialized repository) is not an
// error: it returns an empty map, matching spec.md section 4.3's "ordered
// mapping" with nothing staged yet.
func ReadIndex(gitDir string) (map[string]Hash, error) {
	path := filepath.Join(gitDir, "index")
	//nolint:gosec // G304: path is derived from the repository's own gitDir
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Hash{}, nil
		}
		return nil, fmt.Errorf("ReadIndex: %w", err)
	}
	defer f.Close()

	index := make(map[string]Hash)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		hashField, path, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("ReadIndex: line %d: missing path field: %q", lineNo, line)
		}
		hash, err := NewHash(hashField)
		if err != nil {
			return nil, fmt.Errorf("ReadIndex: line %d: %w", lineNo, err)
		}
		// A later line for the same path replaces the earlier entry,
		// matching StageFile's "replaces existing entry" semantics.
		index[path] = hash
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ReadIndex: %w", err)
	}

	return index, nil
}

// WriteIndex serializes index as sorted "<hash> <path>\n" lines, the
// canonical on-disk form required by spec.md section 8's round-trip
// invariant: read(write(M)) = M, and write(read(write(M))) is
// byte-for-byte identical to write(M).
//
// Paths containing a newline, and paths that would make the hash field
// ambiguous (a hash containing a space — impossible for a valid Hash, but
// checked defensively), are rejected so the format stays unambiguous to
// parse back.
func WriteIndex(gitDir string, index map[string]Hash) error {
	paths := make([]string, 0, len(index))
	for path := range index {
		if strings.ContainsAny(path, "\n") {
			return fmt.Errorf("WriteIndex: path %q contains a newline", path)
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var sb strings.Builder
	for _, path := range paths {
		hash := index[path]
		if strings.Contains(string(hash), " ") {
			return fmt.Errorf("WriteIndex: hash for %q contains a space", path)
		}
		fmt.Fprintf(&sb, "%s %s\n", hash, path)
	}

	return atomicWriteFile(filepath.Join(gitDir, "index"), []byte(sb.String()))
}

// ReadIndex reads the repository's current staging index.
func (r *Repository) ReadIndex() (map[string]Hash, error) {
	return ReadIndex(r.gitDir)
}

// WriteIndex replaces the repository's staging index with index.
func (r *Repository) WriteIndex(index map[string]Hash) error {
	return WriteIndex(r.gitDir, index)
}

// StageFile adds a single path (already hashed as the blob hash of its
// current content) to the index, replacing any existing entry for the
// same path. This is idempotent by path, per spec.md section 4.3.
func (r *Repository) StageFile(path string, hash Hash) error {
	index, err := r.ReadIndex()
	if err != nil {
		return err
	}
	index[path] = hash
	return r.WriteIndex(index)
}
