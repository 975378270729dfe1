package gitcore

import "errors"

// Sentinel errors forming the error taxonomy. Callers distinguish failure
// kinds with errors.Is; wrapping functions always attach the offending path
// or hash via fmt.Errorf's %w so the sentinel survives unwrapping.
var (
	// ErrNotARepository is returned when an operation needs a .ugit
	// directory but none was found walking upward from the start path.
	ErrNotARepository = errors.New("not a ugit repository")

	// ErrPathNotFound is returned when an add target does not exist on
	// disk.
	ErrPathNotFound = errors.New("path not found")

	// ErrUnknownObject is returned when a hash does not resolve to any
	// object in the store.
	ErrUnknownObject = errors.New("unknown object")

	// ErrCorrupt is returned when an object's on-disk framing is invalid:
	// missing NUL separator, or a length prefix that disagrees with the
	// actual payload length.
	ErrCorrupt = errors.New("corrupt object")

	// ErrEmptyMessage is returned by Commit when the trimmed message is
	// empty.
	ErrEmptyMessage = errors.New("empty commit message")

	// ErrEmptyIndex is returned by Commit when nothing is staged. This is
	// reported as an informational condition by callers, not a failure.
	ErrEmptyIndex = errors.New("nothing to commit")

	// ErrBadKind is returned when an object is read expecting one kind
	// (e.g. commit) but the stored object is of another kind.
	ErrBadKind = errors.New("unexpected object kind")

	// ErrUnknownRevision is returned when a checkout target (or a revision
	// named on the command line) does not resolve to any known commit hash
	// or branch name.
	ErrUnknownRevision = errors.New("unknown commit or branch")
)
