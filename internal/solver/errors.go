package solver

import "errors"

// Sentinel errors returned by this package. Callers should use
// errors.Is against these rather than matching on message text.
var (
	// ErrMalformedCube is returned when a cube state fails to satisfy
	// the group invariants (orientation sums, permutation parity) or
	// cannot be parsed from its input representation.
	ErrMalformedCube = errors.New("solver: malformed cube state")

	// ErrTableLoad is returned when a pruning table file cannot be
	// read back into memory (bad magic, truncated record, version
	// mismatch).
	ErrTableLoad = errors.New("solver: table load failed")

	// ErrTableSave is returned when a pruning table fails to persist
	// to disk.
	ErrTableSave = errors.New("solver: table save failed")

	// ErrInvalidConfig is returned when an Engine is constructed with
	// an out-of-range thread count or an unrecognized algorithm name.
	ErrInvalidConfig = errors.New("solver: invalid configuration")

	// ErrNoSolution is returned when a search exhausts its configured
	// depth bound without finding the goal.
	ErrNoSolution = errors.New("solver: no solution found within bound")
)
