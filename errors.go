package matmul

import "errors"

var (
	// ErrNonPositiveSize is returned when the requested matrix dimension is zero
	// or negative.
	ErrNonPositiveSize = errors.New("matmul: matrix size must be positive")

	// ErrNotDivisible is returned when the matrix dimension cannot be split into
	// equal row blocks across the worker group. Uneven partitioning is
	// unsupported; callers must choose a size divisible by the group size.
	ErrNotDivisible = errors.New("matmul: matrix size not divisible by worker count")

	// ErrNoWorkers is returned when the worker group is empty.
	ErrNoWorkers = errors.New("matmul: worker group must have at least one member")

	// ErrBadBuffer is returned by a Comm implementation when a buffer's length
	// does not match what the partition plan requires.
	ErrBadBuffer = errors.New("matmul: buffer length does not match plan")
)
