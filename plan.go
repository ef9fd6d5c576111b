package matmul

import "fmt"

// Plan describes a row-block decomposition of an n×n matrix across a
// fixed-size worker group: w contiguous blocks of n/w rows each, assigned in
// rank order.
type Plan struct {
	N             int // matrix dimension
	Workers       int // worker-group size
	RowsPerWorker int // rows in each worker's block
}

// NewPlan validates n against the group size and returns the resulting plan.
// Every group member must call this with identical arguments before any
// collective operation so that an invalid configuration stops the whole group,
// not part of it.
func NewPlan(n, workers int) (Plan, error) {
	if workers <= 0 {
		return Plan{}, fmt.Errorf("%w: got %d", ErrNoWorkers, workers)
	}
	if n <= 0 {
		return Plan{}, fmt.Errorf("%w: got %d", ErrNonPositiveSize, n)
	}
	if n%workers != 0 {
		return Plan{}, fmt.Errorf("%w: %d rows over %d workers", ErrNotDivisible, n, workers)
	}
	return Plan{N: n, Workers: workers, RowsPerWorker: n / workers}, nil
}

// BlockLen returns the number of elements in one worker's row block.
func (p Plan) BlockLen() int {
	return p.RowsPerWorker * p.N
}

// RowRange returns the half-open interval [lo, hi) of matrix rows owned by
// the given rank.
func (p Plan) RowRange(rank int) (lo, hi int) {
	lo = rank * p.RowsPerWorker
	return lo, lo + p.RowsPerWorker
}
