// Package matmul multiplies dense square float32 matrices across a fixed-size
// worker group using row-block decomposition. The coordinator (rank 0) owns
// the full matrices; matrix B is replicated to every worker, A is split into
// contiguous row blocks, each worker multiplies its block locally, and the
// result blocks are gathered back in rank order.
//
// Data movement is expressed through the Comm interface, so the same protocol
// runs over in-process goroutines (package chancomm) or MPI ranks (package
// mpicomm) without change.
package matmul

import (
	"math/rand"
	"time"
)

// Coordinator is the rank that owns the full matrices and emits the report.
const Coordinator = 0

// Defaults carried over from the reference runs: seed 42, entries drawn
// uniformly from [-100, 101).
const (
	DefaultSeed = 42
	GenLo       = -100
	GenHi       = 101
)

// Comm is the collective surface one group member uses during a run. Every
// method is a group-wide rendezvous: a call does not complete until the whole
// group has reached and completed the same operation, and all members must
// invoke the operations in the same order.
type Comm interface {
	// Rank returns this member's identity in [0, Size()).
	Rank() int
	// Size returns the fixed worker-group size.
	Size() int
	// Barrier blocks until every member of the group has entered it.
	Barrier()
	// Replicate distributes the coordinator's buf to every member. On
	// non-coordinator ranks buf is overwritten with a byte-for-byte copy;
	// all ranks must pass buffers of equal length.
	Replicate(buf []float32) error
	// PartitionSend splits the coordinator's full buffer into contiguous
	// row blocks per plan and returns the calling rank's own block. full is
	// ignored on non-coordinator ranks.
	PartitionSend(full []float32, plan Plan) ([]float32, error)
	// Gather collects equal-length blocks from every member into one full
	// buffer, rank 0's block first. The assembled buffer is returned on the
	// coordinator and is nil on every other rank.
	Gather(block []float32) ([]float32, error)
}

// Config holds the parameters a run is keyed on. Every group member must call
// Run with an identical Config.
type Config struct {
	N    int   // matrix dimension
	Seed int64 // seed for input generation on the coordinator
	Lo   float64
	Hi   float64 // generation range [Lo, Hi)
}

// DefaultConfig returns the Config for an n×n run with the default seed and
// generation range.
func DefaultConfig(n int) Config {
	return Config{N: n, Seed: DefaultSeed, Lo: GenLo, Hi: GenHi}
}

// Result is produced on the coordinator once the whole group has finished.
// Elapsed spans exactly the distribute→compute→collect sequence, bracketed by
// group barriers so no single member's start or finish skews it.
type Result struct {
	Plan    Plan
	Seed    int64
	Elapsed time.Duration
	A, B, C []float32
}

// Run executes one multiplication as the group member represented by comm.
// All members validate the configuration identically before any collective
// operation, so an invalid configuration stops the whole group with the same
// error and no data movement. The coordinator's call returns the assembled
// Result; every other member returns (nil, nil).
func Run(comm Comm, cfg Config) (*Result, error) {
	plan, err := NewPlan(cfg.N, comm.Size())
	if err != nil {
		return nil, err
	}

	n := cfg.N
	var a, b []float32
	if comm.Rank() == Coordinator {
		rng := rand.New(rand.NewSource(cfg.Seed))
		a = Generate(rng, n, cfg.Lo, cfg.Hi)
		b = Generate(rng, n, cfg.Lo, cfg.Hi)
	} else {
		b = make([]float32, n*n)
	}

	comm.Barrier()
	start := time.Now()

	if err := comm.Replicate(b); err != nil {
		return nil, err
	}
	local, err := comm.PartitionSend(a, plan)
	if err != nil {
		return nil, err
	}

	localC := MultiplyBlock(local, b, n)

	c, err := comm.Gather(localC)
	if err != nil {
		return nil, err
	}

	comm.Barrier()
	elapsed := time.Since(start)

	if comm.Rank() != Coordinator {
		return nil, nil
	}
	return &Result{Plan: plan, Seed: cfg.Seed, Elapsed: elapsed, A: a, B: b, C: c}, nil
}
