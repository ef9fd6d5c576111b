// Package chancomm runs a matmul worker group as goroutines in one process.
// Collectives move data through coordinator-staged shared buffers, with a
// cyclic barrier providing the group-wide rendezvous and the happens-before
// edges between stager and readers.
package chancomm

import (
	"fmt"
	"sync"

	"github.com/sbromberger/matmul"
)

// Group is a fixed-size set of in-process group members. Membership is set at
// construction and never changes.
type Group struct {
	size  int
	bar   *barrier
	stage []float32 // coordinator-published source for replicate/partition-send
	dst   []float32 // coordinator-owned destination for gather
}

// New creates a group of the given size and its per-rank barrier.
func New(size int) (*Group, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", matmul.ErrNoWorkers, size)
	}
	return &Group{size: size, bar: newBarrier(size)}, nil
}

// Comm returns the collective endpoint for one rank of the group.
func (g *Group) Comm(rank int) *Comm {
	return &Comm{g: g, rank: rank}
}

// Each invokes fn once per rank, each on its own goroutine, and waits for all
// of them to return.
func (g *Group) Each(fn func(c *Comm)) {
	var wg sync.WaitGroup
	for rank := 0; rank < g.size; rank++ {
		wg.Add(1)
		go func(c *Comm) {
			defer wg.Done()
			fn(c)
		}(g.Comm(rank))
	}
	wg.Wait()
}

// Comm is one rank's endpoint onto the group. It implements matmul.Comm.
type Comm struct {
	g    *Group
	rank int
}

var _ matmul.Comm = (*Comm)(nil)

// Rank returns this member's identity within the group.
func (c *Comm) Rank() int { return c.rank }

// Size returns the fixed group size.
func (c *Comm) Size() int { return c.g.size }

// Barrier blocks until every member of the group has entered it.
func (c *Comm) Barrier() { c.g.bar.await() }

// Replicate copies the coordinator's buf into every other rank's buf. All
// ranks must pass buffers of equal length.
func (c *Comm) Replicate(buf []float32) error {
	if c.rank == matmul.Coordinator {
		c.g.stage = buf
	}
	c.g.bar.await()
	var err error
	if c.rank != matmul.Coordinator {
		if len(buf) != len(c.g.stage) {
			err = fmt.Errorf("%w: replicate got %d, want %d", matmul.ErrBadBuffer, len(buf), len(c.g.stage))
		} else {
			copy(buf, c.g.stage)
		}
	}
	// second rendezvous: the coordinator's buffer is private again only once
	// every rank has finished copying
	c.g.bar.await()
	return err
}

// PartitionSend returns a fresh copy of the calling rank's row block of the
// coordinator's full buffer.
func (c *Comm) PartitionSend(full []float32, plan matmul.Plan) ([]float32, error) {
	if c.rank == matmul.Coordinator {
		c.g.stage = full
	}
	c.g.bar.await()
	bl := plan.BlockLen()
	var block []float32
	var err error
	if len(c.g.stage) != bl*c.g.size {
		err = fmt.Errorf("%w: partition-send got %d, want %d", matmul.ErrBadBuffer, len(c.g.stage), bl*c.g.size)
	} else {
		block = make([]float32, bl)
		copy(block, c.g.stage[c.rank*bl:(c.rank+1)*bl])
	}
	c.g.bar.await()
	return block, err
}

// Gather deposits every rank's block into a coordinator-owned full buffer in
// rank order and returns it on the coordinator, nil elsewhere.
func (c *Comm) Gather(block []float32) ([]float32, error) {
	if c.rank == matmul.Coordinator {
		c.g.dst = make([]float32, len(block)*c.g.size)
	}
	c.g.bar.await()
	var err error
	if len(c.g.dst) != len(block)*c.g.size {
		err = fmt.Errorf("%w: gather got %d, want %d", matmul.ErrBadBuffer, len(block)*c.g.size, len(c.g.dst))
	} else {
		copy(c.g.dst[c.rank*len(block):], block)
	}
	c.g.bar.await()
	if c.rank != matmul.Coordinator || err != nil {
		return nil, err
	}
	return c.g.dst, nil
}

// barrier is a cyclic rendezvous for a fixed number of participants.
type barrier struct {
	mu    sync.Mutex
	cond  *sync.Cond
	size  int
	count int
	gen   int
}

func newBarrier(size int) *barrier {
	b := &barrier{size: size}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// await blocks until size participants have called it, then releases them all
// and resets for the next cycle.
func (b *barrier) await() {
	b.mu.Lock()
	gen := b.gen
	b.count++
	if b.count == b.size {
		b.count = 0
		b.gen++
		b.cond.Broadcast()
	} else {
		for gen == b.gen {
			b.cond.Wait()
		}
	}
	b.mu.Unlock()
}
