// Package mpicomm runs a matmul worker group as MPI ranks via gompi. Blocks
// travel gob-encoded over point-to-point byte messages; each collective uses
// its own tag so the three data-movement phases cannot be confused even
// though they always run in the same order.
package mpicomm

import (
	"bytes"
	"encoding/gob"
	"fmt"

	mpi "github.com/sbromberger/gompi"

	"github.com/sbromberger/matmul"
)

const (
	tagReplicate = iota + 1
	tagPartition
	tagGather
)

// Comm adapts a gompi communicator to the matmul collective surface. It
// implements matmul.Comm; rank and group size come from the MPI runtime.
type Comm struct {
	o *mpi.Communicator
}

var _ matmul.Comm = (*Comm)(nil)

// New wraps an established communicator. The caller remains responsible for
// mpi.Start/mpi.Stop.
func New(o *mpi.Communicator) *Comm {
	return &Comm{o: o}
}

// Rank returns this process's MPI rank.
func (c *Comm) Rank() int { return c.o.Rank() }

// Size returns the number of ranks in the communicator.
func (c *Comm) Size() int { return c.o.Size() }

// Barrier blocks until every rank has entered it.
func (c *Comm) Barrier() { c.o.Barrier() }

// Replicate sends the coordinator's buf to every other rank and overwrites
// buf on the receiving side with an identical copy.
func (c *Comm) Replicate(buf []float32) error {
	if c.Rank() == matmul.Coordinator {
		payload, err := encode(buf)
		if err != nil {
			return err
		}
		for dest := 1; dest < c.Size(); dest++ {
			c.o.SendBytes(payload, dest, tagReplicate)
		}
		return nil
	}

	raw, _ := c.o.MrecvBytes(matmul.Coordinator, tagReplicate)
	vals, err := decode(raw)
	if err != nil {
		return err
	}
	if len(vals) != len(buf) {
		return fmt.Errorf("%w: replicate got %d, want %d", matmul.ErrBadBuffer, len(vals), len(buf))
	}
	copy(buf, vals)
	return nil
}

// PartitionSend sends each rank its contiguous row block of the coordinator's
// full buffer and returns the calling rank's block.
func (c *Comm) PartitionSend(full []float32, plan matmul.Plan) ([]float32, error) {
	bl := plan.BlockLen()
	if c.Rank() == matmul.Coordinator {
		if len(full) != bl*c.Size() {
			return nil, fmt.Errorf("%w: partition-send got %d, want %d", matmul.ErrBadBuffer, len(full), bl*c.Size())
		}
		for dest := 1; dest < c.Size(); dest++ {
			payload, err := encode(full[dest*bl : (dest+1)*bl])
			if err != nil {
				return nil, err
			}
			c.o.SendBytes(payload, dest, tagPartition)
		}
		block := make([]float32, bl)
		copy(block, full[:bl])
		return block, nil
	}

	raw, _ := c.o.MrecvBytes(matmul.Coordinator, tagPartition)
	block, err := decode(raw)
	if err != nil {
		return nil, err
	}
	if len(block) != bl {
		return nil, fmt.Errorf("%w: partition-send got %d, want %d", matmul.ErrBadBuffer, len(block), bl)
	}
	return block, nil
}

// Gather collects every rank's block at the coordinator in rank order.
func (c *Comm) Gather(block []float32) ([]float32, error) {
	if c.Rank() != matmul.Coordinator {
		payload, err := encode(block)
		if err != nil {
			return nil, err
		}
		c.o.SendBytes(payload, matmul.Coordinator, tagGather)
		return nil, nil
	}

	full := make([]float32, len(block)*c.Size())
	copy(full, block)
	// receive in rank order so block k always lands at offset k*len(block)
	for src := 1; src < c.Size(); src++ {
		raw, _ := c.o.MrecvBytes(src, tagGather)
		part, err := decode(raw)
		if err != nil {
			return nil, err
		}
		if len(part) != len(block) {
			return nil, fmt.Errorf("%w: gather got %d from rank %d, want %d", matmul.ErrBadBuffer, len(part), src, len(block))
		}
		copy(full[src*len(block):], part)
	}
	return full, nil
}

func encode(vals []float32) ([]byte, error) {
	var b bytes.Buffer
	if err := gob.NewEncoder(&b).Encode(vals); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func decode(raw []byte) ([]float32, error) {
	var vals []float32
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&vals); err != nil {
		return nil, err
	}
	return vals, nil
}
