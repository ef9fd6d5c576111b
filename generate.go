package matmul

import "math/rand"

// Generate returns an n×n row-major matrix filled with independent uniform
// draws in [lo, hi). The caller owns the random source; for a fixed seed the
// output is identical run over run on the same platform.
func Generate(rng *rand.Rand, n int, lo, hi float64) []float32 {
	m := make([]float32, n*n)
	for i := range m {
		m[i] = float32(lo + rng.Float64()*(hi-lo))
	}
	return m
}
