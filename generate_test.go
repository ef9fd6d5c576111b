package matmul_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sbromberger/matmul"
)

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	first := matmul.Generate(rand.New(rand.NewSource(42)), 16, matmul.GenLo, matmul.GenHi)
	second := matmul.Generate(rand.New(rand.NewSource(42)), 16, matmul.GenLo, matmul.GenHi)
	require.Equal(t, first, second, "same seed must reproduce the matrix bit for bit")

	other := matmul.Generate(rand.New(rand.NewSource(43)), 16, matmul.GenLo, matmul.GenHi)
	require.NotEqual(t, first, other, "different seeds must produce different matrices")
}

func TestGenerateRange(t *testing.T) {
	t.Parallel()

	m := matmul.Generate(rand.New(rand.NewSource(1)), 32, -100, 101)
	require.Len(t, m, 32*32)
	for i, v := range m {
		require.GreaterOrEqual(t, v, float32(-100), "entry %d below range", i)
		require.Less(t, v, float32(101), "entry %d above range", i)
	}
}
