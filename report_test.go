package matmul_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sbromberger/matmul"
)

func TestFormatMatrixAlignsToWidestValue(t *testing.T) {
	t.Parallel()

	got := matmul.FormatMatrix("Matrix A", []float32{3.5, -123.456, 0.25, 7}, 2)
	want := "Matrix A:\n" +
		"   3.500 -123.456 \n" +
		"   0.250    7.000 \n"
	require.Equal(t, want, got)
}

func TestFormatMatrixUniformWidth(t *testing.T) {
	t.Parallel()

	got := matmul.FormatMatrix("Matrix B", []float32{1, 2, 3, 4}, 2)
	want := "Matrix B:\n" +
		"1.000 2.000 \n" +
		"3.000 4.000 \n"
	require.Equal(t, want, got)
}

func testResult() *matmul.Result {
	return &matmul.Result{
		Plan:    matmul.Plan{N: 2, Workers: 1, RowsPerWorker: 2},
		Seed:    matmul.DefaultSeed,
		Elapsed: 1500 * time.Millisecond,
		A:       []float32{1, 2, 3, 4},
		B:       []float32{5, 6, 7, 8},
		C:       []float32{19, 22, 43, 50},
	}
}

func TestReportIncludesMatricesBelowThreshold(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	require.NoError(t, testResult().Report(&sb, matmul.MaxConsoleMatrixSize))

	out := sb.String()
	require.Contains(t, out, "Execution Time: 1.500000 seconds")
	require.Contains(t, out, "Matrix Size: 2x2")
	require.Contains(t, out, "Number of Workers: 1")
	for _, title := range []string{"Matrix A:", "Matrix B:", "Matrix C:"} {
		require.Contains(t, out, title)
	}
	require.Contains(t, out, "19.000 22.000 \n43.000 50.000 \n\n", "each matrix block ends with a blank line")
}

func TestReportSummaryOnlyAboveThreshold(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	require.NoError(t, testResult().Report(&sb, 1))

	out := sb.String()
	require.Contains(t, out, "Matrix Size: 2x2")
	require.NotContains(t, out, "Matrix A:")
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "matrix_calculation.txt")
	require.NoError(t, testResult().WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "Number of Workers: 1")
	require.Contains(t, string(raw), "Matrix C:")
}
