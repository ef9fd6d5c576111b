package matmul

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// MaxConsoleMatrixSize is the largest dimension for which the matrices are
	// echoed to the console.
	MaxConsoleMatrixSize = 16
	// MaxReportMatrixSize is the largest dimension for which the matrices are
	// rendered into the report artifact.
	MaxReportMatrixSize = 256
	// DefaultReportPath is where the report artifact is written.
	DefaultReportPath = "matrix_calculation.txt"
)

// FormatMatrix renders an n×n row-major matrix as a titled block of
// fixed-width columns: three decimal places, every entry right-aligned to the
// width of the widest rendered value.
func FormatMatrix(title string, m []float32, n int) string {
	width := 0
	for _, v := range m {
		if l := len(strconv.FormatFloat(float64(v), 'f', 3, 32)); l > width {
			width = l
		}
	}

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString(":\n")
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			fmt.Fprintf(&sb, "%*.3f ", width, m[i*n+j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Report writes the run summary to w, followed by the rendered A, B and C
// matrices when the dimension does not exceed maxN. Each matrix block is
// terminated by a blank line.
func (r *Result) Report(w io.Writer, maxN int) error {
	_, err := fmt.Fprintf(w, "Execution Time: %f seconds\nMatrix Size: %dx%d\nNumber of Workers: %d\n\n",
		r.Elapsed.Seconds(), r.Plan.N, r.Plan.N, r.Plan.Workers)
	if err != nil {
		return err
	}
	if r.Plan.N > maxN {
		return nil
	}
	for _, m := range []struct {
		title string
		data  []float32
	}{
		{"Matrix A", r.A},
		{"Matrix B", r.B},
		{"Matrix C", r.C},
	} {
		if _, err := fmt.Fprintf(w, "%s\n", FormatMatrix(m.title, m.data, r.Plan.N)); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile persists the report artifact at path, including the matrices when
// the dimension does not exceed MaxReportMatrixSize.
func (r *Result) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Report(f, MaxReportMatrixSize); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
