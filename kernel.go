package matmul

// MultiplyBlock multiplies a row block of A by the full matrix B and returns
// the corresponding row block of C. aBlock holds rows×n elements, b holds n×n.
// Accumulation runs k = 0..n-1 into a freshly zeroed buffer; that order is
// load-bearing, since float32 addition is not associative and results must be
// reproducible across worker counts.
func MultiplyBlock(aBlock, b []float32, n int) []float32 {
	rows := len(aBlock) / n
	c := make([]float32, rows*n)
	for i := 0; i < rows; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				c[i*n+j] += aBlock[i*n+k] * b[k*n+j]
			}
		}
	}
	return c
}
