// Command matmul multiplies two randomly generated N×N matrices across a
// group of in-process workers.
//
// Usage:
//
//	matmul [-np workers] [-seed seed] [-o report] <matrix_size>
//
// The matrix size must be divisible by the worker count. The result summary
// goes to stdout (with the matrices themselves when N is small enough) and to
// a plain-text report file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/sbromberger/matmul"
	"github.com/sbromberger/matmul/chancomm"
)

func main() {
	np := flag.Int("np", 1, "worker count (must divide the matrix size)")
	seed := flag.Int64("seed", matmul.DefaultSeed, "seed for matrix generation")
	out := flag.String("o", matmul.DefaultReportPath, "report file path")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-np workers] [-seed seed] [-o report] <matrix_size>\n", os.Args[0])
		os.Exit(2)
	}
	n, err := strconv.Atoi(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid matrix size %q: must be a positive integer.\n", flag.Arg(0))
		os.Exit(2)
	}

	cfg := matmul.DefaultConfig(n)
	cfg.Seed = *seed

	g, err := chancomm.New(*np)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Starting matrix multiplication with %d workers...\n", *np)

	var res *matmul.Result
	errs := make([]error, *np)
	g.Each(func(c *chancomm.Comm) {
		r, err := matmul.Run(c, cfg)
		errs[c.Rank()] = err
		if c.Rank() == matmul.Coordinator {
			res = r
		}
	})
	for _, err := range errs {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fmt.Println("Finished multiplication.")
	if err := res.Report(os.Stdout, matmul.MaxConsoleMatrixSize); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// a failed report artifact is a warning, not a failed run
	if err := res.WriteFile(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report %s: %v\n", *out, err)
	}
}
