// Command matmul-mpi multiplies two randomly generated N×N matrices across
// MPI ranks. Run it under mpirun; the worker count is the number of ranks.
//
//	mpirun -np <ranks> matmul-mpi <matrix_size>
//
// Rank 0 is the coordinator: it generates the inputs, assembles the result,
// and writes the report.
package main

import (
	"fmt"
	"os"
	"strconv"

	mpi "github.com/sbromberger/gompi"

	"github.com/sbromberger/matmul"
	"github.com/sbromberger/matmul/mpicomm"
)

func main() {
	mpi.Start(true)
	o := mpi.NewCommunicator(nil)
	rank := o.Rank()

	// every rank parses identically so the group fails together
	if len(os.Args) < 2 {
		if rank == matmul.Coordinator {
			fmt.Fprintf(os.Stderr, "Usage: %s <matrix_size>\n", os.Args[0])
		}
		mpi.Stop()
		os.Exit(1)
	}
	n, err := strconv.Atoi(os.Args[1])
	if err != nil {
		if rank == matmul.Coordinator {
			fmt.Fprintf(os.Stderr, "Invalid matrix size %q: must be a positive integer.\n", os.Args[1])
		}
		mpi.Stop()
		os.Exit(1)
	}

	if rank == matmul.Coordinator {
		fmt.Printf("Starting matrix multiplication with %d workers...\n", o.Size())
	}

	res, err := matmul.Run(mpicomm.New(o), matmul.DefaultConfig(n))
	if err != nil {
		if rank == matmul.Coordinator {
			fmt.Fprintln(os.Stderr, err)
		}
		mpi.Stop()
		os.Exit(1)
	}

	if rank == matmul.Coordinator {
		fmt.Println("Finished multiplication.")
		if err := res.Report(os.Stdout, matmul.MaxConsoleMatrixSize); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if err := res.WriteFile(matmul.DefaultReportPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write report %s: %v\n", matmul.DefaultReportPath, err)
		}
	}

	mpi.Stop()
}
