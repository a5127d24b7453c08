// Command modeq solves modular equations from the command line.
//
// Four positional arguments solve the linear equation a*x + b = c (mod n),
// five solve the quadratic a*x^2 + b*x + c = d (mod n). Coefficients may be
// negative and may use underscore digit separators; the modulus must be
// positive and fit in 128 bits.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/modeq/modeq"
	"github.com/modeq/modeq/arith"
	"github.com/modeq/modeq/logger"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  modeq [flags] a b c n    solve a*x + b = c (mod n)
  modeq [flags] a b c d n  solve a*x^2 + b*x + c = d (mod n)

flags:
`)
	flag.PrintDefaults()
}

func main() {
	version := flag.Bool("version", false, "print the version and exit")
	workers := flag.Int("workers", 0, "factorization worker count (0 = automatic)")
	timeout := flag.Duration("timeout", 0, "abort solving after this duration (0 = no limit)")
	quiet := flag.Bool("q", false, "suppress log output")
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Println(modeq.Version)
		return
	}
	if *quiet {
		logger.Disable()
	}

	args := flag.Args()
	if len(args) != 4 && len(args) != 5 {
		usage()
		os.Exit(2)
	}

	eq, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "modeq:", err)
		os.Exit(2)
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	if err := run(ctx, eq, *workers); err != nil {
		fmt.Fprintln(os.Stderr, "modeq:", err)
		os.Exit(1)
	}
}

// run dispatches on the width of the modulus and prints the solutions.
func run(ctx context.Context, eq *bigEq, workers int) error {
	var opts []modeq.SolverOption
	if workers > 0 {
		opts = append(opts, modeq.WithWorkers(workers))
	}
	if eq.n.IsUint64() {
		s := modeq.NewSolver(arith.NewU64(), opts...)
		sols, err := solveWidth(ctx, s, eq, func(v *big.Int) uint64 { return v.Uint64() })
		if err != nil {
			return err
		}
		printSolutions(eq.n, sols, func(v uint64) string { return fmt.Sprintf("%d", v) })
		return nil
	}
	s := modeq.NewSolver(arith.NewU128(), opts...)
	conv := func(v *big.Int) arith.Uint128 {
		u, _ := arith.U128FromBig(v)
		return u
	}
	sols, err := solveWidth(ctx, s, eq, conv)
	if err != nil {
		return err
	}
	printSolutions(eq.n, sols, arith.Uint128.String)
	return nil
}

func solveWidth[T comparable](ctx context.Context, s *modeq.Solver[T], eq *bigEq, conv func(*big.Int) T) ([]T, error) {
	n := conv(eq.n)
	if eq.quadratic {
		return s.SolveQuad(ctx, modeq.QuadEq[T]{
			A: conv(eq.a), B: conv(eq.b), C: conv(eq.c), D: conv(eq.d), N: n,
		})
	}
	return s.SolveLin(modeq.LinEq[T]{
		A: conv(eq.a), B: conv(eq.b), C: conv(eq.c), N: n,
	})
}

func printSolutions[T any](n *big.Int, sols []T, format func(T) string) {
	if len(sols) == 0 {
		fmt.Printf("There is no solution in Z/%sZ\n", n)
		return
	}
	fmt.Printf("Solutions x in Z/%sZ\n", n)
	for i, v := range sols {
		fmt.Printf("x_%d: %s\n", i+1, format(v))
	}
}
