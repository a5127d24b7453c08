// Package modeq solves quadratic and linear modular equations
//
//	a*x^2 + b*x + c = d  (mod n)
//	a*x + b = c          (mod n)
//
// over uint64 and 128-bit moduli. The quadratic pipeline factorizes the
// modulus, solves the equation modulo each prime power by completing the
// square, a modular square root and Hensel lifting, and recombines the
// residue classes with the Chinese remainder theorem. Solutions are
// returned sorted ascending with no duplicates; an unsolvable equation
// yields a nil slice and a nil error.
package modeq

import (
	"math/bits"

	"github.com/rs/zerolog"

	"github.com/modeq/modeq/arith"
	"github.com/modeq/modeq/factor"
	"github.com/modeq/modeq/logger"
)

// DefaultMaxSolutions caps the number of solutions a single equation may
// produce before solving fails with ErrTooManySolutions. Highly composite
// moduli make the solution count explode multiplicatively.
const DefaultMaxSolutions = 1 << 20

// QuadEq is the quadratic equation a*x^2 + b*x + c = d (mod n) with
// coefficients already reduced into the ring.
type QuadEq[T comparable] struct {
	A, B, C, D T
	N          T
}

// LinEq is the linear equation a*x + b = c (mod n) with coefficients
// already reduced into the ring.
type LinEq[T comparable] struct {
	A, B, C T
	N       T
}

// Solver solves equations of one integer width. A Solver is safe for
// concurrent use.
type Solver[T comparable] struct {
	ring    arith.Ring[T]
	fact    *factor.Factorizer[T]
	maxSols uint64
	log     zerolog.Logger
}

type solverOptions struct {
	maxSols    uint64
	factorOpts []factor.Option
}

// SolverOption configures a Solver.
type SolverOption func(*solverOptions)

// WithMaxSolutions overrides the solution-count cap.
func WithMaxSolutions(n uint64) SolverOption {
	return func(o *solverOptions) { o.maxSols = n }
}

// WithWorkers sets the factorization worker count.
func WithWorkers(n int) SolverOption {
	return func(o *solverOptions) {
		o.factorOpts = append(o.factorOpts, factor.WithWorkers(n))
	}
}

// WithStage1Bound overrides the elliptic-curve stage-1 smoothness bound
// used during factorization.
func WithStage1Bound(b1 uint64) SolverOption {
	return func(o *solverOptions) {
		o.factorOpts = append(o.factorOpts, factor.WithStage1Bound(b1))
	}
}

// NewSolver returns a Solver over the given ring. The ring must be a
// checked variant: the pipeline passes operands that may exceed the
// modulus of an individual operation.
func NewSolver[T comparable](r arith.Ring[T], opts ...SolverOption) *Solver[T] {
	o := solverOptions{maxSols: DefaultMaxSolutions}
	for _, opt := range opts {
		opt(&o)
	}
	return &Solver[T]{
		ring:    r,
		fact:    factor.New(r, o.factorOpts...),
		maxSols: o.maxSols,
		log:     logger.Logger().With().Str("component", "solver").Logger(),
	}
}

// capMul multiplies two solution counts, saturating at overflow. Counts
// only ever need to be compared against the cap, so saturation is enough.
func capMul(x, y uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	if hi != 0 {
		return 1<<64 - 1
	}
	return lo
}
