package modeq

import (
	"context"
	"fmt"

	"github.com/modeq/modeq/arith"
)

// SolveQuad returns the sorted solutions of eq, or (nil, nil) when no
// solution exists. The context bounds the factorization of the modulus,
// the only unbounded stage of the pipeline.
func (s *Solver[T]) SolveQuad(ctx context.Context, eq QuadEq[T]) ([]T, error) {
	r := s.ring
	n := eq.N
	if r.Cmp(n, r.One()) <= 0 {
		return nil, ErrInvalidModulus
	}

	a := arith.Mod(r, eq.A, n)
	b := arith.Mod(r, eq.B, n)
	// move the constant to the right-hand side: a*x^2 + b*x = d - c
	t := r.Sub(arith.Mod(r, eq.D, n), arith.Mod(r, eq.C, n), n)

	if a == r.Zero() {
		return s.solveLinear(b, t, n)
	}

	fac, err := s.fact.Factorize(ctx, n)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("n", fmt.Sprintf("%v", n)).Int("primes", len(fac)).Msg("modulus factorized")

	sets := make([]residueSet[T], 0, len(fac))
	for _, pp := range fac {
		set, err := s.solvePrimePower(a, b, t, pp.Prime, pp.Exp)
		if err != nil {
			return nil, err
		}
		if set.empty() {
			return nil, nil
		}
		sets = append(sets, set)
	}
	return s.combine(sets, n)
}

// SolveLin returns the sorted solutions of eq, or (nil, nil) when no
// solution exists. Linear equations are solved directly by the extended
// Euclidean algorithm with no factorization.
func (s *Solver[T]) SolveLin(eq LinEq[T]) ([]T, error) {
	r := s.ring
	n := eq.N
	if r.Cmp(n, r.One()) <= 0 {
		return nil, ErrInvalidModulus
	}
	b := arith.Mod(r, eq.A, n)
	t := r.Sub(arith.Mod(r, eq.C, n), arith.Mod(r, eq.B, n), n)
	return s.solveLinear(b, t, n)
}

func (s *Solver[T]) solveLinear(b, t, n T) ([]T, error) {
	set, err := s.linearMod(b, t, n)
	if err != nil {
		return nil, err
	}
	if set.empty() {
		return nil, nil
	}
	return s.materialize(set)
}
