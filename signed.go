package modeq

import (
	"context"

	"golang.org/x/exp/constraints"

	"github.com/modeq/modeq/arith"
)

// QuadEqSigned is QuadEq with signed coefficients; each coefficient is
// reduced into [0, n) before solving, so e.g. A = -1 means n-1.
type QuadEqSigned[S constraints.Signed, T comparable] struct {
	A, B, C, D S
	N          T
}

// LinEqSigned is LinEq with signed coefficients.
type LinEqSigned[S constraints.Signed, T comparable] struct {
	A, B, C S
	N       T
}

// SolveQuadSigned reduces the signed coefficients of eq mod eq.N and
// solves the resulting equation.
func SolveQuadSigned[S constraints.Signed, T comparable](ctx context.Context, s *Solver[T], eq QuadEqSigned[S, T]) ([]T, error) {
	r := s.ring
	if r.Cmp(eq.N, r.One()) <= 0 {
		return nil, ErrInvalidModulus
	}
	return s.SolveQuad(ctx, QuadEq[T]{
		A: signedMod(r, eq.A, eq.N),
		B: signedMod(r, eq.B, eq.N),
		C: signedMod(r, eq.C, eq.N),
		D: signedMod(r, eq.D, eq.N),
		N: eq.N,
	})
}

// SolveLinSigned reduces the signed coefficients of eq mod eq.N and
// solves the resulting equation.
func SolveLinSigned[S constraints.Signed, T comparable](s *Solver[T], eq LinEqSigned[S, T]) ([]T, error) {
	r := s.ring
	if r.Cmp(eq.N, r.One()) <= 0 {
		return nil, ErrInvalidModulus
	}
	return s.SolveLin(LinEq[T]{
		A: signedMod(r, eq.A, eq.N),
		B: signedMod(r, eq.B, eq.N),
		C: signedMod(r, eq.C, eq.N),
		N: eq.N,
	})
}

// signedMod maps a signed value into [0, n).
func signedMod[S constraints.Signed, T comparable](r arith.Ring[T], v S, n T) T {
	w := int64(v)
	if w >= 0 {
		return arith.Mod(r, r.FromUint64(uint64(w)), n)
	}
	// magnitude of w, safe at the minimum value
	mag := uint64(-(w + 1)) + 1
	return r.Sub(r.Zero(), arith.Mod(r, r.FromUint64(mag), n), n)
}
