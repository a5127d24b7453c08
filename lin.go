package modeq

import (
	"github.com/modeq/modeq/arith"
)

// residueSet is the solution set of an equation modulo mod. Either roots
// holds the sorted solutions, or all marks every residue class a solution.
// An empty non-all set means the equation is unsolvable modulo mod.
type residueSet[T comparable] struct {
	mod   T
	all   bool
	roots []T
}

func (s residueSet[T]) empty() bool { return !s.all && len(s.roots) == 0 }

// count returns the number of solutions, saturating at 2^64-1.
func (s residueSet[T]) count(r arith.Ring[T]) uint64 {
	if !s.all {
		return uint64(len(s.roots))
	}
	if v, ok := r.ToUint64(s.mod); ok {
		return v
	}
	return 1<<64 - 1
}

// linearMod solves b*x = t (mod q) for any modulus q >= 2. The solutions
// form gcd(b, q) classes spaced q/gcd apart, so the gcd is checked against
// the solution cap before they are materialized.
func (s *Solver[T]) linearMod(b, t, q T) (residueSet[T], error) {
	r := s.ring
	zero := r.Zero()
	set := residueSet[T]{mod: q}

	if b == zero {
		set.all = t == zero
		return set, nil
	}

	g := arith.GCD(r, b, q)
	if _, rem := r.QuoRem(t, g); rem != zero {
		return set, nil
	}
	if r.Cmp(g, r.FromUint64(s.maxSols)) > 0 {
		return set, ErrTooManySolutions
	}

	qg, _ := r.QuoRem(q, g)
	bg, _ := r.QuoRem(b, g)
	tg, _ := r.QuoRem(t, g)
	invBG, _ := arith.Inv(r, bg, qg)
	base := r.Mul(tg, invBG, qg)

	gU, _ := r.ToUint64(g)
	set.roots = make([]T, 0, gU)
	x := base
	for i := uint64(0); i < gU; i++ {
		set.roots = append(set.roots, x)
		x, _ = r.AddCheck(x, qg)
	}
	return set, nil
}

// materialize expands an all-residues set into explicit sorted roots,
// enforcing the solution cap.
func (s *Solver[T]) materialize(set residueSet[T]) ([]T, error) {
	r := s.ring
	if !set.all {
		return set.roots, nil
	}
	n, ok := r.ToUint64(set.mod)
	if !ok || n > s.maxSols {
		return nil, ErrTooManySolutions
	}
	roots := make([]T, 0, n)
	x := r.Zero()
	for i := uint64(0); i < n; i++ {
		roots = append(roots, x)
		x, _ = r.AddCheck(x, r.One())
	}
	return roots, nil
}
