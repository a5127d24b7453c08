package modeq

import (
	"github.com/modeq/modeq/arith"
)

// combine recombines per-prime-power residue sets into solutions mod n by
// the Chinese remainder theorem. The total count is the product of the
// set sizes; it is checked against the cap before any set is materialized.
func (s *Solver[T]) combine(sets []residueSet[T], n T) ([]T, error) {
	r := s.ring

	total := uint64(1)
	for _, set := range sets {
		total = capMul(total, set.count(r))
	}
	if total > s.maxSols {
		return nil, ErrTooManySolutions
	}

	// CRT coefficients: coef_i = M_i * (M_i^-1 mod q_i), M_i = n/q_i
	parts := make([][]T, len(sets))
	coefs := make([]T, len(sets))
	for i, set := range sets {
		roots, err := s.materialize(set)
		if err != nil {
			return nil, err
		}
		parts[i] = roots
		m, _ := r.QuoRem(n, set.mod)
		inv, _ := arith.Inv(r, arith.Mod(r, m, set.mod), set.mod)
		coefs[i] = r.Mul(m, inv, n)
	}

	res := make([]T, 0, total)
	idx := make([]int, len(parts))
	for {
		x := r.Zero()
		for i, roots := range parts {
			x = r.Add(x, r.Mul(roots[idx[i]], coefs[i], n), n)
		}
		res = append(res, x)

		j := len(idx) - 1
		for ; j >= 0; j-- {
			idx[j]++
			if idx[j] < len(parts[j]) {
				break
			}
			idx[j] = 0
		}
		if j < 0 {
			break
		}
	}
	return sortRoots(r, res), nil
}
