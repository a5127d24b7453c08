package modeq

import (
	"sort"

	"github.com/modeq/modeq/arith"
)

// evalMod returns a*x^2 + b*x - t mod q.
func evalMod[T comparable](r arith.Ring[T], a, b, t, x, q T) T {
	v := r.Mul(a, r.Mul(x, x, q), q)
	v = r.Add(v, r.Mul(b, x, q), q)
	return r.Sub(v, t, q)
}

func sortRoots[T comparable](r arith.Ring[T], roots []T) []T {
	sort.Slice(roots, func(i, j int) bool { return r.Cmp(roots[i], roots[j]) < 0 })
	out := roots[:0]
	for i, v := range roots {
		if i == 0 || v != roots[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// solvePrimePower solves a*x^2 + b*x = t (mod p^k). Base roots mod p come
// from completing the square; Hensel lifting raises them through the
// remaining powers. When p divides a, b and t the whole equation is
// divided by p and re-solved one power lower, each solution then fanning
// out into p classes.
func (s *Solver[T]) solvePrimePower(a, b, t, p T, k uint) (residueSet[T], error) {
	r := s.ring
	zero, one := r.Zero(), r.One()
	two := r.FromUint64(2)

	q := p
	for i := uint(1); i < k; i++ {
		q, _ = r.MulCheck(q, p)
	}
	a, b, t = arith.Mod(r, a, q), arith.Mod(r, b, q), arith.Mod(r, t, q)
	set := residueSet[T]{mod: q}

	if a == zero && b == zero {
		set.all = t == zero
		return set, nil
	}
	if a == zero {
		return s.linearMod(b, t, q)
	}

	if k >= 2 && arith.Mod(r, a, p) == zero && arith.Mod(r, b, p) == zero && arith.Mod(r, t, p) == zero {
		return s.dividedOut(a, b, t, p, k, q)
	}

	var base []T
	if p == two {
		for _, x := range []T{zero, one} {
			if evalMod(r, a, b, t, x, two) == zero {
				base = append(base, x)
			}
		}
	} else {
		base = s.rootsModPrime(arith.Mod(r, a, p), arith.Mod(r, b, p), arith.Mod(r, t, p), p)
	}
	if len(base) == 0 {
		return set, nil
	}

	roots, err := s.hensel(a, b, t, p, k, base)
	if err != nil {
		return set, err
	}
	set.roots = sortRoots(r, roots)
	return set, nil
}

// dividedOut handles the singular case p | a, b, t: the equation divided
// by p is solved mod p^(k-1) and every solution lifts to p classes mod p^k.
func (s *Solver[T]) dividedOut(a, b, t, p T, k uint, q T) (residueSet[T], error) {
	r := s.ring
	set := residueSet[T]{mod: q}

	ap, _ := r.QuoRem(a, p)
	bp, _ := r.QuoRem(b, p)
	tp, _ := r.QuoRem(t, p)
	sub, err := s.solvePrimePower(ap, bp, tp, p, k-1)
	if err != nil || sub.empty() {
		return set, err
	}
	if sub.all {
		set.all = true
		return set, nil
	}

	pU, ok := r.ToUint64(p)
	if !ok || capMul(uint64(len(sub.roots)), pU) > s.maxSols {
		return set, ErrTooManySolutions
	}
	qq, _ := r.QuoRem(q, p)
	roots := make([]T, 0, uint64(len(sub.roots))*pU)
	for _, root := range sub.roots {
		x := root
		for i := uint64(0); i < pU; i++ {
			roots = append(roots, x)
			x, _ = r.AddCheck(x, qq)
		}
	}
	set.roots = sortRoots(r, roots)
	return set, nil
}

// hensel lifts roots of a*x^2 + b*x - t from mod p up through mod p^k.
// Nonsingular roots lift uniquely; a singular root either fans out into p
// lifts or disappears, depending on whether it still solves the equation
// one power higher.
func (s *Solver[T]) hensel(a, b, t, p T, k uint, roots []T) ([]T, error) {
	r := s.ring
	zero := r.Zero()
	two := r.FromUint64(2)
	twoA := r.Mul(two, arith.Mod(r, a, p), p)
	bP := arith.Mod(r, b, p)

	pi := p
	for lvl := uint(1); lvl < k; lvl++ {
		pi1, _ := r.MulCheck(pi, p)
		next := roots[:0:0]
		for _, root := range roots {
			fr := evalMod(r, a, b, t, root, pi1)
			dfr := r.Add(r.Mul(twoA, arith.Mod(r, root, p), p), bP, p)
			if dfr != zero {
				frq, _ := r.QuoRem(fr, pi)
				u := arith.Mod(r, frq, p)
				invd, _ := arith.Inv(r, dfr, p)
				step := r.Mul(r.Sub(zero, u, p), invd, p)
				off, _ := r.MulCheck(step, pi)
				lift, _ := r.AddCheck(root, off)
				next = append(next, lift)
				continue
			}
			if fr != zero {
				continue
			}
			pU, ok := r.ToUint64(p)
			if !ok || uint64(len(next))+pU > s.maxSols {
				return nil, ErrTooManySolutions
			}
			x := root
			for i := uint64(0); i < pU; i++ {
				next = append(next, x)
				x, _ = r.AddCheck(x, pi)
			}
		}
		if len(next) == 0 {
			return nil, nil
		}
		if uint64(len(next)) > s.maxSols {
			return nil, ErrTooManySolutions
		}
		roots = next
		pi = pi1
	}
	return roots, nil
}

// rootsModPrime solves a*x^2 + b*x = t (mod p) for odd prime p with
// operands reduced mod p. When p divides a the quadratic term vanishes mod
// p and the equation degenerates to b*x = t; otherwise completing the
// square with y = 2a*x + b turns it into y^2 = b^2 + 4at, decided by the
// Euler criterion and solved by a modular square root.
func (s *Solver[T]) rootsModPrime(a, b, t, p T) []T {
	r := s.ring
	zero, one := r.Zero(), r.One()
	two, four := r.FromUint64(2), r.FromUint64(4)

	if a == zero {
		if b == zero {
			// t is nonzero mod p here, the wholly divisible case is
			// peeled off by the caller
			return nil
		}
		invB, _ := arith.Inv(r, b, p)
		return []T{r.Mul(t, invB, p)}
	}

	d := r.Add(r.Mul(b, b, p), r.Mul(four, r.Mul(a, t, p), p), p)
	pm1 := r.Sub(zero, one, p)

	var ys []T
	if d == zero {
		ys = []T{zero}
	} else {
		if arith.Pow(r, d, r.Rsh(pm1, 1), p) != one {
			return nil
		}
		y := s.sqrtModP(d, p)
		ys = []T{y}
		if ny := r.Sub(zero, y, p); ny != y {
			ys = append(ys, ny)
		}
	}

	inv2a, ok := arith.Inv(r, r.Mul(two, a, p), p)
	if !ok {
		// a and 2 are both invertible modulo an odd prime
		panic("modeq: 2a not invertible modulo an odd prime")
	}
	roots := make([]T, 0, len(ys))
	for _, y := range ys {
		roots = append(roots, r.Mul(r.Sub(y, b, p), inv2a, p))
	}
	return sortRoots(r, roots)
}

// sqrtModP returns a square root of the quadratic residue d mod odd prime
// p. For p = 3 (mod 4) the root is d^((p+1)/4); otherwise Tonelli-Shanks.
func (s *Solver[T]) sqrtModP(d, p T) T {
	r := s.ring
	zero, one := r.Zero(), r.One()
	two, four := r.FromUint64(2), r.FromUint64(4)

	if _, rem := r.QuoRem(p, four); rem == r.FromUint64(3) {
		// (p+1)/4 computed without overflowing p
		e, _ := r.AddCheck(r.Rsh(p, 2), one)
		return arith.Pow(r, d, e, p)
	}

	pm1 := r.Sub(zero, one, p)
	half := r.Rsh(pm1, 1)
	ss := r.TrailingZeros(pm1)
	q := r.Rsh(pm1, ss)

	z := two
	for arith.Pow(r, z, half, p) != pm1 {
		z = r.Add(z, one, p)
	}

	m := ss
	c := arith.Pow(r, z, q, p)
	e, _ := r.AddCheck(r.Rsh(q, 1), one) // (q+1)/2, q odd
	t := arith.Pow(r, d, q, p)
	root := arith.Pow(r, d, e, p)

	for t != one {
		i := uint(0)
		for t2 := t; t2 != one; i++ {
			t2 = r.Mul(t2, t2, p)
		}
		b := c
		for j := uint(0); j < m-i-1; j++ {
			b = r.Mul(b, b, p)
		}
		m = i
		c = r.Mul(b, b, p)
		t = r.Mul(t, c, p)
		root = r.Mul(root, b, p)
	}
	return root
}
