package factor

import (
	"context"
	"math/bits"

	"github.com/modeq/modeq/arith"
	"github.com/modeq/modeq/prime"
)

// ecmGCDStride is the number of stage-1 primes between gcd evaluations of
// the accumulated z-coordinates.
const ecmGCDStride = 256

// point is a projective x-coordinate on a Montgomery curve.
type point[T comparable] struct {
	x, z T
}

// ecmCurve bundles one random curve with its a24 = (a+2)/4 coefficient,
// the only piece of the curve equation the x-only ladder needs.
type ecmCurve[T comparable] struct {
	a24   T
	start point[T]
}

// stage1Bound picks the smoothness bound from the size of n. Wider inputs
// hide wider prime factors and need more stage-1 work per curve.
func (f *Factorizer[T]) stage1Bound(n T) uint64 {
	if f.b1 != 0 {
		return f.b1
	}
	switch bl := f.ring.BitLen(n); {
	case bl <= 64:
		return 2000
	case bl <= 96:
		return 11000
	default:
		return 50000
	}
}

// ecm runs stage-1 of the elliptic-curve method on random Montgomery
// curves. Each curve multiplies a random point by every prime power below
// the smoothness bound; a point whose order on some curve mod p divides
// that product collapses its z-coordinate to zero mod p, and the gcd of
// the accumulated z-coordinates with n exposes p.
func (f *Factorizer[T]) ecm(ctx context.Context, n T) (T, bool) {
	r := f.ring
	zero, one := r.Zero(), r.One()
	b1 := f.stage1Bound(n)
	primes := prime.Small()
	if b1 >= primes[len(primes)-1] {
		primes = prime.Under(b1 + 1)
	}

	for curves := 0; ; curves++ {
		if ctx.Err() != nil {
			return zero, false
		}
		cv := f.randomCurve(n)
		p := cv.start
		acc := one
		stride := 0
		collapsed := false

		for _, q := range primes {
			if q > b1 {
				break
			}
			// the largest power of q below the bound
			k := q
			for k <= b1/q {
				k *= q
			}
			p = f.ladder(n, cv.a24, p, k)
			acc = r.Mul(acc, p.z, n)

			if stride++; stride == ecmGCDStride {
				stride = 0
				if ctx.Err() != nil {
					return zero, false
				}
				g := arith.GCD(r, acc, n)
				if g == n {
					collapsed = true
					break
				}
				if g != one {
					return g, true
				}
			}
		}
		if collapsed {
			continue
		}
		if g := arith.GCD(r, acc, n); g != one && g != n {
			return g, true
		}
	}
}

// randomCurve picks a random curve coefficient and starting point mod n.
// a24 is (a+2)/4; n is odd here so 4 is invertible.
func (f *Factorizer[T]) randomCurve(n T) ecmCurve[T] {
	r := f.ring
	four := r.FromUint64(4)
	inv4, _ := arith.Inv(r, four, n)

	a := r.Add(r.Random(n), r.FromUint64(6), n)
	x0 := r.Add(r.Random(n), r.FromUint64(2), n)
	return ecmCurve[T]{
		a24:   r.Mul(r.Add(a, r.FromUint64(2), n), inv4, n),
		start: point[T]{x: x0, z: r.One()},
	}
}

// xdbl doubles p on the curve with coefficient a24.
func (f *Factorizer[T]) xdbl(n, a24 T, p point[T]) point[T] {
	r := f.ring
	u := r.Add(p.x, p.z, n)
	u = r.Mul(u, u, n)
	v := r.Sub(p.x, p.z, n)
	v = r.Mul(v, v, n)
	w := r.Sub(u, v, n)
	return point[T]{
		x: r.Mul(u, v, n),
		z: r.Mul(w, r.Add(v, r.Mul(a24, w, n), n), n),
	}
}

// xadd adds p and q given their difference point d.
func (f *Factorizer[T]) xadd(n T, p, q, d point[T]) point[T] {
	r := f.ring
	u := r.Mul(r.Sub(p.x, p.z, n), r.Add(q.x, q.z, n), n)
	v := r.Mul(r.Add(p.x, p.z, n), r.Sub(q.x, q.z, n), n)
	s := r.Add(u, v, n)
	t := r.Sub(u, v, n)
	return point[T]{
		x: r.Mul(d.z, r.Mul(s, s, n), n),
		z: r.Mul(d.x, r.Mul(t, t, n), n),
	}
}

// ladder returns k*p by the x-only Montgomery ladder.
func (f *Factorizer[T]) ladder(n, a24 T, p point[T], k uint64) point[T] {
	if k == 1 {
		return p
	}
	r0, r1 := p, f.xdbl(n, a24, p)
	for i := bits.Len64(k) - 2; i >= 0; i-- {
		if k>>uint(i)&1 == 0 {
			r1 = f.xadd(n, r0, r1, p)
			r0 = f.xdbl(n, a24, r0)
		} else {
			r0 = f.xadd(n, r0, r1, p)
			r1 = f.xdbl(n, a24, r1)
		}
	}
	return r0
}
