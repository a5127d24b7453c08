package factor

import (
	"context"

	"github.com/modeq/modeq/arith"
)

// rhoBatch is the number of distance products accumulated between gcd
// evaluations in the rho cycle walk.
const rhoBatch = 128

// rhoReseedBound caps the iterations spent on a single (c, x0) seed before
// reseeding the walk.
const rhoReseedBound = 1 << 24

// rho is Brent's cycle-detection variant of Pollard's rho with batched gcd.
// Distances x-y are multiplied together modulo n and the gcd is taken once
// per batch; on a trivial batch gcd the walk backtracks through the saved
// window one step at a time. The polynomial is x^2 + c with a fresh random
// c per seed.
func (f *Factorizer[T]) rho(ctx context.Context, n T) (T, bool) {
	r := f.ring
	zero, one := r.Zero(), r.One()

	for {
		if ctx.Err() != nil {
			return zero, false
		}
		c := r.Add(r.Random(n), one, n)
		y := r.Add(r.Random(n), one, n)
		if fac, ok := f.rhoWalk(ctx, n, c, y); ok {
			return fac, true
		}
		if ctx.Err() != nil {
			return zero, false
		}
	}
}

func (f *Factorizer[T]) rhoWalk(ctx context.Context, n, c, y T) (T, bool) {
	r := f.ring
	zero, one := r.Zero(), r.One()
	step := func(x T) T { return r.Add(r.Mul(x, x, n), c, n) }

	var x, ys T
	q := one
	g := one
	iters := 0

	for cycle := 1; g == one; cycle *= 2 {
		x = y
		for i := 0; i < cycle; i++ {
			y = step(y)
		}
		for done := 0; done < cycle && g == one; done += rhoBatch {
			if ctx.Err() != nil {
				return zero, false
			}
			ys = y
			batch := rhoBatch
			if rem := cycle - done; rem < batch {
				batch = rem
			}
			for i := 0; i < batch; i++ {
				y = step(y)
				q = r.Mul(q, r.Sub(x, y, n), n)
			}
			g = arith.GCD(r, q, n)
		}
		iters += cycle
		if iters > rhoReseedBound {
			return zero, false
		}
	}

	if g == n {
		// the batch collapsed; replay it one gcd at a time
		for {
			ys = step(ys)
			g = arith.GCD(r, r.Sub(x, ys, n), n)
			if g != one {
				break
			}
		}
	}
	if g == n {
		return zero, false
	}
	return g, true
}
