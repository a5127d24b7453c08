package factor

import (
	"context"

	"github.com/modeq/modeq/arith"
)

// increments of a mod-210 wheel: candidates coprime to 2, 3, 5 and 7.
var wheelInc = [48]uint64{
	2, 4, 2, 4, 6, 2, 6, 4, 2, 4, 6, 6, 2, 6, 4, 2,
	6, 4, 6, 8, 4, 2, 4, 2, 4, 8, 6, 4, 6, 2, 4, 6,
	2, 6, 6, 4, 2, 4, 6, 2, 6, 4, 2, 4, 2, 10, 2, 10,
}

// wheelCheckMask batches the cancellation check to one context poll per
// this many candidates.
const wheelCheckMask = 1<<10 - 1

// wheel runs incremental trial division over a mod-210 wheel, starting
// right above the shared trial-division bound. It is the worker that
// guarantees progress on cofactors whose smallest factor is moderate, and
// it reports false when cancelled before finding one.
func wheel[T comparable](ctx context.Context, r arith.Ring[T], n T) (T, bool) {
	zero := r.Zero()
	k := r.FromUint64(221)

	for step := 0; ; step++ {
		if step&wheelCheckMask == 0 && ctx.Err() != nil {
			return zero, false
		}
		q, rem := r.QuoRem(n, k)
		if rem == zero {
			return k, true
		}
		if r.Cmp(q, k) < 0 {
			// k exceeds sqrt(n) with no divisor found
			return zero, false
		}
		k = r.Add(k, r.FromUint64(wheelInc[step%len(wheelInc)]), n)
	}
}
