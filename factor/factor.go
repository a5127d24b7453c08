// Package factor implements integer factorization over the arith.Ring
// capability.
//
// The pipeline strips small primes by trial division, probes for perfect
// squares and near-square semiprimes with a short Fermat pass, and hands the
// remaining composite cofactors to a pool of concurrent workers: a wheel
// worker targeting small-but-beyond-table factors, and randomized workers
// running Brent's cycle variant of Pollard's rho and the elliptic-curve
// method with Montgomery-ladder point multiplication. The first worker to
// report a nontrivial factor wins; its siblings are cancelled cooperatively
// at loop boundaries.
//
// The randomized search carries no internal timeout: for pathological
// composites Factorize is allowed to run indefinitely. Callers needing
// bounded latency must cancel the supplied context.
package factor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/modeq/modeq/arith"
	"github.com/modeq/modeq/logger"
	"github.com/modeq/modeq/prime"
)

// ErrInvalidInput reports a factorization request for a number below two.
var ErrInvalidInput = errors.New("factor: input must be greater than one")

// trial division strips every prime up to this bound before any worker
// is dispatched; the wheel worker resumes right above it.
const trialBound = 251

// PrimePower is one (prime, exponent) term of a factorization.
type PrimePower[T comparable] struct {
	Prime T
	Exp   uint
}

// Factorization is the complete prime-power decomposition of a number,
// ordered by ascending prime with no duplicate primes.
type Factorization[T comparable] []PrimePower[T]

// Product recomputes the factored number, reporting false on overflow.
func (f Factorization[T]) Product(r arith.Ring[T]) (T, bool) {
	res := r.One()
	for _, pp := range f {
		for i := uint(0); i < pp.Exp; i++ {
			var ok bool
			if res, ok = r.MulCheck(res, pp.Prime); !ok {
				return r.Zero(), false
			}
		}
	}
	return res, true
}

// Factorizer factorizes numbers of one integer width.
type Factorizer[T comparable] struct {
	ring    arith.Ring[T]
	workers int
	b1      uint64
	log     zerolog.Logger
}

type options struct {
	workers int
	b1      uint64
}

// Option configures a Factorizer.
type Option func(*options)

// WithWorkers overrides the worker count for the randomized search;
// the default derives from the available parallelism.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithStage1Bound overrides the elliptic-curve stage-1 smoothness bound.
// Zero keeps the size-derived default.
func WithStage1Bound(b1 uint64) Option {
	return func(o *options) { o.b1 = b1 }
}

// New returns a Factorizer over the given ring.
func New[T comparable](r arith.Ring[T], opts ...Option) *Factorizer[T] {
	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 2 {
		o.workers = 2
	}
	return &Factorizer[T]{
		ring:    r,
		workers: o.workers,
		b1:      o.b1,
		log:     logger.Logger().With().Str("component", "factor").Logger(),
	}
}

// Factorize returns the prime-power factorization of n. It fails only for
// n <= 1 or when ctx is cancelled before the factorization completes.
func (f *Factorizer[T]) Factorize(ctx context.Context, n T) (Factorization[T], error) {
	r := f.ring
	if r.Cmp(n, r.One()) <= 0 {
		return nil, ErrInvalidInput
	}

	counts := make(map[T]uint)
	rest := f.trialDivide(n, counts)
	if err := f.complete(ctx, rest, counts); err != nil {
		return nil, err
	}

	fac := make(Factorization[T], 0, len(counts))
	for p, e := range counts {
		fac = append(fac, PrimePower[T]{Prime: p, Exp: e})
	}
	sort.Slice(fac, func(i, j int) bool {
		return r.Cmp(fac[i].Prime, fac[j].Prime) < 0
	})
	return fac, nil
}

func (f *Factorizer[T]) trialDivide(n T, counts map[T]uint) T {
	r := f.ring
	zero, one := r.Zero(), r.One()
	for _, p := range prime.Small() {
		if p > trialBound {
			break
		}
		pT := r.FromUint64(p)
		if sq, ok := r.MulCheck(pT, pT); ok && r.Cmp(sq, n) > 0 {
			break
		}
		for {
			q, rem := r.QuoRem(n, pT)
			if rem != zero {
				break
			}
			counts[pT]++
			n = q
		}
		if n == one {
			break
		}
	}
	return n
}

// complete factorizes the cofactor left by trial division, merging
// exponents of repeated primes into counts.
func (f *Factorizer[T]) complete(ctx context.Context, n T, counts map[T]uint) error {
	r := f.ring
	one := r.One()

	pending := []T{n}
	for len(pending) > 0 {
		m := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if m == one {
			continue
		}
		if prime.IsPrime(r, m) {
			counts[m]++
			continue
		}
		if a, b, ok := f.fermat(m); ok {
			pending = append(pending, a, b)
			continue
		}
		fac, err := f.findFactor(ctx, m)
		if err != nil {
			return err
		}
		q, _ := r.QuoRem(m, fac)
		pending = append(pending, fac, q)
	}
	return nil
}

// fermat probes m for the near-square shape m = (a-b)*(a+b), catching
// perfect squares exactly and semiprimes with close factors within a few
// steps. It reports false when the probe does not split m.
func (f *Factorizer[T]) fermat(m T) (T, T, bool) {
	r := f.ring
	one := r.One()

	a := arith.Sqrt(r, m)
	if sq, ok := r.MulCheck(a, a); ok && sq == m {
		return a, a, true
	}
	a, ok := r.AddCheck(a, one)
	if !ok {
		return a, a, false
	}
	for i := 0; i < 10; i++ {
		a2, ok := r.MulCheck(a, a)
		if !ok {
			break
		}
		b2, _ := r.SubCheck(a2, m)
		b := arith.Sqrt(r, b2)
		if sq, ok := r.MulCheck(b, b); ok && sq == b2 {
			am, _ := r.SubCheck(a, b)
			ap, apOK := r.AddCheck(a, b)
			if apOK && am != one {
				return am, ap, true
			}
		}
		if a, ok = r.AddCheck(a, one); !ok {
			break
		}
	}
	return m, m, false
}

// findFactor dispatches the worker pool against a composite cofactor known
// to be odd and free of factors below trialBound. The first nontrivial
// factor reported wins; the "factor found" signal is write-once and the
// losers stop at their next cooperative check.
func (f *Factorizer[T]) findFactor(ctx context.Context, n T) (T, error) {
	r := f.ring

	g, gctx := errgroup.WithContext(ctx)
	sctx, cancel := context.WithCancel(gctx)
	defer cancel()

	found := make(chan T, f.workers)
	report := func(fac T) {
		select {
		case found <- fac:
		default:
		}
		cancel()
	}

	f.log.Debug().Str("n", fmt.Sprintf("%v", n)).Int("workers", f.workers).Msg("searching for a factor")

	for i := 0; i < f.workers; i++ {
		id := i
		g.Go(func() error {
			var fac T
			var ok bool
			switch {
			case id == 0:
				fac, ok = wheel(sctx, r, n)
			case id%2 == 1:
				fac, ok = f.rho(sctx, n)
			default:
				fac, ok = f.ecm(sctx, n)
			}
			if ok {
				report(fac)
			}
			return nil
		})
	}
	_ = g.Wait()

	select {
	case fac := <-found:
		f.log.Debug().Str("factor", fmt.Sprintf("%v", fac)).Msg("factor found")
		return fac, nil
	default:
	}
	if err := ctx.Err(); err != nil {
		return r.Zero(), err
	}
	return r.Zero(), errors.New("factor: search workers exited without a factor")
}
