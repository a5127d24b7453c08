// Package prime implements primality testing over the arith.Ring capability
// and a shared small-prime table.
//
// Below 2^32 the test is exact trial division against the sieved table.
// Above that a Miller-Rabin test runs a witness set that is deterministic
// for all 64-bit inputs; wider inputs add a fixed count of pseudo-random
// witnesses, making the verdict probabilistic with composite-escape
// probability below 4^-witnesses. The witness count is the correctness /
// performance trade-off knob for cryptographic-scale inputs.
package prime

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/modeq/modeq/arith"
)

// tableLimit bounds the shared sieve; trial division against the table is
// conclusive for inputs below tableLimit^2.
const tableLimit = 1 << 16

// randomWitnesses is the number of extra pseudo-random Miller-Rabin
// witnesses applied to inputs wider than 64 bits.
const randomWitnesses = 20

// witness bases proving compositeness of every composite below 2^64
// (Sinclair's seven-base set).
var mrBases64 = [...]uint64{2, 325, 9375, 28178, 450775, 9780504, 1795265022}

var smallPrimes = Under(tableLimit)

// Under returns all primes strictly below limit, sieving over a bitset.
func Under(limit uint64) []uint64 {
	if limit < 3 {
		return nil
	}
	composite := bitset.New(uint(limit))
	primes := make([]uint64, 0, limit/8)
	for p := uint64(2); p < limit; p++ {
		if composite.Test(uint(p)) {
			continue
		}
		primes = append(primes, p)
		for q := p * p; q < limit; q += p {
			composite.Set(uint(q))
		}
	}
	return primes
}

// Small returns the shared table of primes below 2^16. Callers must not
// mutate it.
func Small() []uint64 { return smallPrimes }

// IsPrime reports whether n is prime. See the package comment for the
// exact/probabilistic boundary.
func IsPrime[T comparable](r arith.Ring[T], n T) bool {
	zero, one := r.Zero(), r.One()
	two := r.FromUint64(2)

	if r.Cmp(n, two) < 0 {
		return false
	}
	if n == two {
		return true
	}
	if !arith.IsOdd(r, n) {
		return false
	}
	if v, ok := r.ToUint64(n); ok && v < tableLimit*tableLimit {
		return trialIsPrime(v)
	}

	// quick strike with the first table primes before the witness rounds
	for _, p := range smallPrimes[:128] {
		if _, rem := r.QuoRem(n, r.FromUint64(p)); rem == zero {
			return false
		}
	}

	// n-1 = 2^s * d with d odd
	nm1 := r.Sub(zero, one, n)
	s := r.TrailingZeros(nm1)
	d := r.Rsh(nm1, s)

	compositeWitness := func(a T) bool {
		x := arith.Pow(r, a, d, n)
		if x == one || x == nm1 {
			return false
		}
		for j := uint(1); j < s; j++ {
			x = r.Mul(x, x, n)
			if x == nm1 {
				return false
			}
		}
		return true
	}

	for _, b := range mrBases64 {
		if compositeWitness(r.FromUint64(b)) {
			return false
		}
	}
	if _, fits64 := r.ToUint64(n); fits64 {
		return true
	}
	// wider than the deterministic bound: pseudo-random witnesses in [2, n-2]
	span := r.Sub(nm1, two, n)
	for i := 0; i < randomWitnesses; i++ {
		a := r.Add(r.Random(span), two, n)
		if compositeWitness(a) {
			return false
		}
	}
	return true
}

func trialIsPrime(v uint64) bool {
	for _, p := range smallPrimes {
		if p*p > v {
			return true
		}
		if v%p == 0 {
			return v == p
		}
	}
	return true
}
