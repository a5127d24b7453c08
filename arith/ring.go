// Package arith provides exact modular arithmetic over fixed-width unsigned
// integers. The solving pipeline is written against the Ring capability and
// instantiated per width at the boundary; uint64 and Uint128 implementations
// are provided, each in a checked variant (operands reduced before the core
// operation) and an unchecked variant that assumes reduced operands.
package arith

// Ring is the arithmetic capability for one integer width. Modular
// operations take the modulus explicitly and return the smallest nonnegative
// representative. Implementations never wrap silently: plain arithmetic is
// exposed only through the *Check methods, which report overflow distinctly.
type Ring[T comparable] interface {
	Zero() T
	One() T
	FromUint64(v uint64) T
	// ToUint64 narrows x, reporting false when x does not fit.
	ToUint64(x T) (uint64, bool)
	Cmp(x, y T) int

	// Add returns (x + y) mod n.
	Add(x, y, n T) T
	// Sub returns (x - y) mod n.
	Sub(x, y, n T) T
	// Mul returns (x * y) mod n, widening internally so the product
	// never overflows.
	Mul(x, y, n T) T

	// AddCheck returns x + y, reporting false on overflow.
	AddCheck(x, y T) (T, bool)
	// SubCheck returns x - y, reporting false when y > x.
	SubCheck(x, y T) (T, bool)
	// MulCheck returns x * y, reporting false on overflow.
	MulCheck(x, y T) (T, bool)

	// QuoRem returns the quotient and remainder of x divided by y.
	// It panics if y is zero; callers guard the divisor.
	QuoRem(x, y T) (q, r T)
	Lsh(x T, n uint) T
	Rsh(x T, n uint) T
	BitLen(x T) int
	// TrailingZeros returns the width of T for x == 0.
	TrailingZeros(x T) uint

	// Random returns a pseudo-random value in [0, n). Implementations may
	// carry a small modulo bias; callers use it only to seed randomized
	// searches, never where exact uniformity matters.
	Random(n T) T
}

// Mod returns x mod n.
func Mod[T comparable](r Ring[T], x, n T) T {
	_, rem := r.QuoRem(x, n)
	return rem
}

// IsOdd reports whether x is odd.
func IsOdd[T comparable](r Ring[T], x T) bool {
	return x != r.Zero() && r.TrailingZeros(x) == 0
}

// Pow returns base^exp mod n by binary exponentiation.
func Pow[T comparable](r Ring[T], base, exp, n T) T {
	zero := r.Zero()
	if n == r.One() {
		return zero
	}
	base = Mod(r, base, n)
	res := r.One()
	for exp != zero {
		if r.TrailingZeros(exp) == 0 {
			res = r.Mul(res, base, n)
		}
		exp = r.Rsh(exp, 1)
		if exp == zero {
			break
		}
		base = r.Mul(base, base, n)
	}
	return res
}

// GCD returns the greatest common divisor of x and y by the Euclidean
// remainder sequence. GCD(0, 0) is 0.
func GCD[T comparable](r Ring[T], x, y T) T {
	zero := r.Zero()
	for y != zero {
		_, rem := r.QuoRem(x, y)
		x, y = y, rem
	}
	return x
}

// Inv returns the multiplicative inverse of x mod n by the extended
// Euclidean algorithm, reporting false when gcd(x, n) > 1 and no inverse
// exists. Non-invertibility is a normal outcome, not an error.
func Inv[T comparable](r Ring[T], x, n T) (T, bool) {
	zero, one := r.Zero(), r.One()
	x = Mod(r, x, n)

	rem, remNew := n, x
	inv, invNew := zero, Mod(r, one, n)

	for remNew != zero {
		quo, rem2 := r.QuoRem(rem, remNew)
		rem, remNew = remNew, rem2
		inv, invNew = invNew, r.Sub(inv, r.Mul(Mod(r, quo, n), invNew, n), n)
	}

	if r.Cmp(rem, one) != 0 {
		return zero, false
	}
	return inv, true
}

// Sqrt returns the integer square root of x, the largest s with s*s <= x.
func Sqrt[T comparable](r Ring[T], x T) T {
	res := r.Zero()
	for i := r.BitLen(x) / 2; i >= 0; i-- {
		cand, ok := r.AddCheck(res, r.Lsh(r.One(), uint(i)))
		if !ok {
			continue
		}
		if sq, ok := r.MulCheck(cand, cand); ok && r.Cmp(sq, x) <= 0 {
			res = cand
		}
	}
	return res
}
