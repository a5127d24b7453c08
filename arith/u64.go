package arith

import (
	"math/bits"
	"math/rand/v2"
)

// NewU64 returns the checked Ring over uint64: operands are reduced
// modulo n before every modular operation.
func NewU64() Ring[uint64] { return u64Ring{} }

// NewU64Unchecked returns the unchecked Ring over uint64. Modular
// operations assume operands already reduced below n; feeding unreduced
// operands is a contract violation and may panic in the division used by
// Mul. Tests run exclusively against the checked variant.
func NewU64Unchecked() Ring[uint64] { return u64Ring{unchecked: true} }

type u64Ring struct {
	unchecked bool
}

func (u64Ring) Zero() uint64              { return 0 }
func (u64Ring) One() uint64               { return 1 }
func (u64Ring) FromUint64(v uint64) uint64 { return v }

func (u64Ring) ToUint64(x uint64) (uint64, bool) { return x, true }

func (u64Ring) Cmp(x, y uint64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func (r u64Ring) reduce(x, n uint64) uint64 {
	if r.unchecked || x < n {
		return x
	}
	return x % n
}

func (r u64Ring) Add(x, y, n uint64) uint64 {
	x, y = r.reduce(x, n), r.reduce(y, n)
	if x < n-y {
		return x + y
	}
	if x < y {
		x, y = y, x
	}
	return y - (n - x)
}

func (r u64Ring) Sub(x, y, n uint64) uint64 {
	x, y = r.reduce(x, n), r.reduce(y, n)
	if x >= y {
		return x - y
	}
	return n - (y - x)
}

func (r u64Ring) Mul(x, y, n uint64) uint64 {
	x, y = r.reduce(x, n), r.reduce(y, n)
	hi, lo := bits.Mul64(x, y)
	_, rem := bits.Div64(hi, lo, n)
	return rem
}

func (u64Ring) AddCheck(x, y uint64) (uint64, bool) {
	s, carry := bits.Add64(x, y, 0)
	return s, carry == 0
}

func (u64Ring) SubCheck(x, y uint64) (uint64, bool) {
	d, borrow := bits.Sub64(x, y, 0)
	return d, borrow == 0
}

func (u64Ring) MulCheck(x, y uint64) (uint64, bool) {
	hi, lo := bits.Mul64(x, y)
	return lo, hi == 0
}

func (u64Ring) QuoRem(x, y uint64) (uint64, uint64) { return x / y, x % y }

func (u64Ring) Lsh(x uint64, n uint) uint64 { return x << n }
func (u64Ring) Rsh(x uint64, n uint) uint64 { return x >> n }

func (u64Ring) BitLen(x uint64) int        { return bits.Len64(x) }
func (u64Ring) TrailingZeros(x uint64) uint { return uint(bits.TrailingZeros64(x)) }

func (u64Ring) Random(n uint64) uint64 { return rand.Uint64N(n) }
