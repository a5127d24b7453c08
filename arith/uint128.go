package arith

import (
	"fmt"
	"math/big"
	"math/bits"
	"strconv"
)

// Uint128 is an unsigned 128-bit integer held in two 64-bit limbs.
// The zero value is the number zero. Values are comparable with == and
// usable as map keys.
type Uint128 struct {
	Hi, Lo uint64
}

// MaxUint128 is the largest representable Uint128, 2^128 - 1.
var MaxUint128 = Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}

// floor((2^128 - 1) / 10), the largest value that can be multiplied by ten
// without overflowing.
var maxUint128Div10 = Uint128{Hi: 0x1999999999999999, Lo: 0x9999999999999999}

// U128 returns the Uint128 hi*2^64 + lo.
func U128(hi, lo uint64) Uint128 { return Uint128{Hi: hi, Lo: lo} }

// U128From64 widens v to a Uint128.
func U128From64(v uint64) Uint128 { return Uint128{Lo: v} }

// U128FromBig converts v to a Uint128. It reports false if v is negative
// or does not fit in 128 bits.
func U128FromBig(v *big.Int) (Uint128, bool) {
	if v.Sign() < 0 || v.BitLen() > 128 {
		return Uint128{}, false
	}
	return Uint128{Hi: new(big.Int).Rsh(v, 64).Uint64(), Lo: v.Uint64()}, true
}

// IsZero reports whether x is zero.
func (x Uint128) IsZero() bool { return x.Hi|x.Lo == 0 }

// Cmp returns -1, 0 or 1 depending on whether x is smaller than, equal to
// or greater than y.
func (x Uint128) Cmp(y Uint128) int {
	switch {
	case x == y:
		return 0
	case x.Hi < y.Hi || (x.Hi == y.Hi && x.Lo < y.Lo):
		return -1
	default:
		return 1
	}
}

// Add returns x+y and the outgoing carry.
func (x Uint128) Add(y Uint128) (Uint128, uint64) {
	lo, c := bits.Add64(x.Lo, y.Lo, 0)
	hi, c := bits.Add64(x.Hi, y.Hi, c)
	return Uint128{Hi: hi, Lo: lo}, c
}

// Sub returns x-y and the outgoing borrow.
func (x Uint128) Sub(y Uint128) (Uint128, uint64) {
	lo, b := bits.Sub64(x.Lo, y.Lo, 0)
	hi, b := bits.Sub64(x.Hi, y.Hi, b)
	return Uint128{Hi: hi, Lo: lo}, b
}

// Mul64 returns the full 128-bit product of two 64-bit operands.
func Mul64(x, y uint64) Uint128 {
	hi, lo := bits.Mul64(x, y)
	return Uint128{Hi: hi, Lo: lo}
}

// mul64 returns x*m truncated to 128 bits.
func (x Uint128) mul64(m uint64) Uint128 {
	hi, lo := bits.Mul64(x.Lo, m)
	return Uint128{Hi: hi + x.Hi*m, Lo: lo}
}

// Lsh returns x shifted left by n bits.
func (x Uint128) Lsh(n uint) Uint128 {
	if n >= 64 {
		return Uint128{Hi: x.Lo << (n - 64)}
	}
	return Uint128{Hi: x.Hi<<n | x.Lo>>(64-n), Lo: x.Lo << n}
}

// Rsh returns x shifted right by n bits.
func (x Uint128) Rsh(n uint) Uint128 {
	if n >= 64 {
		return Uint128{Lo: x.Hi >> (n - 64)}
	}
	return Uint128{Hi: x.Hi >> n, Lo: x.Lo>>n | x.Hi<<(64-n)}
}

// BitLen returns the number of bits required to represent x.
func (x Uint128) BitLen() int {
	if x.Hi != 0 {
		return 64 + bits.Len64(x.Hi)
	}
	return bits.Len64(x.Lo)
}

// TrailingZeros returns the number of trailing zero bits in x;
// it returns 128 for x == 0.
func (x Uint128) TrailingZeros() uint {
	if x.Lo != 0 {
		return uint(bits.TrailingZeros64(x.Lo))
	}
	return 64 + uint(bits.TrailingZeros64(x.Hi))
}

// QuoRem64 returns the quotient and remainder of x divided by d.
// It panics if d is zero.
func (x Uint128) QuoRem64(d uint64) (Uint128, uint64) {
	if x.Hi < d {
		lo, r := bits.Div64(x.Hi, x.Lo, d)
		return Uint128{Lo: lo}, r
	}
	hi, r := bits.Div64(0, x.Hi, d)
	lo, r := bits.Div64(r, x.Lo, d)
	return Uint128{Hi: hi, Lo: lo}, r
}

// QuoRem returns the quotient and remainder of x divided by y.
// It panics if y is zero. The two-limb case uses the divlu reciprocal
// estimate with a single correction step.
func (x Uint128) QuoRem(y Uint128) (q, r Uint128) {
	if y.Hi == 0 {
		q, r64 := x.QuoRem64(y.Lo)
		return q, Uint128{Lo: r64}
	}
	// y.Hi != 0, so the quotient fits in a single limb.
	n := uint(bits.LeadingZeros64(y.Hi))
	v1 := y.Lsh(n)
	u1 := x.Rsh(1)
	tq, _ := bits.Div64(u1.Hi, u1.Lo, v1.Hi)
	tq >>= 63 - n
	if tq != 0 {
		tq--
	}
	r, _ = x.Sub(y.mul64(tq))
	if r.Cmp(y) >= 0 {
		tq++
		r, _ = r.Sub(y)
	}
	return Uint128{Lo: tq}, r
}

// Big returns x as a math/big integer.
func (x Uint128) Big() *big.Int {
	v := new(big.Int).SetUint64(x.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(x.Lo))
}

// String implements fmt.Stringer, formatting x in base ten.
func (x Uint128) String() string {
	if x.Hi == 0 {
		return strconv.FormatUint(x.Lo, 10)
	}
	q, r := x.QuoRem64(1e19)
	return q.String() + fmt.Sprintf("%019d", r)
}

// ParseUint128 parses a base-ten unsigned integer of up to 128 bits.
// Underscores between digits are ignored.
func ParseUint128(s string) (Uint128, error) {
	var x Uint128
	seen := false
	for _, c := range s {
		if c == '_' && seen {
			continue
		}
		if c < '0' || c > '9' {
			return Uint128{}, fmt.Errorf("invalid digit %q in %q", c, s)
		}
		if x.Cmp(maxUint128Div10) > 0 {
			return Uint128{}, fmt.Errorf("value %q exceeds 128 bits", s)
		}
		x = x.mul64(10)
		sum, carry := x.Add(U128From64(uint64(c - '0')))
		if carry != 0 {
			return Uint128{}, fmt.Errorf("value %q exceeds 128 bits", s)
		}
		x = sum
		seen = true
	}
	if !seen {
		return Uint128{}, fmt.Errorf("empty number literal %q", s)
	}
	return x, nil
}
