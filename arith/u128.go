package arith

import (
	"math/bits"
	"math/rand/v2"
)

// NewU128 returns the checked Ring over Uint128: operands are reduced
// modulo n before every modular operation.
func NewU128() Ring[Uint128] { return u128Ring{} }

// NewU128Unchecked returns the unchecked Ring over Uint128; modular
// operations assume operands already reduced below n.
func NewU128Unchecked() Ring[Uint128] { return u128Ring{unchecked: true} }

type u128Ring struct {
	unchecked bool
}

func (u128Ring) Zero() Uint128 { return Uint128{} }
func (u128Ring) One() Uint128  { return Uint128{Lo: 1} }

func (u128Ring) FromUint64(v uint64) Uint128 { return Uint128{Lo: v} }

func (u128Ring) ToUint64(x Uint128) (uint64, bool) { return x.Lo, x.Hi == 0 }

func (u128Ring) Cmp(x, y Uint128) int { return x.Cmp(y) }

func (r u128Ring) reduce(x, n Uint128) Uint128 {
	if r.unchecked || x.Cmp(n) < 0 {
		return x
	}
	_, rem := x.QuoRem(n)
	return rem
}

// addm adds two operands already reduced below n without ever leaving
// the representable range.
func (u128Ring) addm(x, y, n Uint128) Uint128 {
	nmy, _ := n.Sub(y)
	if x.Cmp(nmy) < 0 {
		s, _ := x.Add(y)
		return s
	}
	if x.Cmp(y) < 0 {
		x, y = y, x
	}
	nmx, _ := n.Sub(x)
	res, _ := y.Sub(nmx)
	return res
}

func (r u128Ring) Add(x, y, n Uint128) Uint128 {
	return r.addm(r.reduce(x, n), r.reduce(y, n), n)
}

func (r u128Ring) Sub(x, y, n Uint128) Uint128 {
	x, y = r.reduce(x, n), r.reduce(y, n)
	if x.Cmp(y) >= 0 {
		res, _ := x.Sub(y)
		return res
	}
	ymx, _ := y.Sub(x)
	res, _ := n.Sub(ymx)
	return res
}

func (r u128Ring) Mul(x, y, n Uint128) Uint128 {
	x, y = r.reduce(x, n), r.reduce(y, n)
	if x.Hi == 0 && y.Hi == 0 {
		p := Mul64(x.Lo, y.Lo)
		if p.Cmp(n) < 0 {
			return p
		}
		_, rem := p.QuoRem(n)
		return rem
	}
	// interleaved double-and-add keeps every intermediate below n
	var res Uint128
	for !y.IsZero() {
		if y.Lo&1 == 1 {
			res = r.addm(res, x, n)
		}
		y = y.Rsh(1)
		if y.IsZero() {
			break
		}
		x = r.addm(x, x, n)
	}
	return res
}

func (u128Ring) AddCheck(x, y Uint128) (Uint128, bool) {
	s, carry := x.Add(y)
	return s, carry == 0
}

func (u128Ring) SubCheck(x, y Uint128) (Uint128, bool) {
	d, borrow := x.Sub(y)
	return d, borrow == 0
}

func (u128Ring) MulCheck(x, y Uint128) (Uint128, bool) {
	if x.Hi != 0 && y.Hi != 0 {
		return Uint128{}, false
	}
	hi, lo := bits.Mul64(x.Lo, y.Lo)
	c1, m1 := bits.Mul64(x.Hi, y.Lo)
	c2, m2 := bits.Mul64(x.Lo, y.Hi)
	if c1 != 0 || c2 != 0 {
		return Uint128{}, false
	}
	s, carry := bits.Add64(hi, m1, 0)
	if carry != 0 {
		return Uint128{}, false
	}
	s, carry = bits.Add64(s, m2, 0)
	if carry != 0 {
		return Uint128{}, false
	}
	return Uint128{Hi: s, Lo: lo}, true
}

func (u128Ring) QuoRem(x, y Uint128) (Uint128, Uint128) { return x.QuoRem(y) }

func (u128Ring) Lsh(x Uint128, n uint) Uint128 { return x.Lsh(n) }
func (u128Ring) Rsh(x Uint128, n uint) Uint128 { return x.Rsh(n) }

func (u128Ring) BitLen(x Uint128) int         { return x.BitLen() }
func (u128Ring) TrailingZeros(x Uint128) uint { return x.TrailingZeros() }

// Random reduces a raw 128-bit draw mod n when n exceeds 64 bits, which
// carries a modulo bias of at most n/2^128. The searches seeded from it
// tolerate that.
func (u128Ring) Random(n Uint128) Uint128 {
	if n.Hi == 0 {
		return Uint128{Lo: rand.Uint64N(n.Lo)}
	}
	x := Uint128{Hi: rand.Uint64(), Lo: rand.Uint64()}
	_, rem := x.QuoRem(n)
	return rem
}
