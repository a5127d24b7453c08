package arith

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

// ringOracle checks one ring against math/big on random operands.
func ringOracle[T comparable](t *testing.T, r Ring[T], g gopter.Gen, toBig func(T) *big.Int) {
	t.Helper()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	mod := func(x *big.Int, n *big.Int) *big.Int { return new(big.Int).Mod(x, n) }

	properties.Property("Add matches big.Int", prop.ForAll(
		func(x, y, n T) bool {
			if r.Cmp(n, r.FromUint64(2)) < 0 {
				return true
			}
			bx, by, bn := toBig(x), toBig(y), toBig(n)
			want := mod(new(big.Int).Add(bx, by), bn)
			return toBig(r.Add(x, y, n)).Cmp(want) == 0
		},
		g, g, g,
	))

	properties.Property("Sub matches big.Int", prop.ForAll(
		func(x, y, n T) bool {
			if r.Cmp(n, r.FromUint64(2)) < 0 {
				return true
			}
			bx, by, bn := toBig(x), toBig(y), toBig(n)
			want := mod(new(big.Int).Sub(mod(bx, bn), mod(by, bn)), bn)
			return toBig(r.Sub(x, y, n)).Cmp(want) == 0
		},
		g, g, g,
	))

	properties.Property("Mul matches big.Int", prop.ForAll(
		func(x, y, n T) bool {
			if r.Cmp(n, r.FromUint64(2)) < 0 {
				return true
			}
			bx, by, bn := toBig(x), toBig(y), toBig(n)
			want := mod(new(big.Int).Mul(bx, by), bn)
			return toBig(r.Mul(x, y, n)).Cmp(want) == 0
		},
		g, g, g,
	))

	properties.Property("Pow matches big.Int", prop.ForAll(
		func(x, e, n T) bool {
			if r.Cmp(n, r.FromUint64(2)) < 0 {
				return true
			}
			bx, be, bn := toBig(x), toBig(e), toBig(n)
			want := new(big.Int).Exp(bx, be, bn)
			return toBig(Pow(r, x, e, n)).Cmp(want) == 0
		},
		g, g, g,
	))

	properties.Property("GCD matches big.Int", prop.ForAll(
		func(x, y T) bool {
			want := new(big.Int).GCD(nil, nil, toBig(x), toBig(y))
			return toBig(GCD(r, x, y)).Cmp(want) == 0
		},
		g, g,
	))

	properties.Property("Inv yields a working inverse", prop.ForAll(
		func(x, n T) bool {
			if r.Cmp(n, r.FromUint64(2)) < 0 {
				return true
			}
			inv, ok := Inv(r, x, n)
			bn := toBig(n)
			g := new(big.Int).GCD(nil, nil, mod(toBig(x), bn), bn)
			if g.Cmp(big.NewInt(1)) != 0 {
				return !ok
			}
			return ok && toBig(r.Mul(x, inv, n)).Cmp(big.NewInt(1)) == 0
		},
		g, g,
	))

	properties.Property("Sqrt is the integer square root", prop.ForAll(
		func(x T) bool {
			want := new(big.Int).Sqrt(toBig(x))
			return toBig(Sqrt(r, x)).Cmp(want) == 0
		},
		g,
	))

	properties.TestingRun(t)
}

func TestU64RingOracle(t *testing.T) {
	ringOracle(t, NewU64(), gen.UInt64(), func(v uint64) *big.Int {
		return new(big.Int).SetUint64(v)
	})
}

func TestU128RingOracle(t *testing.T) {
	ringOracle(t, NewU128(), genUint128(), Uint128.Big)
}

func TestInvFixed(t *testing.T) {
	r := NewU64()

	inv, ok := Inv(r, 3, 7)
	require.True(t, ok)
	require.Equal(t, uint64(5), inv)

	_, ok = Inv(r, 6, 8)
	require.False(t, ok)

	_, ok = Inv(r, 0, 5)
	require.False(t, ok)
}

func TestIsOdd(t *testing.T) {
	r := NewU128()
	require.False(t, IsOdd(r, Uint128{}))
	require.True(t, IsOdd(r, U128(0, 1)))
	require.False(t, IsOdd(r, U128(1, 0)))
	require.True(t, IsOdd(r, MaxUint128))
}

func TestRandomBelow(t *testing.T) {
	r := NewU128()
	n := U128(1, 57)
	for i := 0; i < 1000; i++ {
		require.Negative(t, r.Random(n).Cmp(n))
	}
}
