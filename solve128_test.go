package modeq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modeq/modeq/arith"
)

func u128(t *testing.T, s string) arith.Uint128 {
	t.Helper()
	v, err := arith.ParseUint128(s)
	require.NoError(t, err)
	return v
}

func TestSolveQuad128SquareRoots(t *testing.T) {
	sm := "41538374868278621028243970633760399"
	lg := "340282366920938463463374607431768211297"

	s := NewSolver(arith.NewU128())
	ctx := context.Background()

	for _, tc := range []struct {
		d, n   string
		r1, r2 string
	}{
		{"1", sm,
			"1", "41538374868278621028243970633760398"},
		{"1902359235235235", sm,
			"4308797534900248116584966211687609", "37229577333378372911659004422072790"},
		{"9824202184002518284814224", sm,
			"11240629191872231686281671522360515", "30297745676406389341962299111399884"},
		{"41538374868278621028243970633760388", sm,
			"4736182786991917864540101503501134", "36802192081286703163703869130259265"},
		{"1", lg,
			"1", "340282366920938463463374607431768211296"},
		{"1111", lg,
			"42975499967547402654183974193836944053", "297306866953391060809190633237931267244"},
		{"340282366920938463463374607431768211295", lg,
			"33190663755207043105942532539854070407", "307091703165731420357432074891914140890"},
		{"340282366920938463463374607431768211291", lg,
			"8159441886976089234691297995035384680", "332122925033962374228683309436732826617"},
	} {
		got, err := s.SolveQuad(ctx, QuadEq[arith.Uint128]{
			A: arith.U128From64(1),
			D: u128(t, tc.d),
			N: u128(t, tc.n),
		})
		require.NoError(t, err, "x^2 = %s mod %s", tc.d, tc.n)
		require.Equal(t, []arith.Uint128{u128(t, tc.r1), u128(t, tc.r2)}, got,
			"x^2 = %s mod %s", tc.d, tc.n)
	}
}

func TestSolveQuad128MaxModulus(t *testing.T) {
	// 2^128 - 1 has nine distinct prime factors, so x^2 = 1 has 2^9 roots
	s := NewSolver(arith.NewU128())
	got, err := s.SolveQuad(context.Background(), QuadEq[arith.Uint128]{
		A: arith.U128From64(1),
		D: arith.U128From64(1),
		N: arith.MaxUint128,
	})
	require.NoError(t, err)
	require.Len(t, got, 512)

	contains := func(v arith.Uint128) bool {
		for _, g := range got {
			if g == v {
				return true
			}
		}
		return false
	}
	require.True(t, contains(arith.U128From64(1)))
	require.True(t, contains(arith.U128(1, 0))) // 2^64
	minusOne, _ := arith.MaxUint128.Sub(arith.U128From64(1))
	require.True(t, contains(minusOne))

	// returned sorted ascending
	for i := 1; i < len(got); i++ {
		require.Negative(t, got[i-1].Cmp(got[i]))
	}
}

func TestSolveLin128(t *testing.T) {
	s := NewSolver(arith.NewU128())
	n := arith.MaxUint128
	nm4, _ := n.Sub(arith.U128From64(4))

	// 7x + (n-4) = 0 mod n
	got, err := s.SolveLin(LinEq[arith.Uint128]{
		A: arith.U128From64(7),
		B: nm4,
		N: n,
	})
	require.NoError(t, err)
	require.Equal(t, []arith.Uint128{u128(t, "48611766702991209066196372490252601637")}, got)
}

func TestSolveQuad128Semiprime(t *testing.T) {
	if testing.Short() {
		t.Skip("factoring a 121-bit semiprime")
	}
	// -(x-1)^2 = 0 mod p*q with p, q distinct primes forces x = 1
	s := NewSolver(arith.NewU128())
	got, err := SolveQuadSigned(context.Background(), s, QuadEqSigned[int64, arith.Uint128]{
		A: -1, B: 2, C: -1, D: 0,
		N: u128(t, "2082064493491567088228629031592644077"),
	})
	require.NoError(t, err)
	require.Equal(t, []arith.Uint128{arith.U128From64(1)}, got)
}
