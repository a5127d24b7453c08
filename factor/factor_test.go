package factor

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/modeq/modeq/arith"
	"github.com/modeq/modeq/prime"
)

func TestFactorizeFixed(t *testing.T) {
	r := arith.NewU64()
	f := New(r)
	ctx := context.Background()

	for _, tc := range []struct {
		n    uint64
		want Factorization[uint64]
	}{
		{2, Factorization[uint64]{{2, 1}}},
		{12, Factorization[uint64]{{2, 2}, {3, 1}}},
		{1 << 60, Factorization[uint64]{{2, 60}}},
		{600851475143, Factorization[uint64]{{71, 1}, {839, 1}, {1471, 1}, {6857, 1}}},
		{18446744073709551615, Factorization[uint64]{{3, 1}, {5, 1}, {17, 1}, {257, 1}, {641, 1}, {65537, 1}, {6700417, 1}}},
		{9223372036854775783, Factorization[uint64]{{9223372036854775783, 1}}},
		// square of a prime beyond the trial bound, caught by the Fermat probe
		{1000003 * 1000003, Factorization[uint64]{{1000003, 2}}},
	} {
		got, err := f.Factorize(ctx, tc.n)
		require.NoError(t, err, "n=%d", tc.n)
		require.Equal(t, tc.want, got, "n=%d", tc.n)
	}
}

func TestFactorizeInvalid(t *testing.T) {
	f := New(arith.NewU64())
	for _, n := range []uint64{0, 1} {
		_, err := f.Factorize(context.Background(), n)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestFactorizeRoundTrip(t *testing.T) {
	r := arith.NewU64()
	f := New(r)
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("product of prime powers recovers n", prop.ForAll(
		func(n uint64) bool {
			if n < 2 {
				return true
			}
			fac, err := f.Factorize(ctx, n)
			if err != nil {
				return false
			}
			for _, pp := range fac {
				if !prime.IsPrime(r, pp.Prime) {
					return false
				}
			}
			got, ok := fac.Product(r)
			return ok && got == n
		},
		gen.UInt64Range(2, 1<<48),
	))

	properties.TestingRun(t)
}

func TestFactorize128(t *testing.T) {
	r := arith.NewU128()
	f := New(r)
	ctx := context.Background()

	// 2^128 - 1 = 3 * 5 * 17 * 257 * 641 * 65537 * 274177 * 6700417 * 67280421310721
	got, err := f.Factorize(ctx, arith.MaxUint128)
	require.NoError(t, err)

	wantPrimes := []string{"3", "5", "17", "257", "641", "65537", "274177", "6700417", "67280421310721"}
	require.Len(t, got, len(wantPrimes))
	for i, pp := range got {
		want, perr := arith.ParseUint128(wantPrimes[i])
		require.NoError(t, perr)
		require.Equal(t, want, pp.Prime)
		require.Equal(t, uint(1), pp.Exp)
	}

	prod, ok := got.Product(r)
	require.True(t, ok)
	require.Equal(t, arith.MaxUint128, prod)
}

func TestFactorizeCancel(t *testing.T) {
	f := New(arith.NewU64())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// semiprime with widely separated factors, beyond the Fermat probe
	_, err := f.Factorize(ctx, 2147483647*2971215073)
	require.ErrorIs(t, err, context.Canceled)
}
