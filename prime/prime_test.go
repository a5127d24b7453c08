package prime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modeq/modeq/arith"
)

func TestUnder(t *testing.T) {
	require.Equal(t, []uint64{2, 3, 5, 7}, Under(10))
	require.Nil(t, Under(2))

	// pi(10^5) = 9592
	primes := Under(100000)
	require.Len(t, primes, 9592)
	require.Equal(t, uint64(99991), primes[len(primes)-1])
}

func TestIsPrimeSmall(t *testing.T) {
	r := arith.NewU64()

	isPrime := make(map[uint64]bool)
	for _, p := range Under(10000) {
		isPrime[p] = true
	}
	for v := uint64(0); v < 10000; v++ {
		require.Equal(t, isPrime[v], IsPrime(r, v), "n=%d", v)
	}
}

func TestIsPrime64(t *testing.T) {
	r := arith.NewU64()

	for _, p := range []uint64{
		4294967291,           // largest prime below 2^32
		4294967311,           // smallest prime above 2^32
		2147483647,           // 2^31 - 1, Mersenne
		9223372036854775783,  // largest prime below 2^63
		18446744073709551557, // largest prime below 2^64
	} {
		require.True(t, IsPrime(r, p), "p=%d", p)
	}

	for _, c := range []uint64{
		561, 1105, 1729, 29341, 41041, // Carmichael numbers
		3215031751,           // strong pseudoprime to bases 2, 3, 5, 7
		3825123056546413051,  // strong pseudoprime to bases 2..23
		18446744073709551615, // 2^64 - 1
		4294967291 * 2,
	} {
		require.False(t, IsPrime(r, c), "n=%d", c)
	}
}

func TestIsPrime128(t *testing.T) {
	r := arith.NewU128()

	sm, err := arith.ParseUint128("41538374868278621028243970633760399")
	require.NoError(t, err)
	lg, err := arith.ParseUint128("340282366920938463463374607431768211297")
	require.NoError(t, err)

	require.True(t, IsPrime(r, sm))
	require.True(t, IsPrime(r, lg))

	// 2^128 - 1 = 3 * 5 * 17 * 257 * 641 * 65537 * 274177 * 6700417 * 67280421310721
	require.False(t, IsPrime(r, arith.MaxUint128))

	// first prime above 2^64
	a, err := arith.ParseUint128("18446744073709551629")
	require.NoError(t, err)
	require.True(t, IsPrime(r, a))
}
