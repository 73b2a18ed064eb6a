package rng_test

import (
	"math"
	"math/big"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

// The sampler leans on two fixed-width arithmetic identities: truncating a
// 128-bit product to its low 64 bits is reduction modulo 2^64, and unary
// minus on a uint64 is the two's-complement negation 2^64 - x. These tests
// pin both down against arbitrary-precision arithmetic so the identities are
// proven rather than assumed.

var two64 = new(big.Int).Lsh(big.NewInt(1), 64)

func bigFromHiLo(hi, lo uint64) *big.Int {
	v := new(big.Int).SetUint64(hi)
	v.Mul(v, two64)
	return v.Add(v, new(big.Int).SetUint64(lo))
}

func TestTruncationEqualsMod2Pow64(t *testing.T) {
	cases := []struct {
		name string
		hi   uint64
		lo   uint64
	}{
		{"2^64", 1, 0},
		{"2^64+1", 1, 1},
		{"2^128-1", math.MaxUint64, math.MaxUint64},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := bigFromHiLo(tc.hi, tc.lo)
			mod := new(big.Int).Mod(r, two64)

			// The truncating "cast" of the 128-bit value keeps the low word.
			require.True(t, mod.IsUint64())
			require.Equal(t, tc.lo, mod.Uint64())
		})
	}
}

func TestWideningMultiplyMatchesBigInt(t *testing.T) {
	cases := []struct {
		s     uint64
		bound uint64
	}{
		{math.MaxUint64, math.MaxUint64},
		{math.MaxUint64, 10},
		{1 << 63, 6},
		{0, 12345},
		{3074457345618258603, 6},
	}

	for _, tc := range cases {
		hi, lo := bits.Mul64(tc.s, tc.bound)

		want := new(big.Int).Mul(
			new(big.Int).SetUint64(tc.s),
			new(big.Int).SetUint64(tc.bound),
		)
		require.Equal(t, 0, bigFromHiLo(hi, lo).Cmp(want),
			"s=%d bound=%d", tc.s, tc.bound)

		wantLo := new(big.Int).Mod(want, two64)
		require.Equal(t, lo, wantLo.Uint64(), "low word must equal product mod 2^64")
	}
}

func TestUnsignedNegationEqualsTwosComplement(t *testing.T) {
	cases := []uint64{1, 1 << 63, math.MaxUint64}

	for _, x := range cases {
		// 2^64 - x in arbitrary precision.
		want := new(big.Int).Sub(two64, new(big.Int).SetUint64(x))

		// Wrapping unary minus on the unsigned value.
		neg := -x
		require.Equal(t, want.Uint64(), neg, "x=%d", x)

		// Signed negation reinterpreted as unsigned gives the same bits.
		reinterpreted := uint64(-int64(x))
		require.Equal(t, neg, reinterpreted, "x=%d", x)
	}
}

func TestThresholdEquals2Pow64ModBound(t *testing.T) {
	bounds := []uint64{1, 2, 3, 6, 10, 52, 1000, 1 << 32, (1 << 62) + 3, math.MaxUint64}

	for _, bound := range bounds {
		// The sampler computes the rejection threshold as (-bound) % bound.
		got := -bound % bound

		want := new(big.Int).Mod(two64, new(big.Int).SetUint64(bound))
		require.Equal(t, want.Uint64(), got, "bound=%d", bound)
	}
}
