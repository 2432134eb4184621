// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromIntToInt(t *testing.T) {
	require := require.New(t)

	require.Equal(int64(5), ToInt(FromInt(5)))
	require.Equal(int64(-5), ToInt(FromInt(-5)))
	require.Equal(int64(0), ToInt(FromInt(0)))
}

func TestMulIdentity(t *testing.T) {
	require := require.New(t)

	one := FromInt(1)
	five := FromInt(5)
	require.Equal(five, Mul(five, one, Near))
	require.Equal(five, Mul(five, one, Trunc))
}

func TestMulExact(t *testing.T) {
	require := require.New(t)

	two := FromInt(2)
	three := FromInt(3)
	require.Equal(FromInt(6), Mul(two, three, Near))
}

func TestMulNegative(t *testing.T) {
	require := require.New(t)

	negTwo := FromInt(-2)
	three := FromInt(3)
	require.Equal(FromInt(-6), Mul(negTwo, three, Near))
	require.Equal(FromInt(6), Mul(negTwo, FromInt(-3), Near))
}

func TestMulTruncVsNear(t *testing.T) {
	require := require.New(t)

	// half = 0.5 in Q48.16
	half := Q(1 << 15)
	third := FromInt(1) / 3 // not exact, but deterministic bit pattern

	a := Mul(half, third, Near)
	b := Mul(half, third, Trunc)
	// Both must be deterministic and Near must round at least as close
	// as Trunc (never further from the true product).
	require.True(a == b || a == b+1 || a == b-1)
}

func TestMulBankersRounding(t *testing.T) {
	require := require.New(t)

	// Construct a product that lands exactly halfway between two
	// representable Q48.16 values and verify round-half-to-even.
	// (2 * 0.5) in raw units: a = 1<<16 (=1.0), shifted value exactly
	// representable, so instead test the halfway case directly via the
	// low-level shift helper semantics: 3 * (1<<15) -> product has a
	// trailing half-bit set with zero remainder below it.
	a := Q(3) // raw units, i.e. 3/65536
	b := Q(1 << 15)
	got := Mul(a, b, Near)
	// true product = 3 * 32768 = 98304 raw sub-units before shifting;
	// 98304 >> 16 = 1 remainder 32768 (exactly half) -> round to even.
	require.Equal(Q(2), got)
}
