// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package accumulator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/domino/fixedpoint"
	"github.com/luxfi/domino/ids"
)

func vec3(x, y, z int64) fixedpoint.Vec3 {
	return fixedpoint.Vec3{X: fixedpoint.FromInt(x), Y: fixedpoint.FromInt(y), Z: fixedpoint.FromInt(z)}
}

func quat(w, x, y, z int64) fixedpoint.Quat {
	return fixedpoint.Quat{W: fixedpoint.FromInt(w), X: fixedpoint.FromInt(x), Y: fixedpoint.FromInt(y), Z: fixedpoint.FromInt(z)}
}

// TestLosslessUnderUninterruptedBudget implements spec.md Scenario 3's
// first case: adding 1 count per tick with uninterrupted budget pays
// everything out, leaving owed == 0 after 5 ticks.
func TestLosslessUnderUninterruptedBudget(t *testing.T) {
	require := require.New(t)

	acc := NewCount(1)
	var value int64
	for tick := ids.TickIndex(1); tick <= 5; tick++ {
		acc.AddCount(1, tick)
		acc.ApplyCount(func(paid int64) { value += paid }, 10)
	}
	require.Equal(int64(5), value)
	require.True(acc.IsEmpty())
}

// TestLosslessUnderBudgetPressure implements spec.md Scenario 3's
// second case: budget schedule [0, 0, 1, 0, 10] still pays all five
// units by tick 5, because nothing paid is ever lost.
func TestLosslessUnderBudgetPressure(t *testing.T) {
	require := require.New(t)

	acc := NewCount(1)
	var value int64
	schedule := []uint32{0, 0, 1, 0, 10}
	for i, budget := range schedule {
		tick := ids.TickIndex(i + 1)
		acc.AddCount(1, tick)
		acc.ApplyCount(func(paid int64) { value += paid }, budget)
	}
	require.Equal(int64(5), value)
	require.Equal(int64(0), acc.Owed())
	require.True(acc.IsEmpty())
}

func TestApplyCountNeverExceedsBudget(t *testing.T) {
	require := require.New(t)

	acc := NewCount(3)
	acc.AddCount(10, 1)
	var paid int64
	used := acc.ApplyCount(func(p int64) { paid += p }, 7)
	// quantum 3: 7/3 = 2 quanta payable (one count each), costing 6 units.
	require.Equal(int64(2), paid)
	require.Equal(uint32(6), used)
	require.Equal(int64(8), acc.Owed())
}

func TestApplyCountZeroBudgetIsNoop(t *testing.T) {
	require := require.New(t)

	acc := NewCount(1)
	acc.AddCount(5, 1)
	used := acc.ApplyCount(func(int64) { t.Fatal("must not be called") }, 0)
	require.Equal(uint32(0), used)
	require.Equal(int64(5), acc.Owed())
}

func TestApplyCountHandlesNegativeOwed(t *testing.T) {
	require := require.New(t)

	acc := NewCount(1)
	acc.AddCount(-3, 1)
	var paid int64
	acc.ApplyCount(func(p int64) { paid += p }, 2)
	require.Equal(int64(-2), paid)
	require.Equal(int64(-1), acc.Owed())
}

func TestVec3AccumulatorPaysPerAxis(t *testing.T) {
	require := require.New(t)

	acc := NewVec3(1)
	acc.AddVec3(vec3(5, 3, 0), 1)

	paidAxes := map[int]int{}
	used := acc.ApplyVec3(func(axis int, paid fixedpoint.Q) {
		paidAxes[axis]++
	}, 2)
	require.Equal(uint32(2), used)
	require.Len(paidAxes, 2)
	require.False(acc.IsEmpty())
}

func TestQuatAccumulatorIsEmptyInitially(t *testing.T) {
	require := require.New(t)

	acc := NewQuat(1)
	require.True(acc.IsEmpty())
	acc.AddQuat(quat(0, 0, 0, 1), 1)
	require.False(acc.IsEmpty())
}

func TestZeroQuantumNormalizesToOne(t *testing.T) {
	require := require.New(t)

	acc := NewCount(0)
	acc.AddCount(1, 1)
	var paid int64
	acc.ApplyCount(func(p int64) { paid = p }, 1)
	require.Equal(int64(1), paid)
}
