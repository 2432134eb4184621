// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package accumulator implements the lossless integer owed-work ledger
// described in spec.md §4.4, grounded on the propagator contract in
// original_source/source/domino/sim/prop/dg_prop.h. A propagator that
// cannot pay its full per-tick cost keeps the remainder in owed; no
// work is ever dropped, only deferred to a later tick.
package accumulator

import (
	"github.com/luxfi/domino/fixedpoint"
	"github.com/luxfi/domino/ids"
)

// ValueType selects which payload an Accumulator carries.
type ValueType int

const (
	CountI64 ValueType = iota
	Vec3Q48_16
	QuatQ48_16
)

// Accumulator is a typed, lossless owed-work ledger. Quantum is the
// unit cost of paying out one indivisible piece of owed work (e.g.
// one count, or one component of a vector/quaternion); Apply never
// pays a fraction of a quantum.
type Accumulator struct {
	valueType ValueType
	quantum   uint32

	owedCount int64
	owedVec   fixedpoint.Vec3
	owedQuat  fixedpoint.Quat

	lastCommitTick ids.TickIndex
}

// NewCount returns a count_i64 accumulator with the given quantum (the
// integer cost to pay out one count). quantum of 0 is treated as 1.
func NewCount(quantum uint32) Accumulator {
	return Accumulator{valueType: CountI64, quantum: normalizeQuantum(quantum)}
}

// NewVec3 returns a vec3_q48_16 accumulator, paying out per component.
func NewVec3(quantum uint32) Accumulator {
	return Accumulator{valueType: Vec3Q48_16, quantum: normalizeQuantum(quantum)}
}

// NewQuat returns a quat_q48_16 accumulator, paying out per component.
func NewQuat(quantum uint32) Accumulator {
	return Accumulator{valueType: QuatQ48_16, quantum: normalizeQuantum(quantum)}
}

func normalizeQuantum(q uint32) uint32 {
	if q == 0 {
		return 1
	}
	return q
}

// ValueType reports which payload this accumulator carries.
func (a *Accumulator) ValueType() ValueType { return a.valueType }

// AddCount extends a count_i64 accumulator's owed value by delta. It
// is a no-op on an accumulator of a different ValueType.
func (a *Accumulator) AddCount(delta int64, tick ids.TickIndex) {
	if a.valueType != CountI64 {
		return
	}
	a.owedCount += delta
	a.lastCommitTick = tick
}

// AddVec3 extends a vec3_q48_16 accumulator's owed value by delta.
func (a *Accumulator) AddVec3(delta fixedpoint.Vec3, tick ids.TickIndex) {
	if a.valueType != Vec3Q48_16 {
		return
	}
	a.owedVec = fixedpoint.AddVec3(a.owedVec, delta)
	a.lastCommitTick = tick
}

// AddQuat extends a quat_q48_16 accumulator's owed value by delta,
// treating each component as an independent lossless ledger entry
// (quaternion owed values are not renormalized).
func (a *Accumulator) AddQuat(delta fixedpoint.Quat, tick ids.TickIndex) {
	if a.valueType != QuatQ48_16 {
		return
	}
	a.owedQuat.W += delta.W
	a.owedQuat.X += delta.X
	a.owedQuat.Y += delta.Y
	a.owedQuat.Z += delta.Z
	a.lastCommitTick = tick
}

// IsEmpty reports whether there is no outstanding owed work.
func (a *Accumulator) IsEmpty() bool {
	switch a.valueType {
	case CountI64:
		return a.owedCount == 0
	case Vec3Q48_16:
		return a.owedVec.X == 0 && a.owedVec.Y == 0 && a.owedVec.Z == 0
	case QuatQ48_16:
		return a.owedQuat.W == 0 && a.owedQuat.X == 0 && a.owedQuat.Y == 0 && a.owedQuat.Z == 0
	default:
		return true
	}
}

// LastCommitTick reports the tick of the most recent Add call.
func (a *Accumulator) LastCommitTick() ids.TickIndex { return a.lastCommitTick }

// Owed returns the current owed count. Valid only for CountI64
// accumulators.
func (a *Accumulator) Owed() int64 { return a.owedCount }

// OwedVec3 returns the current owed vector. Valid only for
// Vec3Q48_16 accumulators.
func (a *Accumulator) OwedVec3() fixedpoint.Vec3 { return a.owedVec }

// OwedQuat returns the current owed quaternion delta. Valid only for
// QuatQ48_16 accumulators.
func (a *Accumulator) OwedQuat() fixedpoint.Quat { return a.owedQuat }

// quanta returns how many whole quanta budgetUnits can pay for, and
// the number of budget units that payment actually costs.
func (a *Accumulator) quanta(budgetUnits uint32) (count uint32, cost uint32) {
	count = budgetUnits / a.quantum
	return count, count * a.quantum
}

// ApplyCount pays out as many whole counts as budgetUnits covers,
// calling applyCb once with the integer amount paid (never 0), and
// reports the number of budget units actually consumed. It is a no-op
// (paying and consuming nothing) when owed is already 0, when
// budgetUnits is 0, or on an accumulator of a different ValueType.
func (a *Accumulator) ApplyCount(applyCb func(paid int64), budgetUnits uint32) (unitsUsed uint32) {
	if a.valueType != CountI64 || a.owedCount == 0 || budgetUnits == 0 {
		return 0
	}

	owedMagnitude := a.owedCount
	negative := owedMagnitude < 0
	if negative {
		owedMagnitude = -owedMagnitude
	}

	affordableQuanta, _ := a.quanta(budgetUnits)
	payableQuanta := uint64(owedMagnitude)
	if uint64(affordableQuanta) < payableQuanta {
		payableQuanta = uint64(affordableQuanta)
	}
	if payableQuanta == 0 {
		return 0
	}

	paid := int64(payableQuanta)
	if negative {
		paid = -paid
	}
	a.owedCount -= paid
	if applyCb != nil {
		applyCb(paid)
	}
	return uint32(payableQuanta) * a.quantum
}

// ApplyVec3 pays out as many whole-unit components of the owed vector
// as budgetUnits covers, one quantum per component axis, calling
// applyCb once per axis actually paid. Components are paid in X, Y, Z
// order so that payout order is deterministic regardless of which
// axes happen to be non-zero.
func (a *Accumulator) ApplyVec3(applyCb func(axis int, paid fixedpoint.Q), budgetUnits uint32) (unitsUsed uint32) {
	if a.valueType != Vec3Q48_16 {
		return 0
	}
	axes := [3]*fixedpoint.Q{&a.owedVec.X, &a.owedVec.Y, &a.owedVec.Z}
	remaining := budgetUnits
	for axis, v := range axes {
		if *v == 0 || remaining < a.quantum {
			continue
		}
		paid := payQ(v, remaining, a.quantum)
		if paid != 0 {
			remaining -= a.quantum
			unitsUsed += a.quantum
			if applyCb != nil {
				applyCb(axis, paid)
			}
		}
	}
	return unitsUsed
}

// ApplyQuat pays out as many whole-unit components of the owed
// quaternion delta as budgetUnits covers, in W, X, Y, Z order.
func (a *Accumulator) ApplyQuat(applyCb func(axis int, paid fixedpoint.Q), budgetUnits uint32) (unitsUsed uint32) {
	if a.valueType != QuatQ48_16 {
		return 0
	}
	axes := [4]*fixedpoint.Q{&a.owedQuat.W, &a.owedQuat.X, &a.owedQuat.Y, &a.owedQuat.Z}
	remaining := budgetUnits
	for axis, v := range axes {
		if *v == 0 || remaining < a.quantum {
			continue
		}
		paid := payQ(v, remaining, a.quantum)
		if paid != 0 {
			remaining -= a.quantum
			unitsUsed += a.quantum
			if applyCb != nil {
				applyCb(axis, paid)
			}
		}
	}
	return unitsUsed
}

// payQ pays out one quantum's worth of owed fixed-point value v
// (capped at the magnitude of v itself) and decrements *v by exactly
// that amount.
func payQ(v *fixedpoint.Q, budgetUnits, quantum uint32) fixedpoint.Q {
	owed := int64(*v)
	negative := owed < 0
	if negative {
		owed = -owed
	}
	payable := int64(quantum)
	if payable > owed {
		payable = owed
	}
	if payable == 0 {
		return 0
	}
	paid := fixedpoint.Q(payable)
	if negative {
		paid = -paid
	}
	*v -= paid
	return paid
}
