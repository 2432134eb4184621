// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package kernel defines the handler vtables every registry in
// package registry holds, per spec.md §4.6, grounded on the *_desc
// structs in original_source (dg_sensor_desc, dg_mind_desc,
// dg_delta_handler_vtbl, dg_prop_vtbl, ...). World is always an
// opaque value owned by the caller: DeltaHandler.Apply is the only
// method in the kernel permitted to mutate it.
package kernel

import (
	"github.com/luxfi/domino/buffer"
	"github.com/luxfi/domino/budget"
	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/orderkey"
	"github.com/luxfi/domino/phase"
	"github.com/luxfi/domino/pkt"
)

// Sensor samples world/agent state into the observation buffer.
// Sample must not mutate world. ShouldRun implements the stride gate
// from spec.md §4.6: "sensors run only when tick % stride ==
// agent_id % stride".
type Sensor interface {
	SensorId() ids.SensorId
	Stride() uint32
	EstimateCost(agent ids.AgentId, observerCtx any) uint32
	Sample(agent ids.AgentId, observerCtx any, tick ids.TickIndex, seq *ids.Seq, out *buffer.ObservationBuffer) error
}

// ShouldRun reports whether a handler with the given stride is due to
// run for agent at tick, per the stride gate every Sensor and Mind
// shares. A stride of 0 is treated as 1.
func ShouldRun(stride uint32, tick ids.TickIndex, agent ids.AgentId) bool {
	if stride == 0 {
		stride = 1
	}
	return uint64(tick)%uint64(stride) == uint64(agent)%uint64(stride)
}

// Mind turns observations into intents. EmitIntent is the only
// write-side entry point available to Step; it returns false if the
// intent buffer refused the packet (capacity/arena exhaustion). state
// is the agent's caller-owned scratch slice (dg_mind_registry's
// internal_state): fixed size per agent, allocated once at Reserve
// time, never grown mid-tick.
type Mind interface {
	MindId() ids.MindId
	Stride() uint32
	EstimateCost(agent ids.AgentId, observations *buffer.ObservationBuffer) uint32
	Step(agent ids.AgentId, observations *buffer.ObservationBuffer, tick ids.TickIndex, budgetUnits uint32, state []byte, seq *ids.Seq, emitIntent func(pkt.Packet) bool) error
}

// Action validates and applies one intent. Validate is read-only with
// respect to world; Apply may only emit deltas through emitDelta —
// never mutate world directly.
type Action interface {
	ActionId() ids.ActionId
	Validate(agent ids.AgentId, intent buffer.Record, world any) (ok bool, reason string)
	Apply(agent ids.AgentId, intent buffer.Record, world any, emitDelta func(orderkey.Key, pkt.Packet) bool) error
}

// DeltaHandler applies one committed delta to world. It is the only
// function in the kernel permitted to mutate authoritative state.
type DeltaHandler interface {
	TypeId() ids.TypeId
	EstimateCost(delta buffer.DeltaRecord) uint32
	Apply(world any, delta buffer.DeltaRecord)
}

// Propagator evolves state over time under an explicit integer work
// budget; it carries no semantics of its own (spec.md §4.13 /
// original_source dg_prop.h).
type Propagator interface {
	DomainId() ids.DomainId
	PropId() ids.PropagatorId
	Step(tick ids.TickIndex, b *budget.Budget, scope budget.Scope)
	Sample(tick ids.TickIndex, query any) (result any, ok bool)
	SerializeState(out []byte) (n int, ok bool)
	HashState() uint64
}

// Domain steps an entire chunked subsystem during TOPOLOGY and SOLVE,
// the only two phases a Domain handler may act on.
type Domain interface {
	DomainId() ids.DomainId
	StepPhase(p phase.Phase, b *budget.Budget, scope budget.Scope)
	Query(query any) (result any, ok bool)
	SerializeState(out []byte) (n int, ok bool)
	HashState() uint64
}
