// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package hashreport implements the scheduler's HASH-phase ledger and
// replay trace described in spec.md §6, grounded on
// original_source/source/domino/sim/sched/dg_sched_hash.c and
// engine/modules/execution/scheduler/dg_sched_replay.h. The ledger
// folds committed deltas only; propagator and accumulator state is not
// folded into it (propagator.Registry.HashState is a separate fold).
package hashreport

import (
	"github.com/luxfi/domino/buffer"
	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/orderkey"
	"github.com/luxfi/domino/phase"
	"github.com/luxfi/domino/pkt"
)

// Hash accumulates a per-tick replay-hash ledger: phase enter/exit
// counters plus a running FNV1a64 fold over every committed delta's
// (OrderingKey.Phase, OrderingKey.ComponentId, packet hash) — the
// exact fields and order dg_sched_hash_record_committed_delta folds.
type Hash struct {
	tick ids.TickIndex

	phaseBeginCount [phase.Count]uint32
	phaseEndCount   [phase.Count]uint32

	deltasCommitted uint32
	deltasHash      uint64
}

// BeginTick resets the ledger for tick.
func (h *Hash) BeginTick(tick ids.TickIndex) {
	h.tick = tick
	h.phaseBeginCount = [phase.Count]uint32{}
	h.phaseEndCount = [phase.Count]uint32{}
	h.deltasCommitted = 0
	h.deltasHash = pkt.FNV1a64Offset()
}

// PhaseBegin records entry into p.
func (h *Hash) PhaseBegin(p phase.Phase) {
	if phase.IsValid(p) {
		h.phaseBeginCount[p]++
	}
}

// PhaseEnd records exit from p.
func (h *Hash) PhaseEnd(p phase.Phase) {
	if phase.IsValid(p) {
		h.phaseEndCount[p]++
	}
}

// RecordCommittedDelta folds one committed delta into the running
// deltas hash, in canonical commit order — callers must invoke this
// once per applied delta, in the order deltacommit.Apply applied them.
func (h *Hash) RecordCommittedDelta(key orderkey.Key, p pkt.Packet) {
	ph := pkt.PacketHash(p)
	v := h.deltasHash
	v = pkt.FNV1a64U16LE(v, key.Phase)
	v = pkt.FNV1a64U64LE(v, uint64(key.ComponentId))
	v = pkt.FNV1a64U64LE(v, ph)
	h.deltasHash = v
	h.deltasCommitted++
}

// DeltasHash returns the running aggregate hash over every committed
// delta recorded so far this tick.
func (h *Hash) DeltasHash() uint64 { return h.deltasHash }

// DeltasCommitted returns how many deltas have been recorded so far
// this tick.
func (h *Hash) DeltasCommitted() uint32 { return h.deltasCommitted }

// PhaseBeginCount reports how many times PhaseBegin(p) fired this
// tick (always exactly 1 for a well-formed single-pass tick).
func (h *Hash) PhaseBeginCount(p phase.Phase) uint32 {
	if !phase.IsValid(p) {
		return 0
	}
	return h.phaseBeginCount[p]
}

// PhaseEndCount reports how many times PhaseEnd(p) fired this tick.
func (h *Hash) PhaseEndCount(p phase.Phase) uint32 {
	if !phase.IsValid(p) {
		return 0
	}
	return h.phaseEndCount[p]
}

// Event is one entry in a tick's replay trace: a committed delta
// alongside the phase it committed in, kept for deterministic replay
// and debugging — never for gameplay decisions.
type Event struct {
	Key     orderkey.Key
	Header  pkt.Header
	Payload []byte
}

// Replay accumulates an in-memory trace of a tick's phase
// transitions and committed deltas, grounded on
// dg_sched_replay.h ("scaffolding only" — no file IO here either).
type Replay struct {
	tick ids.TickIndex

	phaseBeginCount [phase.Count]uint32
	phaseEndCount   [phase.Count]uint32

	events []Event
}

// BeginTick resets the trace for tick, reusing prior backing storage.
func (r *Replay) BeginTick(tick ids.TickIndex) {
	r.tick = tick
	r.phaseBeginCount = [phase.Count]uint32{}
	r.phaseEndCount = [phase.Count]uint32{}
	r.events = r.events[:0]
}

// PhaseBegin records entry into p.
func (r *Replay) PhaseBegin(p phase.Phase) {
	if phase.IsValid(p) {
		r.phaseBeginCount[p]++
	}
}

// PhaseEnd records exit from p.
func (r *Replay) PhaseEnd(p phase.Phase) {
	if phase.IsValid(p) {
		r.phaseEndCount[p]++
	}
}

// RecordCommittedDelta appends one committed delta to the trace, in
// canonical commit order.
func (r *Replay) RecordCommittedDelta(key orderkey.Key, rec buffer.DeltaRecord) {
	r.events = append(r.events, Event{Key: key, Header: rec.Header, Payload: rec.Payload})
}

// Events returns the trace recorded so far this tick, in commit
// order.
func (r *Replay) Events() []Event { return r.events }
