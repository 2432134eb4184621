// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package pipeline

import (
	"github.com/luxfi/domino/budget"
	"github.com/luxfi/domino/buffer"
	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/kernel"
	"github.com/luxfi/domino/orderkey"
	"github.com/luxfi/domino/phase"
	"github.com/luxfi/domino/pkt"
	"github.com/luxfi/domino/registry"
	"github.com/luxfi/domino/workqueue"
)

// MindKey builds the registry.Key a Mind is registered under.
func MindKey(id ids.MindId) registry.Key { return registry.Key{Primary: uint64(id)} }

// StepAgent runs mindID's Step for agent if it is registered, due, and
// affordable under scope, appending every emitted intent to
// out — with hdr.Tick and hdr.SrcEntity stamped, mirroring
// dg_mind_emit_intent_to_buffer. On insufficient budget the whole
// step is deferred into deferQ rather than partially run. state may
// be nil; when non-nil, agent's scratch slice is passed through as
// the mind's internal_state.
func StepAgent(
	reg *registry.Registry[kernel.Mind],
	mindID ids.MindId,
	tick ids.TickIndex,
	agent ids.AgentId,
	observations *buffer.ObservationBuffer,
	b *budget.Budget,
	scope budget.Scope,
	deferQ *workqueue.Queue,
	out *buffer.IntentBuffer,
	state *MindState,
	seq *ids.Seq,
) error {
	m, ok := reg.Find(MindKey(mindID))
	if !ok {
		return nil
	}
	if !kernel.ShouldRun(m.Stride(), tick, ids.AgentId(agent)) {
		return nil
	}

	cost := m.EstimateCost(agent, observations)
	if cost != 0 && !b.TryConsume(scope, cost) {
		if deferQ != nil {
			deferQ.Push(workqueue.Item{
				Key:         orderkey.Make(uint16(phase.Mind), scope.Domain, scope.Chunk, ids.EntityId(agent), 0, ids.TypeId(mindID), 0),
				WorkTypeId:  ids.TypeId(mindID),
				CostUnits:   cost,
				EnqueueTick: tick,
			})
		}
		return nil
	}

	emit := func(intent pkt.Packet) bool {
		intent.Header.Tick = tick
		intent.Header.SrcEntity = ids.EntityId(agent)
		intent.Header.PayloadLen = uint32(len(intent.Payload))
		return out.Push(intent)
	}

	var scratch []byte
	if state != nil {
		scratch = state.Get(agent)
	}
	return m.Step(agent, observations, tick, cost, scratch, seq, emit)
}
