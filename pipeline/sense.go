// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package pipeline implements the SENSE/MIND/ACTION flow described in
// spec.md §4.6, grounded on
// original_source/source/domino/sim/sense/dg_sensor_registry.c,
// original_source/source/domino/agent/mind/dg_mind_registry.c, and
// original_source/legacy/engine_modules_engine/engine/agent/act/dg_intent_dispatch.c.
// Every stage here is built only on the Scheduler's public API (budget,
// work queues, buffers) — it holds no state of its own beyond the
// registries it is given.
package pipeline

import (
	"github.com/luxfi/domino/budget"
	"github.com/luxfi/domino/buffer"
	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/kernel"
	"github.com/luxfi/domino/orderkey"
	"github.com/luxfi/domino/phase"
	"github.com/luxfi/domino/registry"
	"github.com/luxfi/domino/workqueue"
)

// SensorKey builds the registry.Key a Sensor is registered under.
func SensorKey(id ids.SensorId) registry.Key { return registry.Key{Primary: uint64(id)} }

// SampleAgent runs every registered, due sensor for agent against b's
// scope. The moment a sensor's cost cannot be afforded, that sensor
// and every remaining due sensor are deferred whole — via defer
// into deferQ — rather than skipping ahead to a cheaper one further
// down the table, mirroring dg_sensor_registry_sample_agent's
// all-remaining-deferred behavior.
func SampleAgent(
	reg *registry.Registry[kernel.Sensor],
	tick ids.TickIndex,
	agent ids.AgentId,
	observerCtx any,
	b *budget.Budget,
	scope budget.Scope,
	deferQ *workqueue.Queue,
	out *buffer.ObservationBuffer,
	seq *ids.Seq,
) error {
	count := reg.Count()
	for i := 0; i < count; i++ {
		s, _ := reg.At(i)
		if !kernel.ShouldRun(s.Stride(), tick, ids.AgentId(agent)) {
			continue
		}

		cost := s.EstimateCost(agent, observerCtx)
		if cost != 0 && !b.TryConsume(scope, cost) {
			if deferQ != nil {
				deferRemainingSensors(reg, i, count, tick, agent, observerCtx, scope, deferQ)
			}
			return nil
		}

		if err := s.Sample(agent, observerCtx, tick, seq, out); err != nil {
			return err
		}
	}
	return nil
}

func deferRemainingSensors(
	reg *registry.Registry[kernel.Sensor],
	from, count int,
	tick ids.TickIndex,
	agent ids.AgentId,
	observerCtx any,
	scope budget.Scope,
	deferQ *workqueue.Queue,
) {
	for j := from; j < count; j++ {
		s, _ := reg.At(j)
		if !kernel.ShouldRun(s.Stride(), tick, ids.AgentId(agent)) {
			continue
		}
		cost := s.EstimateCost(agent, observerCtx)
		deferQ.Push(workqueue.Item{
			Key:         orderkey.Make(uint16(phase.Sense), scope.Domain, scope.Chunk, ids.EntityId(agent), 0, ids.TypeId(s.SensorId()), 0),
			WorkTypeId:  ids.TypeId(s.SensorId()),
			CostUnits:   cost,
			EnqueueTick: tick,
		})
	}
}
