// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/domino/budget"
	"github.com/luxfi/domino/config"
	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/orderkey"
	"github.com/luxfi/domino/phase"
	"github.com/luxfi/domino/workqueue"
)

// TestDeterministicDeferralDoesNotSkip implements spec.md Scenario 2:
// TOPOLOGY global budget = 6; items costing [5, 10, 1, 2] for entities
// [1, 2, 3, 4]. After one tick, only entity 1 is processed; the
// residue, in order, is [2, 3, 4] — the scheduler must not skip ahead
// to the cheap item (cost 1, entity 3) once entity 2 blocks.
func TestDeterministicDeferralDoesNotSkip(t *testing.T) {
	require := require.New(t)

	var s Scheduler
	cfg := config.Small()
	s.Reserve(cfg)
	s.SetPhaseBudgetLimit(phase.Topology, 6)
	s.SetDomainChunkDefaults(config.Unlimited, config.Unlimited)

	var processed []ids.EntityId
	s.SetWorkHandler(func(item workqueue.Item) {
		processed = append(processed, item.Key.EntityId)
	})

	costs := []uint32{5, 10, 1, 2}
	entities := []ids.EntityId{1, 2, 3, 4}
	for i := range costs {
		s.EnqueueWork(phase.Topology, workqueue.Item{
			Key:       orderkey.Key{Phase: uint16(phase.Topology), EntityId: entities[i]},
			CostUnits: costs[i],
		})
	}

	s.Tick(nil, 1)

	require.Equal([]ids.EntityId{1}, processed)

	residueQueue := &s.phaseQueues[phase.Topology]
	var residue []ids.EntityId
	for residueQueue.Count() > 0 {
		it, _ := residueQueue.PopNext()
		residue = append(residue, it.Key.EntityId)
	}
	require.Equal([]ids.EntityId{2, 3, 4}, residue)
}

func TestPhaseBeginEndCountsBalanceAfterTick(t *testing.T) {
	require := require.New(t)

	var s Scheduler
	s.Reserve(config.Small())
	s.Tick(nil, 1)

	for p := phase.Phase(0); int(p) < phase.Count; p++ {
		require.Equal(uint32(1), s.Hash().PhaseBeginCount(p))
		require.Equal(uint32(1), s.Hash().PhaseEndCount(p))
	}
}

func TestRegisterPhaseHandlerOrdersByPriorityThenInsertion(t *testing.T) {
	require := require.New(t)

	var s Scheduler
	s.Reserve(config.Small())

	var order []string

	require.True(s.RegisterPhaseHandler(phase.Input, 10, func(ids.TickIndex, *budget.Budget) { order = append(order, "b") }))
	require.True(s.RegisterPhaseHandler(phase.Input, 5, func(ids.TickIndex, *budget.Budget) { order = append(order, "a") }))
	require.True(s.RegisterPhaseHandler(phase.Input, 10, func(ids.TickIndex, *budget.Budget) { order = append(order, "c") }))

	s.Tick(nil, 1)
	require.Equal([]string{"a", "b", "c"}, order)
}

func TestRegisterPhaseHandlerRefusesAtCapacity(t *testing.T) {
	require := require.New(t)

	var s Scheduler
	cfg := config.Small()
	cfg.PhaseHandlerCapacity = 1
	s.Reserve(cfg)

	require.True(s.RegisterPhaseHandler(phase.Input, 0, func(ids.TickIndex, *budget.Budget) {}))
	require.False(s.RegisterPhaseHandler(phase.Input, 0, func(ids.TickIndex, *budget.Budget) {}))
	require.Equal(uint32(1), s.ProbePhaseHandlerRefused())
}
