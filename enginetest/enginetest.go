// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package enginetest provides small, dependency-free test helpers
// shared across this module's package tests — a deterministic-replay
// harness built around this kernel's actual invariant: same (build,
// command stream, tick) must yield bit-identical per-tick hashes,
// never wall-clock or goroutine-scheduling dependent behavior.
package enginetest

import "github.com/luxfi/domino/ids"

// Tickable is the subset of scheduler.Scheduler's API a replay
// comparison needs: drive one tick and report its resulting hash.
type Tickable interface {
	Tick(world any, tick ids.TickIndex)
	DeltasHash() uint64
}

// RunTicks drives s for count ticks starting at startTick, returning
// the DeltasHash reported after each tick in order.
func RunTicks(s Tickable, world any, startTick ids.TickIndex, count int) []uint64 {
	hashes := make([]uint64, 0, count)
	for i := 0; i < count; i++ {
		s.Tick(world, startTick+ids.TickIndex(i))
		hashes = append(hashes, s.DeltasHash())
	}
	return hashes
}

// AssertDeterministicReplay runs two independently constructed
// Tickables for count ticks each and reports whether their per-tick
// hash sequences are identical — the property every peer in a
// lockstep simulation must satisfy given the same inputs.
func AssertDeterministicReplay(a, b Tickable, worldA, worldB any, startTick ids.TickIndex, count int) bool {
	ha := RunTicks(a, worldA, startTick, count)
	hb := RunTicks(b, worldB, startTick, count)
	if len(ha) != len(hb) {
		return false
	}
	for i := range ha {
		if ha[i] != hb[i] {
			return false
		}
	}
	return true
}
