// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package scheduler implements dg_sched: the deterministic tick
// driver that owns the eight phase queues, their registered handlers,
// the tick-local budget, and the delta commit path, grounded on
// original_source/source/domino/sim/sched/dg_sched.h and
// engine/modules/sim/sched/dg_sched.c.
package scheduler

import (
	"sort"

	"github.com/luxfi/domino/budget"
	"github.com/luxfi/domino/config"
	"github.com/luxfi/domino/deltacommit"
	"github.com/luxfi/domino/buffer"
	"github.com/luxfi/domino/hashreport"
	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/internal/detassert"
	"github.com/luxfi/domino/internal/dlog"
	"github.com/luxfi/domino/kernel"
	"github.com/luxfi/domino/orderkey"
	"github.com/luxfi/domino/phase"
	"github.com/luxfi/domino/pkt"
	"github.com/luxfi/domino/registry"
	"github.com/luxfi/domino/workqueue"
)

// WorkFunc processes one deferred work item once its budget has been
// paid. It is the single write-side entry point process_phase_work
// calls back into — phase-specific code decides what the item means.
type WorkFunc func(item workqueue.Item)

// PhaseHandlerFunc is a phase-bound callback, the Go analogue of
// dg_sched_phase_handler_fn; it closes over whatever user_ctx the C
// API threaded through explicitly.
type PhaseHandlerFunc func(tick ids.TickIndex, b *budget.Budget)

type phaseHandlerEntry struct {
	fn           PhaseHandlerFunc
	priorityKey  uint64
	insertIndex  uint32
}

// Scheduler is the deterministic tick driver. It owns eight phase
// queues, eight sorted phase-handler lists, the tick-local budget, the
// delta registry/buffer, and the hash/replay ledgers. Callers drive it
// one tick at a time via Tick; nothing inside ever reads the clock.
type Scheduler struct {
	tick         ids.TickIndex
	currentPhase phase.Phase

	budget             budget.Budget
	phaseBudgetLimit   [phase.Count]uint32
	domainDefaultLimit uint32
	chunkDefaultLimit  uint32

	phaseQueues [phase.Count]workqueue.Queue

	phaseHandlers            [phase.Count][]phaseHandlerEntry
	phaseHandlerCapacity     uint32
	nextPhaseHandlerInsert   uint32
	probePhaseHandlerRefused uint32

	workFn WorkFunc

	deltaHandlers registry.Registry[kernel.DeltaHandler]
	deltaBuffer   buffer.DeltaBuffer

	hash   hashreport.Hash
	replay hashreport.Replay

	lastCommitStats deltacommit.Stats

	log dlog.Logger
}

// Reserve allocates every bounded resource the scheduler owns, per
// p. Calling it again discards all prior state.
func (s *Scheduler) Reserve(p config.Parameters) {
	*s = Scheduler{}
	for i := range s.phaseBudgetLimit {
		s.phaseBudgetLimit[i] = config.Unlimited
	}
	s.domainDefaultLimit = config.Unlimited
	s.chunkDefaultLimit = config.Unlimited

	s.budget.Reserve(p.BudgetDomainCapacity, p.BudgetChunkCapacity)
	for ph := 0; ph < phase.Count; ph++ {
		s.phaseQueues[ph].Reserve(p.PhaseWorkCapacity)
		s.phaseHandlers[ph] = make([]phaseHandlerEntry, 0, p.PhaseHandlerCapacity)
	}
	s.phaseHandlerCapacity = p.PhaseHandlerCapacity
	s.deltaHandlers.Reserve(p.DeltaHandlerRegistryCapacity)
	s.deltaBuffer.Reserve(p.MaxDeltasPerTick, p.DeltaArenaBytes)
}

// SetLogger wires logger as the scheduler's setup-time/refusal logger
// (dlog.NoOp() is used until one is set). Nothing on the per-tick hot
// path ever logs; only registration refusals do.
func (s *Scheduler) SetLogger(logger dlog.Logger) {
	s.log = dlog.WithComponent(logger, "scheduler")
}

func (s *Scheduler) logger() dlog.Logger {
	if s.log == nil {
		return dlog.NoOp()
	}
	return s.log
}

// SetPhaseBudgetLimit sets the global budget limit applied while p
// runs.
func (s *Scheduler) SetPhaseBudgetLimit(p phase.Phase, globalLimit uint32) {
	if phase.IsValid(p) {
		s.phaseBudgetLimit[p] = globalLimit
	}
}

// SetDomainChunkDefaults sets the default per-domain and per-chunk
// budget limits applied to rows created on demand.
func (s *Scheduler) SetDomainChunkDefaults(domainDefault, chunkDefault uint32) {
	s.domainDefaultLimit = domainDefault
	s.chunkDefaultLimit = chunkDefault
}

// RegisterDeltaHandler registers h under its TypeId, rejecting
// duplicates and registry overflow.
func (s *Scheduler) RegisterDeltaHandler(h kernel.DeltaHandler) bool {
	ok := s.deltaHandlers.Add(deltacommit.HandlerKey(h.TypeId()), h)
	if !ok {
		s.logger().Warn("delta handler registration refused", "type_id", h.TypeId())
	}
	return ok
}

// RegisterPhaseHandler registers fn to run during p, in ascending
// (priorityKey, insertion order) — matching
// dg_sched_register_phase_handler's upper-bound insertion so that
// handlers sharing a priority_key run in registration order.
func (s *Scheduler) RegisterPhaseHandler(p phase.Phase, priorityKey uint64, fn PhaseHandlerFunc) bool {
	if !phase.IsValid(p) || fn == nil {
		return false
	}
	handlers := s.phaseHandlers[p]
	if uint32(len(handlers)) >= s.phaseHandlerCapacity {
		s.probePhaseHandlerRefused++
		s.logger().Warn("phase handler registration refused: capacity exhausted", "phase", p, "capacity", s.phaseHandlerCapacity)
		return false
	}

	entry := phaseHandlerEntry{
		fn:          fn,
		priorityKey: priorityKey,
		insertIndex: s.nextPhaseHandlerInsert,
	}
	s.nextPhaseHandlerInsert++

	idx := sort.Search(len(handlers), func(i int) bool { return handlers[i].priorityKey > priorityKey })
	handlers = append(handlers, phaseHandlerEntry{})
	copy(handlers[idx+1:], handlers[idx:])
	handlers[idx] = entry
	s.phaseHandlers[p] = handlers
	return true
}

// ProbePhaseHandlerRefused reports how many RegisterPhaseHandler
// calls were refused for lack of capacity.
func (s *Scheduler) ProbePhaseHandlerRefused() uint32 { return s.probePhaseHandlerRefused }

// SetWorkHandler sets the default callback ProcessPhaseWork uses when
// no explicit fn is supplied.
func (s *Scheduler) SetWorkHandler(fn WorkFunc) { s.workFn = fn }

// EnqueueWork pushes it onto phase p's carryover queue. It requires
// it.Key.Phase == uint16(p) and refuses (with a counter increment) on
// queue overflow.
func (s *Scheduler) EnqueueWork(p phase.Phase, it workqueue.Item) bool {
	if !phase.IsValid(p) || it.Key.Phase != uint16(p) {
		return false
	}
	return s.phaseQueues[p].Push(it)
}

// EmitDelta is the only write-side entry point for buffering a
// committed-state change: it copies delta's payload into the tick's
// delta arena under commitKey.
func (s *Scheduler) EmitDelta(commitKey orderkey.Key, delta pkt.Packet) bool {
	return s.deltaBuffer.Push(commitKey, delta)
}

// Budget exposes the scheduler's tick-local budget (read-only scope
// checks; TryConsume is reserved for ProcessPhaseWork's own
// deferral loop and handlers that enqueue their own work).
func (s *Scheduler) Budget() *budget.Budget { return &s.budget }

// CurrentTick returns the tick Tick is (or was most recently) driving.
func (s *Scheduler) CurrentTick() ids.TickIndex { return s.tick }

// CurrentPhase returns the phase Tick is (or was most recently)
// running.
func (s *Scheduler) CurrentPhase() phase.Phase { return s.currentPhase }

// Hash exposes the tick's hash ledger (spec.md §6's state hash).
func (s *Scheduler) Hash() *hashreport.Hash { return &s.hash }

// Replay exposes the tick's in-memory replay trace.
func (s *Scheduler) Replay() *hashreport.Replay { return &s.replay }

// LastCommitStats returns the deltacommit.Stats from the most recent
// COMMIT phase.
func (s *Scheduler) LastCommitStats() deltacommit.Stats { return s.lastCommitStats }

// DeltasHash returns the current tick's running committed-delta hash,
// the per-tick state fingerprint two peers compare to detect
// divergence.
func (s *Scheduler) DeltasHash() uint64 { return s.hash.DeltasHash() }

// ProcessPhaseWork drains phase p's queue under the current budget,
// using fn if non-nil, else the scheduler's default work handler. It
// implements the critical "deterministic deferral: do not skip" rule:
// the moment an item's budget scope cannot afford it, draining stops
// immediately — the remaining queue (including anything cheaper)
// carries over to the next tick untouched. Returns the number of
// items processed.
func (s *Scheduler) ProcessPhaseWork(p phase.Phase, fn WorkFunc) uint32 {
	if !phase.IsValid(p) {
		return 0
	}
	q := &s.phaseQueues[p]
	use := fn
	if use == nil {
		use = s.workFn
	}
	if use == nil {
		return 0
	}

	var processed uint32
	for {
		next, ok := q.PeekNext()
		if !ok {
			break
		}
		scope := budget.ForDomainChunk(next.Key.DomainId, next.Key.ChunkId)
		if !s.budget.TryConsume(scope, next.CostUnits) {
			break
		}
		item, ok := q.PopNext()
		if !ok {
			break
		}
		use(item)
		processed++
	}
	return processed
}

func (s *Scheduler) runPhaseHandlers(p phase.Phase) {
	for _, h := range s.phaseHandlers[p] {
		h.fn(s.tick, &s.budget)
	}
}

// Tick drives all eight phases, in fixed order, exactly once. For
// each phase it: resets the budget to that phase's limits, runs
// registered phase handlers in priority order, drains the phase
// queue, and — only during COMMIT — sorts and applies the tick's
// delta buffer, folding each applied delta into the hash and replay
// ledgers in the same canonical order it was applied.
func (s *Scheduler) Tick(world any, tick ids.TickIndex) {
	s.tick = tick
	s.hash.BeginTick(tick)
	s.replay.BeginTick(tick)
	s.deltaBuffer.BeginTick(tick)

	for p := phase.Phase(0); int(p) < phase.Count; p++ {
		s.currentPhase = p

		s.budget.SetLimits(s.phaseBudgetLimit[p], s.domainDefaultLimit, s.chunkDefaultLimit)
		s.budget.BeginTick(tick)

		s.hash.PhaseBegin(p)
		s.replay.PhaseBegin(p)

		s.runPhaseHandlers(p)
		s.ProcessPhaseWork(p, nil)

		if p == phase.Commit {
			s.lastCommitStats = s.commit(world)
		}

		s.hash.PhaseEnd(p)
		s.replay.PhaseEnd(p)
	}

	detassert.Invariant(
		allPhaseCountsBalanced(&s.hash),
		"phase_begin_count must equal phase_end_count for every phase after a full tick",
	)
}

func (s *Scheduler) commit(world any) deltacommit.Stats {
	return deltacommit.Apply(world, &s.deltaHandlers, &s.deltaBuffer, func(rec buffer.DeltaRecord) {
		s.hash.RecordCommittedDelta(rec.Key, pkt.Packet{Header: rec.Header, Payload: rec.Payload})
		s.replay.RecordCommittedDelta(rec.Key, rec)
	})
}

func allPhaseCountsBalanced(h *hashreport.Hash) bool {
	for p := phase.Phase(0); int(p) < phase.Count; p++ {
		if h.PhaseBeginCount(p) != h.PhaseEndCount(p) {
			return false
		}
	}
	return true
}
