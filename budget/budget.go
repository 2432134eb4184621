// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package budget implements the tick-local integer work budget
// described in spec.md §4.3, grounded on
// original_source/engine/modules/execution/budgets/dg_budget.h. Budgets
// are measured in integer work units, never time, and never consult a
// platform clock.
package budget

import (
	"sort"

	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/internal/ordmath"
)

// Unlimited is the sentinel meaning "no cap at this level".
const Unlimited uint32 = 0xFFFFFFFF

// Scope selects which rows of the budget table TryConsume must debit.
// Zero means "no budget at that level" for Domain/Chunk.
type Scope struct {
	Domain ids.DomainId
	Chunk  ids.ChunkId
}

// Global returns a scope with no domain or chunk component.
func Global() Scope { return Scope{} }

// ForDomain returns a scope keyed only by domain.
func ForDomain(domain ids.DomainId) Scope { return Scope{Domain: domain} }

// ForChunk returns a scope keyed only by chunk.
func ForChunk(chunk ids.ChunkId) Scope { return Scope{Chunk: chunk} }

// ForDomainChunk returns a scope keyed by both domain and chunk.
func ForDomainChunk(domain ids.DomainId, chunk ids.ChunkId) Scope {
	return Scope{Domain: domain, Chunk: chunk}
}

type entry struct {
	id    uint64
	limit uint32
	used  uint32
}

// Budget holds the global, per-domain, and per-chunk budget tables for
// the current tick.
type Budget struct {
	tick ids.TickIndex

	globalLimit uint32
	globalUsed  uint32

	domainDefault uint32
	chunkDefault  uint32

	domainEntries []entry
	domainCap     uint32

	chunkEntries []entry
	chunkCap     uint32

	probeDomainOverflow uint32
	probeChunkOverflow  uint32
}

// Reserve allocates sorted tables of the given capacities. Calling it
// again resets all state (limits, usage, and overflow probes).
func (b *Budget) Reserve(domainCap, chunkCap uint32) {
	*b = Budget{
		domainEntries: make([]entry, 0, domainCap),
		domainCap:     domainCap,
		chunkEntries:  make([]entry, 0, chunkCap),
		chunkCap:      chunkCap,
	}
}

// BeginTick zeroes every `used` counter. It does not clear limits.
func (b *Budget) BeginTick(tick ids.TickIndex) {
	b.tick = tick
	b.globalUsed = 0
	for i := range b.domainEntries {
		b.domainEntries[i].used = 0
	}
	for i := range b.chunkEntries {
		b.chunkEntries[i].used = 0
	}
}

// SetLimits sets the global limit and the default per-domain/per-chunk
// limits applied to rows created on demand.
func (b *Budget) SetLimits(global, domainDefault, chunkDefault uint32) {
	b.globalLimit = global
	b.domainDefault = domainDefault
	b.chunkDefault = chunkDefault
}

// SetDomainLimit overrides the limit for a specific domain id,
// allocating a new row if the table has capacity. It reports false
// (and increments the domain overflow probe) if the table is full and
// id is not already present.
func (b *Budget) SetDomainLimit(id ids.DomainId, limit uint32) bool {
	e, ok := findOrAlloc(&b.domainEntries, b.domainCap, uint64(id), b.domainDefault)
	if !ok {
		b.probeDomainOverflow++
		return false
	}
	e.limit = limit
	return true
}

// SetChunkLimit overrides the limit for a specific chunk id, same
// allocation discipline as SetDomainLimit.
func (b *Budget) SetChunkLimit(id ids.ChunkId, limit uint32) bool {
	e, ok := findOrAlloc(&b.chunkEntries, b.chunkCap, uint64(id), b.chunkDefault)
	if !ok {
		b.probeChunkOverflow++
		return false
	}
	e.limit = limit
	return true
}

// findOrAlloc returns a pointer to the sorted entry for id, creating
// one (seeded with defaultLimit) if absent and the table has room.
func findOrAlloc(entries *[]entry, cap uint32, id uint64, defaultLimit uint32) (*entry, bool) {
	es := *entries
	idx := sort.Search(len(es), func(i int) bool { return es[i].id >= id })
	if idx < len(es) && es[idx].id == id {
		return &es[idx], true
	}
	if uint32(len(es)) >= cap {
		return nil, false
	}
	es = append(es, entry{})
	copy(es[idx+1:], es[idx:])
	es[idx] = entry{id: id, limit: defaultLimit}
	*entries = es
	return &es[idx], true
}

func find(entries []entry, id uint64) (*entry, bool) {
	idx := sort.Search(len(entries), func(i int) bool { return entries[i].id >= id })
	if idx < len(entries) && entries[idx].id == id {
		return &entries[idx], true
	}
	return nil, false
}

func remaining(limit, used uint32) uint32 {
	if limit == Unlimited {
		return Unlimited
	}
	if used >= limit {
		return 0
	}
	return limit - used
}

// TryConsume is all-or-nothing: it succeeds iff the global remaining
// budget, and (when present in scope) the domain and chunk remaining
// budgets, are each at least units. On success every applicable `used`
// counter is increased atomically (with saturating arithmetic); on
// failure no counter changes. The caller MUST NOT skip ahead to
// cheaper work on failure — see workqueue/scheduler deferral.
func (b *Budget) TryConsume(scope Scope, units uint32) bool {
	if units == 0 {
		return true
	}

	globalRemaining := remaining(b.globalLimit, b.globalUsed)
	if globalRemaining < units {
		return false
	}

	var domainEntry, chunkEntry *entry
	if scope.Domain != 0 {
		e, ok := findOrAlloc(&b.domainEntries, b.domainCap, uint64(scope.Domain), b.domainDefault)
		if !ok {
			b.probeDomainOverflow++
			return false
		}
		if remaining(e.limit, e.used) < units {
			return false
		}
		domainEntry = e
	}
	if scope.Chunk != 0 {
		e, ok := findOrAlloc(&b.chunkEntries, b.chunkCap, uint64(scope.Chunk), b.chunkDefault)
		if !ok {
			b.probeChunkOverflow++
			return false
		}
		if remaining(e.limit, e.used) < units {
			return false
		}
		chunkEntry = e
	}

	b.globalUsed = saturatingAdd(b.globalUsed, units)
	if domainEntry != nil {
		domainEntry.used = saturatingAdd(domainEntry.used, units)
	}
	if chunkEntry != nil {
		chunkEntry.used = saturatingAdd(chunkEntry.used, units)
	}
	return true
}

func saturatingAdd(a, b uint32) uint32 {
	sum := uint64(a) + uint64(b)
	if sum > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(sum)
}

// Remaining returns the minimum of the applicable remaining values for
// scope (global, and domain/chunk if present in scope).
func (b *Budget) Remaining(scope Scope) uint32 {
	r := remaining(b.globalLimit, b.globalUsed)
	if scope.Domain != 0 {
		if e, ok := find(b.domainEntries, uint64(scope.Domain)); ok {
			r = ordmath.Min(r, remaining(e.limit, e.used))
		} else if uint32(len(b.domainEntries)) >= b.domainCap {
			r = 0
		} else {
			r = ordmath.Min(r, remaining(b.domainDefault, 0))
		}
	}
	if scope.Chunk != 0 {
		if e, ok := find(b.chunkEntries, uint64(scope.Chunk)); ok {
			r = ordmath.Min(r, remaining(e.limit, e.used))
		} else if uint32(len(b.chunkEntries)) >= b.chunkCap {
			r = 0
		} else {
			r = ordmath.Min(r, remaining(b.chunkDefault, 0))
		}
	}
	return r
}

// ProbeDomainOverflow reports how many times SetDomainLimit/TryConsume
// failed to allocate a new domain row because the table was full.
func (b *Budget) ProbeDomainOverflow() uint32 {
	return b.probeDomainOverflow
}

// ProbeChunkOverflow reports how many times SetChunkLimit/TryConsume
// failed to allocate a new chunk row because the table was full.
func (b *Budget) ProbeChunkOverflow() uint32 {
	return b.probeChunkOverflow
}
