// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package buffer

import (
	"sort"

	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/orderkey"
	"github.com/luxfi/domino/pkt"
)

// DeltaRecord is one commit-bound delta: its OrderingKey, header, and
// payload, plus the insert_index assigned at Push time that tie-breaks
// records sharing an OrderingKey.
type DeltaRecord struct {
	Key         orderkey.Key
	Header      pkt.Header
	Payload     []byte
	InsertIndex uint64
}

// DeltaBuffer buffers Delta packets for a single tick prior to
// COMMIT, grounded on dg_delta_buffer. Unlike IntentBuffer and
// ObservationBuffer, its canonical order is (OrderingKey,
// insert_index) — never header-field order — because commit order
// must match the scheduler's ordering contract exactly.
type DeltaBuffer struct {
	tick ids.TickIndex

	records  []DeltaRecord
	capacity uint32

	arena arena

	nextInsert uint64

	probeRefusedRecords uint32
	probeRefusedArena   uint32
}

// Reserve allocates bounded storage for maxDeltas records and
// arenaBytes of payload space.
func (b *DeltaBuffer) Reserve(maxDeltas, arenaBytes uint32) {
	b.records = make([]DeltaRecord, 0, maxDeltas)
	b.capacity = maxDeltas
	b.arena.reserve(arenaBytes)
	b.nextInsert = 0
	b.probeRefusedRecords = 0
	b.probeRefusedArena = 0
}

// BeginTick resets the buffer's contents for the given tick. The
// insert_index counter is NOT reset, so ties across ticks remain
// resolvable for debugging; only within-tick order matters to commit.
func (b *DeltaBuffer) BeginTick(tick ids.TickIndex) {
	b.tick = tick
	b.records = b.records[:0]
	b.arena.beginTick()
}

// Push appends a delta packet under its canonical commit key,
// assigning it the next insert_index. It refuses on capacity/arena
// overflow (counted) or a tick/payload-length mismatch (not counted),
// mirroring IntentBuffer/ObservationBuffer.Push.
func (b *DeltaBuffer) Push(key orderkey.Key, p pkt.Packet) bool {
	if uint32(len(b.records)) >= b.capacity {
		b.probeRefusedRecords++
		return false
	}
	if p.Header.Tick != b.tick {
		return false
	}
	if uint32(len(p.Payload)) != p.Header.PayloadLen {
		return false
	}

	ref, ok := b.arena.push(p.Payload)
	if !ok {
		b.probeRefusedArena++
		return false
	}

	b.records = append(b.records, DeltaRecord{
		Key:         key,
		Header:      p.Header,
		Payload:     ref,
		InsertIndex: b.nextInsert,
	})
	b.nextInsert++
	return true
}

// Canonize sorts the buffer's records by (OrderingKey, insert_index).
func (b *DeltaBuffer) Canonize() {
	sort.SliceStable(b.records, func(i, j int) bool {
		a, c := b.records[i], b.records[j]
		if ord := orderkey.Compare(a.Key, c.Key); ord != 0 {
			return ord < 0
		}
		return a.InsertIndex < c.InsertIndex
	})
}

// IsSorted reports whether the buffer is currently in canonical
// order; debug builds assert this immediately after Canonize.
func (b *DeltaBuffer) IsSorted() bool {
	return sort.SliceIsSorted(b.records, func(i, j int) bool {
		a, c := b.records[i], b.records[j]
		if ord := orderkey.Compare(a.Key, c.Key); ord != 0 {
			return ord < 0
		}
		return a.InsertIndex < c.InsertIndex
	})
}

// Count returns the number of records currently held.
func (b *DeltaBuffer) Count() int { return len(b.records) }

// At returns the record at canonical position i.
func (b *DeltaBuffer) At(i int) (DeltaRecord, bool) {
	if i < 0 || i >= len(b.records) {
		return DeltaRecord{}, false
	}
	return b.records[i], true
}

// ProbeRefusedRecords reports how many pushes were refused for lack
// of record-table capacity since the last Reserve.
func (b *DeltaBuffer) ProbeRefusedRecords() uint32 { return b.probeRefusedRecords }

// ProbeRefusedArena reports how many pushes were refused for lack of
// arena capacity since the last Reserve.
func (b *DeltaBuffer) ProbeRefusedArena() uint32 { return b.probeRefusedArena }
