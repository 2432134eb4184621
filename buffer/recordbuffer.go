// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package buffer

import (
	"sort"

	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/pkt"
)

// RecordBuffer is the shared implementation behind IntentBuffer and
// ObservationBuffer: both are bounded per-tick record arrays over a
// shared payload arena, canonicalized by the same header-field
// comparator (spec.md §4.5).
type RecordBuffer struct {
	tick ids.TickIndex

	records  []Record
	capacity uint32

	arena arena

	probeRefusedRecords uint32
	probeRefusedArena   uint32
}

// Reserve allocates bounded storage for maxRecords records and
// arenaBytes of payload space. Calling it again discards all state.
func (b *RecordBuffer) Reserve(maxRecords, arenaBytes uint32) {
	b.records = make([]Record, 0, maxRecords)
	b.capacity = maxRecords
	b.arena.reserve(arenaBytes)
	b.probeRefusedRecords = 0
	b.probeRefusedArena = 0
}

// BeginTick resets the buffer's contents (not its reserved capacity)
// for the given tick.
func (b *RecordBuffer) BeginTick(tick ids.TickIndex) {
	b.tick = tick
	b.records = b.records[:0]
	b.arena.beginTick()
}

// Push copies pkt's header and appends its payload into the arena.
// It refuses the push if the buffer is full, the arena lacks room,
// pkt.Header.Tick doesn't match the buffer's tick, or the payload
// length doesn't match PayloadLen. Only the first two refusals are
// counted (ProbeRefusedRecords, ProbeRefusedArena); tick and
// payload-length mismatches are refused without incrementing any
// counter.
func (b *RecordBuffer) Push(p pkt.Packet) bool {
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

	b.records = append(b.records, Record{Header: p.Header, Payload: ref})
	return true
}

// Canonize sorts the buffer's records into the canonical comparator
// order, making iteration order independent of push order.
func (b *RecordBuffer) Canonize() {
	sort.SliceStable(b.records, func(i, j int) bool {
		return compareRecords(b.records[i], b.records[j]) < 0
	})
}

// Count returns the number of records currently held.
func (b *RecordBuffer) Count() int { return len(b.records) }

// At returns the record at canonical position i.
func (b *RecordBuffer) At(i int) (Record, bool) {
	if i < 0 || i >= len(b.records) {
		return Record{}, false
	}
	return b.records[i], true
}

// ProbeRefusedRecords reports how many pushes were refused for lack
// of record-table capacity since the last Reserve.
func (b *RecordBuffer) ProbeRefusedRecords() uint32 { return b.probeRefusedRecords }

// ProbeRefusedArena reports how many pushes were refused for lack of
// arena capacity since the last Reserve.
func (b *RecordBuffer) ProbeRefusedArena() uint32 { return b.probeRefusedArena }

// IntentBuffer buffers Intent packets for a single tick prior to
// action dispatch.
type IntentBuffer struct{ RecordBuffer }

// ObservationBuffer buffers Observation packets for a single tick
// prior to the Mind phase.
type ObservationBuffer struct{ RecordBuffer }
