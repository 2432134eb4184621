// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package deltacommit implements COMMIT's sort-then-apply path
// described in spec.md §4.7, grounded on
// original_source/engine/modules/sim/act/dg_delta_commit.c. Apply is
// the only place authoritative state changes: it sorts the tick's
// delta buffer by OrderingKey, verifies the sort in debug builds, and
// dispatches each delta to its registered handler in that order.
package deltacommit

import (
	"github.com/luxfi/domino/buffer"
	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/internal/detassert"
	"github.com/luxfi/domino/kernel"
	"github.com/luxfi/domino/pkt"
	"github.com/luxfi/domino/registry"
)

// Stats mirrors dg_delta_commit_stats: counts of applied/rejected
// deltas plus the running FNV1a64 checksum over every applied delta's
// OrderingKey. The scheduler keeps it as LastCommitStats; it is not
// folded into the hashreport ledgers.
type Stats struct {
	DeltasApplied  uint32
	DeltasRejected uint32
	OrderingChecksum uint64
}

// Apply sorts buf's records by (OrderingKey, insert_index), asserts
// the sort in debug builds, then applies each record whose type_id
// has a registered handler, in that canonical order. Records with no
// registered handler are counted as rejected and skipped. onApplied,
// if non-nil, is called once per applied record (after Apply, before
// moving to the next) so callers — e.g. the scheduler's hash/replay
// ledgers — can fold the same commit order without a second lookup
// pass.
func Apply(world any, handlers *registry.Registry[kernel.DeltaHandler], buf *buffer.DeltaBuffer, onApplied func(buffer.DeltaRecord)) Stats {
	buf.Canonize()
	detassert.Sorted(buf.IsSorted(), "delta buffer must be sorted before commit")

	stats := Stats{OrderingChecksum: pkt.FNV1a64Offset()}
	for i := 0; i < buf.Count(); i++ {
		rec, _ := buf.At(i)
		handler, ok := handlers.Find(HandlerKey(rec.Header.TypeId))
		if !ok {
			stats.DeltasRejected++
			continue
		}
		stats.OrderingChecksum = checksumKey(stats.OrderingChecksum, rec)
		handler.Apply(world, rec)
		stats.DeltasApplied++
		if onApplied != nil {
			onApplied(rec)
		}
	}
	return stats
}

// checksumKey folds one delta record's OrderingKey into h in the
// exact field order and little-endian encoding dg_delta_key_checksum
// uses, so the resulting checksum is bit-identical across peers.
func checksumKey(h uint64, rec buffer.DeltaRecord) uint64 {
	k := rec.Key
	h = pkt.FNV1a64U16LE(h, k.Phase)
	h = pkt.FNV1a64U64LE(h, uint64(k.DomainId))
	h = pkt.FNV1a64U64LE(h, uint64(k.ChunkId))
	h = pkt.FNV1a64U64LE(h, uint64(k.EntityId))
	h = pkt.FNV1a64U64LE(h, uint64(k.ComponentId))
	h = pkt.FNV1a64U64LE(h, uint64(k.TypeId))
	h = pkt.FNV1a64U32LE(h, uint32(k.Seq))
	return h
}

// HandlerKey builds the registry.Key a DeltaHandler is registered
// under: the bare TypeId, with no secondary component.
func HandlerKey(t ids.TypeId) registry.Key {
	return registry.Key{Primary: uint64(t)}
}
