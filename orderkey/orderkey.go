// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package orderkey implements the total order every unit of scheduled
// work and every committed delta is sorted by. It is the single
// canonical identity the rest of the kernel builds on: phase queues and
// the delta buffer compare by Key first, breaking ties only by insert
// index. Intent/observation canonicalization uses its own header-field
// comparator (package buffer), not Key.
package orderkey

import (
	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/internal/ordmath"
)

// Key is the lexicographic ordering tuple described in spec.md §3. Two
// keys compare equal only when every field matches; Seq is assigned
// monotonically per-producer within a tick so no two units of work from
// the same producer ever tie.
type Key struct {
	Phase       uint16
	DomainId    ids.DomainId
	ChunkId     ids.ChunkId
	EntityId    ids.EntityId
	ComponentId ids.ComponentId
	TypeId      ids.TypeId
	Seq         ids.Seq
}

// Make builds a Key from its fields. It exists mainly for readability at
// call sites — Key is a plain struct and can be constructed directly.
func Make(phase uint16, domain ids.DomainId, chunk ids.ChunkId, entity ids.EntityId, component ids.ComponentId, typ ids.TypeId, seq ids.Seq) Key {
	return Key{
		Phase:       phase,
		DomainId:    domain,
		ChunkId:     chunk,
		EntityId:    entity,
		ComponentId: component,
		TypeId:      typ,
		Seq:         seq,
	}
}

// Compare returns -1, 0, or 1 as a orders before, equal to, or after b,
// comparing fields in the fixed sequence: phase, domain, chunk, entity,
// component, type, seq. This is the primary sort key for phase queues
// and the delta buffer; insertion order only breaks exact ties.
func Compare(a, b Key) int {
	if a.Phase != b.Phase {
		return ordmath.Compare(uint64(a.Phase), uint64(b.Phase))
	}
	if a.DomainId != b.DomainId {
		return ordmath.Compare(uint64(a.DomainId), uint64(b.DomainId))
	}
	if a.ChunkId != b.ChunkId {
		return ordmath.Compare(uint64(a.ChunkId), uint64(b.ChunkId))
	}
	if a.EntityId != b.EntityId {
		return ordmath.Compare(uint64(a.EntityId), uint64(b.EntityId))
	}
	if a.ComponentId != b.ComponentId {
		return ordmath.Compare(uint64(a.ComponentId), uint64(b.ComponentId))
	}
	if a.TypeId != b.TypeId {
		return ordmath.Compare(uint64(a.TypeId), uint64(b.TypeId))
	}
	if a.Seq != b.Seq {
		return ordmath.Compare(uint64(a.Seq), uint64(b.Seq))
	}
	return 0
}

// Less reports whether a sorts strictly before b.
func Less(a, b Key) bool {
	return Compare(a, b) < 0
}
