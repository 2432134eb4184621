// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package buffer

import (
	"bytes"

	"github.com/luxfi/domino/internal/ordmath"
	"github.com/luxfi/domino/pkt"
)

// Record is one header plus payload captured in an Intent or
// Observation buffer for the current tick.
type Record struct {
	Header  pkt.Header
	Payload []byte
}

// compareRecords implements the canonical Intent/Observation ordering
// from spec.md §4.5:
// (tick, src_entity, type_id, seq, schema_id, schema_ver, dst_entity,
// domain_id, chunk_id, payload_len, payload_bytes).
func compareRecords(a, b Record) int {
	if c := ordmath.Compare(uint64(a.Header.Tick), uint64(b.Header.Tick)); c != 0 {
		return c
	}
	if c := ordmath.Compare(uint64(a.Header.SrcEntity), uint64(b.Header.SrcEntity)); c != 0 {
		return c
	}
	if c := ordmath.Compare(uint64(a.Header.TypeId), uint64(b.Header.TypeId)); c != 0 {
		return c
	}
	if c := ordmath.Compare(uint64(a.Header.Seq), uint64(b.Header.Seq)); c != 0 {
		return c
	}
	if c := ordmath.Compare(uint64(a.Header.SchemaId), uint64(b.Header.SchemaId)); c != 0 {
		return c
	}
	if c := ordmath.Compare(uint64(a.Header.SchemaVer), uint64(b.Header.SchemaVer)); c != 0 {
		return c
	}
	if c := ordmath.Compare(uint64(a.Header.DstEntity), uint64(b.Header.DstEntity)); c != 0 {
		return c
	}
	if c := ordmath.Compare(uint64(a.Header.DomainId), uint64(b.Header.DomainId)); c != 0 {
		return c
	}
	if c := ordmath.Compare(uint64(a.Header.ChunkId), uint64(b.Header.ChunkId)); c != 0 {
		return c
	}
	if c := ordmath.Compare(uint64(len(a.Payload)), uint64(len(b.Payload))); c != 0 {
		return c
	}
	return bytes.Compare(a.Payload, b.Payload)
}
