// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package pkt

// FNV1aOffset64 and FNV1aPrime64 are the standard FNV-1a 64-bit
// constants, grounded on the hash used throughout
// original_source/engine/modules/sim/act/dg_delta_commit.c.
const (
	FNV1aOffset64 uint64 = 14695981039346656037
	fnv1aPrime64  uint64 = 1099511628211
)

// FNV1a64 folds p into the running hash h.
func FNV1a64(h uint64, p []byte) uint64 {
	for _, b := range p {
		h ^= uint64(b)
		h *= fnv1aPrime64
	}
	return h
}

// FNV1a64U16LE folds the little-endian bytes of v into h.
func FNV1a64U16LE(h uint64, v uint16) uint64 {
	var buf [2]byte
	LEWriteU16(buf[:], v)
	return FNV1a64(h, buf[:])
}

// FNV1a64U32LE folds the little-endian bytes of v into h.
func FNV1a64U32LE(h uint64, v uint32) uint64 {
	var buf [4]byte
	LEWriteU32(buf[:], v)
	return FNV1a64(h, buf[:])
}

// FNV1a64U64LE folds the little-endian bytes of v into h.
func FNV1a64U64LE(h uint64, v uint64) uint64 {
	var buf [8]byte
	LEWriteU64(buf[:], v)
	return FNV1a64(h, buf[:])
}

// HeaderCanonicalBytes serializes h in its canonical little-endian form
// for hashing — the same field order every peer computes, independent
// of struct layout/padding.
func HeaderCanonicalBytes(h Header) []byte {
	buf := make([]byte, 0, 8+4+4+4+8+8+8+8+8+4+4)
	var tmp8 [8]byte
	var tmp4 [4]byte

	LEWriteU64(tmp8[:], uint64(h.TypeId))
	buf = append(buf, tmp8[:]...)
	LEWriteU32(tmp4[:], h.SchemaId)
	buf = append(buf, tmp4[:]...)
	LEWriteU32(tmp4[:], h.SchemaVer)
	buf = append(buf, tmp4[:]...)
	LEWriteU32(tmp4[:], h.Flags)
	buf = append(buf, tmp4[:]...)
	LEWriteU64(tmp8[:], uint64(h.Tick))
	buf = append(buf, tmp8[:]...)
	LEWriteU64(tmp8[:], uint64(h.SrcEntity))
	buf = append(buf, tmp8[:]...)
	LEWriteU64(tmp8[:], uint64(h.DstEntity))
	buf = append(buf, tmp8[:]...)
	LEWriteU64(tmp8[:], uint64(h.DomainId))
	buf = append(buf, tmp8[:]...)
	LEWriteU64(tmp8[:], uint64(h.ChunkId))
	buf = append(buf, tmp8[:]...)
	LEWriteU32(tmp4[:], uint32(h.Seq))
	buf = append(buf, tmp4[:]...)
	LEWriteU32(tmp4[:], h.PayloadLen)
	buf = append(buf, tmp4[:]...)
	return buf
}

// PacketHash computes FNV1a64(header_canonical_bytes ‖ payload_bytes),
// the packet_hash folded into the per-tick deltas_hash (spec.md §6).
func PacketHash(p Packet) uint64 {
	h := FNV1a64Offset()
	h = FNV1a64(h, HeaderCanonicalBytes(p.Header))
	h = FNV1a64(h, p.Payload)
	return h
}

// FNV1a64Offset returns the FNV-1a 64-bit offset basis, the seed every
// fold chain in this package starts from.
func FNV1a64Offset() uint64 {
	return FNV1aOffset64
}
