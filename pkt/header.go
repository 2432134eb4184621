// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package pkt defines the packet header every Observation, Intent, and
// Delta shares, plus the little-endian byte codec used to serialize
// them. The kernel treats payload bytes as opaque TLV streams — it
// never interprets them beyond length-checking.
package pkt

import "github.com/luxfi/domino/ids"

// Header is the common envelope copied by Observation, Intent, and
// Delta packets. DomainId/ChunkId are zero unless a sensor or mind
// supplies them explicitly.
type Header struct {
	TypeId     ids.TypeId
	SchemaId   uint32
	SchemaVer  uint32
	Flags      uint32
	Tick       ids.TickIndex
	SrcEntity  ids.EntityId
	DstEntity  ids.EntityId
	DomainId   ids.DomainId
	ChunkId    ids.ChunkId
	Seq        ids.Seq
	PayloadLen uint32
}

// Packet is a header paired with its opaque TLV payload. Payload must
// have length Header.PayloadLen; callers that violate this are refused
// at the buffer boundary (see package buffer).
type Packet struct {
	Header  Header
	Payload []byte
}
