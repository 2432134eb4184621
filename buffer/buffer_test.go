// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package buffer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/orderkey"
	"github.com/luxfi/domino/pkt"
)

func packetFor(tick ids.TickIndex, src ids.EntityId, seq ids.Seq, payload []byte) pkt.Packet {
	return pkt.Packet{
		Header: pkt.Header{
			Tick:       tick,
			SrcEntity:  src,
			Seq:        seq,
			PayloadLen: uint32(len(payload)),
		},
		Payload: payload,
	}
}

func TestIntentBufferRejectsWrongTick(t *testing.T) {
	require := require.New(t)

	var b IntentBuffer
	b.Reserve(4, 64)
	b.BeginTick(5)

	require.False(b.Push(packetFor(4, 1, 0, nil)))
	require.Equal(0, b.Count())
}

func TestIntentBufferRejectsPayloadLenMismatch(t *testing.T) {
	require := require.New(t)

	var b IntentBuffer
	b.Reserve(4, 64)
	b.BeginTick(1)

	p := packetFor(1, 1, 0, []byte("abc"))
	p.Header.PayloadLen = 99
	require.False(b.Push(p))
}

func TestIntentBufferRefusesAtCapacity(t *testing.T) {
	require := require.New(t)

	var b IntentBuffer
	b.Reserve(1, 64)
	b.BeginTick(1)

	require.True(b.Push(packetFor(1, 1, 0, nil)))
	require.False(b.Push(packetFor(1, 2, 0, nil)))
	require.Equal(uint32(1), b.ProbeRefusedRecords())
}

func TestIntentBufferRefusesArenaOverflow(t *testing.T) {
	require := require.New(t)

	var b IntentBuffer
	b.Reserve(4, 4)
	b.BeginTick(1)

	require.False(b.Push(packetFor(1, 1, 0, []byte("too-long"))))
	require.Equal(uint32(1), b.ProbeRefusedArena())
}

func TestIntentBufferCanonizeIsOrderIndependent(t *testing.T) {
	require := require.New(t)

	build := func(order []int) []ids.EntityId {
		var b IntentBuffer
		b.Reserve(16, 256)
		b.BeginTick(1)
		entities := []ids.EntityId{5, 1, 3, 2, 4}
		for _, i := range order {
			b.Push(packetFor(1, entities[i], 0, nil))
		}
		b.Canonize()
		var out []ids.EntityId
		for i := 0; i < b.Count(); i++ {
			r, _ := b.At(i)
			out = append(out, r.Header.SrcEntity)
		}
		return out
	}

	base := build([]int{0, 1, 2, 3, 4})
	require.Equal([]ids.EntityId{1, 2, 3, 4, 5}, base)

	rnd := rand.New(rand.NewSource(11))
	perm := []int{0, 1, 2, 3, 4}
	for trial := 0; trial < 10; trial++ {
		rnd.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		got := build(append([]int(nil), perm...))
		require.Equal(base, got)
	}
}

func TestDeltaBufferCanonizeByKeyThenInsertIndex(t *testing.T) {
	require := require.New(t)

	var b DeltaBuffer
	b.Reserve(16, 256)
	b.BeginTick(1)

	keyFor := func(entity ids.EntityId) orderkey.Key {
		return orderkey.Key{EntityId: entity}
	}

	// Two pushes sharing a key: insertion order must be preserved.
	require.True(b.Push(keyFor(1), packetFor(1, 1, 0, nil)))
	require.True(b.Push(keyFor(1), packetFor(1, 1, 1, nil)))
	require.True(b.Push(keyFor(0), packetFor(1, 2, 0, nil)))

	b.Canonize()
	require.True(b.IsSorted())

	first, _ := b.At(0)
	second, _ := b.At(1)
	third, _ := b.At(2)
	require.Equal(ids.EntityId(0), first.Key.EntityId)
	require.Equal(ids.EntityId(1), second.Key.EntityId)
	require.Equal(uint64(0), second.InsertIndex)
	require.Equal(ids.EntityId(1), third.Key.EntityId)
	require.Equal(uint64(1), third.InsertIndex)
}

func TestDeltaBufferRefusesAtCapacity(t *testing.T) {
	require := require.New(t)

	var b DeltaBuffer
	b.Reserve(1, 64)
	b.BeginTick(1)

	k := orderkey.Key{}
	require.True(b.Push(k, packetFor(1, 1, 0, nil)))
	require.False(b.Push(k, packetFor(1, 2, 0, nil)))
	require.Equal(uint32(1), b.ProbeRefusedRecords())
}

func TestBeginTickResetsContentsNotCapacity(t *testing.T) {
	require := require.New(t)

	var b IntentBuffer
	b.Reserve(2, 32)
	b.BeginTick(1)
	require.True(b.Push(packetFor(1, 1, 0, []byte("ab"))))
	require.Equal(1, b.Count())

	b.BeginTick(2)
	require.Equal(0, b.Count())
	require.True(b.Push(packetFor(2, 1, 0, []byte("ab"))))
}
