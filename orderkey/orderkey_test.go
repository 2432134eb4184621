// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package orderkey

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/domino/ids"
)

func TestCompareFieldPrecedence(t *testing.T) {
	require := require.New(t)

	base := Key{Phase: 1, DomainId: 1, ChunkId: 1, EntityId: 1, ComponentId: 1, TypeId: 1, Seq: 1}

	higherPhase := base
	higherPhase.Phase = 2
	require.True(Less(base, higherPhase))

	// A lower phase always wins regardless of later fields, even if
	// every later field of `base` is larger.
	lowerPhaseHigherRest := base
	lowerPhaseHigherRest.Phase = 0
	lowerPhaseHigherRest.EntityId = 999
	require.True(Less(lowerPhaseHigherRest, base))
}

func TestCompareIsStrictTotalOrder(t *testing.T) {
	require := require.New(t)

	a := Key{Phase: 1, DomainId: 2, ChunkId: 3, EntityId: 4, ComponentId: 5, TypeId: 6, Seq: 7}
	require.Equal(0, Compare(a, a))

	b := a
	b.Seq = 8
	require.Equal(-1, Compare(a, b))
	require.Equal(1, Compare(b, a))
}

// TestSortIsOrderIndependent mirrors testable property 3/7: sorting the
// same multiset of keys on independent runs, regardless of original
// insertion order, yields the same sequence.
func TestSortIsOrderIndependent(t *testing.T) {
	require := require.New(t)

	keys := make([]Key, 0, 64)
	for i := 0; i < 64; i++ {
		keys = append(keys, Key{
			Phase:       uint16(i % 3),
			DomainId:    ids.DomainId(i % 5),
			ChunkId:     ids.ChunkId(i % 7),
			EntityId:    ids.EntityId(i % 11),
			ComponentId: ids.ComponentId(i % 2),
			TypeId:      ids.TypeId(i % 4),
			Seq:         ids.Seq(i),
		})
	}

	sortKeys := func(in []Key) []Key {
		out := append([]Key(nil), in...)
		sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })
		return out
	}

	want := sortKeys(keys)

	rnd := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		shuffled := append([]Key(nil), keys...)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := sortKeys(shuffled)
		require.Equal(want, got)
	}
}
