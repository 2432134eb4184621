// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package workqueue implements the bounded per-phase FIFO described in
// spec.md §4.2, grounded on dg_work_queue as used by
// original_source/engine/modules/sim/sched/dg_sched.c. Items are
// strictly totally ordered by (key, insert_index); behavior is
// identical regardless of push order.
package workqueue

import (
	"sort"

	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/orderkey"
)

// Item is one unit of scheduled work.
type Item struct {
	Key         orderkey.Key
	WorkTypeId  ids.TypeId
	CostUnits   uint32
	EnqueueTick ids.TickIndex
	PayloadRef  []byte

	insertIndex uint64
}

// Queue is a bounded sorted container over Item, keyed by
// (Item.Key, insert_index). reserve() pre-sizes storage once; push
// after the capacity is exhausted is refused and counted, never
// resized.
type Queue struct {
	items       []Item
	capacity    uint32
	nextInsert  uint64
	probeRefuse uint32
}

// Reserve allocates the queue's backing storage. Calling it again
// clears any existing contents.
func (q *Queue) Reserve(capacity uint32) {
	q.items = make([]Item, 0, capacity)
	q.capacity = capacity
	q.nextInsert = 0
	q.probeRefuse = 0
}

// Push appends item, assigning it the next insert_index. It refuses
// (incrementing the refusal probe) without modifying queue state if
// the queue is at capacity.
func (q *Queue) Push(item Item) bool {
	if uint32(len(q.items)) >= q.capacity {
		q.probeRefuse++
		return false
	}
	item.insertIndex = q.nextInsert
	q.nextInsert++
	idx := sort.Search(len(q.items), func(i int) bool {
		return less(item, q.items[i])
	})
	q.items = append(q.items, Item{})
	copy(q.items[idx+1:], q.items[idx:])
	q.items[idx] = item
	return true
}

func less(a, b Item) bool {
	c := orderkey.Compare(a.Key, b.Key)
	if c != 0 {
		return c < 0
	}
	return a.insertIndex < b.insertIndex
}

// PeekNext returns the strictly least item by (key, insert_index)
// without removing it, and reports whether the queue was non-empty.
func (q *Queue) PeekNext() (Item, bool) {
	if len(q.items) == 0 {
		return Item{}, false
	}
	return q.items[0], true
}

// PopNext removes and returns the strictly least item.
func (q *Queue) PopNext() (Item, bool) {
	if len(q.items) == 0 {
		return Item{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Count returns the number of items currently queued.
func (q *Queue) Count() int {
	return len(q.items)
}

// At returns the item at canonical position i (0 is the least item).
func (q *Queue) At(i int) (Item, bool) {
	if i < 0 || i >= len(q.items) {
		return Item{}, false
	}
	return q.items[i], true
}

// Clear empties the queue without releasing its backing capacity.
func (q *Queue) Clear() {
	q.items = q.items[:0]
}

// ProbeRefused reports how many pushes were refused for lack of
// capacity since the last Reserve.
func (q *Queue) ProbeRefused() uint32 {
	return q.probeRefuse
}
