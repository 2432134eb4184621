// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package buffer implements the bounded per-tick Intent, Observation,
// and Delta buffers described in spec.md §4.5, grounded on
// original_source/source/domino/agent/act/dg_intent_buffer.c and
// original_source/engine/modules/sim/act/dg_delta_buffer.h. Every
// buffer is a fixed-capacity record array plus a single contiguous
// payload arena, both sized once at Reserve and reset at BeginTick;
// overflow in either dimension refuses the push and increments a
// dedicated counter instead of growing.
package buffer

// arena is a contiguous append-only byte buffer that backs payload
// storage for a single tick. It never grows past its reserved
// capacity.
type arena struct {
	bytes []byte
	used  uint32
	cap    uint32
}

func (a *arena) reserve(capBytes uint32) {
	a.bytes = make([]byte, capBytes)
	a.cap = capBytes
	a.used = 0
}

func (a *arena) beginTick() {
	a.used = 0
}

// push copies payload into the arena and returns the slice backing
// it, or (nil, false) if there is not enough room.
func (a *arena) push(payload []byte) ([]byte, bool) {
	need := uint32(len(payload))
	if need == 0 {
		return nil, true
	}
	if need > a.cap || a.used > a.cap-need {
		return nil, false
	}
	dst := a.bytes[a.used : a.used+need]
	copy(dst, payload)
	a.used += need
	return dst, true
}
