// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package due implements the client-facing due-event scheduler
// adapter described in spec.md §4.13. It is not part of the
// deterministic kernel itself, but clients such as inheritance
// processing and remains decay rely on its ordering guarantees, so it
// follows the same monotonic-integer-tick, no-wall-clock discipline.
package due

import (
	"sort"

	"github.com/luxfi/domino/ids"
)

// NoneDue is the sentinel NextDueTick returns when an entry has no
// pending work.
const NoneDue = ^ids.TickIndex(0)

// Entry is the due-scheduler vtable from spec.md §4.13: NextDueTick
// reports the next tick at or before which ProcessUntil must run, or
// NoneDue if nothing is pending.
type Entry interface {
	NextDueTick(now ids.TickIndex) ids.TickIndex
	ProcessUntil(target ids.TickIndex) error
}

type registration struct {
	entry  Entry
	handle uint64
}

// Scheduler holds a stable-ordered set of registered Entry values and
// advances them by integer tick only — it never reads the clock.
type Scheduler struct {
	entries    []registration
	nextHandle uint64
}

// Register adds entry, returning a stable handle that determines its
// tie-break order among entries due at the same tick.
func (s *Scheduler) Register(entry Entry) uint64 {
	h := s.nextHandle
	s.nextHandle++
	s.entries = append(s.entries, registration{entry: entry, handle: h})
	return h
}

// Advance processes every registered entry whose NextDueTick(now) is
// at or before targetTick, calling ProcessUntil(targetTick) on each.
// Entries due at the same tick run in registration-handle order. It
// returns the first error encountered, continuing to process the
// remaining entries regardless (matching spec.md's "the scheduler
// never unwinds on a handler error").
func (s *Scheduler) Advance(targetTick ids.TickIndex) error {
	order := make([]registration, len(s.entries))
	copy(order, s.entries)
	sort.SliceStable(order, func(i, j int) bool { return order[i].handle < order[j].handle })

	var firstErr error
	for _, reg := range order {
		due := reg.entry.NextDueTick(targetTick)
		if due == NoneDue || due > targetTick {
			continue
		}
		if err := reg.entry.ProcessUntil(targetTick); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Count returns the number of registered entries.
func (s *Scheduler) Count() int { return len(s.entries) }
