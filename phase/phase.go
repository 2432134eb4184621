// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package phase defines the eight fixed per-tick phases and their
// names, grounded on
// original_source/engine/modules/execution/scheduler/dg_phase.c. The
// phase order is immutable; nothing in the kernel reorders it.
package phase

// Phase identifies one of the eight fixed per-tick stages.
type Phase uint16

const (
	Input Phase = iota
	Topology
	Sense
	Mind
	Action
	Solve
	Commit
	Hash

	count
)

// Count is the number of phases.
const Count = int(count)

// Meta names a phase for diagnostics and logging.
type Meta struct {
	Phase Phase
	Name  string
}

var meta = [Count]Meta{
	{Input, "PH_INPUT"},
	{Topology, "PH_TOPOLOGY"},
	{Sense, "PH_SENSE"},
	{Mind, "PH_MIND"},
	{Action, "PH_ACTION"},
	{Solve, "PH_SOLVE"},
	{Commit, "PH_COMMIT"},
	{Hash, "PH_HASH"},
}

// IsValid reports whether p is one of the eight defined phases.
func IsValid(p Phase) bool {
	return p < count
}

// Get returns the metadata for p, or the zero Meta if p is invalid.
func Get(p Phase) (Meta, bool) {
	if !IsValid(p) {
		return Meta{}, false
	}
	return meta[p], true
}

// Name returns p's diagnostic name, or "PH_INVALID".
func Name(p Phase) string {
	m, ok := Get(p)
	if !ok {
		return "PH_INVALID"
	}
	return m.Name
}

// All returns the phases in fixed execution order: INPUT, TOPOLOGY,
// SENSE, MIND, ACTION, SOLVE, COMMIT, HASH.
func All() []Phase {
	out := make([]Phase, Count)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}
