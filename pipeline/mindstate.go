// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package pipeline

import "github.com/luxfi/domino/ids"

// MindState is the per-agent scratch buffer a Mind's Step receives as
// internal_state, grounded on
// original_source/legacy/engine_modules_engine/engine/agent/mind/dg_mind_registry.h's
// void *internal_state parameter. Storage for every agent is sized
// once at Reserve and never grows mid-tick; callers index it by the
// same AgentId used everywhere else in the pipeline.
type MindState struct {
	bytesPerAgent uint32
	slots         [][]byte
}

// Reserve allocates maxAgents slots of bytesPerAgent bytes each.
// Calling it again discards all prior contents.
func (m *MindState) Reserve(maxAgents, bytesPerAgent uint32) {
	m.bytesPerAgent = bytesPerAgent
	m.slots = make([][]byte, maxAgents)
	for i := range m.slots {
		m.slots[i] = make([]byte, bytesPerAgent)
	}
}

// Get returns agent's scratch slice, or nil if agent is out of range
// or no storage was reserved.
func (m *MindState) Get(agent ids.AgentId) []byte {
	idx := uint32(agent)
	if idx >= uint32(len(m.slots)) {
		return nil
	}
	return m.slots[idx]
}

// Count returns the number of agent slots reserved.
func (m *MindState) Count() int { return len(m.slots) }
