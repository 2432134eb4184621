// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package frame implements the deterministic frame graph described in
// spec.md §4.9, grounded on
// original_source/source/domino/world/frame/dg_frame_graph.c,
// original_source/source/domino/world/frame/dg_frame.h, and
// original_source/legacy/.../dg_frame_eval.c. Frames form a single-parent
// forest rooted at FrameWorld; evaluation walks the parent chain with a
// fixed depth bound and composes poses rootward, never recursing.
package frame

import (
	"errors"

	"github.com/luxfi/domino/fixedpoint"
	"github.com/luxfi/domino/ids"
)

// MaxDepth bounds parent-chain traversal — no frame may be more than
// MaxDepth hops from FrameWorld, matching DG_FRAME_MAX_DEPTH.
const MaxDepth = 16

// ErrCycleOrTooDeep is returned by Eval when a frame's parent chain
// does not reach FrameWorld within MaxDepth hops.
var ErrCycleOrTooDeep = errors.New("frame: cycle or depth exceeds MaxDepth")

// ErrNotFound is returned when a referenced frame id has no node.
var ErrNotFound = errors.New("frame: id not found in graph")

// Node is one frame's static+linear-in-tick definition: a base pose
// relative to ParentId, plus optional per-tick linear velocity terms
// (all zero means the frame is static relative to its parent).
type Node struct {
	Id       ids.FrameId
	ParentId ids.FrameId

	ToParentBase fixedpoint.Pose

	VelPosPerTick     fixedpoint.Vec3
	VelInclinePerTick fixedpoint.Q
	VelRollPerTick    fixedpoint.Q
}

// Graph is a fixed-capacity, duplicate-rejecting table of frame nodes.
// FrameWorld is never stored as a node — it is the implicit root every
// parent chain must reach.
type Graph struct {
	nodes    []Node
	capacity uint32
}

// Reserve allocates bounded storage for up to capacity nodes. Calling
// it again discards all state.
func (g *Graph) Reserve(capacity uint32) {
	g.nodes = make([]Node, 0, capacity)
	g.capacity = capacity
}

// Add registers node, rejecting FrameWorld as an id, duplicate ids,
// and registrations past capacity.
func (g *Graph) Add(node Node) error {
	if node.Id == ids.FrameWorld {
		return errors.New("frame: cannot register FrameWorld as a node")
	}
	if uint32(len(g.nodes)) >= g.capacity {
		return errors.New("frame: graph at capacity")
	}
	for _, n := range g.nodes {
		if n.Id == node.Id {
			return errors.New("frame: duplicate frame id")
		}
	}
	g.nodes = append(g.nodes, node)
	return nil
}

// Find returns the node registered under id.
func (g *Graph) Find(id ids.FrameId) (Node, bool) {
	for _, n := range g.nodes {
		if n.Id == id {
			return n, true
		}
	}
	return Node{}, false
}

// Count returns the number of registered nodes.
func (g *Graph) Count() int { return len(g.nodes) }

// At returns the node at position i in registration order.
func (g *Graph) At(i int) (Node, bool) {
	if i < 0 || i >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Clear empties the graph without releasing its backing capacity.
func (g *Graph) Clear() { g.nodes = g.nodes[:0] }
