// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package ids defines the opaque 64-bit identifiers shared by every
// kernel component. None of these types carries semantics of its own —
// they are compared and sorted, never interpreted.
package ids

// TickIndex is the sole authoritative time coordinate. It increases
// monotonically from 0 and is never derived from a wall clock.
type TickIndex uint64

// DomainId identifies a world domain stepped during TOPOLOGY/SOLVE.
type DomainId uint64

// ChunkId identifies a spatial partition within a domain.
type ChunkId uint64

// EntityId identifies an addressable simulation entity (including agents).
type EntityId uint64

// ComponentId identifies the component a delta mutates.
type ComponentId uint64

// TypeId identifies the wire/packet type of an Observation, Intent, or
// Delta, and is the key handler registries dispatch on.
type TypeId uint64

// PropagatorId identifies a propagator within its owning domain.
type PropagatorId uint64

// FrameId identifies a coordinate frame. FrameWorld is reserved and is
// never stored as a node in the frame graph.
type FrameId uint64

// FrameWorld is the distinguished root frame: identity pose, no parent.
const FrameWorld FrameId = 0

// AgentId identifies an agent driven through the sense/mind/act pipeline.
// Agents are a subset of entities; AgentId and EntityId share the same
// numeric space but are kept as distinct types to prevent accidental mixing.
type AgentId uint64

// SensorId, MindId, and ActionId key their respective registries.
type SensorId uint64

// MindId keys the mind registry.
type MindId uint64

// ActionId keys the action registry.
type ActionId uint64

// Seq is a 32-bit per-tick sequence number assigned monotonically by the
// producer of a unit of work or a packet, never reused within a tick.
type Seq uint32
