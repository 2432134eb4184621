// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package config holds every reserve/set_* knob the scheduler, budget,
// and buffers need at setup time. Domino never reads environment
// variables, files, or the clock (spec.md §6) — all configuration
// flows through this struct and the Builder below.
package config

import "fmt"

// Parameters configures the Scheduler's capacities and default budget
// limits, covering every *_reserve and set_* entry point in spec.md §4.
type Parameters struct {
	// PhaseWorkCapacity bounds each of the eight phase queues.
	PhaseWorkCapacity uint32
	// PhaseHandlerCapacity bounds the number of registered phase
	// handlers per phase.
	PhaseHandlerCapacity uint32

	// BudgetDomainCapacity and BudgetChunkCapacity bound the sorted
	// domain/chunk budget tables.
	BudgetDomainCapacity uint32
	BudgetChunkCapacity  uint32

	// PerPhaseBudgetLimit[phase] is the global budget limit for that
	// phase; DG_BUDGET_UNLIMITED (math.MaxUint32) means unlimited.
	PerPhaseBudgetLimit [8]uint32
	DomainDefaultLimit  uint32
	ChunkDefaultLimit   uint32

	// MaxDeltasPerTick and DeltaArenaBytes bound the delta buffer.
	MaxDeltasPerTick uint32
	DeltaArenaBytes  uint32

	// MaxObservationsPerTick/ObservationArenaBytes and
	// MaxIntentsPerTick/IntentArenaBytes bound the sense/mind buffers.
	MaxObservationsPerTick uint32
	ObservationArenaBytes  uint32
	MaxIntentsPerTick      uint32
	IntentArenaBytes       uint32

	// SensorRegistryCapacity, MindRegistryCapacity,
	// ActionRegistryCapacity, DeltaHandlerRegistryCapacity,
	// PropagatorRegistryCapacity, and DomainRegistryCapacity bound
	// their respective sorted registries.
	SensorRegistryCapacity       uint32
	MindRegistryCapacity         uint32
	ActionRegistryCapacity       uint32
	DeltaHandlerRegistryCapacity uint32
	PropagatorRegistryCapacity   uint32
	DomainRegistryCapacity       uint32

	// FrameCapacity bounds the frame graph's node table.
	FrameCapacity uint32
}

// Unlimited is the sentinel budget value meaning "no cap at this
// level" (spec.md §3 — "The sentinel u32::MAX means unlimited").
const Unlimited uint32 = 0xFFFFFFFF

// Validate reports the first structural problem found, if any. It does
// not touch any external resource — it only checks internal
// consistency of the struct's own fields.
func (p Parameters) Validate() error {
	if p.PhaseWorkCapacity == 0 {
		return fmt.Errorf("config: PhaseWorkCapacity must be > 0")
	}
	if p.MaxDeltasPerTick == 0 {
		return fmt.Errorf("config: MaxDeltasPerTick must be > 0")
	}
	if p.FrameCapacity == 0 {
		return fmt.Errorf("config: FrameCapacity must be > 0")
	}
	return nil
}

// Builder provides a fluent interface for constructing Parameters,
// grounded on config/builder.go's NewBuilder()/With*() chain.
type Builder struct {
	p Parameters
}

// NewBuilder returns a Builder seeded with Default()'s values.
func NewBuilder() *Builder {
	return &Builder{p: Default()}
}

// WithPhaseWorkCapacity sets PhaseWorkCapacity.
func (b *Builder) WithPhaseWorkCapacity(n uint32) *Builder {
	b.p.PhaseWorkCapacity = n
	return b
}

// WithPhaseHandlerCapacity sets PhaseHandlerCapacity.
func (b *Builder) WithPhaseHandlerCapacity(n uint32) *Builder {
	b.p.PhaseHandlerCapacity = n
	return b
}

// WithBudgetCapacity sets BudgetDomainCapacity and BudgetChunkCapacity.
func (b *Builder) WithBudgetCapacity(domain, chunk uint32) *Builder {
	b.p.BudgetDomainCapacity = domain
	b.p.BudgetChunkCapacity = chunk
	return b
}

// WithPhaseBudgetLimit sets the global budget limit for one phase.
func (b *Builder) WithPhaseBudgetLimit(phase int, limit uint32) *Builder {
	if phase >= 0 && phase < len(b.p.PerPhaseBudgetLimit) {
		b.p.PerPhaseBudgetLimit[phase] = limit
	}
	return b
}

// WithDomainChunkDefaults sets DomainDefaultLimit and ChunkDefaultLimit.
func (b *Builder) WithDomainChunkDefaults(domainDefault, chunkDefault uint32) *Builder {
	b.p.DomainDefaultLimit = domainDefault
	b.p.ChunkDefaultLimit = chunkDefault
	return b
}

// WithDeltaCapacity sets MaxDeltasPerTick and DeltaArenaBytes.
func (b *Builder) WithDeltaCapacity(maxDeltas, arenaBytes uint32) *Builder {
	b.p.MaxDeltasPerTick = maxDeltas
	b.p.DeltaArenaBytes = arenaBytes
	return b
}

// WithObservationCapacity sets the observation buffer's bounds.
func (b *Builder) WithObservationCapacity(maxObservations, arenaBytes uint32) *Builder {
	b.p.MaxObservationsPerTick = maxObservations
	b.p.ObservationArenaBytes = arenaBytes
	return b
}

// WithIntentCapacity sets the intent buffer's bounds.
func (b *Builder) WithIntentCapacity(maxIntents, arenaBytes uint32) *Builder {
	b.p.MaxIntentsPerTick = maxIntents
	b.p.IntentArenaBytes = arenaBytes
	return b
}

// WithRegistryCapacities sets every registry's capacity at once.
func (b *Builder) WithRegistryCapacities(sensor, mind, action, deltaHandler, propagator, domain uint32) *Builder {
	b.p.SensorRegistryCapacity = sensor
	b.p.MindRegistryCapacity = mind
	b.p.ActionRegistryCapacity = action
	b.p.DeltaHandlerRegistryCapacity = deltaHandler
	b.p.PropagatorRegistryCapacity = propagator
	b.p.DomainRegistryCapacity = domain
	return b
}

// WithFrameCapacity sets FrameCapacity.
func (b *Builder) WithFrameCapacity(n uint32) *Builder {
	b.p.FrameCapacity = n
	return b
}

// Build validates and returns the constructed Parameters.
func (b *Builder) Build() (Parameters, error) {
	if err := b.p.Validate(); err != nil {
		return Parameters{}, err
	}
	return b.p, nil
}

// Default returns a moderate-size configuration suitable for a single
// world shard under test.
func Default() Parameters {
	var limits [8]uint32
	for i := range limits {
		limits[i] = Unlimited
	}
	return Parameters{
		PhaseWorkCapacity:            4096,
		PhaseHandlerCapacity:         64,
		BudgetDomainCapacity:         256,
		BudgetChunkCapacity:          4096,
		PerPhaseBudgetLimit:          limits,
		DomainDefaultLimit:           Unlimited,
		ChunkDefaultLimit:            Unlimited,
		MaxDeltasPerTick:             8192,
		DeltaArenaBytes:              1 << 20,
		MaxObservationsPerTick:       8192,
		ObservationArenaBytes:        1 << 20,
		MaxIntentsPerTick:            8192,
		IntentArenaBytes:             1 << 20,
		SensorRegistryCapacity:       64,
		MindRegistryCapacity:         64,
		ActionRegistryCapacity:       64,
		DeltaHandlerRegistryCapacity: 256,
		PropagatorRegistryCapacity:   64,
		DomainRegistryCapacity:       64,
		FrameCapacity:                4096,
	}
}

// Small returns a tightly-capped configuration for unit tests that
// want to exercise overflow/refusal behavior cheaply.
func Small() Parameters {
	p := Default()
	p.PhaseWorkCapacity = 8
	p.PhaseHandlerCapacity = 8
	p.BudgetDomainCapacity = 4
	p.BudgetChunkCapacity = 8
	p.MaxDeltasPerTick = 16
	p.DeltaArenaBytes = 4096
	p.MaxObservationsPerTick = 16
	p.ObservationArenaBytes = 4096
	p.MaxIntentsPerTick = 16
	p.IntentArenaBytes = 4096
	p.FrameCapacity = 32
	return p
}

// Large returns a configuration sized for a busy multi-chunk world.
func Large() Parameters {
	p := Default()
	p.PhaseWorkCapacity = 65536
	p.BudgetChunkCapacity = 65536
	p.MaxDeltasPerTick = 131072
	p.DeltaArenaBytes = 16 << 20
	p.MaxObservationsPerTick = 131072
	p.ObservationArenaBytes = 16 << 20
	p.MaxIntentsPerTick = 131072
	p.IntentArenaBytes = 16 << 20
	p.FrameCapacity = 65536
	return p
}
