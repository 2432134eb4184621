// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package domainreg wraps registry.Registry[kernel.Domain] with the
// domain_id-keyed lookup and TOPOLOGY/SOLVE step/hash helpers from
// spec.md §4.13, grounded on
// original_source/source/domino/world/domain/dg_domain_registry.c.
package domainreg

import (
	"github.com/luxfi/domino/budget"
	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/kernel"
	"github.com/luxfi/domino/phase"
	"github.com/luxfi/domino/pkt"
	"github.com/luxfi/domino/registry"
)

// hashSeed is the running hash's starting value, carried over from
// dg_domain_registry_hash_state's 0xD06A1D0D06A1D0D1 constant.
const hashSeed uint64 = 0xD06A1D0D06A1D0D1

// Key builds the registry.Key a Domain is registered under: its bare
// DomainId.
func Key(domain ids.DomainId) registry.Key { return registry.Key{Primary: uint64(domain)} }

// Registry is the domain_id-ordered domain table.
type Registry struct {
	entries registry.Registry[kernel.Domain]
}

// Reserve allocates bounded storage for up to capacity domains.
func (r *Registry) Reserve(capacity uint32) { r.entries.Reserve(capacity) }

// Add registers d under d.DomainId(), rejecting duplicates and
// registry overflow.
func (r *Registry) Add(d kernel.Domain) bool {
	return r.entries.Add(Key(d.DomainId()), d)
}

// Find looks up the domain registered under id.
func (r *Registry) Find(id ids.DomainId) (kernel.Domain, bool) {
	return r.entries.Find(Key(id))
}

// Count returns the number of registered domains.
func (r *Registry) Count() int { return r.entries.Count() }

// ProbeOverflow reports how many Add calls were refused for lack of
// capacity.
func (r *Registry) ProbeOverflow() uint32 { return r.entries.ProbeOverflow() }

// StepPhase steps every registered domain for p, in ascending
// domain_id order, scoped to its own domain's budget row. Domains
// only act during TOPOLOGY and SOLVE; any other phase is a no-op,
// matching dg_domain_registry_step_phase.
func (r *Registry) StepPhase(p phase.Phase, b *budget.Budget) {
	if p != phase.Topology && p != phase.Solve {
		return
	}
	for i := 0; i < r.entries.Count(); i++ {
		d, ok := r.entries.At(i)
		if !ok {
			continue
		}
		d.StepPhase(p, b, budget.ForDomain(d.DomainId()))
	}
}

// HashState folds every domain's HashState into a single running
// hash, in canonical domain_id order, via the same FNV1a64 chain
// used throughout package pkt.
func (r *Registry) HashState() uint64 {
	h := hashSeed
	h = pkt.FNV1a64U64LE(h, uint64(r.entries.Count()))
	for i := 0; i < r.entries.Count(); i++ {
		d, ok := r.entries.At(i)
		if !ok {
			continue
		}
		h = pkt.FNV1a64U64LE(h, uint64(d.DomainId()))
		h = pkt.FNV1a64U64LE(h, d.HashState())
	}
	return h
}
