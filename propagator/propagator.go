// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package propagator wraps registry.Registry[kernel.Propagator] with
// the (domain_id, prop_id)-keyed lookup and SOLVE-phase step/hash
// helpers from spec.md §4.13, grounded on
// original_source/source/domino/sim/prop/dg_prop_registry.c. A
// propagator carries no semantics of its own; this package only
// orders and steps whatever the caller registers.
package propagator

import (
	"github.com/luxfi/domino/budget"
	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/kernel"
	"github.com/luxfi/domino/pkt"
	"github.com/luxfi/domino/registry"
)

// hashSeed is the running hash's starting value, carried over from
// dg_prop_registry_hash_state's 0x9BADC0FFEE0DDF00 constant.
const hashSeed uint64 = 0x9BADC0FFEE0DDF00

// Key builds the registry.Key a Propagator is registered under: its
// (domain_id, prop_id) pair, the sort order dg_prop_registry_entry_cmp
// uses.
func Key(domain ids.DomainId, prop ids.PropagatorId) registry.Key {
	return registry.Key{Primary: uint64(domain), Secondary: uint64(prop)}
}

// Registry is the (domain_id, prop_id)-ordered propagator table.
type Registry struct {
	entries registry.Registry[kernel.Propagator]
}

// Reserve allocates bounded storage for up to capacity propagators.
func (r *Registry) Reserve(capacity uint32) { r.entries.Reserve(capacity) }

// Add registers p under (p.DomainId(), p.PropId()), rejecting
// duplicates and registry overflow.
func (r *Registry) Add(p kernel.Propagator) bool {
	return r.entries.Add(Key(p.DomainId(), p.PropId()), p)
}

// Find looks up the propagator registered under (domain, prop).
func (r *Registry) Find(domain ids.DomainId, prop ids.PropagatorId) (kernel.Propagator, bool) {
	return r.entries.Find(Key(domain, prop))
}

// Count returns the number of registered propagators.
func (r *Registry) Count() int { return r.entries.Count() }

// ProbeOverflow reports how many Add calls were refused for lack of
// capacity.
func (r *Registry) ProbeOverflow() uint32 { return r.entries.ProbeOverflow() }

// StepAll steps every registered propagator in canonical
// (domain_id, prop_id) order, scoped to its own domain's budget row —
// the SOLVE-phase behavior of dg_prop_registry_step.
func (r *Registry) StepAll(tick ids.TickIndex, b *budget.Budget) {
	for i := 0; i < r.entries.Count(); i++ {
		p, ok := r.entries.At(i)
		if !ok {
			continue
		}
		p.Step(tick, b, budget.ForDomain(p.DomainId()))
	}
}

// HashState folds every propagator's HashState into a single running
// hash, in canonical order, using the same FNV1a64 chain every other
// replay hash in this module is built on (package pkt) — so the fold
// is deterministic across peers even though it does not reproduce
// dg_det_hash_u64's exact mixing function byte for byte.
func (r *Registry) HashState() uint64 {
	h := hashSeed
	h = pkt.FNV1a64U64LE(h, uint64(r.entries.Count()))
	for i := 0; i < r.entries.Count(); i++ {
		p, ok := r.entries.At(i)
		if !ok {
			continue
		}
		h = pkt.FNV1a64U64LE(h, uint64(p.DomainId()))
		h = pkt.FNV1a64U64LE(h, uint64(p.PropId()))
		h = pkt.FNV1a64U64LE(h, p.HashState())
	}
	return h
}
