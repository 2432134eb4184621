// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package pipeline

import (
	"github.com/luxfi/domino/buffer"
	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/kernel"
	"github.com/luxfi/domino/orderkey"
	"github.com/luxfi/domino/pkt"
	"github.com/luxfi/domino/registry"
)

// ActionKey builds the registry.Key an Action is registered under.
// The default routing rule, kept from dg_intent_dispatch_build_requests,
// is that an intent's action_type_id equals its own TypeId.
func ActionKey(id ids.ActionId) registry.Key { return registry.Key{Primary: uint64(id)} }

// DispatchIntents walks intents — which MUST already be canonicalized —
// in that canonical order, validating and applying each against its
// registered Action (keyed by the intent's TypeId), and emits every
// resulting delta through emitDelta under commitPhase. Intents whose
// TypeId has no registered action, or that fail Validate, are skipped
// without error, matching dg_intent_dispatch_to_deltas's "continue" on
// both conditions.
func DispatchIntents(
	actions *registry.Registry[kernel.Action],
	intents *buffer.IntentBuffer,
	world any,
	commitPhase uint16,
	emitDelta func(orderkey.Key, pkt.Packet) bool,
) error {
	for i := 0; i < intents.Count(); i++ {
		rec, ok := intents.At(i)
		if !ok {
			continue
		}

		a, ok := actions.Find(ActionKey(ids.ActionId(rec.Header.TypeId)))
		if !ok {
			continue
		}

		valid, _ := a.Validate(ids.AgentId(rec.Header.SrcEntity), rec, world)
		if !valid {
			continue
		}

		componentDelta := func(key orderkey.Key, p pkt.Packet) bool {
			key = orderkey.Make(commitPhase, key.DomainId, key.ChunkId, key.EntityId, key.ComponentId, key.TypeId, key.Seq)
			return emitDelta(key, p)
		}
		if err := a.Apply(ids.AgentId(rec.Header.SrcEntity), rec, world, componentDelta); err != nil {
			return err
		}
	}
	return nil
}
