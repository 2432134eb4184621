// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package frame

import (
	"math"

	"github.com/luxfi/domino/fixedpoint"
	"github.com/luxfi/domino/ids"
)

// Eval resolves id's transform to world space at tick, composing
// poses rootward along the single-parent chain. FrameWorld itself
// evaluates to the identity pose. The traversal is bounded by
// MaxDepth and never recurses, matching dg_frame_eval.
func Eval(g *Graph, id ids.FrameId, tick ids.TickIndex, round fixedpoint.RoundMode) (fixedpoint.Pose, error) {
	if id == ids.FrameWorld {
		return fixedpoint.IdentityPose(), nil
	}

	var chain [MaxDepth]fixedpoint.Pose
	depth := 0
	cur := id
	for cur != ids.FrameWorld && depth < MaxDepth {
		node, ok := g.Find(cur)
		if !ok {
			return fixedpoint.IdentityPose(), ErrNotFound
		}
		chain[depth] = toParentAtTick(node, tick, round)
		depth++
		cur = node.ParentId
	}
	if cur != ids.FrameWorld {
		return fixedpoint.IdentityPose(), ErrCycleOrTooDeep
	}

	accum := fixedpoint.IdentityPose()
	for i := depth - 1; i >= 0; i-- {
		accum = fixedpoint.Compose(accum, chain[i], round)
	}
	return accum, nil
}

// toParentAtTick evaluates node's pose relative to its parent at tick,
// adding base + velocity*tick for each of position, incline, and roll —
// the only time-varying parameters a frame node carries.
func toParentAtTick(node Node, tick ids.TickIndex, round fixedpoint.RoundMode) fixedpoint.Pose {
	tickQ := fixedpoint.FromInt(tickToI64(tick))

	p := node.ToParentBase
	p.Pos = fixedpoint.AddVec3(p.Pos, fixedpoint.Vec3{
		X: fixedpoint.Mul(node.VelPosPerTick.X, tickQ, round),
		Y: fixedpoint.Mul(node.VelPosPerTick.Y, tickQ, round),
		Z: fixedpoint.Mul(node.VelPosPerTick.Z, tickQ, round),
	})
	p.Incline = fixedpoint.Add(p.Incline, fixedpoint.Mul(node.VelInclinePerTick, tickQ, round))
	p.Roll = fixedpoint.Add(p.Roll, fixedpoint.Mul(node.VelRollPerTick, tickQ, round))
	return p
}

// tickToI64 clamps tick to math.MaxInt64, mirroring dg_tick_clamp_to_i64's
// saturating cast from the unsigned tick counter to the signed integer
// fixedpoint.FromInt expects.
func tickToI64(tick ids.TickIndex) int64 {
	if tick > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(tick)
}
