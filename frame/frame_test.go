// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/domino/fixedpoint"
	"github.com/luxfi/domino/ids"
)

func TestEvalWorldIsIdentity(t *testing.T) {
	require := require.New(t)

	var g Graph
	g.Reserve(4)

	pose, err := Eval(&g, ids.FrameWorld, 0, fixedpoint.Near)
	require.NoError(err)
	require.Equal(fixedpoint.IdentityPose(), pose)
}

func TestEvalComposesStaticChainRootward(t *testing.T) {
	require := require.New(t)

	var g Graph
	g.Reserve(4)

	// child(2) -> mid(1) -> world, each offset by (1,0,0) in its parent.
	require.NoError(g.Add(Node{
		Id:           1,
		ParentId:     ids.FrameWorld,
		ToParentBase: fixedpoint.Pose{Pos: fixedpoint.Vec3{X: fixedpoint.FromInt(1)}, Rot: fixedpoint.IdentityQuat()},
	}))
	require.NoError(g.Add(Node{
		Id:           2,
		ParentId:     1,
		ToParentBase: fixedpoint.Pose{Pos: fixedpoint.Vec3{X: fixedpoint.FromInt(1)}, Rot: fixedpoint.IdentityQuat()},
	}))

	pose, err := Eval(&g, 2, 0, fixedpoint.Near)
	require.NoError(err)
	require.Equal(fixedpoint.FromInt(2), pose.Pos.X)
}

func TestEvalAppliesLinearVelocityByTick(t *testing.T) {
	require := require.New(t)

	var g Graph
	g.Reserve(4)

	require.NoError(g.Add(Node{
		Id:                1,
		ParentId:          ids.FrameWorld,
		ToParentBase:      fixedpoint.Pose{Rot: fixedpoint.IdentityQuat()},
		VelPosPerTick:     fixedpoint.Vec3{X: fixedpoint.FromInt(2)},
		VelInclinePerTick: fixedpoint.FromInt(1),
	}))

	pose, err := Eval(&g, 1, 5, fixedpoint.Near)
	require.NoError(err)
	require.Equal(fixedpoint.FromInt(10), pose.Pos.X)
	require.Equal(fixedpoint.FromInt(5), pose.Incline)
}

func TestEvalRejectsUnknownFrame(t *testing.T) {
	require := require.New(t)

	var g Graph
	g.Reserve(4)

	_, err := Eval(&g, 99, 0, fixedpoint.Near)
	require.ErrorIs(err, ErrNotFound)
}

func TestEvalRejectsCycle(t *testing.T) {
	require := require.New(t)

	var g Graph
	g.Reserve(4)

	require.NoError(g.Add(Node{Id: 1, ParentId: 2, ToParentBase: fixedpoint.IdentityPose()}))
	require.NoError(g.Add(Node{Id: 2, ParentId: 1, ToParentBase: fixedpoint.IdentityPose()}))

	_, err := Eval(&g, 1, 0, fixedpoint.Near)
	require.ErrorIs(err, ErrCycleOrTooDeep)
}

func TestAddRejectsFrameWorldAndDuplicates(t *testing.T) {
	require := require.New(t)

	var g Graph
	g.Reserve(4)

	require.Error(g.Add(Node{Id: ids.FrameWorld, ParentId: ids.FrameWorld}))
	require.NoError(g.Add(Node{Id: 1, ParentId: ids.FrameWorld}))
	require.Error(g.Add(Node{Id: 1, ParentId: ids.FrameWorld}))
}
