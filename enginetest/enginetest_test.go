// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package enginetest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/domino/config"
	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/scheduler"
)

func TestAssertDeterministicReplayAgreesOnIdenticalBuilds(t *testing.T) {
	require := require.New(t)

	build := func() *scheduler.Scheduler {
		var s scheduler.Scheduler
		s.Reserve(config.Small())
		return &s
	}

	a, b := build(), build()
	require.True(AssertDeterministicReplay(a, b, nil, nil, 1, 5))
}

func TestRunTicksReturnsOneHashPerTick(t *testing.T) {
	require := require.New(t)

	var s scheduler.Scheduler
	s.Reserve(config.Small())

	hashes := RunTicks(&s, nil, ids.TickIndex(1), 3)
	require.Len(hashes, 3)
}
