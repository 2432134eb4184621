// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package domainreg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/domino/budget"
	"github.com/luxfi/domino/ids"
	"github.com/luxfi/domino/phase"
)

type fakeDomain struct {
	id    ids.DomainId
	steps *[]phase.Phase
	hash  uint64
}

func (d fakeDomain) DomainId() ids.DomainId { return d.id }
func (d fakeDomain) StepPhase(p phase.Phase, _ *budget.Budget, _ budget.Scope) {
	*d.steps = append(*d.steps, p)
}
func (d fakeDomain) Query(any) (any, bool)              { return nil, false }
func (d fakeDomain) SerializeState(out []byte) (int, bool) { return 0, true }
func (d fakeDomain) HashState() uint64                  { return d.hash }

func TestStepPhaseOnlyRunsTopologyAndSolve(t *testing.T) {
	require := require.New(t)

	var steps []phase.Phase
	var reg Registry
	reg.Reserve(4)
	require.True(reg.Add(fakeDomain{id: 1, steps: &steps}))

	var b budget.Budget
	b.Reserve(4, 4)
	b.BeginTick(1)

	for p := phase.Phase(0); int(p) < phase.Count; p++ {
		reg.StepPhase(p, &b)
	}

	require.Equal([]phase.Phase{phase.Topology, phase.Solve}, steps)
}

func TestFindReturnsRegisteredDomain(t *testing.T) {
	require := require.New(t)

	var steps []phase.Phase
	var reg Registry
	reg.Reserve(4)
	require.True(reg.Add(fakeDomain{id: 7, steps: &steps}))

	d, ok := reg.Find(7)
	require.True(ok)
	require.Equal(ids.DomainId(7), d.DomainId())

	_, ok = reg.Find(8)
	require.False(ok)
}
