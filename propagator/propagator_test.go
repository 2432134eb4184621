// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package propagator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/domino/budget"
	"github.com/luxfi/domino/ids"
)

type fakeProp struct {
	domain ids.DomainId
	id     ids.PropagatorId
	steps  *[]ids.PropagatorId
	hash   uint64
}

func (p fakeProp) DomainId() ids.DomainId    { return p.domain }
func (p fakeProp) PropId() ids.PropagatorId  { return p.id }
func (p fakeProp) Step(_ ids.TickIndex, _ *budget.Budget, _ budget.Scope) {
	*p.steps = append(*p.steps, p.id)
}
func (p fakeProp) Sample(ids.TickIndex, any) (any, bool)    { return nil, false }
func (p fakeProp) SerializeState(out []byte) (int, bool)    { return 0, true }
func (p fakeProp) HashState() uint64                        { return p.hash }

func TestStepAllRunsInDomainThenPropOrder(t *testing.T) {
	require := require.New(t)

	var steps []ids.PropagatorId
	var reg Registry
	reg.Reserve(8)
	require.True(reg.Add(fakeProp{domain: 2, id: 1, steps: &steps}))
	require.True(reg.Add(fakeProp{domain: 1, id: 5, steps: &steps}))
	require.True(reg.Add(fakeProp{domain: 1, id: 1, steps: &steps}))

	var b budget.Budget
	b.Reserve(4, 4)
	b.BeginTick(1)

	reg.StepAll(1, &b)
	require.Equal([]ids.PropagatorId{1, 5, 1}, steps)
}

func TestAddRejectsDuplicateDomainPropPair(t *testing.T) {
	require := require.New(t)

	var steps []ids.PropagatorId
	var reg Registry
	reg.Reserve(4)
	require.True(reg.Add(fakeProp{domain: 1, id: 1, steps: &steps}))
	require.False(reg.Add(fakeProp{domain: 1, id: 1, steps: &steps}))
}

func TestHashStateIsOrderIndependentOfRegistration(t *testing.T) {
	require := require.New(t)

	var steps []ids.PropagatorId
	var a, b Registry
	a.Reserve(4)
	b.Reserve(4)

	require.True(a.Add(fakeProp{domain: 1, id: 1, steps: &steps, hash: 11}))
	require.True(a.Add(fakeProp{domain: 2, id: 1, steps: &steps, hash: 22}))

	require.True(b.Add(fakeProp{domain: 2, id: 1, steps: &steps, hash: 22}))
	require.True(b.Add(fakeProp{domain: 1, id: 1, steps: &steps, hash: 11}))

	require.Equal(a.HashState(), b.HashState())
}
