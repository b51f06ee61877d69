// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package decide

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/vvquorum/id"
	"github.com/luxfi/vvquorum/internal/nodetable"
	"github.com/luxfi/vvquorum/vector"
)

func mkID(b byte) id.ID {
	var out id.ID
	for i := range out {
		out[i] = b
	}
	return out
}

var (
	idAA = mkID(0xaa)
	idBB = mkID(0xbb)
	idCC = mkID(0xcc)
	idZZ = id.Empty
)

func TestUnanimous(t *testing.T) {
	require := require.New(t)
	var table nodetable.Table

	vectors := []vector.Vector{
		{Own: idAA, Predecessor: idZZ},
		{Own: idAA, Predecessor: idZZ},
		{Own: idAA, Predecessor: idZZ},
	}

	d, err := Decide(vectors, &table)
	require.NoError(err)
	require.Equal(Decision{Leader: 0, Length: 3, Repair: 0, Forked: false}, d)
}

func TestTwoWaySplit(t *testing.T) {
	require := require.New(t)
	var table nodetable.Table

	vectors := []vector.Vector{
		{Own: idAA, Predecessor: idZZ},
		{Own: idBB, Predecessor: idZZ},
		{Own: idBB, Predecessor: idZZ},
	}

	d, err := Decide(vectors, &table)
	require.NoError(err)
	require.Equal(Decision{Leader: 1, Length: 2, Repair: 0, Forked: false}, d)
}

func TestTieForked(t *testing.T) {
	require := require.New(t)
	var table nodetable.Table

	vectors := []vector.Vector{
		{Own: idAA, Predecessor: idZZ},
		{Own: idBB, Predecessor: idZZ},
	}

	d, err := Decide(vectors, &table)
	require.NoError(err)
	require.Equal(Decision{Forked: true}, d)
}

func TestRepairViaPredecessorChain(t *testing.T) {
	require := require.New(t)
	var table nodetable.Table

	vectors := []vector.Vector{
		{Own: idAA, Predecessor: idZZ},
		{Own: idBB, Predecessor: idAA},
		{Own: idBB, Predecessor: idAA},
	}

	d, err := Decide(vectors, &table)
	require.NoError(err)
	require.Equal(Decision{Leader: 1, Length: 3, Repair: 1, Forked: false}, d)
}

func TestThreeDistinctVersionsOneLeads(t *testing.T) {
	require := require.New(t)
	var table nodetable.Table

	vectors := []vector.Vector{
		{Own: idAA, Predecessor: idZZ},
		{Own: idBB, Predecessor: idAA},
		{Own: idCC, Predecessor: idBB},
	}

	d, err := Decide(vectors, &table)
	require.NoError(err)
	require.Equal(Decision{Leader: 2, Length: 3, Repair: 2, Forked: false}, d)
}

func TestSelfCycleRejected(t *testing.T) {
	require := require.New(t)
	var table nodetable.Table

	vectors := []vector.Vector{
		{Own: idAA, Predecessor: idAA},
	}

	_, err := Decide(vectors, &table)
	require.ErrorIs(err, vector.ErrCyclicReference)
}

func TestSingleSource(t *testing.T) {
	require := require.New(t)
	var table nodetable.Table

	vectors := []vector.Vector{{Own: idAA, Predecessor: idZZ}}

	d, err := Decide(vectors, &table)
	require.NoError(err)
	require.Equal(Decision{Leader: 0, Length: 1, Repair: 0, Forked: false}, d)
}

func TestAllZeroVectorIsSelfCycle(t *testing.T) {
	require := require.New(t)
	var table nodetable.Table

	vectors := []vector.Vector{
		{Own: idZZ, Predecessor: idZZ},
	}

	_, err := Decide(vectors, &table)
	// The all-zero vector is its own predecessor: a genuine self-cycle,
	// not a special case (§3: "the core treats it uniformly").
	require.ErrorIs(err, vector.ErrCyclicReference)
}

func TestFastSlowEquivalenceOnChain(t *testing.T) {
	require := require.New(t)

	vectors := []vector.Vector{
		{Own: idAA, Predecessor: idZZ},
		{Own: idBB, Predecessor: idAA},
		{Own: idBB, Predecessor: idAA},
	}

	var tableA nodetable.Table
	viaFast, err := Decide(vectors, &tableA)
	require.NoError(err)

	var tableB nodetable.Table
	viaSlow, err := slowDecide(vectors, &tableB)
	require.NoError(err)

	require.Equal(viaSlow, viaFast)
}

func TestCycleAcrossSourcesDetected(t *testing.T) {
	require := require.New(t)
	var table nodetable.Table

	// A -> B -> A forms a two-node cycle with no self-referencing vector;
	// the partial order between A and B already forces the slow path.
	vectors := []vector.Vector{
		{Own: idAA, Predecessor: idBB},
		{Own: idBB, Predecessor: idAA},
		{Own: idCC, Predecessor: idZZ},
	}

	_, err := Decide(vectors, &table)
	require.ErrorIs(err, vector.ErrCyclicReference)
}
