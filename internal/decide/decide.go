// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package decide implements the two-tier decision engine: a fast O(n)
// scan for the common case of at most two distinct versions among the
// sources, and a slow path that builds a dependency graph and performs a
// depth-first topological fold when the fast path finds a partial order
// it cannot resolve by counting alone.
//
// Grounded in quorum_fast/quorum_slow/quorum_visit of
// original_source/binding.c (the ronomon/quorum N-API binding spec.md
// was distilled from); the control flow, tie-break rules, and count-fold
// order below follow that source exactly.
package decide

import (
	"github.com/luxfi/vvquorum/id"
	"github.com/luxfi/vvquorum/internal/nodetable"
	"github.com/luxfi/vvquorum/vector"
)

// Decision is the four-field quorum verdict for one record position.
type Decision struct {
	Leader uint8
	Length uint8
	Repair uint8
	Forked bool
}

// chain tracks one of the fast path's two candidate versions.
type chain struct {
	own   id.ID
	pred  id.ID
	index uint8
	count int
	set   bool
}

// Decide runs the fast decider over vectors, one per source in source
// order, falling back internally to the slow decider (table) when the
// fast path observes a partial order or a third distinct version.
//
// table is scratch owned by the caller (the iterator); Decide resets and
// rebuilds it on every call that needs the slow path, and leaves it
// untouched when the fast path alone suffices.
func Decide(vectors []vector.Vector, table *nodetable.Table) (Decision, error) {
	var a, b chain

	for index, v := range vectors {
		if v.SelfCycle() {
			return Decision{}, vector.ErrCyclicReference
		}

		switch {
		case !a.set:
			a = chain{own: v.Own, pred: v.Predecessor, index: uint8(index), count: 1, set: true}

		case id.Equal(v.Own, a.own):
			// Assumption (§9 open question): random 128-bit IDs collide
			// only for identical vectors, so an own_id match implies an
			// identical predecessor too.
			a.count++

		case id.Equal(v.Own, a.pred) || id.Equal(a.own, v.Predecessor):
			// A partial order exists between this vector and a: counts
			// cannot be resolved by flat counting alone.
			return slowDecide(vectors, table)

		case !b.set:
			b = chain{own: v.Own, pred: v.Predecessor, index: uint8(index), count: 1, set: true}

		case id.Equal(v.Own, b.own):
			b.count++

		default:
			// A third distinct version.
			return slowDecide(vectors, table)
		}
	}

	// b.count is 0 until a second distinct version is adopted, so this
	// can only tie when both chains are populated (b.count == 0 would
	// require a.count == 0, impossible once vectors is non-empty).
	switch {
	case a.count == b.count:
		return Decision{Forked: true}, nil
	case a.count > b.count:
		return Decision{Leader: a.index, Length: uint8(a.count)}, nil
	default:
		return Decision{Leader: b.index, Length: uint8(b.count)}, nil
	}
}

// slowDecide builds the dependency graph for vectors into table and folds
// predecessor counts along it via a depth-first, tri-color traversal.
func slowDecide(vectors []vector.Vector, table *nodetable.Table) (Decision, error) {
	// The fast path may delegate before it has seen every vector, so every
	// vector is checked for a self-cycle here as well.
	for _, v := range vectors {
		if v.SelfCycle() {
			return Decision{}, vector.ErrCyclicReference
		}
	}

	buildGraph(vectors, table)

	var best Decision
	for i := 0; i < table.Len(); i++ {
		if table.Test(i, nodetable.Temporary) || table.Test(i, nodetable.Permanent) {
			continue
		}
		if _, err := visit(table, i, &best); err != nil {
			return Decision{}, err
		}
	}

	if best.Forked {
		best.Leader, best.Length, best.Repair = 0, 0, 0
	}
	return best, nil
}

// buildGraph inserts one node per distinct own_id (tracking its direct
// endorsement count and predecessor) and one placeholder node per distinct
// predecessor_id not already present, matching quorum_nodes.
func buildGraph(vectors []vector.Vector, table *nodetable.Table) {
	table.Reset()

	for index, v := range vectors {
		if idx, found := table.Find(v.Own); found {
			e := table.Entry(idx)
			e.Count++
			if e.Flags&nodetable.Dependent == 0 {
				e.Flags |= nodetable.Dependent
				e.Predecessor = v.Predecessor
			}
		} else {
			table.Insert(nodetable.Entry{
				Flags:       nodetable.Dependent,
				SourceIndex: uint8(index),
				Count:       1,
				Predecessor: v.Predecessor,
				ID:          v.Own,
			})
		}

		if _, found := table.Find(v.Predecessor); !found {
			table.Insert(nodetable.Entry{ID: v.Predecessor})
		}
	}
}

// visit runs the tri-color depth-first fold for the node at idx, updating
// best as each node goes permanent, and returns that node's final
// (folded) count to its caller — used only by the recursive predecessor
// lookup, per quorum_visit.
func visit(table *nodetable.Table, idx int, best *Decision) (uint8, error) {
	e := table.Entry(idx)

	if e.Flags&nodetable.Permanent != 0 {
		return e.Count, nil
	}
	if e.Flags&nodetable.Temporary != 0 {
		return 0, vector.ErrCyclicReference
	}
	e.Flags |= nodetable.Temporary

	if e.Flags&nodetable.Dependent != 0 {
		predIdx, found := table.Find(e.Predecessor)
		if !found {
			panic("decide: dependency node not found in table")
		}
		carried, err := visit(table, predIdx, best)
		if err != nil {
			return 0, err
		}
		if int(e.Count)+int(carried) > 255 {
			panic("decide: endorsement count overflow")
		}
		e.Carried = carried
		e.Count += carried
	}

	e.Flags |= nodetable.Permanent

	if best.Length < e.Count {
		best.Leader = e.SourceIndex
		best.Length = e.Count
		best.Repair = e.Carried
		best.Forked = false
	} else if best.Length == e.Count {
		best.Forked = true
	}

	return e.Count, nil
}
