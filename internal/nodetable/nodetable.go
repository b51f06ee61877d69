// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nodetable implements the bounded arena the slow decider uses to
// aggregate per-ID endorsement counts. It is an append-only table indexed
// by slot, never grown past its static capacity: every vector contributes
// at most two IDs (its own and its predecessor's), so a quorum of at most
// MaxSources sources never needs more than 2*MaxSources slots.
//
// Grounded in quorum_node/quorum_nodes/quorum_visit of the ronomon/quorum
// N-API binding (original_source/binding.c): there, nodes are 36-byte
// records in a flat byte arena found by linear scan and addressed by byte
// offset. Here the same shape is expressed as a Go struct array addressed
// by slot index — the offset/slot distinction is cosmetic, the lookup
// discipline (linear scan, no hashing) is preserved on purpose: it matches
// the C implementation's behavior bit-for-bit and keeps the table free of
// any allocation beyond the one fixed-size array.
package nodetable

import "github.com/luxfi/vvquorum/id"

// MaxSources is the largest number of sources a single invocation may
// present (§3 Invariants: 1 ≤ sources_length ≤ 255).
const MaxSources = 255

// Capacity is the number of slots reserved for one invocation: each of up
// to MaxSources vectors contributes at most two distinct IDs.
const Capacity = 2 * MaxSources

// Flag bits carried per node, mirroring QUORUM_DEPENDENT/TEMPORARY/PERMANENT.
type Flag uint8

const (
	// Dependent marks a node whose predecessor ID is known (i.e. some
	// source's current record names this ID as its own_id, and that
	// record also carries a predecessor).
	Dependent Flag = 1 << iota
	// Temporary marks a node on the current DFS stack; seeing Temporary
	// again during traversal is how a cycle is detected.
	Temporary
	// Permanent marks a node whose count has been folded in and is
	// final for this record position.
	Permanent
)

// Entry is one slot in the arena.
type Entry struct {
	Flags       Flag
	SourceIndex uint8  // a source whose current record's own_id is this node's ID
	Count       uint8  // direct endorsement count, folded with Carried once visited
	Carried     uint8  // count folded in from the predecessor during traversal
	ID          id.ID  // this node's key
	Predecessor id.ID  // predecessor ID, valid once Dependent is set
}

// Table is the per-invocation scratch arena. Its zero value is ready to
// use. The slow decider calls Reset each time it rebuilds the table for a
// record position; Reset never reallocates.
type Table struct {
	entries [Capacity]Entry
	length  int
}

// Reset clears the table's logical length, ready for the next record
// position. The backing array is not cleared; slots are always fully
// rewritten by Insert before they are read.
func (t *Table) Reset() {
	t.length = 0
}

// Len returns the number of occupied slots.
func (t *Table) Len() int {
	return t.length
}

// Entry returns a pointer to the slot at idx for in-place mutation.
func (t *Table) Entry(idx int) *Entry {
	return &t.entries[idx]
}

// Find performs the linear scan for key, returning its slot and true on a
// hit, or the table's current length (the next free slot) and false on a
// miss.
func (t *Table) Find(key id.ID) (int, bool) {
	for i := 0; i < t.length; i++ {
		if id.Equal(t.entries[i].ID, key) {
			return i, true
		}
	}
	return t.length, false
}

// Insert reserves a fresh slot and writes it, returning its index.
// Capacity is statically sized for the input bounds in §3; an overflow
// here means a caller violated those bounds upstream, so it panics rather
// than silently truncating (an internal consistency violation, §7).
func (t *Table) Insert(e Entry) int {
	if t.length >= Capacity {
		panic("nodetable: arena overflow, exceeds 2*MaxSources entries")
	}
	idx := t.length
	t.entries[idx] = e
	t.length++
	return idx
}

// Mark sets bit on the entry at idx.
func (t *Table) Mark(idx int, bit Flag) {
	t.entries[idx].Flags |= bit
}

// Test reports whether bit is set on the entry at idx.
func (t *Table) Test(idx int, bit Flag) bool {
	return t.entries[idx].Flags&bit != 0
}
