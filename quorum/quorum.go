// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package quorum is the public face of the decision engine: the
// boundary constants, the four-byte Decision, and the Iterator that
// walks a record stream and writes quorum metadata and winning-record
// bytes into caller-owned buffers.
//
// Mirrors the teacher's (github.com/luxfi/consensus) convention of a
// top-level package name as the library's public face, fronting the
// unexported decision machinery in internal/decide and
// internal/nodetable — the same way the teacher's quorum package fronts
// photon/wave confidence machinery.
package quorum

import (
	"github.com/luxfi/vvquorum/id"
	"github.com/luxfi/vvquorum/internal/decide"
	"github.com/luxfi/vvquorum/internal/nodetable"
	"github.com/luxfi/vvquorum/vector"
)

// Boundary constants (§6).
const (
	SourcesMin = 1
	SourcesMax = nodetable.MaxSources
	ID         = id.Len
	Vector     = vector.Size

	LeaderOffset = 0
	LengthOffset = 1
	RepairOffset = 2
	ForkedOffset = 3
	Size         = 4
)

// ErrCyclicReference is re-exported so callers of this package need not
// import vector directly to compare against it.
var ErrCyclicReference = vector.ErrCyclicReference

// Decision is the four-field quorum verdict for one record position
// (§3: leader, length, repair, forked).
type Decision struct {
	Leader uint8
	Length uint8
	Repair uint8
	Forked bool
}

// PutBytes writes d into the 4 bytes at quorum[0:4] in the wire layout
// described by LeaderOffset..ForkedOffset.
func (d Decision) PutBytes(quorum []byte) {
	quorum[LeaderOffset] = d.Leader
	quorum[LengthOffset] = d.Length
	quorum[RepairOffset] = d.Repair
	if d.Forked {
		quorum[ForkedOffset] = 1
	} else {
		quorum[ForkedOffset] = 0
	}
}

func fromInternal(d decide.Decision) Decision {
	return Decision{Leader: d.Leader, Length: d.Length, Repair: d.Repair, Forked: d.Forked}
}

// Decide resolves the quorum decision for one record position given the
// version vector each source currently presents, in source order. table
// is scratch reused by the slow path; the caller (Iterator) owns its
// lifetime across positions.
func Decide(vectors []vector.Vector, table *nodetable.Table) (Decision, error) {
	d, err := decide.Decide(vectors, table)
	if err != nil {
		return Decision{}, err
	}
	return fromInternal(d), nil
}
