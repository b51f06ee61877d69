// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vector implements the 32-byte version vector embedded in each
// replicated record: an identifier paired with the identifier of the
// record it succeeds.
package vector

import (
	"errors"

	"github.com/luxfi/vvquorum/id"
)

// Size is the byte width of a version vector (own ID || predecessor ID).
const Size = 2 * id.Len

// ErrCyclicReference is returned when a vector's own ID equals its
// predecessor ID, or when a predecessor chain cycles back on itself
// within a single record position. It is the Go analogue of
// ERR_CYCLIC_REFERENCES at the host boundary.
var ErrCyclicReference = errors.New("vectors must not have cyclic references")

// Vector is a view over the 32 bytes own_id || predecessor_id.
type Vector struct {
	Own         id.ID
	Predecessor id.ID
}

// At reads the version vector out of record, starting at offset.
// Callers (the iterator) are responsible for bounds-checking offset+Size
// against len(record) before calling this.
func At(record []byte, offset int) Vector {
	return Vector{
		Own:         id.FromBytes(record[offset : offset+id.Len]),
		Predecessor: id.FromBytes(record[offset+id.Len : offset+Size]),
	}
}

// SelfCycle reports whether v's own ID equals its predecessor ID — a
// single-vector cyclic reference, rejected unconditionally by both the
// fast and slow deciders.
func (v Vector) SelfCycle() bool {
	return id.Equal(v.Own, v.Predecessor)
}
