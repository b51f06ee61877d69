// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quorum

import (
	"github.com/luxfi/vvquorum/internal/nodetable"
	"github.com/luxfi/vvquorum/vector"
)

// Iterator walks a record stream, invoking Decide per record position and
// writing quorum metadata and the winning record's bytes into
// caller-owned output buffers (§4.5).
//
// An Iterator owns exactly one nodetable.Table, allocated once and reused
// across every record position in a Run — the table's logical length is
// reset per position by the slow path, never reallocated.
type Iterator struct {
	VectorOffset int
	ObjectSize   int
	SourceSize   int

	table   nodetable.Table
	vectors []vector.Vector // per-position scratch, sized to len(sources)
}

// NewIterator constructs an Iterator for the given record layout.
// Preconditions (§4.5) are the caller's (engine's) responsibility to
// validate before Run is called; Iterator itself only asserts them.
func NewIterator(vectorOffset, objectSize, sourceSize int) *Iterator {
	if vectorOffset < 0 ||
		objectSize < vectorOffset+Vector ||
		sourceSize < objectSize ||
		sourceSize%objectSize != 0 {
		panic("quorum: iterator preconditions violated")
	}
	return &Iterator{
		VectorOffset: vectorOffset,
		ObjectSize:   objectSize,
		SourceSize:   sourceSize,
	}
}

// Positions returns the number of record positions this iterator will
// walk: SourceSize / ObjectSize.
func (it *Iterator) Positions() int {
	return it.SourceSize / it.ObjectSize
}

// Run walks every record position, writing Size bytes per position into
// quorum and ObjectSize bytes per position into target. sources must all
// be at least SourceSize bytes long; quorum must be at least
// Positions()*Size bytes; target must be at least SourceSize bytes.
//
// On a cyclic-reference error, Run stops at the failing position: output
// for prior positions is valid and already written; output for the
// failing position and beyond is left untouched (§5 Ordering).
func (it *Iterator) Run(sources [][]byte, quorum, target []byte) error {
	if len(sources) < SourcesMin || len(sources) > SourcesMax {
		panic("quorum: sources length out of range")
	}
	if cap(it.vectors) < len(sources) {
		it.vectors = make([]vector.Vector, len(sources))
	}
	it.vectors = it.vectors[:len(sources)]

	positions := it.Positions()
	for k := 0; k < positions; k++ {
		recordOffset := k * it.ObjectSize
		vectorBase := recordOffset + it.VectorOffset
		for s, src := range sources {
			it.vectors[s] = vector.At(src, vectorBase)
		}

		decision, err := Decide(it.vectors, &it.table)
		if err != nil {
			return err
		}

		qOff := k * Size
		decision.PutBytes(quorum[qOff : qOff+Size])

		tOff := recordOffset
		if decision.Length > 0 {
			leader := sources[decision.Leader]
			copy(target[tOff:tOff+it.ObjectSize], leader[recordOffset:recordOffset+it.ObjectSize])
		} else {
			clear(target[tOff : tOff+it.ObjectSize])
		}
	}
	return nil
}
