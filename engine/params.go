// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package engine is the host interface adapter (§4.6): argument
// unpacking, buffer bounds checks, and synchronous or deferred execution
// of the quorum calculation. It is the Go-native analogue of the N-API
// binding in original_source/binding.c — "pinning" a buffer for the
// lifetime of deferred work is, in Go, simply holding the slice (and
// thus a reference to its backing array) in the goroutine's closure
// until it completes; there is no separate release step to forget.
package engine

import (
	"fmt"

	"github.com/luxfi/vvquorum/quorum"
)

// Params bundles the external interface's calculate arguments (§6),
// minus the callback, which Calculate takes separately so its absence
// (nil) cleanly selects inline execution.
type Params struct {
	VectorOffset int
	ObjectSize   int
	SourceOffset int
	SourceSize   int
	Sources      [][]byte
	Quorum       []byte
	QuorumOffset int
	Target       []byte
	TargetOffset int
}

// positions returns the record-position count this calculation will walk.
func (p Params) positions() int {
	return p.SourceSize / p.ObjectSize
}

// validate reproduces the bounds checks QUORUM_GE/QUORUM_LE perform in
// original_source/binding.c, each naming the offending parameter and its
// bound, and performs them all before any work begins (§7: "Validation
// errors abort before any work begins and produce no output writes").
//
// The binding's "non-function callback" and "non-buffer arrays" checks
// have no Go analogue: Params.Sources is typed [][]byte and Calculate's
// callback parameter is typed func(error), so the compiler rejects those
// shapes before this function ever runs.
func validate(p Params) error {
	if p.VectorOffset < 0 {
		return fmt.Errorf("vectorOffset must be at least 0")
	}
	minObjectSize := p.VectorOffset + quorum.Vector
	if minObjectSize < quorum.Vector {
		minObjectSize = quorum.Vector
	}
	if p.ObjectSize < minObjectSize {
		return fmt.Errorf("objectSize must be at least %d", minObjectSize)
	}
	if p.SourceOffset < 0 {
		return fmt.Errorf("sourceOffset must be at least 0")
	}
	if p.SourceSize < p.ObjectSize {
		return fmt.Errorf("sourceSize must be at least objectSize (%d)", p.ObjectSize)
	}
	if p.SourceSize%p.ObjectSize != 0 {
		return fmt.Errorf("sourceSize must be a multiple of objectSize (%d)", p.ObjectSize)
	}

	n := len(p.Sources)
	if n < quorum.SourcesMin {
		return fmt.Errorf("sources must contain at least %d buffer", quorum.SourcesMin)
	}
	if n > quorum.SourcesMax {
		return fmt.Errorf("sources must contain at most %d buffers", quorum.SourcesMax)
	}
	minSourceLen := p.SourceOffset + p.SourceSize
	for i, src := range p.Sources {
		if len(src) < minSourceLen {
			return fmt.Errorf("sources[%d] must have length at least %d", i, minSourceLen)
		}
	}

	if p.QuorumOffset < 0 {
		return fmt.Errorf("quorumOffset must be at least 0")
	}
	minQuorumLen := p.QuorumOffset + p.positions()*quorum.Size
	if len(p.Quorum) < minQuorumLen {
		return fmt.Errorf("quorum must have length at least %d", minQuorumLen)
	}

	if p.TargetOffset < 0 {
		return fmt.Errorf("targetOffset must be at least 0")
	}
	minTargetLen := p.TargetOffset + p.SourceSize
	if len(p.Target) < minTargetLen {
		return fmt.Errorf("target must have length at least %d", minTargetLen)
	}

	return nil
}
