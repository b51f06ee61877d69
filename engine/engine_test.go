// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"testing"

	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/vvquorum/quorum"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(log.NewNoOpLogger(), nil, "")
	require.NoError(t, err)
	return e
}

func unanimousParams(objectSize, sourceSize int) Params {
	sources := make([][]byte, 3)
	for i := range sources {
		sources[i] = make([]byte, sourceSize)
		for j := 0; j < quorum.ID; j++ {
			sources[i][j] = 0xaa
		}
	}
	return Params{
		VectorOffset: 0,
		ObjectSize:   objectSize,
		SourceOffset: 0,
		SourceSize:   sourceSize,
		Sources:      sources,
		Quorum:       make([]byte, (sourceSize/objectSize)*quorum.Size),
		Target:       make([]byte, sourceSize),
	}
}

func TestCalculateSyncSuccess(t *testing.T) {
	require := require.New(t)
	e := newTestEngine(t)

	p := unanimousParams(32, 32)
	err := e.Calculate(p, nil)
	require.NoError(err)
	require.Equal(byte(3), p.Quorum[quorum.LengthOffset])
}

func TestCalculateValidationErrors(t *testing.T) {
	require := require.New(t)
	e := newTestEngine(t)

	p := unanimousParams(32, 32)
	p.VectorOffset = -1
	err := e.Calculate(p, nil)
	require.Error(err)
	require.Contains(err.Error(), "vectorOffset")
}

func TestCalculateObjectSizeTooSmall(t *testing.T) {
	require := require.New(t)
	e := newTestEngine(t)

	p := unanimousParams(32, 32)
	p.ObjectSize = 16
	err := e.Calculate(p, nil)
	require.Error(err)
	require.Contains(err.Error(), "objectSize")
}

func TestCalculateSourceLengthMismatch(t *testing.T) {
	require := require.New(t)
	e := newTestEngine(t)

	p := unanimousParams(32, 32)
	p.Sources[1] = make([]byte, 16)
	err := e.Calculate(p, nil)
	require.Error(err)
	require.Contains(err.Error(), "sources[1]")
}

func TestCalculateDeferredMode(t *testing.T) {
	require := require.New(t)
	e := newTestEngine(t)

	p := unanimousParams(32, 32)
	done := make(chan error, 1)
	require.NoError(e.Calculate(p, func(err error) { done <- err }))

	err := <-done
	require.NoError(err)
	require.Equal(byte(3), p.Quorum[quorum.LengthOffset])
}

func TestCalculateDeferredCyclicReference(t *testing.T) {
	require := require.New(t)
	e := newTestEngine(t)

	p := unanimousParams(32, 32)
	// Make every source self-cyclic.
	for _, s := range p.Sources {
		copy(s[quorum.ID:quorum.Vector], s[:quorum.ID])
	}

	done := make(chan error, 1)
	require.NoError(e.Calculate(p, func(err error) { done <- err }))

	err := <-done
	require.Error(err)
	var calcErr *CalculationError
	require.ErrorAs(err, &calcErr)
	require.Equal(ErrCodeCyclicReferences, calcErr.Code)
}

func TestCalculateRejectsTooFewSources(t *testing.T) {
	require := require.New(t)
	e := newTestEngine(t)

	p := unanimousParams(32, 32)
	p.Sources = nil
	err := e.Calculate(p, nil)
	require.Error(err)
	require.Contains(err.Error(), "sources must contain at least")
}
