// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestBenchIsValid(t *testing.T) {
	require.NoError(t, Bench().Validate())
}

func TestValidateRejectsSmallObjectSize(t *testing.T) {
	c := Default()
	c.ObjectSize = 16
	require.ErrorIs(t, c.Validate(), ErrInvalidObjectSize)
}

func TestValidateRejectsNegativeVectorOffset(t *testing.T) {
	c := Default()
	c.VectorOffset = -1
	require.ErrorIs(t, c.Validate(), ErrInvalidVectorOffset)
}

func TestValidateRejectsSourceCountOutOfRange(t *testing.T) {
	c := Default()
	c.SourceCount = 0
	require.ErrorIs(t, c.Validate(), ErrInvalidSourceCount)

	c.SourceCount = 999
	require.ErrorIs(t, c.Validate(), ErrInvalidSourceCount)
}

func TestValidateRejectsZeroRecordCount(t *testing.T) {
	c := Default()
	c.RecordCount = 0
	require.ErrorIs(t, c.Validate(), ErrInvalidRecordCount)
}
