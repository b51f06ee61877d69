// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	require := require.New(t)

	a := ID{0xaa}
	b := ID{0xaa}
	c := ID{0xbb}

	require.True(Equal(a, b))
	require.False(Equal(a, c))
	require.True(Equal(Empty, ID{}))
}

func TestFromBytes(t *testing.T) {
	require := require.New(t)

	raw := make([]byte, Len)
	for i := range raw {
		raw[i] = byte(i)
	}

	got := FromBytes(raw)
	for i := 0; i < Len; i++ {
		require.Equal(byte(i), got[i])
	}
}

func TestString(t *testing.T) {
	require := require.New(t)

	var i ID
	i[0] = 0xde
	i[1] = 0xad
	s := i.String()
	require.Len(s, 2*Len)
	require.Equal("dead", s[:4])
	require.Equal(strings.Repeat("0", 2*Len-4), s[4:])
}
