// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package id implements the fixed-width identifier used throughout the
// quorum decision engine: a 16-byte, side-channel-indifferent value with
// byte-exact equality.
package id

// Len is the width in bytes of an ID.
const Len = 16

// ID is an opaque 16-byte identifier. The all-zero ID carries no special
// meaning to this package; callers may use it as a "no predecessor"
// sentinel, but Equal treats it like any other value.
type ID [Len]byte

// Empty is the all-zero ID.
var Empty ID

// Equal reports whether a and b hold the same bytes. The comparison runs
// in constant stride regardless of where the inputs first differ, rather
// than short-circuiting on the first differing index.
func Equal(a, b ID) bool {
	var diff byte
	for i := 0; i < Len; i++ {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// FromBytes copies a 16-byte slice into an ID. It panics if b is shorter
// than Len; callers at the package boundary (engine) are responsible for
// bounds-checking before this is reached.
func FromBytes(b []byte) ID {
	_ = b[Len-1]
	var out ID
	copy(out[:], b[:Len])
	return out
}

// String renders the ID as lowercase hex, matching the teacher's
// fmt.Stringer-based ID types.
func (i ID) String() string {
	const hex = "0123456789abcdef"
	buf := make([]byte, 2*Len)
	for j, b := range i {
		buf[2*j] = hex[b>>4]
		buf[2*j+1] = hex[b&0x0f]
	}
	return string(buf)
}
