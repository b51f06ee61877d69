// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import "github.com/luxfi/vvquorum/quorum"

// ErrCodeCyclicReferences is the boundary error code from §6, carried on
// CalculationError when the computation aborts mid-stream.
const ErrCodeCyclicReferences = "ERR_CYCLIC_REFERENCES"

// CalculationError is the Go analogue of quorum_error's {code, message}
// pair in original_source/binding.c: a napi_error there carries a code
// string alongside its message, which Go surfaces as a typed field
// rather than as an exception property.
type CalculationError struct {
	Code    string
	Message string
}

func (e *CalculationError) Error() string {
	return e.Message
}

func newCyclicReferenceError() *CalculationError {
	return &CalculationError{
		Code:    ErrCodeCyclicReferences,
		Message: quorum.ErrCyclicReference.Error(),
	}
}
