// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the operator-facing configuration for
// cmd/vvquorumd: record layout and synthetic workload shape, plus the
// sentinel validation errors and preset constructors the teacher's own
// config package uses (config.DefaultParams/MainnetParams/...).
package config

import (
	"errors"

	"github.com/luxfi/vvquorum/quorum"
)

// Error variables for parameter validation, following the teacher's
// config/errors.go convention of package-level errors.New values.
var (
	ErrInvalidObjectSize   = errors.New("objectSize must be >= 32 and >= vectorOffset+32")
	ErrInvalidVectorOffset = errors.New("vectorOffset must be >= 0")
	ErrInvalidSourceCount  = errors.New("sourceCount must be between 1 and 255")
	ErrInvalidRecordCount  = errors.New("recordCount must be >= 1")
)

// RunConfig describes the record layout and synthetic workload a
// vvquorumd invocation exercises. It has no file-format representation:
// persisted state is explicitly out of scope for this engine (spec §6),
// so RunConfig is populated directly from flags, the way the teacher's
// own cmd/checker populates a config.Config from flag.* overrides.
type RunConfig struct {
	ObjectSize   int
	VectorOffset int
	SourceCount  int
	RecordCount  int
	Namespace    string
	MetricsAddr  string
	Seed         string
}

// Default returns the baseline configuration: three sources, one 32-byte
// record, vector at offset 0 — the smallest input that exercises the
// engine end to end.
func Default() RunConfig {
	return RunConfig{
		ObjectSize:   32,
		VectorOffset: 0,
		SourceCount:  3,
		RecordCount:  1,
		Namespace:    "vvquorum",
		MetricsAddr:  ":9090",
		Seed:         "vvquorum",
	}
}

// Bench returns a configuration sized for throughput measurement: a
// maximal quorum and a large record stream.
func Bench() RunConfig {
	c := Default()
	c.SourceCount = quorum.SourcesMax
	c.RecordCount = 100_000
	return c
}

// Validate checks c against the bounds in spec §6, returning the first
// violated sentinel error.
func (c RunConfig) Validate() error {
	if c.ObjectSize < quorum.Vector+c.VectorOffset || c.ObjectSize < quorum.Vector {
		return ErrInvalidObjectSize
	}
	if c.VectorOffset < 0 {
		return ErrInvalidVectorOffset
	}
	if c.SourceCount < quorum.SourcesMin || c.SourceCount > quorum.SourcesMax {
		return ErrInvalidSourceCount
	}
	if c.RecordCount < 1 {
		return ErrInvalidRecordCount
	}
	return nil
}
