// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"sync/atomic"
	"time"

	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/vvquorum/quorum"
)

// Engine is the host interface adapter: the single exported entry point
// ("calculate" at the boundary, §6) that validates arguments once, then
// runs the iterator either on the caller's goroutine (inline) or on a
// freshly spawned one (deferred), reporting the result via callback.
type Engine struct {
	log     log.Logger
	metrics *metrics
}

// New constructs an Engine. registerer may be nil to skip metrics
// registration (as in tests); logger may be log.NewNoOpLogger(). An
// empty namespace defaults to "vvquorum".
func New(logger log.Logger, registerer prometheus.Registerer, namespace string) (*Engine, error) {
	if namespace == "" {
		namespace = "vvquorum"
	}
	m, err := newMetrics(namespace, registerer)
	if err != nil {
		return nil, err
	}
	return &Engine{log: logger, metrics: m}, nil
}

// execState mirrors the quorum_context.error sentinel/assert discipline
// in original_source/binding.c (QUORUM_ERROR_UNDEFINED /
// QUORUM_ERROR_COMPLETED): a calculation must move pending -> running ->
// completed exactly once. Re-entry is an internal consistency violation
// (§7), not a user-visible error, so it panics rather than returning one.
type execState int32

const (
	statePending execState = iota
	stateRunning
	stateCompleted
)

type calculation struct {
	params   Params
	engine   *Engine
	callback func(error)
	state    atomic.Int32
}

// Calculate validates p and then either runs synchronously (callback ==
// nil, returning its error directly) or schedules the work on a new
// goroutine and invokes callback with the result on completion
// (deferred mode, §5). Validation failures are always synchronous and
// precede any scheduling, in both modes.
func (e *Engine) Calculate(p Params, callback func(error)) error {
	if err := validate(p); err != nil {
		return err
	}

	calc := &calculation{params: p, engine: e, callback: callback}

	if callback == nil {
		return calc.run()
	}
	go func() {
		_ = calc.run()
	}()
	return nil
}

func (c *calculation) run() error {
	if !c.state.CompareAndSwap(int32(statePending), int32(stateRunning)) {
		panic("engine: calculation re-entered before completion")
	}

	start := time.Now()
	it := quorum.NewIterator(c.params.VectorOffset, c.params.ObjectSize, c.params.SourceSize)

	sources := make([][]byte, len(c.params.Sources))
	for i, s := range c.params.Sources {
		sources[i] = s[c.params.SourceOffset : c.params.SourceOffset+c.params.SourceSize]
	}
	q := c.params.Quorum[c.params.QuorumOffset:]
	t := c.params.Target[c.params.TargetOffset:]

	runErr := it.Run(sources, q, t)

	if !c.state.CompareAndSwap(int32(stateRunning), int32(stateCompleted)) {
		panic("engine: calculation completed twice")
	}

	elapsed := time.Since(start).Seconds()
	positions := it.Positions()

	var result error
	outcome := "ok"
	forked := 0
	if runErr != nil {
		outcome = "cyclic_reference"
		result = newCyclicReferenceError()
		c.engine.log.Warn("quorum calculation aborted on cyclic reference",
			log.Int("positions", positions))
	} else {
		for k := 0; k < positions; k++ {
			if q[k*quorum.Size+quorum.ForkedOffset] == 1 {
				forked++
			}
		}
		c.engine.log.Debug("quorum calculation completed",
			log.Int("positions", positions),
			log.Int("forked", forked))
	}
	c.engine.metrics.observe(positions, forked, outcome, elapsed)

	if c.callback != nil {
		c.callback(result)
	}
	return result
}
