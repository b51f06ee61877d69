// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import "github.com/prometheus/client_golang/prometheus"

// metrics is registered the same way the teacher's factories package
// takes a prometheus.Registerer into its constructors
// (factories.NewConfidenceFactory(log, registerer, params)).
type metrics struct {
	calculations   *prometheus.CounterVec
	positions      prometheus.Counter
	forkedPositions prometheus.Counter
	duration       prometheus.Histogram
}

func newMetrics(namespace string, registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Number of calculate invocations, labeled by outcome.",
		}, []string{"outcome"}),
		positions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "positions_total",
			Help:      "Number of record positions decided across all calculations.",
		}),
		forkedPositions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forked_positions_total",
			Help:      "Number of record positions that resolved as forked.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Wall-clock duration of one calculate invocation.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if registerer == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.calculations, m.positions, m.forkedPositions, m.duration} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) observe(positions, forked int, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(outcome).Inc()
	m.positions.Add(float64(positions))
	m.forkedPositions.Add(float64(forked))
	m.duration.Observe(seconds)
}
