// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command vvquorumd exercises the engine package against synthetic
// sources generated from a seed (it does not read sources from files):
// a single "decide" run, a throughput benchmark, or
// a long-lived process serving Prometheus metrics over HTTP. It carries
// no replication protocol of its own (§14 Non-goals) — its sources are
// local byte buffers, never network peers.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/luxfi/crypto"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luxfi/vvquorum/config"
	"github.com/luxfi/vvquorum/engine"
	"github.com/luxfi/vvquorum/quorum"
)

func main() {
	var (
		mode         = flag.String("mode", "run", "Mode: run, bench, or serve")
		sources      = flag.Int("sources", 0, "Source count (0 to use preset default)")
		objectSize   = flag.Int("object-size", 0, "Record size in bytes (0 to use preset default)")
		records      = flag.Int("records", 0, "Record stream length to simulate (0 to use preset default)")
		vectorOffset = flag.Int("vector-offset", 0, "Byte offset of the version vector within a record")
		seed         = flag.String("seed", "vvquorum", "Seed for synthetic record generation")
		metricsAddr  = flag.String("metrics-addr", "", "Address to serve /metrics on (serve mode only; empty to use preset default)")
		namespace    = flag.String("namespace", "", "Prometheus metric namespace (empty to use preset default)")
		verbose      = flag.Bool("verbose", false, "Verbose per-position output (run mode only)")
	)
	flag.Parse()

	var cfg config.RunConfig
	switch *mode {
	case "bench":
		cfg = config.Bench()
	default:
		cfg = config.Default()
	}
	if *sources > 0 {
		cfg.SourceCount = *sources
	}
	if *objectSize > 0 {
		cfg.ObjectSize = *objectSize
	}
	if *records > 0 {
		cfg.RecordCount = *records
	}
	cfg.VectorOffset = *vectorOffset
	if *seed != "" {
		cfg.Seed = *seed
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *namespace != "" {
		cfg.Namespace = *namespace
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "vvquorumd: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewLogger("vvquorumd")
	registerer := prometheus.NewRegistry()

	eng, err := engine.New(logger, registerer, cfg.Namespace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vvquorumd: %v\n", err)
		os.Exit(1)
	}

	switch *mode {
	case "serve":
		serve(eng, cfg, registerer, logger)
	case "bench":
		runOnce(eng, cfg, false)
	default:
		runOnce(eng, cfg, *verbose)
	}
}

// syntheticParams builds an engine.Params for cfg: cfg.SourceCount
// sources of cfg.RecordCount records each, deterministically derived
// from cfg.Seed via crypto.Keccak256, the way the teacher's own
// examples/op_stack_quantum_integration.go derives test IDs. Every
// source agrees (unanimous records), which is the common case a bench
// run wants to measure; a cyclic or forked workload can be built by
// hand against the same engine.Params shape.
func syntheticParams(cfg config.RunConfig) engine.Params {
	sourceSize := cfg.ObjectSize * cfg.RecordCount
	sources := make([][]byte, cfg.SourceCount)
	for s := range sources {
		buf := make([]byte, sourceSize)
		for r := 0; r < cfg.RecordCount; r++ {
			off := r * cfg.ObjectSize
			id := crypto.Keccak256([]byte(fmt.Sprintf("%s:%d", cfg.Seed, r)))
			copy(buf[off+cfg.VectorOffset:off+cfg.VectorOffset+quorum.ID], id)
		}
		sources[s] = buf
	}

	return engine.Params{
		VectorOffset: cfg.VectorOffset,
		ObjectSize:   cfg.ObjectSize,
		SourceOffset: 0,
		SourceSize:   sourceSize,
		Sources:      sources,
		Quorum:       make([]byte, cfg.RecordCount*quorum.Size),
		Target:       make([]byte, sourceSize),
	}
}

// sourceLabels assigns each source a display name, the way a real
// deployment would label replicas by node identity rather than by bare
// index. These are operator-facing labels only — the decision engine
// itself never sees them, since sources are addressed purely by
// position (§4).
func sourceLabels(n int) []ids.NodeID {
	labels := make([]ids.NodeID, n)
	for i := range labels {
		labels[i] = ids.GenerateTestNodeID()
	}
	return labels
}

func runOnce(eng *engine.Engine, cfg config.RunConfig, verbose bool) {
	p := syntheticParams(cfg)
	labels := sourceLabels(cfg.SourceCount)
	if verbose {
		for i, l := range labels {
			fmt.Printf("source %d: node=%s\n", i, l)
		}
	}

	start := time.Now()
	if err := eng.Calculate(p, nil); err != nil {
		fmt.Fprintf(os.Stderr, "vvquorumd: calculate failed: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	positions := cfg.RecordCount
	leaders := make(map[uint8]struct{})
	forked := 0
	for k := 0; k < positions; k++ {
		off := k * quorum.Size
		leaders[p.Quorum[off+quorum.LeaderOffset]] = struct{}{}
		if p.Quorum[off+quorum.ForkedOffset] == 1 {
			forked++
		}
		if verbose {
			fmt.Printf("position %d: leader=%d length=%d repair=%d forked=%d\n",
				k, p.Quorum[off+quorum.LeaderOffset], p.Quorum[off+quorum.LengthOffset],
				p.Quorum[off+quorum.RepairOffset], p.Quorum[off+quorum.ForkedOffset])
		}
	}

	fmt.Printf("sources=%d objectSize=%d positions=%d distinctLeaders=%d forked=%d elapsed=%s\n",
		cfg.SourceCount, cfg.ObjectSize, positions, len(leaders), forked, elapsed)
	if positions > 0 {
		fmt.Printf("throughput=%.0f positions/sec\n", float64(positions)/elapsed.Seconds())
	}
}

func serve(eng *engine.Engine, cfg config.RunConfig, registerer *prometheus.Registry, logger log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registerer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/decide", func(w http.ResponseWriter, r *http.Request) {
		p := syntheticParams(cfg)
		if err := eng.Calculate(p, nil); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, "positions=%d quorumBytes=%d\n", cfg.RecordCount, len(p.Quorum))
	})

	logger.Info("vvquorumd listening", log.String("addr", cfg.MetricsAddr))
	if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
		fmt.Fprintf(os.Stderr, "vvquorumd: %v\n", err)
		os.Exit(1)
	}
}
