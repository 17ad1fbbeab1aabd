// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package benchmark

import (
	"math"
	"sort"
)

// MaxLatencySamples bounds how many individual command latencies Metrics
// retains for percentile computation.
const MaxLatencySamples = 10000

// Metrics accumulates the figures one protocol's benchmark run produces.
type Metrics struct {
	CommandsProcessed uint64
	BytesProcessed    uint64
	TotalTimeNs       uint64
	CPUTimeUs         uint64
	PeakMemoryKB      uint64

	latencySamples []uint64

	TotalLatencyNs uint64
	MinLatencyNs   uint64
	MaxLatencyNs   uint64
	AvgLatencyNs   uint64
	P50LatencyNs   uint64
	P90LatencyNs   uint64
	P99LatencyNs   uint64
}

// NewMetrics returns a zeroed Metrics with MinLatencyNs initialized to the
// maximum possible value, so the first recorded sample always lowers it
// (matching benchmark_metrics_init's use of UINT64_MAX as the seed).
func NewMetrics() *Metrics {
	return &Metrics{MinLatencyNs: math.MaxUint64}
}

// RecordLatency adds one command's latency sample.
//
// This diverges deliberately from the reference metrics.c, which updates
// TotalLatencyNs/Min/Max unconditionally even once latencySamples has hit
// its cap, so those fields end up counting commands whose individual
// latency was never actually retained. Here all three are gated by the
// same cap as the sample slice, so every aggregate figure this type
// reports is computed only from latencies it can still produce a
// percentile over.
func (m *Metrics) RecordLatency(latencyNs uint64) {
	if len(m.latencySamples) >= MaxLatencySamples {
		return
	}
	m.latencySamples = append(m.latencySamples, latencyNs)
	m.TotalLatencyNs += latencyNs
	if latencyNs < m.MinLatencyNs {
		m.MinLatencyNs = latencyNs
	}
	if latencyNs > m.MaxLatencyNs {
		m.MaxLatencyNs = latencyNs
	}
}

// ComputePercentiles sorts the retained latency samples and fills in
// AvgLatencyNs/P50/P90/P99, matching benchmark_compute_percentiles'
// direct-index (no-interpolation) approach.
func (m *Metrics) ComputePercentiles() {
	n := len(m.latencySamples)
	if n == 0 {
		m.MinLatencyNs = 0
		return
	}

	sorted := make([]uint64, n)
	copy(sorted, m.latencySamples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	m.AvgLatencyNs = m.TotalLatencyNs / uint64(n)
	m.P50LatencyNs = sorted[n*50/100]
	m.P90LatencyNs = sorted[n*90/100]
	idx99 := n * 99 / 100
	if idx99 >= n {
		idx99 = n - 1
	}
	m.P99LatencyNs = sorted[idx99]
}
