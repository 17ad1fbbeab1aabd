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
	"github.com/google/uuid"
)

// Report packages one protocol's Metrics with a run identifier; console
// formatting is intentionally out of scope here, matching the project's
// decision to return structured data rather than printf-style tables.
type Report struct {
	RunID   string
	Metrics *Metrics
}

// NewReport wraps m in a Report, tagging it with a fresh run ID.
func NewReport(m *Metrics) Report {
	return Report{RunID: uuid.NewString(), Metrics: m}
}

// Comparison holds the ratios Compare derives from a pair of Reports,
// transcribed from benchmark_print_comparison's arithmetic.
type Comparison struct {
	TimeRatio       float64 // resp time / respb time; >1 means respb is faster
	CPURatio        float64
	SizeRatio       float64 // resp bytes / respb bytes
	BandwidthSaving float64 // percent smaller respb's wire size is
	ThroughputRatio float64
	LatencyRatio    float64
	MemoryRatio     float64
}

// Compare derives a Comparison between a RESP report and a RESPB report
// of the same workload. Ratios are left at zero wherever the RESPB-side
// denominator is zero, rather than dividing by zero, since a benchmark
// that processed nothing has no meaningful ratio to report.
func Compare(resp, respb Report) Comparison {
	var c Comparison

	if respb.Metrics.TotalTimeNs != 0 {
		c.TimeRatio = float64(resp.Metrics.TotalTimeNs) / float64(respb.Metrics.TotalTimeNs)
	}
	if respb.Metrics.CPUTimeUs != 0 {
		c.CPURatio = float64(resp.Metrics.CPUTimeUs) / float64(respb.Metrics.CPUTimeUs)
	}
	if respb.Metrics.BytesProcessed != 0 {
		c.SizeRatio = float64(resp.Metrics.BytesProcessed) / float64(respb.Metrics.BytesProcessed)
	}
	if c.SizeRatio != 0 {
		c.BandwidthSaving = (1 - 1/c.SizeRatio) * 100
	}

	respThroughput := throughput(resp.Metrics)
	respbThroughput := throughput(respb.Metrics)
	if respbThroughput != 0 {
		c.ThroughputRatio = respThroughput / respbThroughput
	}

	if respb.Metrics.AvgLatencyNs != 0 {
		c.LatencyRatio = float64(resp.Metrics.AvgLatencyNs) / float64(respb.Metrics.AvgLatencyNs)
	}
	if respb.Metrics.PeakMemoryKB != 0 {
		c.MemoryRatio = float64(resp.Metrics.PeakMemoryKB) / float64(respb.Metrics.PeakMemoryKB)
	}

	return c
}

func throughput(m *Metrics) float64 {
	if m.TotalTimeNs == 0 {
		return 0
	}
	return float64(m.CommandsProcessed) / (float64(m.TotalTimeNs) / 1e9)
}
