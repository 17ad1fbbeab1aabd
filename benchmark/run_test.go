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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetd/respb/workload"
)

func TestRunBothProtocols(t *testing.T) {
	cfg := Config{
		Iterations:    3,
		SampleLatency: true,
		BenchRESP:     true,
		BenchRESPB:    true,
		Shape:         workload.SmallKeys,
		RESPWorkload:  workload.Generate(8192, workload.SmallKeys),
	}

	result, err := Run(cfg)
	require.NoError(t, err)
	require.NotNil(t, result.RESP)
	require.NotNil(t, result.RESPB)
	require.NotNil(t, result.Comparison)

	assert.Greater(t, result.RESP.Metrics.CommandsProcessed, uint64(0))
	assert.Greater(t, result.RESPB.Metrics.CommandsProcessed, uint64(0))
}

func TestRunReuseRESPBytesSkipsRESPBRun(t *testing.T) {
	cfg := Config{
		Iterations:     2,
		BenchRESP:      true,
		BenchRESPB:     true,
		Shape:          workload.SmallKeys,
		RESPWorkload:   workload.Generate(4096, workload.SmallKeys),
		ReuseRESPBytes: true,
	}

	result, err := Run(cfg)
	require.NoError(t, err)
	require.NotNil(t, result.RESP)
	assert.Nil(t, result.RESPB, "respb run is skipped when both workloads are the identical reused bytes")
}

func TestMetricsRecordLatencyCapsAggregatesAtSampleLimit(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < MaxLatencySamples+5; i++ {
		m.RecordLatency(uint64(i + 1))
	}
	m.ComputePercentiles()

	assert.Equal(t, MaxLatencySamples, len(m.latencySamples))
	assert.EqualValues(t, 1, m.MinLatencyNs)
	assert.EqualValues(t, MaxLatencySamples, m.MaxLatencyNs)
}
