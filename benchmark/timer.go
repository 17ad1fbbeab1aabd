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

// Package benchmark drives comparative runs of the resp and respb
// parsers over the same workload and reports timing, CPU, memory, and
// latency-percentile figures for each.
package benchmark

import (
	"syscall"
	"time"
)

// Timer records wall-clock and CPU time at StartTimer; Elapsed reports the
// deltas since then plus the process's peak RSS as of that call, mirroring
// benchmark_timer_start/_stop's use of clock_gettime(CLOCK_MONOTONIC) plus
// getrusage(RUSAGE_SELF).
type Timer struct {
	start       time.Time
	startCPUUs  int64
}

// StartTimer begins a timing window.
func StartTimer() *Timer {
	return &Timer{
		start:      time.Now(),
		startCPUUs: cpuTimeUs(),
	}
}

// Elapsed returns the wall-clock duration and CPU time consumed since
// StartTimer, and the process's peak RSS so far, in
// nanoseconds/microseconds/kilobytes respectively.
func (t *Timer) Elapsed() (elapsedNs uint64, cpuTimeUs uint64, peakMemoryKB uint64) {
	elapsedNs = uint64(time.Since(t.start).Nanoseconds())
	cpuTimeUs = uint64(cpuTimeUsNow() - t.startCPUUs)
	peakMemoryKB = uint64(maxRSSKB())
	return
}

func cpuTimeUs() int64 {
	return cpuTimeUsNow()
}

func cpuTimeUsNow() int64 {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	utime := int64(ru.Utime.Sec)*1_000_000 + int64(ru.Utime.Usec)
	stime := int64(ru.Stime.Sec)*1_000_000 + int64(ru.Stime.Usec)
	return utime + stime
}

func maxRSSKB() int64 {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	// Linux reports ru_maxrss in kilobytes already (unlike Darwin, which
	// reports bytes); this module targets Linux server deployments.
	return int64(ru.Maxrss)
}
