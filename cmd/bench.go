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

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packetd/respb/benchmark"
	"github.com/packetd/respb/workload"
)

type benchCmdConfig struct {
	RESPFile      string
	RESPBFile     string
	Iterations    int
	TargetSize    int
	Shape         string
	Protocol      string
	SampleLatency bool
}

var benchConfig benchCmdConfig

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the comparative RESP/RESPB parsing benchmark",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := benchConfig.toBenchmarkConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid benchmark config: %v\n", err)
			os.Exit(1)
		}

		result, err := benchmark.Run(*cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "benchmark failed: %v\n", err)
			os.Exit(1)
		}

		printResult(result)
	},
	Example: "# respb bench -i 20 -l --length 10485760 -w mixed -p both",
}

func (c *benchCmdConfig) toBenchmarkConfig() (*benchmark.Config, error) {
	cfg := &benchmark.Config{
		Iterations:    c.Iterations,
		SampleLatency: c.SampleLatency,
		TargetSize:    c.TargetSize,
	}

	switch strings.ToLower(c.Protocol) {
	case "resp":
		cfg.BenchRESP = true
	case "respb":
		cfg.BenchRESPB = true
	case "both", "":
		cfg.BenchRESP = true
		cfg.BenchRESPB = true
	default:
		return nil, fmt.Errorf("unknown protocol %q, want resp, respb, or both", c.Protocol)
	}

	shapeName := strings.ToLower(c.Shape)
	if shapeName == "raw" {
		cfg.ReuseRESPBytes = true
	} else if shapeName != "" {
		shape, err := workload.ParseShape(shapeName)
		if err != nil {
			return nil, err
		}
		cfg.Shape = shape
	}

	if c.RESPFile != "" {
		data, err := workload.Load(c.RESPFile)
		if err != nil {
			return nil, err
		}
		cfg.RESPWorkload = data
	}
	if c.RESPBFile != "" {
		data, err := workload.Load(c.RESPBFile)
		if err != nil {
			return nil, err
		}
		cfg.RESPBWorkload = data
	}

	return cfg, nil
}

func printResult(result *benchmark.Result) {
	if r := result.RESP; r != nil {
		fmt.Printf("RESP  run=%s commands=%d bytes=%d time_ns=%d\n",
			r.RunID, r.Metrics.CommandsProcessed, r.Metrics.BytesProcessed, r.Metrics.TotalTimeNs)
	}
	if r := result.RESPB; r != nil {
		fmt.Printf("RESPB run=%s commands=%d bytes=%d time_ns=%d\n",
			r.RunID, r.Metrics.CommandsProcessed, r.Metrics.BytesProcessed, r.Metrics.TotalTimeNs)
	}
	if c := result.Comparison; c != nil {
		fmt.Printf("comparison: time_ratio=%.3f cpu_ratio=%.3f size_ratio=%.3f bandwidth_saving=%.3f throughput_ratio=%.3f latency_ratio=%.3f memory_ratio=%.3f\n",
			c.TimeRatio, c.CPURatio, c.SizeRatio, c.BandwidthSaving, c.ThroughputRatio, c.LatencyRatio, c.MemoryRatio)
	}
}

func init() {
	benchCmd.Flags().StringVarP(&benchConfig.RESPFile, "resp-file", "r", "", "Path to a RESP workload file; generated if omitted")
	benchCmd.Flags().StringVarP(&benchConfig.RESPBFile, "respb-file", "b", "", "Path to a RESPB workload file; converted from the RESP workload if omitted")
	benchCmd.Flags().IntVarP(&benchConfig.Iterations, "iterations", "i", 10, "Number of times to replay the workload")
	benchCmd.Flags().IntVar(&benchConfig.TargetSize, "length", 10*1024*1024, "Target size in bytes for a generated workload")
	benchCmd.Flags().StringVarP(&benchConfig.Shape, "workload", "w", "mixed", "Workload shape: small, medium, large, mixed, or raw to reuse the RESP bytes verbatim for RESPB")
	benchCmd.Flags().StringVarP(&benchConfig.Protocol, "protocol", "p", "both", "Which protocol(s) to benchmark: resp, respb, or both")
	benchCmd.Flags().BoolVarP(&benchConfig.SampleLatency, "sample-latency", "l", false, "Record per-command latency percentiles")
	rootCmd.AddCommand(benchCmd)
}
