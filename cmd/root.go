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

// Package cmd implements the respb command line: serving the kvstore demo
// over RESP/RESPB, generating and converting workload files, and running
// the comparative benchmark.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	gitHash   = "none"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "respb",
	Short: "RESPB codec, demo server, and benchmark harness",
	Version: fmt.Sprintf("%s (%s, built %s)", version, gitHash, buildTime),
}

// Execute runs the root command; main calls this and exits non-zero on
// error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
