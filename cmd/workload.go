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

	"github.com/spf13/cobra"

	"github.com/packetd/respb/workload"
)

var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Generate and convert workload files used by bench",
}

var workloadGenerateConfig struct {
	Out   string
	Shape string
	Size  int
}

var workloadGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a RESP workload file of the given shape",
	Run: func(cmd *cobra.Command, args []string) {
		shape, err := workload.ParseShape(workloadGenerateConfig.Shape)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		data := workload.Generate(workloadGenerateConfig.Size, shape)
		if err := workload.Save(workloadGenerateConfig.Out, shape, data); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %d bytes to %s\n", len(data), workloadGenerateConfig.Out)
	},
	Example: "# respb workload generate --shape mixed --size 10485760 --out mixed.resp",
}

var workloadConvertConfig struct {
	In  string
	Out string
}

var workloadConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a RESP workload file into RESPB frames",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := workload.Load(workloadConvertConfig.In)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		converted, skipped, err := workload.ConvertRESPToRESPB(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		if err := workload.Save(workloadConvertConfig.Out, workload.Mixed, converted); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %d bytes to %s (%d bytes skipped, no RESPB opcode)\n", len(converted), workloadConvertConfig.Out, skipped)
	},
	Example: "# respb workload convert --in mixed.resp --out mixed.respb",
}

func init() {
	workloadGenerateCmd.Flags().StringVar(&workloadGenerateConfig.Out, "out", "workload.resp", "Output file path")
	workloadGenerateCmd.Flags().StringVar(&workloadGenerateConfig.Shape, "shape", "mixed", "Workload shape: small, medium, large, or mixed")
	workloadGenerateCmd.Flags().IntVar(&workloadGenerateConfig.Size, "size", 10*1024*1024, "Target size in bytes")

	workloadConvertCmd.Flags().StringVar(&workloadConvertConfig.In, "in", "", "Input RESP workload file")
	workloadConvertCmd.Flags().StringVar(&workloadConvertConfig.Out, "out", "workload.respb", "Output RESPB workload file")
	workloadConvertCmd.MarkFlagRequired("in")

	workloadCmd.AddCommand(workloadGenerateCmd)
	workloadCmd.AddCommand(workloadConvertCmd)
	rootCmd.AddCommand(workloadCmd)
}
