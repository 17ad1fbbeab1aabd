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

package workload

import (
	"errors"
	"fmt"

	"github.com/packetd/respb/resp"
	"github.com/packetd/respb/respb"
)

// ConvertRESPToRESPB re-encodes a RESP byte stream into RESPB frames, one
// per parsed RESP command. The reference benchmark driver never actually
// did this conversion: it generated one RESP workload and pointed both
// protocols' benchmarks at the same bytes, with a comment noting that a
// real implementation would convert between them. This is that
// conversion.
//
// Commands whose name has no RESPB opcode are skipped with their byte
// length (not the command itself) counted in skippedBytes, so callers can
// log how much of the input a given RESPB catalogue failed to cover.
func ConvertRESPToRESPB(data []byte) (converted []byte, skippedBytes int, err error) {
	c := resp.NewClient(data)

	var out []byte
	muxID := uint16(0)
	for !c.EOF() {
		startPos := c.Pos()
		argv, perr := c.ParseCommand()
		if perr != nil {
			if errors.Is(perr, resp.ErrIncomplete) {
				break
			}
			return nil, 0, fmt.Errorf("workload: converting command at byte %d: %w", startPos, perr)
		}
		if len(argv) == 0 {
			continue
		}

		name := resp.CommandName(argv)
		opcode, ok := respb.OpcodeByName(name)
		if !ok {
			skippedBytes += c.Pos() - startPos
			muxID++
			continue
		}

		cmd := &respb.Command{Opcode: opcode, MuxID: muxID}
		for _, a := range argv[1:] {
			cmd.AddArg(respb.Arg{Data: a, Len: len(a)})
		}

		frame, serr := respb.Serialize(cmd)
		if serr != nil {
			return nil, 0, fmt.Errorf("workload: serializing %s at byte %d: %w", name, startPos, serr)
		}
		out = append(out, frame...)
		muxID++
	}

	return out, skippedBytes, nil
}
