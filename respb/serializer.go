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

package respb

import (
	"github.com/valyala/bytebufferpool"
)

var bufferPool bytebufferpool.Pool

func writeU16(buf *bytebufferpool.ByteBuffer, v uint16) {
	buf.B = append(buf.B, byte(v>>8), byte(v))
}

func writeU32(buf *bytebufferpool.ByteBuffer, v uint32) {
	buf.B = append(buf.B, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func writeU64(buf *bytebufferpool.ByteBuffer, v uint64) {
	buf.B = append(buf.B,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func writeStr2(buf *bytebufferpool.ByteBuffer, a Arg) {
	n := len(a.Data)
	if n > 0xFFFF {
		n = 0xFFFF
	}
	writeU16(buf, uint16(n))
	buf.B = append(buf.B, a.Data[:n]...)
}

func writeStr4(buf *bytebufferpool.ByteBuffer, a Arg) {
	writeU32(buf, uint32(len(a.Data)))
	buf.B = append(buf.B, a.Data...)
}

func writeHeader(buf *bytebufferpool.ByteBuffer, opcode, muxID uint16) {
	writeU16(buf, opcode)
	writeU16(buf, muxID)
}

// Serialize encodes cmd back into wire bytes, routing every opcode
// through writeShapeTable, the write-side mirror of the parser's
// shapeTable, so Parse(Serialize(cmd)) reproduces cmd for any
// well-formed Command. OpModule and OpRESPPassthrough carry payload
// (ModuleSubcommand/RESPData) that doesn't fit the Args-indexed wstep
// model, so they're written directly instead.
func Serialize(cmd *Command) ([]byte, error) {
	buf := bufferPool.Get()
	defer bufferPool.Put(buf)

	writeHeader(buf, cmd.Opcode, cmd.MuxID)

	switch cmd.Opcode {
	case OpModule:
		writeU32(buf, cmd.ModuleSubcommand)
		serializeModuleBody(buf, cmd)

	case OpRESPPassthrough:
		writeU32(buf, uint32(len(cmd.RESPData)))
		buf.B = append(buf.B, cmd.RESPData...)

	default:
		step, ok := writeShapeTable[cmd.Opcode]
		if !ok {
			return nil, newError("no write shape registered for opcode %#04x", cmd.Opcode)
		}
		cur := 0
		if err := step.write(buf, cmd, &cur); err != nil {
			return nil, err
		}
	}

	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out, nil
}

func serializeModuleBody(buf *bytebufferpool.ByteBuffer, cmd *Command) {
	switch cmd.ModuleID {
	case ModuleJSON:
		switch cmd.CommandID {
		case 0x0000: // JSON.SET
			writeStr2(buf, cmd.arg(0))
			writeStr2(buf, cmd.arg(1))
			writeStr4(buf, cmd.arg(2))
			buf.B = append(buf.B, 0)
			return
		case 0x0001: // JSON.GET
			writeStr2(buf, cmd.arg(0))
			writeU16(buf, uint16(cmd.Argc-1))
			for i := 1; i < cmd.Argc; i++ {
				writeStr2(buf, cmd.arg(i))
			}
			return
		}
	case ModuleBF:
		switch cmd.CommandID {
		case 0x0000, 0x0002: // BF.ADD / BF.EXISTS
			writeStr2(buf, cmd.arg(0))
			writeStr2(buf, cmd.arg(1))
			return
		}
	case ModuleFT:
		if cmd.CommandID == 0x0001 { // FT.SEARCH
			writeStr2(buf, cmd.arg(0))
			writeStr2(buf, cmd.arg(1))
			return
		}
	}
	writeStr2(buf, cmd.arg(0))
}

// arg returns the i-th arg, or a zero Arg if the command was built with
// fewer arguments than the opcode's shape expects.
func (cmd *Command) arg(i int) Arg {
	if i < 0 || i >= cmd.Argc || i >= MaxArgs {
		return Arg{}
	}
	return cmd.Args[i]
}
