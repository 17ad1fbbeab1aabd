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
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrIncomplete is returned by Parse when the buffer does not yet hold a
// full frame. Callers should read more bytes and retry from the start of
// the same frame; nothing has been consumed on this error path.
var ErrIncomplete = errors.New("respb: incomplete frame")

func newError(format string, args ...interface{}) error {
	return errors.Errorf("respb: "+format, args...)
}

// Parser walks a byte buffer and decodes RESPB frames. It never copies:
// every Arg it produces slices directly into the buffer it was given, so
// callers must not reuse that buffer until they are done with the Command.
type Parser struct {
	buffer []byte
	pos    int
}

// NewParser returns a Parser positioned at the start of buffer.
func NewParser(buffer []byte) *Parser {
	return &Parser{buffer: buffer}
}

// Pos reports how many bytes of the buffer have been consumed so far.
func (p *Parser) Pos() int {
	return p.pos
}

func (p *Parser) checkAvail(n int) bool {
	return p.pos+n <= len(p.buffer)
}

func (p *Parser) readU16() uint16 {
	v := binary.BigEndian.Uint16(p.buffer[p.pos:])
	p.pos += 2
	return v
}

func (p *Parser) readU32() uint32 {
	v := binary.BigEndian.Uint32(p.buffer[p.pos:])
	p.pos += 4
	return v
}

func (p *Parser) readU64() uint64 {
	v := binary.BigEndian.Uint64(p.buffer[p.pos:])
	p.pos += 8
	return v
}

func (p *Parser) readByte() byte {
	b := p.buffer[p.pos]
	p.pos++
	return b
}

func (p *Parser) skip(n int) bool {
	if !p.checkAvail(n) {
		return false
	}
	p.pos += n
	return true
}

// readStr2 reads a 2-byte length-prefixed byte string. Returns false when
// the buffer does not yet hold the full string (incomplete, not an error).
func (p *Parser) readStr2() (Arg, bool) {
	if !p.checkAvail(2) {
		return Arg{}, false
	}
	n := int(p.readU16())
	if !p.checkAvail(n) {
		return Arg{}, false
	}
	data := p.buffer[p.pos : p.pos+n]
	p.pos += n
	return Arg{Data: data, Len: n}, true
}

// readStr4 reads a 4-byte length-prefixed byte string.
func (p *Parser) readStr4() (Arg, bool) {
	if !p.checkAvail(4) {
		return Arg{}, false
	}
	n := int(p.readU32())
	if !p.checkAvail(n) {
		return Arg{}, false
	}
	data := p.buffer[p.pos : p.pos+n]
	p.pos += n
	return Arg{Data: data, Len: n}, true
}

// ParsePeek reads just the 4-byte frame header (opcode, mux ID) without
// advancing the parser, mirroring respb_parse_header's use as a routing
// peek ahead of a full Parse call.
func (p *Parser) ParsePeek() (opcode, muxID uint16, ok bool) {
	if !p.checkAvail(4) {
		return 0, 0, false
	}
	opcode = binary.BigEndian.Uint16(p.buffer[p.pos:])
	muxID = binary.BigEndian.Uint16(p.buffer[p.pos+2:])
	return opcode, muxID, true
}

// Parse decodes the next frame starting at the parser's current position.
//
// It returns (cmd, nil) on a complete frame, (nil, ErrIncomplete) if the
// buffer does not yet hold a full frame (the parser position is left
// unchanged so the caller can retry once more data arrives), or (nil, err)
// for a malformed or unrecognized opcode.
func (p *Parser) Parse() (*Command, error) {
	start := p.pos
	if !p.checkAvail(4) {
		return nil, ErrIncomplete
	}
	opcode := p.readU16()
	muxID := p.readU16()

	cmd := &Command{Opcode: opcode, MuxID: muxID}
	payloadStart := p.pos

	shape, ok := shapeTable[opcode]
	if !ok {
		p.pos = start
		return nil, newError("unknown opcode 0x%04X at position %d", opcode, start)
	}

	if !shape(p, cmd) {
		p.pos = start
		return nil, ErrIncomplete
	}

	cmd.RawPayload = p.buffer[payloadStart:p.pos]
	return cmd, nil
}
