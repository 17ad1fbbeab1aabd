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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeHeader(opcode, muxID uint16) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint16(b[0:], opcode)
	binary.BigEndian.PutUint16(b[2:], muxID)
	return b
}

func encodeStr2(s string) []byte {
	b := make([]byte, 2+len(s))
	binary.BigEndian.PutUint16(b[0:], uint16(len(s)))
	copy(b[2:], s)
	return b
}

func encodeStr4(s string) []byte {
	b := make([]byte, 4+len(s))
	binary.BigEndian.PutUint32(b[0:], uint32(len(s)))
	copy(b[4:], s)
	return b
}

func TestParseGet(t *testing.T) {
	buf := append(encodeHeader(OpGet, 7), encodeStr2("mykey")...)

	cmd, err := NewParser(buf).Parse()
	require.NoError(t, err)
	assert.Equal(t, OpGet, cmd.Opcode)
	assert.EqualValues(t, 7, cmd.MuxID)
	require.Equal(t, 1, cmd.Argc)
	assert.Equal(t, "mykey", string(cmd.Args[0].Data))
}

func TestParseSetWithDefaults(t *testing.T) {
	var buf []byte
	buf = append(buf, encodeHeader(OpSet, 1)...)
	buf = append(buf, encodeStr2("k")...)
	buf = append(buf, encodeStr4("v")...)
	buf = append(buf, 0)                      // flags
	buf = append(buf, make([]byte, 8)...)     // expiry

	cmd, err := NewParser(buf).Parse()
	require.NoError(t, err)
	require.Equal(t, 2, cmd.Argc)
	assert.Equal(t, "k", string(cmd.Args[0].Data))
	assert.Equal(t, "v", string(cmd.Args[1].Data))
}

func TestParseIncomplete(t *testing.T) {
	full := append(encodeHeader(OpGet, 0), encodeStr2("mykey")...)
	for n := 0; n < len(full); n++ {
		_, err := NewParser(full[:n]).Parse()
		assert.ErrorIs(t, err, ErrIncomplete, "prefix length %d", n)
	}
}

func TestParseUnknownOpcode(t *testing.T) {
	buf := encodeHeader(0x7777, 0)
	_, err := NewParser(buf).Parse()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIncomplete)
}

func TestParseMGetCountPrefixed(t *testing.T) {
	var buf []byte
	buf = append(buf, encodeHeader(OpMGet, 0)...)
	buf = append(buf, 0, 3) // count = 3
	buf = append(buf, encodeStr2("a")...)
	buf = append(buf, encodeStr2("b")...)
	buf = append(buf, encodeStr2("c")...)

	cmd, err := NewParser(buf).Parse()
	require.NoError(t, err)
	require.Equal(t, 3, cmd.Argc)
	assert.Equal(t, []string{"a", "b", "c"}, []string{
		string(cmd.Args[0].Data), string(cmd.Args[1].Data), string(cmd.Args[2].Data),
	})
}

func TestParseTruncatesBeyondMaxArgsButConsumesAllBytes(t *testing.T) {
	const n = MaxArgs + 10

	var buf []byte
	buf = append(buf, encodeHeader(OpMGet, 0)...)
	buf = append(buf, byte(n>>8), byte(n))
	for i := 0; i < n; i++ {
		buf = append(buf, encodeStr2("x")...)
	}

	p := NewParser(buf)
	cmd, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, MaxArgs, cmd.Argc)
	assert.Equal(t, len(buf), p.Pos())
}

func TestParsePing(t *testing.T) {
	buf := encodeHeader(OpPing, 42)
	cmd, err := NewParser(buf).Parse()
	require.NoError(t, err)
	assert.Equal(t, 0, cmd.Argc)
	assert.EqualValues(t, 42, cmd.MuxID)
}

func TestParseModuleJSONSet(t *testing.T) {
	var buf []byte
	buf = append(buf, encodeHeader(OpModule, 0)...)
	sub := uint32(ModuleJSON)<<16 | 0x0000
	subBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(subBytes, sub)
	buf = append(buf, subBytes...)
	buf = append(buf, encodeStr2("doc")...)
	buf = append(buf, encodeStr2("$.a")...)
	buf = append(buf, encodeStr4(`{"a":1}`)...)
	buf = append(buf, 0)

	cmd, err := NewParser(buf).Parse()
	require.NoError(t, err)
	assert.Equal(t, ModuleJSON, cmd.ModuleID)
	assert.EqualValues(t, 0, cmd.CommandID)
	require.Equal(t, 3, cmd.Argc)
	assert.Equal(t, "doc", string(cmd.Args[0].Data))
	assert.Equal(t, `{"a":1}`, string(cmd.Args[2].Data))
}

func TestParseRESPPassthrough(t *testing.T) {
	payload := "*1\r\n$4\r\nPING\r\n"
	var buf []byte
	buf = append(buf, encodeHeader(OpRESPPassthrough, 0)...)
	lenBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBytes, uint32(len(payload)))
	buf = append(buf, lenBytes...)
	buf = append(buf, payload...)

	cmd, err := NewParser(buf).Parse()
	require.NoError(t, err)
	assert.Equal(t, payload, string(cmd.RESPData))
}

func TestSerializeGetRoundTrip(t *testing.T) {
	cmd := &Command{Opcode: OpGet, MuxID: 3}
	cmd.addArg(Arg{Data: []byte("mykey")})

	out, err := Serialize(cmd)
	require.NoError(t, err)

	parsed, err := NewParser(out).Parse()
	require.NoError(t, err)
	assert.Equal(t, OpGet, parsed.Opcode)
	assert.EqualValues(t, 3, parsed.MuxID)
	assert.Equal(t, "mykey", string(parsed.Args[0].Data))
}

func TestSerializeMSetRequiresEvenArgs(t *testing.T) {
	cmd := &Command{Opcode: OpMSet, MuxID: 0}
	cmd.addArg(Arg{Data: []byte("k")})
	_, err := Serialize(cmd)
	assert.Error(t, err)
}

func TestOpcodeNameKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "GEOADD", OpcodeName(OpGeoAdd))
	assert.Equal(t, "UNKNOWN", OpcodeName(0x7777))
}

func TestSerializeMSetRoundTrip(t *testing.T) {
	cmd := &Command{Opcode: OpMSet, MuxID: 1}
	cmd.addArg(Arg{Data: []byte("k1")})
	cmd.addArg(Arg{Data: []byte("v1")})
	cmd.addArg(Arg{Data: []byte("k2")})
	cmd.addArg(Arg{Data: []byte("v2")})

	out, err := Serialize(cmd)
	require.NoError(t, err)

	parsed, err := NewParser(out).Parse()
	require.NoError(t, err)
	assert.Equal(t, 4, parsed.Argc)
	assert.Equal(t, "k1", string(parsed.Args[0].Data))
	assert.Equal(t, "v1", string(parsed.Args[1].Data))
	assert.Equal(t, "k2", string(parsed.Args[2].Data))
	assert.Equal(t, "v2", string(parsed.Args[3].Data))
}

func TestSerializeZAddRoundTrip(t *testing.T) {
	// score fields are not kept on Command, so only the key plus the
	// member names are expected to survive the round trip.
	cmd := &Command{Opcode: OpZAdd, MuxID: 0}
	cmd.addArg(Arg{Data: []byte("myset")})
	cmd.addArg(Arg{Data: []byte("member1")})
	cmd.addArg(Arg{Data: []byte("member2")})

	out, err := Serialize(cmd)
	require.NoError(t, err)

	parsed, err := NewParser(out).Parse()
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.Argc)
	assert.Equal(t, "myset", string(parsed.Args[0].Data))
	assert.Equal(t, "member1", string(parsed.Args[1].Data))
	assert.Equal(t, "member2", string(parsed.Args[2].Data))
}

func TestSerializeHSetRoundTripAndEvenArgsValidation(t *testing.T) {
	cmd := &Command{Opcode: OpHSet, MuxID: 0}
	cmd.addArg(Arg{Data: []byte("h")})
	cmd.addArg(Arg{Data: []byte("f1")})
	cmd.addArg(Arg{Data: []byte("v1")})

	out, err := Serialize(cmd)
	require.NoError(t, err)

	parsed, err := NewParser(out).Parse()
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.Argc)
	assert.Equal(t, "f1", string(parsed.Args[1].Data))
	assert.Equal(t, "v1", string(parsed.Args[2].Data))

	bad := &Command{Opcode: OpHSet, MuxID: 0}
	bad.addArg(Arg{Data: []byte("h")})
	bad.addArg(Arg{Data: []byte("f1")})
	_, err = Serialize(bad)
	assert.Error(t, err)
}

func TestSerializeLSetRoundTripAcrossSkippedField(t *testing.T) {
	cmd := &Command{Opcode: OpLSet, MuxID: 0}
	cmd.addArg(Arg{Data: []byte("mylist")})
	cmd.addArg(Arg{Data: []byte("newval")})

	out, err := Serialize(cmd)
	require.NoError(t, err)

	parsed, err := NewParser(out).Parse()
	require.NoError(t, err)
	assert.Equal(t, 2, parsed.Argc)
	assert.Equal(t, "mylist", string(parsed.Args[0].Data))
	assert.Equal(t, "newval", string(parsed.Args[1].Data))
}

func TestSerializeEvalRoundTripWithoutOptionalArg(t *testing.T) {
	cmd := &Command{Opcode: OpEval, MuxID: 0}
	cmd.addArg(Arg{Data: []byte("return 1")})
	cmd.addArg(Arg{Data: []byte("key1")})
	cmd.addArg(Arg{Data: []byte("key2")})

	out, err := Serialize(cmd)
	require.NoError(t, err)

	parsed, err := NewParser(out).Parse()
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.Argc)
	assert.Equal(t, "key1", string(parsed.Args[1].Data))
	assert.Equal(t, "key2", string(parsed.Args[2].Data))
}

func TestSerializeUnknownOpcodeErrors(t *testing.T) {
	cmd := &Command{Opcode: 0x7777, MuxID: 0}
	_, err := Serialize(cmd)
	assert.Error(t, err)
}
