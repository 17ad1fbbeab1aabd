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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
	}{
		{name: "ok", resp: &Response{Opcode: RespOK, MuxID: 1}},
		{name: "null", resp: &Response{Opcode: RespNull, MuxID: 2}},
		{name: "int", resp: &Response{Opcode: RespInt, MuxID: 3, Int: -42}},
		{name: "bulk", resp: &Response{Opcode: RespBulk, MuxID: 4, Bulk: []byte("value")}},
		{name: "bulk absent", resp: &Response{Opcode: RespBulk, MuxID: 5}},
		{name: "error", resp: &Response{Opcode: RespError, MuxID: 6, Bulk: []byte("ERR nope")}},
		{
			name: "array",
			resp: &Response{Opcode: RespArray, MuxID: 7, Array: [][]byte{[]byte("a"), []byte("bb")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := SerializeResponse(tt.resp)
			require.NoError(t, err)

			parsed, ok, err := ParseResponse(out)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.resp.Opcode, parsed.Opcode)
			assert.Equal(t, tt.resp.MuxID, parsed.MuxID)
			assert.Equal(t, tt.resp.Int, parsed.Int)
			assert.Equal(t, tt.resp.Bulk, parsed.Bulk)
			assert.Equal(t, len(tt.resp.Array), len(parsed.Array))
			for i := range tt.resp.Array {
				assert.Equal(t, tt.resp.Array[i], parsed.Array[i])
			}
		})
	}
}

func TestParseResponseIncompletePrefixes(t *testing.T) {
	full, err := SerializeResponse(&Response{Opcode: RespBulk, MuxID: 9, Bulk: []byte("payload")})
	require.NoError(t, err)

	for n := 0; n < len(full); n++ {
		_, ok, perr := ParseResponse(full[:n])
		assert.NoError(t, perr, "prefix length %d", n)
		assert.False(t, ok, "prefix length %d", n)
	}
}

func TestSerializeResponseUnknownOpcode(t *testing.T) {
	_, err := SerializeResponse(&Response{Opcode: 0x1234})
	assert.Error(t, err)
}

func TestParseResponseUnknownOpcode(t *testing.T) {
	buf := []byte{0x12, 0x34, 0x00, 0x00}
	_, _, err := ParseResponse(buf)
	assert.Error(t, err)
}
