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

package respd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetd/respb/kvstore"
	"github.com/packetd/respb/protocol/role"
	"github.com/packetd/respb/respb"
)

func newTestServer(onRoundTrip RoundTripFunc) *Server {
	return &Server{store: kvstore.New(), onRoundTrip: onRoundTrip}
}

// readResponse keeps reading conn until buf holds one complete RESPB
// response frame.
func readResponse(t *testing.T, conn net.Conn) *respb.Response {
	t.Helper()

	var buf []byte
	tmp := make([]byte, 512)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		n, err := conn.Read(tmp)
		require.NoError(t, err)
		buf = append(buf, tmp[:n]...)

		resp, ok, perr := respb.ParseResponse(buf)
		require.NoError(t, perr)
		if ok {
			return resp
		}
	}
	t.Fatal("no complete response before deadline")
	return nil
}

func TestHandleRESPBConnSetGet(t *testing.T) {
	pairs := make(chan *role.Pair, 4)
	srv := newTestServer(func(p *role.Pair) { pairs <- p })

	client, server := net.Pipe()
	defer client.Close()
	go srv.handleRESPBConn(server)

	set := &respb.Command{Opcode: respb.OpSet, MuxID: 1}
	set.AddArg(respb.Arg{Data: []byte("greeting")})
	set.AddArg(respb.Arg{Data: []byte("hello")})
	frame, err := respb.Serialize(set)
	require.NoError(t, err)

	_, err = client.Write(frame)
	require.NoError(t, err)
	resp := readResponse(t, client)
	assert.Equal(t, respb.RespOK, resp.Opcode)
	assert.EqualValues(t, 1, resp.MuxID)

	get := &respb.Command{Opcode: respb.OpGet, MuxID: 2}
	get.AddArg(respb.Arg{Data: []byte("greeting")})
	frame, err = respb.Serialize(get)
	require.NoError(t, err)

	_, err = client.Write(frame)
	require.NoError(t, err)
	resp = readResponse(t, client)
	assert.Equal(t, respb.RespBulk, resp.Opcode)
	assert.EqualValues(t, 2, resp.MuxID)
	assert.Equal(t, "hello", string(resp.Bulk))

	for i := 0; i < 2; i++ {
		select {
		case pair := <-pairs:
			require.NotNil(t, pair.Request)
			require.NotNil(t, pair.Response)
		case <-time.After(time.Second):
			t.Fatal("roundtrip pair not published")
		}
	}
}

func TestHandleRESPConnSetGet(t *testing.T) {
	srv := newTestServer(nil)

	client, server := net.Pipe()
	defer client.Close()
	go srv.handleRESPConn(server)

	_, err := client.Write([]byte("*3\r\n$3\r\nSET\r\n$3\r\nfoo\r\n$3\r\nbar\r\n"))
	require.NoError(t, err)

	out := make([]byte, 64)
	client.SetReadDeadline(time.Now().Add(time.Second))
	n, err := client.Read(out)
	require.NoError(t, err)
	assert.Equal(t, "+OK\r\n", string(out[:n]))

	_, err = client.Write([]byte("*2\r\n$3\r\nGET\r\n$3\r\nfoo\r\n"))
	require.NoError(t, err)

	client.SetReadDeadline(time.Now().Add(time.Second))
	n, err = client.Read(out)
	require.NoError(t, err)
	assert.Equal(t, "$3\r\nbar\r\n", string(out[:n]))
}

func TestHandleRESPConnUnknownCommand(t *testing.T) {
	srv := newTestServer(nil)

	client, server := net.Pipe()
	defer client.Close()
	go srv.handleRESPConn(server)

	_, err := client.Write([]byte("*1\r\n$7\r\nNOTACMD\r\n"))
	require.NoError(t, err)

	out := make([]byte, 128)
	client.SetReadDeadline(time.Now().Add(time.Second))
	n, err := client.Read(out)
	require.NoError(t, err)
	assert.Equal(t, byte('-'), out[0])
	assert.Contains(t, string(out[:n]), "unknown command")
}
