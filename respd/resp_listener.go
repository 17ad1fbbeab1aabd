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
	"strconv"
	"time"

	"github.com/packetd/respb/kvstore"
	"github.com/packetd/respb/logger"
	"github.com/packetd/respb/protocol/role"
	"github.com/packetd/respb/resp"
	"github.com/packetd/respb/respb"
)

func (s *Server) serveRESP(l net.Listener) {
	acceptLoop(l, s.handleRESPConn)
}

func (s *Server) handleRESPConn(conn net.Conn) {
	blockSize := s.conf.RESP.ReadBlockSize()
	buf := make([]byte, 0, blockSize)
	tmp := make([]byte, blockSize)
	client := resp.NewClient(nil)
	client.AuthRequired = s.conf.RESP.AuthRequired()
	matcher := role.NewSingleMatcher()

	for {
		n, err := conn.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)
		}
		if err != nil {
			return
		}

		for {
			client.Reset(buf)
			argv, perr := client.ParseCommand()
			if perr != nil {
				if perr == resp.ErrIncomplete {
					break
				}
				logger.Errorf("respd: RESP parse error: %v", perr)
				return
			}

			buf = buf[client.Pos():]
			if len(argv) == 0 {
				continue
			}

			name := resp.CommandName(argv)
			start := time.Now()
			reply := s.execCommand(name, argv[1:])
			s.recordCommand(name, time.Since(start))

			if _, werr := conn.Write(serializeRESPReply(reply)); werr != nil {
				return
			}
			s.publish(matcher, argv, reply)
		}
	}
}

func (s *Server) execCommand(name string, args [][]byte) *kvstore.Reply {
	opcode, ok := respb.OpcodeByName(name)
	if !ok {
		return &kvstore.Reply{
			Kind: kvstore.ReplyError,
			Bulk: []byte("ERR unknown command '" + name + "'"),
		}
	}
	return s.store.Execute(opcode, args)
}

// serializeRESPReply renders a kvstore.Reply using RESP's own simple
// string / error / integer / bulk string / array framing.
func serializeRESPReply(r *kvstore.Reply) []byte {
	switch r.Kind {
	case kvstore.ReplyOK:
		return []byte("+OK\r\n")
	case kvstore.ReplyError:
		return append(append([]byte("-"), r.Bulk...), '\r', '\n')
	case kvstore.ReplyInt:
		return []byte(":" + strconv.FormatInt(r.Int, 10) + "\r\n")
	case kvstore.ReplyNullBulk:
		return []byte("$-1\r\n")
	case kvstore.ReplyBulk:
		out := []byte("$" + strconv.Itoa(len(r.Bulk)) + "\r\n")
		out = append(out, r.Bulk...)
		return append(out, '\r', '\n')
	case kvstore.ReplyArray:
		out := []byte("*" + strconv.Itoa(len(r.Array)) + "\r\n")
		for _, elem := range r.Array {
			if elem == nil {
				out = append(out, "$-1\r\n"...)
				continue
			}
			out = append(out, "$"+strconv.Itoa(len(elem))+"\r\n"...)
			out = append(out, elem...)
			out = append(out, '\r', '\n')
		}
		return out
	default:
		return []byte("-ERR internal error\r\n")
	}
}
