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
	"time"

	"github.com/packetd/respb/kvstore"
	"github.com/packetd/respb/logger"
	"github.com/packetd/respb/protocol/role"
	"github.com/packetd/respb/respb"
)

func (s *Server) serveRESPB(l net.Listener) {
	acceptLoop(l, s.handleRESPBConn)
}

// muxMatcherSize bounds how many unanswered requests a connection's
// matcher retains before evicting the oldest.
const muxMatcherSize = 128

func (s *Server) handleRESPBConn(conn net.Conn) {
	blockSize := s.conf.RESPB.ReadBlockSize()
	buf := make([]byte, 0, blockSize)
	tmp := make([]byte, blockSize)
	matcher := role.NewListMatcher(muxMatcherSize, func(req, rsp *role.Object) bool {
		return req.Obj.(*respb.Command).MuxID == rsp.Obj.(*respb.Response).MuxID
	})

	for {
		n, err := conn.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)
		}
		if err != nil {
			return
		}

		for {
			p := respb.NewParser(buf)
			cmd, perr := p.Parse()
			if perr != nil {
				if perr == respb.ErrIncomplete {
					break
				}
				logger.Errorf("respd: RESPB parse error: %v", perr)
				return
			}

			buf = buf[p.Pos():]

			args := make([][]byte, cmd.Argc)
			for i := 0; i < cmd.Argc; i++ {
				args[i] = cmd.Args[i].Data
			}

			start := time.Now()
			reply := s.store.Execute(cmd.Opcode, args)
			s.recordCommand(respb.OpcodeName(cmd.Opcode), time.Since(start))
			resp := replyToResponse(cmd.MuxID, reply)

			out, serr := respb.SerializeResponse(resp)
			if serr != nil {
				logger.Errorf("respd: RESPB serialize error: %v", serr)
				return
			}
			if _, werr := conn.Write(out); werr != nil {
				return
			}
			s.publish(matcher, cmd, resp)
		}
	}
}

// replyToResponse maps a wire-agnostic kvstore.Reply onto a concrete RESPB
// response opcode and payload.
func replyToResponse(muxID uint16, r *kvstore.Reply) *respb.Response {
	resp := &respb.Response{MuxID: muxID}

	switch r.Kind {
	case kvstore.ReplyOK:
		resp.Opcode = respb.RespOK
	case kvstore.ReplyError:
		resp.Opcode = respb.RespError
		resp.Bulk = r.Bulk
	case kvstore.ReplyInt:
		resp.Opcode = respb.RespInt
		resp.Int = r.Int
	case kvstore.ReplyNullBulk:
		resp.Opcode = respb.RespNull
	case kvstore.ReplyBulk:
		resp.Opcode = respb.RespBulk
		resp.Bulk = r.Bulk
	case kvstore.ReplyArray:
		resp.Opcode = respb.RespArray
		resp.Array = r.Array
	default:
		resp.Opcode = respb.RespError
		resp.Bulk = []byte("ERR internal error")
	}
	return resp
}
