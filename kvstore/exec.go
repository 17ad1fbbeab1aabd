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

package kvstore

import (
	"strconv"
	"time"

	"github.com/packetd/respb/respb"
)

// Execute runs one command identified by a RESPB opcode against the store.
// args holds the command's logical arguments in the same flat order respb
// and resp both expose them in (the command name itself is not an arg; it
// is already folded into opcode). Unrecognized or unexecuted opcodes (see
// package doc) return a RESPB error reply rather than panicking or being
// silently ignored.
func (s *Store) Execute(opcode uint16, args [][]byte) *Reply {
	switch opcode {
	// -- strings --
	case respb.OpGet:
		return s.get(args)
	case respb.OpSet:
		return s.set(args)
	case respb.OpAppend:
		return s.appendStr(args)
	case respb.OpIncr:
		return s.incrBy(args, 1)
	case respb.OpDecr:
		return s.incrBy(args, -1)
	case respb.OpIncrBy:
		return s.incrByArg(args, 1)
	case respb.OpDecrBy:
		return s.incrByArg(args, -1)
	case respb.OpMGet:
		return s.mget(args)
	case respb.OpMSet:
		return s.mset(args)
	case respb.OpSetNX:
		return s.setnx(args)
	case respb.OpStrlen:
		return s.strlen(args)
	case respb.OpGetDel:
		return s.getdel(args)

	// -- lists --
	case respb.OpLPush:
		return s.push(args, true)
	case respb.OpRPush:
		return s.push(args, false)
	case respb.OpLPop:
		return s.pop(args, true)
	case respb.OpRPop:
		return s.pop(args, false)
	case respb.OpLLen:
		return s.llen(args)
	case respb.OpLRange:
		return s.lrange(args)

	// -- hashes --
	case respb.OpHSet:
		return s.hset(args)
	case respb.OpHGet:
		return s.hget(args)
	case respb.OpHMGet:
		return s.hmget(args)
	case respb.OpHGetAll:
		return s.hgetall(args)
	case respb.OpHDel:
		return s.hdel(args)
	case respb.OpHExists:
		return s.hexists(args)
	case respb.OpHLen:
		return s.hlen(args)
	case respb.OpHKeys:
		return s.hkeys(args)
	case respb.OpHVals:
		return s.hvals(args)

	// -- sets --
	case respb.OpSAdd:
		return s.sadd(args)
	case respb.OpSRem:
		return s.srem(args)
	case respb.OpSMembers:
		return s.smembers(args)
	case respb.OpSIsMember:
		return s.sismember(args)
	case respb.OpSCard:
		return s.scard(args)

	// -- sorted sets --
	case respb.OpZAdd:
		return s.zadd(args)
	case respb.OpZScore:
		return s.zscore(args)
	case respb.OpZCard:
		return s.zcard(args)
	case respb.OpZRem:
		return s.zrem(args)
	case respb.OpZRange:
		return s.zrange(args)

	// -- generic key / TTL --
	case respb.OpDel, respb.OpUnlink:
		return s.del(args)
	case respb.OpExists:
		return s.exists(args)
	case respb.OpExpire:
		return s.expire(args, time.Second)
	case respb.OpPExpire:
		return s.expire(args, time.Millisecond)
	case respb.OpTTL:
		return s.ttl(args, time.Second)
	case respb.OpPTTL:
		return s.ttl(args, time.Millisecond)
	case respb.OpPersist:
		return s.persist(args)
	case respb.OpType:
		return s.typeOf(args)

	// -- server / connection --
	case respb.OpPing:
		return &Reply{Kind: ReplyBulk, Bulk: []byte("PONG")}
	case respb.OpDBSize:
		return intReply(int64(s.DBSize()))
	case respb.OpFlushDB, respb.OpFlushAll:
		s.FlushAll()
		return ok()

	default:
		return errNotExecuted
	}
}

func parseInt(b []byte) (int64, bool) {
	v, err := strconv.ParseInt(string(b), 10, 64)
	return v, err == nil
}

func parseFloat(b []byte) (float64, bool) {
	v, err := strconv.ParseFloat(string(b), 64)
	return v, err == nil
}
