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

// opcodeNames names every request opcode in the catalogue. Unlike the
// reference implementation's partial name table, every entry here is
// named: the name is also what drives shapeTable's fallback population
// (see shapes.go's init), so an opcode missing from this map would
// silently have no shape at all.
var opcodeNames = map[uint16]string{
	OpGet:         "GET",
	OpSet:         "SET",
	OpAppend:      "APPEND",
	OpDecr:        "DECR",
	OpDecrBy:      "DECRBY",
	OpGetDel:      "GETDEL",
	OpGetEx:       "GETEX",
	OpGetRange:    "GETRANGE",
	OpGetSet:      "GETSET",
	OpIncr:        "INCR",
	OpIncrBy:      "INCRBY",
	OpIncrByFloat: "INCRBYFLOAT",
	OpMGet:        "MGET",
	OpMSet:        "MSET",
	OpMSetNX:      "MSETNX",
	OpPSetEx:      "PSETEX",
	OpSetEx:       "SETEX",
	OpSetNX:       "SETNX",
	OpSetRange:    "SETRANGE",
	OpStrlen:      "STRLEN",
	OpSubstr:      "SUBSTR",
	OpLCS:         "LCS",
	OpDelIfEq:     "DELIFEQ",

	OpLPush:      "LPUSH",
	OpRPush:      "RPUSH",
	OpLPop:       "LPOP",
	OpRPop:       "RPOP",
	OpLLen:       "LLEN",
	OpLRange:     "LRANGE",
	OpLIndex:     "LINDEX",
	OpLSet:       "LSET",
	OpLRem:       "LREM",
	OpLTrim:      "LTRIM",
	OpLInsert:    "LINSERT",
	OpLPushX:     "LPUSHX",
	OpRPushX:     "RPUSHX",
	OpRPopLPush:  "RPOPLPUSH",
	OpLMove:      "LMOVE",
	OpLMPop:      "LMPOP",
	OpLPos:       "LPOS",
	OpBLPop:      "BLPOP",
	OpBRPop:      "BRPOP",
	OpBRPopLPush: "BRPOPLPUSH",
	OpBLMove:     "BLMOVE",
	OpBLMPop:     "BLMPOP",

	OpSAdd:        "SADD",
	OpSRem:        "SREM",
	OpSMembers:    "SMEMBERS",
	OpSIsMember:   "SISMEMBER",
	OpSCard:       "SCARD",
	OpSPop:        "SPOP",
	OpSRandMember: "SRANDMEMBER",
	OpSInter:      "SINTER",
	OpSInterStore: "SINTERSTORE",
	OpSUnion:      "SUNION",
	OpSUnionStore: "SUNIONSTORE",
	OpSDiff:       "SDIFF",
	OpSDiffStore:  "SDIFFSTORE",
	OpSMove:       "SMOVE",
	OpSScan:       "SSCAN",
	OpSInterCard:  "SINTERCARD",
	OpSMIsMember:  "SMISMEMBER",

	OpZAdd:             "ZADD",
	OpZRem:             "ZREM",
	OpZCard:            "ZCARD",
	OpZCount:           "ZCOUNT",
	OpZIncrBy:          "ZINCRBY",
	OpZRange:           "ZRANGE",
	OpZRangeByScore:    "ZRANGEBYSCORE",
	OpZRangeByLex:      "ZRANGEBYLEX",
	OpZRevRange:        "ZREVRANGE",
	OpZRevRangeByScore: "ZREVRANGEBYSCORE",
	OpZRevRangeByLex:   "ZREVRANGEBYLEX",
	OpZRank:            "ZRANK",
	OpZRevRank:         "ZREVRANK",
	OpZScore:           "ZSCORE",
	OpZMScore:          "ZMSCORE",
	OpZRemRangeByRank:  "ZREMRANGEBYRANK",
	OpZRemRangeByScore: "ZREMRANGEBYSCORE",
	OpZRemRangeByLex:   "ZREMRANGEBYLEX",
	OpZLexCount:        "ZLEXCOUNT",
	OpZPopMin:          "ZPOPMIN",
	OpZPopMax:          "ZPOPMAX",
	OpBZPopMin:         "BZPOPMIN",
	OpBZPopMax:         "BZPOPMAX",
	OpZRandMember:      "ZRANDMEMBER",
	OpZDiff:            "ZDIFF",
	OpZDiffStore:       "ZDIFFSTORE",
	OpZInter:           "ZINTER",
	OpZInterStore:      "ZINTERSTORE",
	OpZInterCard:       "ZINTERCARD",
	OpZUnion:           "ZUNION",
	OpZUnionStore:      "ZUNIONSTORE",
	OpZScan:            "ZSCAN",
	OpZMPop:            "ZMPOP",
	OpBZMPop:           "BZMPOP",
	OpZRangeStore:      "ZRANGESTORE",

	OpHSet:         "HSET",
	OpHGet:         "HGET",
	OpHMSet:        "HMSET",
	OpHMGet:        "HMGET",
	OpHGetAll:      "HGETALL",
	OpHDel:         "HDEL",
	OpHExists:      "HEXISTS",
	OpHIncrBy:      "HINCRBY",
	OpHIncrByFloat: "HINCRBYFLOAT",
	OpHKeys:        "HKEYS",
	OpHVals:        "HVALS",
	OpHLen:         "HLEN",
	OpHSetNX:       "HSETNX",
	OpHStrlen:      "HSTRLEN",
	OpHScan:        "HSCAN",
	OpHRandField:   "HRANDFIELD",
	OpHExpire:      "HEXPIRE",
	OpHExpireAt:    "HEXPIREAT",
	OpHExpireTime:  "HEXPIRETIME",
	OpHPExpire:     "HPEXPIRE",
	OpHPExpireAt:   "HPEXPIREAT",
	OpHPExpireTime: "HPEXPIRETIME",
	OpHPTTL:        "HPTTL",
	OpHTTL:         "HTTL",
	OpHPersist:     "HPERSIST",
	OpHGetEx:       "HGETEX",
	OpHSetEx:       "HSETEX",

	OpSetBit:     "SETBIT",
	OpGetBit:     "GETBIT",
	OpBitCount:   "BITCOUNT",
	OpBitPos:     "BITPOS",
	OpBitOp:      "BITOP",
	OpBitField:   "BITFIELD",
	OpBitFieldRO: "BITFIELD_RO",

	OpPFAdd:      "PFADD",
	OpPFCount:    "PFCOUNT",
	OpPFMerge:    "PFMERGE",
	OpPFDebug:    "PFDEBUG",
	OpPFSelfTest: "PFSELFTEST",

	OpGeoAdd:              "GEOADD",
	OpGeoDist:             "GEODIST",
	OpGeoHash:             "GEOHASH",
	OpGeoPos:              "GEOPOS",
	OpGeoRadius:           "GEORADIUS",
	OpGeoRadiusByMember:   "GEORADIUSBYMEMBER",
	OpGeoRadiusRO:         "GEORADIUS_RO",
	OpGeoRadiusByMemberRO: "GEORADIUSBYMEMBER_RO",
	OpGeoSearch:           "GEOSEARCH",
	OpGeoSearchStore:      "GEOSEARCHSTORE",

	OpXAdd:       "XADD",
	OpXLen:       "XLEN",
	OpXRange:     "XRANGE",
	OpXRevRange:  "XREVRANGE",
	OpXRead:      "XREAD",
	OpXReadGroup: "XREADGROUP",
	OpXDel:       "XDEL",
	OpXTrim:      "XTRIM",
	OpXAck:       "XACK",
	OpXPending:   "XPENDING",
	OpXClaim:     "XCLAIM",
	OpXAutoClaim: "XAUTOCLAIM",
	OpXInfo:      "XINFO",
	OpXGroup:     "XGROUP",
	OpXSetID:     "XSETID",

	OpPublish:      "PUBLISH",
	OpSubscribe:    "SUBSCRIBE",
	OpUnsubscribe:  "UNSUBSCRIBE",
	OpPSubscribe:   "PSUBSCRIBE",
	OpPUnsubscribe: "PUNSUBSCRIBE",
	OpPubSub:       "PUBSUB",
	OpSPublish:     "SPUBLISH",
	OpSSubscribe:   "SSUBSCRIBE",
	OpSUnsubscribe: "SUNSUBSCRIBE",

	OpMulti:   "MULTI",
	OpExec:    "EXEC",
	OpDiscard: "DISCARD",
	OpWatch:   "WATCH",
	OpUnwatch: "UNWATCH",

	OpEval:      "EVAL",
	OpEvalSHA:   "EVALSHA",
	OpEvalRO:    "EVAL_RO",
	OpEvalSHARO: "EVALSHA_RO",
	OpScript:    "SCRIPT",
	OpFCall:     "FCALL",
	OpFCallRO:   "FCALL_RO",
	OpFunction:  "FUNCTION",

	OpDel:          "DEL",
	OpUnlink:       "UNLINK",
	OpExists:       "EXISTS",
	OpExpire:       "EXPIRE",
	OpExpireAt:     "EXPIREAT",
	OpExpireTime:   "EXPIRETIME",
	OpPExpire:      "PEXPIRE",
	OpPExpireAt:    "PEXPIREAT",
	OpPExpireTime:  "PEXPIRETIME",
	OpTTL:          "TTL",
	OpPTTL:         "PTTL",
	OpPersist:      "PERSIST",
	OpKeys:         "KEYS",
	OpScan:         "SCAN",
	OpRandomKey:    "RANDOMKEY",
	OpRename:       "RENAME",
	OpRenameNX:     "RENAMENX",
	OpType:         "TYPE",
	OpDump:         "DUMP",
	OpRestore:      "RESTORE",
	OpMigrate:      "MIGRATE",
	OpMove:         "MOVE",
	OpCopy:         "COPY",
	OpSort:         "SORT",
	OpSortRO:       "SORT_RO",
	OpTouch:        "TOUCH",
	OpObject:       "OBJECT",
	OpWait:         "WAIT",
	OpWaitAOF:      "WAITAOF",

	OpPing:   "PING",
	OpEcho:   "ECHO",
	OpAuth:   "AUTH",
	OpSelect: "SELECT",
	OpQuit:   "QUIT",
	OpHello:  "HELLO",
	OpReset:  "RESET",
	OpClient: "CLIENT",

	OpCluster:   "CLUSTER",
	OpReadOnly:  "READONLY",
	OpReadWrite: "READWRITE",
	OpAsking:    "ASKING",

	OpDBSize:        "DBSIZE",
	OpFlushDB:       "FLUSHDB",
	OpFlushAll:      "FLUSHALL",
	OpSave:          "SAVE",
	OpBGSave:        "BGSAVE",
	OpBGRewriteAOF:  "BGREWRITEAOF",
	OpLastSave:      "LASTSAVE",
	OpShutdown:      "SHUTDOWN",
	OpInfo:          "INFO",
	OpConfig:        "CONFIG",
	OpCommand:       "COMMAND",
	OpTime:          "TIME",
	OpRole:          "ROLE",
	OpReplicaOf:     "REPLICAOF",
	OpSlaveOf:       "SLAVEOF",
	OpMonitor:       "MONITOR",
	OpDebug:         "DEBUG",
	OpSync:          "SYNC",
	OpPSync:         "PSYNC",
	OpReplConf:      "REPLCONF",
	OpSlowLog:       "SLOWLOG",
	OpLatency:       "LATENCY",
	OpMemory:        "MEMORY",
	OpModuleCmd:     "MODULE_CMD",
	OpACL:           "ACL",
	OpFailover:      "FAILOVER",
	OpSwapDB:        "SWAPDB",
	OpLolwut:        "LOLWUT",
	OpRestoreAsking: "RESTORE-ASKING",
	OpCommandLog:    "COMMANDLOG",

	OpModule:          "MODULE",
	OpRESPPassthrough: "RESP_PASSTHROUGH",
}

// OpcodeName returns the mnemonic for op, or "UNKNOWN" if it is not in the
// catalogue at all.
func OpcodeName(op uint16) string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

var opcodesByName map[string]uint16

func init() {
	opcodesByName = make(map[string]uint16, len(opcodeNames))
	for op, name := range opcodeNames {
		opcodesByName[name] = op
	}
}

// OpcodeByName looks up the opcode for a RESP command name (case
// sensitive; callers should upper-case first, as RESP command names
// arrive in whatever case the client sent).
func OpcodeByName(name string) (uint16, bool) {
	op, ok := opcodesByName[name]
	return op, ok
}
