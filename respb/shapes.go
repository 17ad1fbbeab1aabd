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

// shape decodes one opcode's payload into cmd, given a Parser already
// positioned just past the 4-byte frame header. It reports false when the
// buffer does not yet hold enough bytes to finish (incomplete, not a
// malformed frame); the parser's position is meaningless on that path and
// the caller resets it.
//
// Declared argument counts beyond MaxArgs are truncated: addArg stops
// storing (and Command.Argc stops growing) past MaxArgs, but every shape
// still reads every declared element off the wire so the frame boundary
// stays correct for whatever follows.
type shape func(p *Parser, cmd *Command) bool

func (cmd *Command) addArg(a Arg) {
	if cmd.Argc < MaxArgs {
		cmd.Args[cmd.Argc] = a
		cmd.Argc++
	}
}

// AddArg appends a to cmd's argument list, silently dropping it once
// Argc reaches MaxArgs. Exported for callers that build Commands outside
// the parser, such as workload.ConvertRESPToRESPB.
func (cmd *Command) AddArg(a Arg) {
	cmd.addArg(a)
}

// noPayload matches opcodes with nothing after the frame header (PING,
// MULTI, EXEC, ...).
func noPayload(p *Parser, cmd *Command) bool {
	return true
}

// str2 reads one 2-byte length-prefixed string and appends it as an arg.
func str2(p *Parser, cmd *Command) bool {
	a, ok := p.readStr2()
	if !ok {
		return false
	}
	cmd.addArg(a)
	return true
}

// str4 reads one 4-byte length-prefixed string and appends it as an arg.
func str4(p *Parser, cmd *Command) bool {
	a, ok := p.readStr4()
	if !ok {
		return false
	}
	cmd.addArg(a)
	return true
}

// skipFixed returns a shape step that discards n fixed bytes without
// producing an arg (used for fields the codec frames but a parse-only
// consumer has no use for, e.g. TTLs serialized as raw integers).
func skipFixed(n int) shape {
	return func(p *Parser, cmd *Command) bool {
		return p.skip(n)
	}
}

// flagGatedSkip reads a 1-byte flag field, then discards n further bytes
// only if any bit in mask is set (e.g. GETEX's optional expiry block,
// gated by its own flags byte).
func flagGatedSkip(mask byte, n int) shape {
	return func(p *Parser, cmd *Command) bool {
		if !p.checkAvail(1) {
			return false
		}
		flags := p.readByte()
		if flags&mask == 0 {
			return true
		}
		return p.skip(n)
	}
}

// sequence runs a fixed list of shape steps in order.
func sequence(steps ...shape) shape {
	return func(p *Parser, cmd *Command) bool {
		for _, s := range steps {
			if !s(p, cmd) {
				return false
			}
		}
		return true
	}
}

// countPrefixedGroup reads a 2-byte element count, then runs inner once
// per declared element (not per byte) regardless of MaxArgs, so every
// byte the sender declared is consumed even once the arg slots fill up.
func countPrefixedGroup(inner ...shape) shape {
	body := sequence(inner...)
	return func(p *Parser, cmd *Command) bool {
		if !p.checkAvail(2) {
			return false
		}
		count := int(p.readU16())
		for i := 0; i < count; i++ {
			if !body(p, cmd) {
				return false
			}
		}
		return true
	}
}

// countPrefixedGroup32 is countPrefixedGroup with a 4-byte element count.
// No shapeTable entry uses it.
func countPrefixedGroup32(inner ...shape) shape {
	body := sequence(inner...)
	return func(p *Parser, cmd *Command) bool {
		if !p.checkAvail(4) {
			return false
		}
		count := int(p.readU32())
		for i := 0; i < count; i++ {
			if !body(p, cmd) {
				return false
			}
		}
		return true
	}
}

// conditionalCountedStr2 reads a 2-byte count, then reads one further str2
// field only if that count is nonzero. It mirrors the stream commands'
// layout (XADD, XDEL, XACK, XCLAIM, ...), which frame a field count ahead
// of a single representative field rather than the full field list.
func conditionalCountedStr2(p *Parser, cmd *Command) bool {
	if !p.checkAvail(2) {
		return false
	}
	count := p.readU16()
	if count == 0 {
		return true
	}
	return str2(p, cmd)
}

// optionalStr2 reads one str2 field if at least 2 bytes remain (a length
// prefix of zero length still counts as present), used where a trailing
// argument is genuinely optional rather than gated by a flag or count.
func optionalStr2(p *Parser, cmd *Command) bool {
	if !p.checkAvail(2) {
		return true
	}
	return str2(p, cmd)
}

// countPrefixedStr2Keys is the generic "u16 count, then that many str2
// fields" shape shared by MGET/DEL/EXISTS/TOUCH-style commands.
var countPrefixedStr2Keys = countPrefixedGroup(str2)

// fallback is the generic shape for opcodes with no dedicated layout in
// the catalogue below: a single key followed by nothing else. The
// original parser treats most of its long tail of administrative and
// rarely-exercised commands this way ("simplified, just store key").
var fallback = str2

var shapeTable = map[uint16]shape{
	// String Operations
	OpGet:         str2,
	OpSet:         sequence(str2, str4, skipFixed(9)), // [1B flags][8B expiry], not round-tripped (serializer synthesizes zero defaults)
	OpAppend:      sequence(str2, str4),
	OpDecr:        str2,
	OpDecrBy:      sequence(str2, skipFixed(8)),
	OpGetDel:      str2,
	OpGetEx:       sequence(str2, flagGatedSkip(0xFF, 8)),
	OpGetRange:    sequence(str2, skipFixed(16)),
	OpGetSet:      sequence(str2, str4),
	OpIncr:        str2,
	OpIncrBy:      sequence(str2, skipFixed(8)),
	OpIncrByFloat: sequence(str2, skipFixed(8)),
	OpMGet:        countPrefixedStr2Keys,
	OpMSet:        countPrefixedGroup(str2, str4),
	OpMSetNX:      countPrefixedGroup(str2, str4),
	OpPSetEx:      sequence(str2, skipFixed(8), str4),
	OpSetEx:       sequence(str2, skipFixed(8), str4),
	OpSetNX:       sequence(str2, str4),
	OpSetRange:    sequence(str2, skipFixed(8), str4),
	OpStrlen:      str2,
	OpSubstr:      sequence(str2, skipFixed(16)),
	OpLCS:         sequence(str2, str2),
	OpDelIfEq:     sequence(str2, str4),

	// List Operations
	OpLPush:      sequence(str2, countPrefixedStr2Keys),
	OpRPush:      sequence(str2, countPrefixedStr2Keys),
	OpLPop:       str2,
	OpRPop:       str2,
	OpLLen:       str2,
	OpLRange:     sequence(str2, skipFixed(16)),
	OpLIndex:     sequence(str2, skipFixed(8)),
	OpLSet:       sequence(str2, skipFixed(8), str2),
	OpLRem:       sequence(str2, skipFixed(8), str2),
	OpLTrim:      sequence(str2, skipFixed(16)),
	OpLInsert:    sequence(str2, skipFixed(1), str2, str2),
	OpLPushX:     sequence(str2, countPrefixedStr2Keys),
	OpRPushX:     sequence(str2, countPrefixedStr2Keys),
	OpRPopLPush:  sequence(str2, str2),
	OpLMove:      sequence(str2, str2, skipFixed(2)),
	OpLMPop:      sequence(countPrefixedStr2Keys, skipFixed(1)),
	OpLPos:       sequence(str2, str2),
	OpBLPop:      sequence(countPrefixedStr2Keys, skipFixed(8)),
	OpBRPop:      sequence(countPrefixedStr2Keys, skipFixed(8)),
	OpBRPopLPush: sequence(str2, str2, skipFixed(8)),
	OpBLMove:     sequence(str2, str2, skipFixed(10)),
	OpBLMPop:     sequence(skipFixed(8), countPrefixedStr2Keys, skipFixed(1)),

	// Set Operations
	OpSAdd:        sequence(str2, countPrefixedStr2Keys),
	OpSRem:        sequence(str2, countPrefixedStr2Keys),
	OpSMembers:    str2,
	OpSIsMember:   sequence(str2, str2),
	OpSCard:       str2,
	OpSPop:        str2,
	OpSRandMember: str2,
	OpSInter:      countPrefixedStr2Keys,
	OpSInterStore: sequence(str2, countPrefixedStr2Keys),
	OpSUnion:      countPrefixedStr2Keys,
	OpSUnionStore: sequence(str2, countPrefixedStr2Keys),
	OpSDiff:       countPrefixedStr2Keys,
	OpSDiffStore:  sequence(str2, countPrefixedStr2Keys),
	OpSMove:       sequence(str2, str2, str2),
	OpSScan:       sequence(str2, skipFixed(8)),
	OpSInterCard:  countPrefixedStr2Keys,
	OpSMIsMember:  sequence(str2, countPrefixedStr2Keys),

	// Sorted Set Operations
	OpZAdd:             sequence(str2, skipFixed(1), countPrefixedGroup(skipFixed(8), str2)), // [1B flags], then a 2B count and that many (score f64, member) pairs
	OpZRem:             sequence(str2, countPrefixedStr2Keys),
	OpZCard:            str2,
	OpZCount:           sequence(str2, skipFixed(16)),
	OpZIncrBy:          sequence(str2, skipFixed(8), str2),
	OpZRange:           sequence(str2, skipFixed(17)),
	OpZRangeByScore:    sequence(str2, skipFixed(17)),
	OpZRangeByLex:      sequence(str2, str2, str2),
	OpZRevRange:        sequence(str2, skipFixed(17)),
	OpZRevRangeByScore: sequence(str2, skipFixed(17)),
	OpZRevRangeByLex:   sequence(str2, str2, str2),
	OpZRank:            sequence(str2, str2, skipFixed(1)),
	OpZRevRank:         sequence(str2, str2, skipFixed(1)),
	OpZScore:           sequence(str2, str2),
	OpZMScore:          sequence(str2, countPrefixedStr2Keys),
	OpZRemRangeByRank:  sequence(str2, skipFixed(16)),
	OpZRemRangeByScore: sequence(str2, skipFixed(16)),
	OpZRemRangeByLex:   sequence(str2, str2, str2),
	OpZLexCount:        sequence(str2, str2, str2),
	OpZPopMin:          str2,
	OpZPopMax:          str2,
	OpBZPopMin:         sequence(countPrefixedStr2Keys, skipFixed(8)),
	OpBZPopMax:         sequence(countPrefixedStr2Keys, skipFixed(8)),
	OpZRandMember:      str2,
	OpZDiff:            sequence(countPrefixedStr2Keys, skipFixed(1)),
	OpZDiffStore:       sequence(str2, countPrefixedStr2Keys),
	OpZInter:           sequence(countPrefixedStr2Keys, skipFixed(1)),
	OpZUnion:           sequence(countPrefixedStr2Keys, skipFixed(1)),
	OpZInterStore:      sequence(str2, countPrefixedStr2Keys, skipFixed(1)),
	OpZUnionStore:      sequence(str2, countPrefixedStr2Keys, skipFixed(1)),
	OpZScan:            sequence(str2, skipFixed(8)),
	OpZMPop:            sequence(countPrefixedStr2Keys, skipFixed(1)),
	OpBZMPop:           sequence(skipFixed(8), countPrefixedStr2Keys, skipFixed(1)),
	OpZRangeStore:      sequence(str2, str2, skipFixed(17)),
	OpZInterCard:       countPrefixedStr2Keys,

	// Hash Operations
	OpHSet:         sequence(str2, countPrefixedGroup(str2, str4)),
	OpHGet:         sequence(str2, str2),
	OpHMSet:        sequence(str2, countPrefixedGroup(str2, str4)),
	OpHMGet:        sequence(str2, countPrefixedStr2Keys),
	OpHGetAll:      str2,
	OpHDel:         sequence(str2, countPrefixedStr2Keys),
	OpHExists:      sequence(str2, str2),
	OpHIncrBy:      sequence(str2, str2, skipFixed(8)),
	OpHIncrByFloat: sequence(str2, str2, skipFixed(8)),
	OpHKeys:        str2,
	OpHVals:        str2,
	OpHLen:         str2,
	OpHSetNX:       sequence(str2, str2, str4),
	OpHStrlen:      sequence(str2, str2),
	OpHScan:        sequence(str2, skipFixed(8)),
	OpHRandField:   str2,
	OpHExpire:      sequence(str2, skipFixed(11), optionalStr2),
	OpHExpireAt:    sequence(str2, skipFixed(11), optionalStr2),
	OpHPExpire:     sequence(str2, skipFixed(11), optionalStr2),
	OpHPExpireAt:   sequence(str2, skipFixed(11), optionalStr2),
	OpHExpireTime:  sequence(str2, countPrefixedStr2Keys),
	OpHPExpireTime: sequence(str2, countPrefixedStr2Keys),
	OpHTTL:         sequence(str2, countPrefixedStr2Keys),
	OpHPTTL:        sequence(str2, countPrefixedStr2Keys),
	OpHPersist:     sequence(str2, countPrefixedStr2Keys),
	OpHGetEx:       sequence(str2, skipFixed(1), countPrefixedStr2Keys),
	OpHSetEx:       sequence(str2, skipFixed(9), countPrefixedGroup(str2, str4)),

	// Bitmap Operations
	OpSetBit:     sequence(str2, skipFixed(9)),
	OpGetBit:     sequence(str2, skipFixed(8)),
	OpBitCount:   str2,
	OpBitPos:     sequence(str2, skipFixed(9)),
	OpBitOp:      sequence(skipFixed(1), str2, countPrefixedStr2Keys),
	OpBitField:   str2,
	OpBitFieldRO: str2,

	// HyperLogLog Operations
	OpPFAdd:      sequence(str2, countPrefixedStr2Keys),
	OpPFCount:    countPrefixedStr2Keys,
	OpPFMerge:    sequence(str2, countPrefixedStr2Keys),
	OpPFDebug:    sequence(str2, str2),
	OpPFSelfTest: noPayload,

	// Geospatial Operations
	OpGeoAdd:              sequence(str2, skipFixed(3)),
	OpGeoDist:             sequence(str2, str2, str2, skipFixed(1)),
	OpGeoHash:             sequence(str2, countPrefixedStr2Keys),
	OpGeoPos:              sequence(str2, countPrefixedStr2Keys),
	OpGeoRadius:           sequence(str2, skipFixed(18)),
	OpGeoRadiusByMember:   sequence(str2, str2, skipFixed(10)),
	OpGeoRadiusRO:         sequence(str2, skipFixed(18)),
	OpGeoRadiusByMemberRO: sequence(str2, str2, skipFixed(10)),
	OpGeoSearch:           sequence(str2, skipFixed(1)),
	OpGeoSearchStore:      sequence(str2, str2, skipFixed(1)),

	// Stream Operations
	OpXAdd:       sequence(str2, str2, conditionalCountedStr2),
	OpXLen:       str2,
	OpXRange:     sequence(str2, str2, str2),
	OpXRevRange:  sequence(str2, str2, str2),
	OpXRead:      countPrefixedGroup(str2, str2),
	OpXReadGroup: sequence(str2, str2, countPrefixedGroup(str2, str2)),
	OpXDel:       sequence(str2, conditionalCountedStr2),
	OpXTrim:      sequence(str2, skipFixed(10)),
	OpXAck:       sequence(str2, str2, conditionalCountedStr2),
	OpXPending:   sequence(str2, str2),
	OpXClaim:     sequence(str2, str2, str2, skipFixed(8), conditionalCountedStr2, skipFixed(1)),
	OpXAutoClaim: sequence(str2, str2, str2, skipFixed(8), str2),
	OpXInfo:      sequence(skipFixed(1), str2),
	OpXGroup:     sequence(skipFixed(1), str2),
	OpXSetID:     sequence(str2, str2),

	// Pub/Sub Operations
	OpPublish:      sequence(str2, str4),
	OpSubscribe:    countPrefixedStr2Keys,
	OpUnsubscribe:  countPrefixedStr2Keys,
	OpPSubscribe:   countPrefixedStr2Keys,
	OpPUnsubscribe: countPrefixedStr2Keys,
	OpPubSub:       skipFixed(1),
	OpSPublish:     sequence(str2, str4),
	OpSSubscribe:   countPrefixedStr2Keys,
	OpSUnsubscribe: countPrefixedStr2Keys,

	// Transaction Operations
	OpMulti:   noPayload,
	OpExec:    noPayload,
	OpDiscard: noPayload,
	OpWatch:   countPrefixedStr2Keys,
	OpUnwatch: noPayload,

	// Scripting and Functions
	OpEval:      sequence(str4, countPrefixedStr2Keys, optionalStr2),
	OpEvalSHA:   sequence(str2, countPrefixedStr2Keys, optionalStr2),
	OpEvalRO:    sequence(str4, countPrefixedStr2Keys, optionalStr2),
	OpEvalSHARO: sequence(str2, countPrefixedStr2Keys, optionalStr2),
	OpScript:    skipFixed(1),
	OpFCall:     sequence(str2, countPrefixedStr2Keys, optionalStr2),
	OpFCallRO:   sequence(str2, countPrefixedStr2Keys, optionalStr2),
	OpFunction:  skipFixed(1),

	// Generic Key Operations
	OpDel:           countPrefixedStr2Keys,
	OpUnlink:        countPrefixedStr2Keys,
	OpExists:        countPrefixedStr2Keys,
	OpExpire:        sequence(str2, skipFixed(9)),
	OpExpireAt:      sequence(str2, skipFixed(9)),
	OpPExpire:       sequence(str2, skipFixed(9)),
	OpPExpireAt:     sequence(str2, skipFixed(9)),
	OpExpireTime:    str2,
	OpPExpireTime:   str2,
	OpTTL:           str2,
	OpPTTL:          str2,
	OpPersist:       str2,
	OpKeys:          str2,
	OpScan:          skipFixed(8),
	OpRandomKey:     noPayload,
	OpRename:        sequence(str2, str2),
	OpRenameNX:      sequence(str2, str2),
	OpType:          str2,
	OpDump:          str2,
	OpRestore:       sequence(str2, skipFixed(8), str4, skipFixed(1)),
	OpMigrate:       sequence(str2, skipFixed(2), str2, skipFixed(2), skipFixed(9)),
	OpMove:          sequence(str2, skipFixed(2)),
	OpCopy:          sequence(str2, str2, skipFixed(3)),
	OpSort:          str2,
	OpSortRO:        str2,
	OpTouch:         countPrefixedStr2Keys,
	OpObject:        sequence(skipFixed(1), str2),
	OpWait:          skipFixed(16),
	OpWaitAOF:       skipFixed(24),

	// Connection Management
	OpPing:   noPayload,
	OpEcho:   str2,
	OpAuth:   str2,
	OpSelect: skipFixed(2),
	OpQuit:   noPayload,
	OpHello:  skipFixed(1),
	OpReset:  noPayload,
	OpClient: skipFixed(1),

	// Cluster Management
	OpCluster:   skipFixed(1),
	OpReadOnly:  noPayload,
	OpReadWrite: noPayload,
	OpAsking:    noPayload,

	// Server Management
	OpDBSize:        noPayload,
	OpFlushDB:       skipFixed(1),
	OpFlushAll:      skipFixed(1),
	OpSave:          noPayload,
	OpBGSave:        skipFixed(1),
	OpBGRewriteAOF:  noPayload,
	OpLastSave:      noPayload,
	OpShutdown:      skipFixed(1),
	OpInfo:          optionalStr2,
	OpConfig:        skipFixed(1),
	OpCommand:       skipFixed(1),
	OpTime:          noPayload,
	OpRole:          noPayload,
	OpReplicaOf:     sequence(str2, skipFixed(2)),
	OpSlaveOf:       sequence(str2, skipFixed(2)),
	OpMonitor:       noPayload,
	OpDebug:         skipFixed(1),
	OpSync:          noPayload,
	OpPSync:         sequence(str2, skipFixed(8)),
	OpReplConf:      optionalStr2,
	OpSlowLog:       skipFixed(1),
	OpLatency:       skipFixed(1),
	OpMemory:        skipFixed(1),
	OpModuleCmd:     skipFixed(1),
	OpACL:           skipFixed(1),
	OpFailover:      skipFixed(1),
	OpSwapDB:        skipFixed(4),
	OpLolwut:        optionalStr2,
	OpRestoreAsking: sequence(str2, skipFixed(8), str4, skipFixed(1)),
	OpCommandLog:    skipFixed(1),

	OpModule:          moduleShape,
	OpRESPPassthrough: respPassthroughShape,
}

func init() {
	// Every opcode without a dedicated layout above falls back to the
	// generic single-key shape, matching respb_serializer.c's `default`
	// case and the "simplified, just store key" handling the original
	// parser applies to its longer tail of administrative commands.
	for op := range opcodeNames {
		if _, ok := shapeTable[op]; !ok {
			shapeTable[op] = fallback
		}
	}
}

func moduleShape(p *Parser, cmd *Command) bool {
	if !p.checkAvail(4) {
		return false
	}
	sub := p.readU32()
	cmd.ModuleSubcommand = sub
	cmd.ModuleID = uint16(sub >> 16)
	cmd.CommandID = uint16(sub & 0xFFFF)

	switch cmd.ModuleID {
	case ModuleJSON:
		switch cmd.CommandID {
		case 0x0000: // JSON.SET: key, path, json, [1B flags]
			return sequence(str2, str2, str4, skipFixed(1))(p, cmd)
		case 0x0001: // JSON.GET: key, [count-prefixed paths]
			return sequence(str2, countPrefixedStr2Keys)(p, cmd)
		default:
			return str2(p, cmd)
		}
	case ModuleBF:
		switch cmd.CommandID {
		case 0x0000, 0x0002: // BF.ADD / BF.EXISTS: key, item
			return sequence(str2, str2)(p, cmd)
		default:
			return str2(p, cmd)
		}
	case ModuleFT:
		switch cmd.CommandID {
		case 0x0001: // FT.SEARCH: index, query
			return sequence(str2, str2)(p, cmd)
		default:
			return str2(p, cmd)
		}
	default:
		return str2(p, cmd)
	}
}

func respPassthroughShape(p *Parser, cmd *Command) bool {
	if !p.checkAvail(4) {
		return false
	}
	n := int(p.readU32())
	if !p.checkAvail(n) {
		return false
	}
	cmd.RESPData = p.buffer[p.pos : p.pos+n]
	p.pos += n
	return true
}
