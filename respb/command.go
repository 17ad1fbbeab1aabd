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

// Package respb implements the RESPB binary command protocol: a fixed-header,
// length-prefixed wire format covering the same command surface as RESP but
// without its text framing overhead.
package respb

// MaxArgs bounds the number of logical arguments a Command can carry.
// Declared argument counts beyond this are truncated: the stream bytes are
// still fully consumed, but only the first MaxArgs arguments are retained.
const MaxArgs = 64

// Arg is a single length-prefixed byte string referencing the parser's
// input buffer directly; it is never copied.
type Arg struct {
	Data []byte
	Len  int
}

// Command is a single parsed RESPB frame.
type Command struct {
	Opcode uint16
	MuxID  uint16

	Argc int
	Args [MaxArgs]Arg

	RawPayload []byte

	// Module command fields, populated when Opcode == OpModule.
	ModuleSubcommand uint32
	ModuleID         uint16
	CommandID        uint16

	// RESP-passthrough fields, populated when Opcode == OpRESPPassthrough.
	RESPData []byte
}

// Opcodes. Request opcodes occupy 0x0000-0xEFFF, grouped by command family
// exactly as laid out in the original protocol header; response opcodes
// occupy 0x8000-0xFFFE; 0xF000 and 0xFFFF are reserved for module commands
// and RESP passthrough respectively.
const (
	// String Operations (0x0000-0x003F)
	OpGet          uint16 = 0x0000
	OpSet          uint16 = 0x0001
	OpAppend       uint16 = 0x0002
	OpDecr         uint16 = 0x0003
	OpDecrBy       uint16 = 0x0004
	OpGetDel       uint16 = 0x0005
	OpGetEx        uint16 = 0x0006
	OpGetRange     uint16 = 0x0007
	OpGetSet       uint16 = 0x0008
	OpIncr         uint16 = 0x0009
	OpIncrBy       uint16 = 0x000A
	OpIncrByFloat  uint16 = 0x000B
	OpMGet         uint16 = 0x000C
	OpMSet         uint16 = 0x000D
	OpMSetNX       uint16 = 0x000E
	OpPSetEx       uint16 = 0x000F
	OpSetEx        uint16 = 0x0010
	OpSetNX        uint16 = 0x0011
	OpSetRange     uint16 = 0x0012
	OpStrlen       uint16 = 0x0013
	OpSubstr       uint16 = 0x0014
	OpLCS          uint16 = 0x0015
	OpDelIfEq      uint16 = 0x0016

	// List Operations (0x0040-0x007F)
	OpLPush      uint16 = 0x0040
	OpRPush      uint16 = 0x0041
	OpLPop       uint16 = 0x0042
	OpRPop       uint16 = 0x0043
	OpLLen       uint16 = 0x0044
	OpLRange     uint16 = 0x0045
	OpLIndex     uint16 = 0x0046
	OpLSet       uint16 = 0x0047
	OpLRem       uint16 = 0x0048
	OpLTrim      uint16 = 0x0049
	OpLInsert    uint16 = 0x004A
	OpLPushX     uint16 = 0x004B
	OpRPushX     uint16 = 0x004C
	OpRPopLPush  uint16 = 0x004D
	OpLMove      uint16 = 0x004E
	OpLMPop      uint16 = 0x004F
	OpLPos       uint16 = 0x0050
	OpBLPop      uint16 = 0x0051
	OpBRPop      uint16 = 0x0052
	OpBRPopLPush uint16 = 0x0053
	OpBLMove     uint16 = 0x0054
	OpBLMPop     uint16 = 0x0055

	// Set Operations (0x0080-0x00BF)
	OpSAdd        uint16 = 0x0080
	OpSRem        uint16 = 0x0081
	OpSMembers    uint16 = 0x0082
	OpSIsMember   uint16 = 0x0083
	OpSCard       uint16 = 0x0084
	OpSPop        uint16 = 0x0085
	OpSRandMember uint16 = 0x0086
	OpSInter      uint16 = 0x0087
	OpSInterStore uint16 = 0x0088
	OpSUnion      uint16 = 0x0089
	OpSUnionStore uint16 = 0x008A
	OpSDiff       uint16 = 0x008B
	OpSDiffStore  uint16 = 0x008C
	OpSMove       uint16 = 0x008D
	OpSScan       uint16 = 0x008E
	OpSInterCard  uint16 = 0x008F
	OpSMIsMember  uint16 = 0x0090

	// Sorted Set Operations (0x00C0-0x00FF)
	OpZAdd             uint16 = 0x00C0
	OpZRem             uint16 = 0x00C1
	OpZCard            uint16 = 0x00C2
	OpZCount           uint16 = 0x00C3
	OpZIncrBy          uint16 = 0x00C4
	OpZRange           uint16 = 0x00C5
	OpZRangeByScore    uint16 = 0x00C6
	OpZRangeByLex      uint16 = 0x00C7
	OpZRevRange        uint16 = 0x00C8
	OpZRevRangeByScore uint16 = 0x00C9
	OpZRevRangeByLex   uint16 = 0x00CA
	OpZRank            uint16 = 0x00CB
	OpZRevRank         uint16 = 0x00CC
	OpZScore           uint16 = 0x00CD
	OpZMScore          uint16 = 0x00CE
	OpZRemRangeByRank  uint16 = 0x00CF
	OpZRemRangeByScore uint16 = 0x00D0
	OpZRemRangeByLex   uint16 = 0x00D1
	OpZLexCount        uint16 = 0x00D2
	OpZPopMin          uint16 = 0x00D3
	OpZPopMax          uint16 = 0x00D4
	OpBZPopMin         uint16 = 0x00D5
	OpBZPopMax         uint16 = 0x00D6
	OpZRandMember      uint16 = 0x00D7
	OpZDiff            uint16 = 0x00D8
	OpZDiffStore       uint16 = 0x00D9
	OpZInter           uint16 = 0x00DA
	OpZInterStore      uint16 = 0x00DB
	OpZInterCard       uint16 = 0x00DC
	OpZUnion           uint16 = 0x00DD
	OpZUnionStore      uint16 = 0x00DE
	OpZScan            uint16 = 0x00DF
	OpZMPop            uint16 = 0x00E0
	OpBZMPop           uint16 = 0x00E1
	OpZRangeStore      uint16 = 0x00E2

	// Hash Operations (0x0100-0x013F)
	OpHSet          uint16 = 0x0100
	OpHGet          uint16 = 0x0101
	OpHMSet         uint16 = 0x0102
	OpHMGet         uint16 = 0x0103
	OpHGetAll       uint16 = 0x0104
	OpHDel          uint16 = 0x0105
	OpHExists       uint16 = 0x0106
	OpHIncrBy       uint16 = 0x0107
	OpHIncrByFloat  uint16 = 0x0108
	OpHKeys         uint16 = 0x0109
	OpHVals         uint16 = 0x010A
	OpHLen          uint16 = 0x010B
	OpHSetNX        uint16 = 0x010C
	OpHStrlen       uint16 = 0x010D
	OpHScan         uint16 = 0x010E
	OpHRandField    uint16 = 0x010F
	OpHExpire       uint16 = 0x0110
	OpHExpireAt     uint16 = 0x0111
	OpHExpireTime   uint16 = 0x0112
	OpHPExpire      uint16 = 0x0113
	OpHPExpireAt    uint16 = 0x0114
	OpHPExpireTime  uint16 = 0x0115
	OpHPTTL         uint16 = 0x0116
	OpHTTL          uint16 = 0x0117
	OpHPersist      uint16 = 0x0118
	OpHGetEx        uint16 = 0x0119
	OpHSetEx        uint16 = 0x011A

	// Bitmap Operations (0x0140-0x015F)
	OpSetBit     uint16 = 0x0140
	OpGetBit     uint16 = 0x0141
	OpBitCount   uint16 = 0x0142
	OpBitPos     uint16 = 0x0143
	OpBitOp      uint16 = 0x0144
	OpBitField   uint16 = 0x0145
	OpBitFieldRO uint16 = 0x0146

	// HyperLogLog Operations (0x0160-0x017F)
	OpPFAdd      uint16 = 0x0160
	OpPFCount    uint16 = 0x0161
	OpPFMerge    uint16 = 0x0162
	OpPFDebug    uint16 = 0x0163
	OpPFSelfTest uint16 = 0x0164

	// Geospatial Operations (0x0180-0x01BF)
	OpGeoAdd               uint16 = 0x0180
	OpGeoDist              uint16 = 0x0181
	OpGeoHash              uint16 = 0x0182
	OpGeoPos               uint16 = 0x0183
	OpGeoRadius            uint16 = 0x0184
	OpGeoRadiusByMember    uint16 = 0x0185
	OpGeoRadiusRO          uint16 = 0x0186
	OpGeoRadiusByMemberRO  uint16 = 0x0187
	OpGeoSearch            uint16 = 0x0188
	OpGeoSearchStore       uint16 = 0x0189

	// Stream Operations (0x01C0-0x01FF)
	OpXAdd        uint16 = 0x01C0
	OpXLen        uint16 = 0x01C1
	OpXRange      uint16 = 0x01C2
	OpXRevRange   uint16 = 0x01C3
	OpXRead       uint16 = 0x01C4
	OpXReadGroup  uint16 = 0x01C5
	OpXDel        uint16 = 0x01C6
	OpXTrim       uint16 = 0x01C7
	OpXAck        uint16 = 0x01C8
	OpXPending    uint16 = 0x01C9
	OpXClaim      uint16 = 0x01CA
	OpXAutoClaim  uint16 = 0x01CB
	OpXInfo       uint16 = 0x01CC
	OpXGroup      uint16 = 0x01CD
	OpXSetID      uint16 = 0x01CE

	// Pub/Sub Operations (0x0200-0x023F)
	OpPublish      uint16 = 0x0200
	OpSubscribe    uint16 = 0x0201
	OpUnsubscribe  uint16 = 0x0202
	OpPSubscribe   uint16 = 0x0203
	OpPUnsubscribe uint16 = 0x0204
	OpPubSub       uint16 = 0x0205
	OpSPublish     uint16 = 0x0206
	OpSSubscribe   uint16 = 0x0207
	OpSUnsubscribe uint16 = 0x0208

	// Transaction Operations (0x0240-0x025F)
	OpMulti   uint16 = 0x0240
	OpExec    uint16 = 0x0241
	OpDiscard uint16 = 0x0242
	OpWatch   uint16 = 0x0243
	OpUnwatch uint16 = 0x0244

	// Scripting and Functions (0x0260-0x02BF)
	OpEval       uint16 = 0x0260
	OpEvalSHA    uint16 = 0x0261
	OpEvalRO     uint16 = 0x0262
	OpEvalSHARO  uint16 = 0x0263
	OpScript     uint16 = 0x0264
	OpFCall      uint16 = 0x0265
	OpFCallRO    uint16 = 0x0266
	OpFunction   uint16 = 0x0267

	// Generic Key Operations (0x02C0-0x02FF)
	OpDel          uint16 = 0x02C0
	OpUnlink       uint16 = 0x02C1
	OpExists       uint16 = 0x02C2
	OpExpire       uint16 = 0x02C3
	OpExpireAt     uint16 = 0x02C4
	OpExpireTime   uint16 = 0x02C5
	OpPExpire      uint16 = 0x02C6
	OpPExpireAt    uint16 = 0x02C7
	OpPExpireTime  uint16 = 0x02C8
	OpTTL          uint16 = 0x02C9
	OpPTTL         uint16 = 0x02CA
	OpPersist      uint16 = 0x02CB
	OpKeys         uint16 = 0x02CC
	OpScan         uint16 = 0x02CD
	OpRandomKey    uint16 = 0x02CE
	OpRename       uint16 = 0x02CF
	OpRenameNX     uint16 = 0x02D0
	OpType         uint16 = 0x02D1
	OpDump         uint16 = 0x02D2
	OpRestore      uint16 = 0x02D3
	OpMigrate      uint16 = 0x02D4
	OpMove         uint16 = 0x02D5
	OpCopy         uint16 = 0x02D6
	OpSort         uint16 = 0x02D7
	OpSortRO       uint16 = 0x02D8
	OpTouch        uint16 = 0x02D9
	OpObject       uint16 = 0x02DA
	OpWait         uint16 = 0x02DB
	OpWaitAOF      uint16 = 0x02DC

	// Connection Management (0x0300-0x033F)
	OpPing   uint16 = 0x0300
	OpEcho   uint16 = 0x0301
	OpAuth   uint16 = 0x0302
	OpSelect uint16 = 0x0303
	OpQuit   uint16 = 0x0304
	OpHello  uint16 = 0x0305
	OpReset  uint16 = 0x0306
	OpClient uint16 = 0x0307

	// Cluster Management (0x0340-0x03BF)
	OpCluster   uint16 = 0x0340
	OpReadOnly  uint16 = 0x0341
	OpReadWrite uint16 = 0x0342
	OpAsking    uint16 = 0x0343

	// Server Management (0x03C0-0x04FF)
	OpDBSize         uint16 = 0x03C0
	OpFlushDB        uint16 = 0x03C1
	OpFlushAll       uint16 = 0x03C2
	OpSave           uint16 = 0x03C3
	OpBGSave         uint16 = 0x03C4
	OpBGRewriteAOF   uint16 = 0x03C5
	OpLastSave       uint16 = 0x03C6
	OpShutdown       uint16 = 0x03C7
	OpInfo           uint16 = 0x03C8
	OpConfig         uint16 = 0x03C9
	OpCommand        uint16 = 0x03CA
	OpTime           uint16 = 0x03CB
	OpRole           uint16 = 0x03CC
	OpReplicaOf      uint16 = 0x03CD
	OpSlaveOf        uint16 = 0x03CE
	OpMonitor        uint16 = 0x03CF
	OpDebug          uint16 = 0x03D0
	OpSync           uint16 = 0x03D1
	OpPSync          uint16 = 0x03D2
	OpReplConf       uint16 = 0x03D3
	OpSlowLog        uint16 = 0x03D4
	OpLatency        uint16 = 0x03D5
	OpMemory         uint16 = 0x03D6
	OpModuleCmd      uint16 = 0x03D7
	OpACL            uint16 = 0x03D8
	OpFailover       uint16 = 0x03D9
	OpSwapDB         uint16 = 0x03DA
	OpLolwut         uint16 = 0x03DB
	OpRestoreAsking  uint16 = 0x03DC
	OpCommandLog     uint16 = 0x03DD

	// Module and RESP-passthrough opcodes
	OpModule          uint16 = 0xF000
	OpRESPPassthrough uint16 = 0xFFFF
)

// Module IDs, carried in the high 16 bits of a module command's 4-byte
// subcommand field.
const (
	ModuleJSON uint16 = 0x0000
	ModuleBF   uint16 = 0x0001
	ModuleFT   uint16 = 0x0002
)

// Response opcodes (0x8000-0xFFFE).
const (
	RespOK    uint16 = 0x8000
	RespError uint16 = 0x8001
	RespNull  uint16 = 0x8002
	RespInt   uint16 = 0x8003
	RespBulk  uint16 = 0x8004
	RespArray uint16 = 0x8005
)
