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

import "github.com/valyala/bytebufferpool"

// wstep is the write-side mirror of shape: each shapeTable entry in
// shapes.go has a corresponding wstep tree here that emits bytes in the
// exact layout the parser expects back, so Serialize(Parse(b)) reproduces
// b (modulo the documented simplifications noted alongside the shapeTable
// entries themselves: SET's flags/expiry, INCRBY/DECRBY's increment,
// GETEX's expiry block, and the optional trailing field on the EVAL/FCALL
// family all round-trip as zero/absent rather than their original value,
// since Command has nowhere to keep them once parsed).
//
// skipFixed/flagGatedSkip spans write back as zero bytes: the parser threw
// the original bytes away, so zero is the only value left to synthesize.
// A count-prefixed group's repeat count is recovered from Command.Argc
// rather than stored directly, by subtracting the cost of whatever
// follows the group in its sequence and dividing by the group's
// per-element arg count.
type wkind int

const (
	wkStr2 wkind = iota
	wkStr4
	wkSkip
	wkFlagGatedSkip
	wkNoPayload
	wkCondCounted
	wkOptional
	wkSequence
	wkGroup16
	wkGroup32
)

type wstep struct {
	kind  wkind
	n     int
	steps []wstep
}

func s2() wstep                 { return wstep{kind: wkStr2} }
func s4() wstep                 { return wstep{kind: wkStr4} }
func sk(n int) wstep            { return wstep{kind: wkSkip, n: n} }
func fg(n int) wstep            { return wstep{kind: wkFlagGatedSkip, n: n} }
func nop() wstep                { return wstep{kind: wkNoPayload} }
func cond() wstep               { return wstep{kind: wkCondCounted} }
func opt() wstep                { return wstep{kind: wkOptional} }
func sq(steps ...wstep) wstep   { return wstep{kind: wkSequence, steps: steps} }
func grp(inner ...wstep) wstep  { return wstep{kind: wkGroup16, steps: inner} }
func grp32(inner ...wstep) wstep { return wstep{kind: wkGroup32, steps: inner} }

// wKeys mirrors countPrefixedStr2Keys: a u16 count followed by that many
// str2 fields.
var wKeys = grp(s2())

// cost reports how many Command args a step consumes when written,
// used by a preceding group to size itself off of Command.Argc. Steps
// with no fixed arg cost (skip, flag-gated skip, the conditional/optional
// stream and scripting fields, groups themselves) contribute 0: a group
// never precedes another group in this catalogue, and the conditional/
// optional fields are always last in their sequence or followed only by
// zero-cost skips, so treating them as zero here just means "assume
// absent," which is also what their own write logic falls back to once
// the preceding group has claimed every remaining arg.
func (s wstep) cost() int {
	switch s.kind {
	case wkStr2, wkStr4:
		return 1
	case wkSequence:
		t := 0
		for _, c := range s.steps {
			t += c.cost()
		}
		return t
	default:
		return 0
	}
}

// write emits s's bytes for cmd into buf, advancing *cur past whatever
// args s consumes.
func (s wstep) write(buf *bytebufferpool.ByteBuffer, cmd *Command, cur *int) error {
	switch s.kind {
	case wkStr2:
		writeStr2(buf, cmd.arg(*cur))
		*cur++
	case wkStr4:
		writeStr4(buf, cmd.arg(*cur))
		*cur++
	case wkSkip:
		for i := 0; i < s.n; i++ {
			buf.B = append(buf.B, 0)
		}
	case wkFlagGatedSkip:
		buf.B = append(buf.B, 0) // flags byte: no optional field present
	case wkNoPayload:
		// nothing to write
	case wkCondCounted:
		if *cur < cmd.Argc {
			writeU16(buf, 1)
			writeStr2(buf, cmd.arg(*cur))
			*cur++
		} else {
			writeU16(buf, 0)
		}
	case wkOptional:
		if *cur < cmd.Argc {
			writeStr2(buf, cmd.arg(*cur))
			*cur++
		}
	case wkSequence:
		for i, step := range s.steps {
			if step.kind == wkGroup16 || step.kind == wkGroup32 {
				trailing := 0
				for _, rest := range s.steps[i+1:] {
					trailing += rest.cost()
				}
				if err := step.writeGroup(buf, cmd, cur, trailing); err != nil {
					return err
				}
				continue
			}
			if err := step.write(buf, cmd, cur); err != nil {
				return err
			}
		}
	case wkGroup16, wkGroup32:
		return s.writeGroup(buf, cmd, cur, 0)
	}
	return nil
}

// writeGroup writes a count-prefixed repetition of s.steps, sizing the
// count as (remaining args - trailing) / (args per element). trailing is
// the arg cost of whatever comes after the group in its enclosing
// sequence (0 for a group that is the whole shape).
func (s wstep) writeGroup(buf *bytebufferpool.ByteBuffer, cmd *Command, cur *int, trailing int) error {
	elemCost := 0
	for _, c := range s.steps {
		elemCost += c.cost()
	}
	if elemCost == 0 {
		elemCost = 1
	}

	avail := cmd.Argc - *cur - trailing
	if avail < 0 {
		avail = 0
	}
	if avail%elemCost != 0 {
		return newError("argument count %d does not divide evenly into groups of %d for this command shape", avail, elemCost)
	}
	count := avail / elemCost

	if s.kind == wkGroup16 {
		writeU16(buf, uint16(count))
	} else {
		writeU32(buf, uint32(count))
	}
	for i := 0; i < count; i++ {
		for _, c := range s.steps {
			if err := c.write(buf, cmd, cur); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeShapeTable mirrors shapeTable entry-for-entry: every opcode with a
// dedicated shapeTable layout (other than OpModule and OpRESPPassthrough,
// which carry data shapeTable's Command fields alone can't describe -
// ModuleSubcommand/RESPData - and so are serialized directly in
// Serialize) has a matching wstep tree here built from the same
// sequence/group/skip structure.
var writeShapeTable = map[uint16]wstep{
	OpGet: s2(),
	OpSet: sq(s2(), s4(), sk(9)),
	OpAppend: sq(s2(), s4()),
	OpDecr: s2(),
	OpDecrBy: sq(s2(), sk(8)),
	OpGetDel: s2(),
	OpGetEx: sq(s2(), fg(8)),
	OpGetRange: sq(s2(), sk(16)),
	OpGetSet: sq(s2(), s4()),
	OpIncr: s2(),
	OpIncrBy: sq(s2(), sk(8)),
	OpIncrByFloat: sq(s2(), sk(8)),
	OpMGet: wKeys,
	OpMSet: grp(s2(), s4()),
	OpMSetNX: grp(s2(), s4()),
	OpPSetEx: sq(s2(), sk(8), s4()),
	OpSetEx: sq(s2(), sk(8), s4()),
	OpSetNX: sq(s2(), s4()),
	OpSetRange: sq(s2(), sk(8), s4()),
	OpStrlen: s2(),
	OpSubstr: sq(s2(), sk(16)),
	OpLCS: sq(s2(), s2()),
	OpDelIfEq: sq(s2(), s4()),
	OpLPush: sq(s2(), wKeys),
	OpRPush: sq(s2(), wKeys),
	OpLPop: s2(),
	OpRPop: s2(),
	OpLLen: s2(),
	OpLRange: sq(s2(), sk(16)),
	OpLIndex: sq(s2(), sk(8)),
	OpLSet: sq(s2(), sk(8), s2()),
	OpLRem: sq(s2(), sk(8), s2()),
	OpLTrim: sq(s2(), sk(16)),
	OpLInsert: sq(s2(), sk(1), s2(), s2()),
	OpLPushX: sq(s2(), wKeys),
	OpRPushX: sq(s2(), wKeys),
	OpRPopLPush: sq(s2(), s2()),
	OpLMove: sq(s2(), s2(), sk(2)),
	OpLMPop: sq(wKeys, sk(1)),
	OpLPos: sq(s2(), s2()),
	OpBLPop: sq(wKeys, sk(8)),
	OpBRPop: sq(wKeys, sk(8)),
	OpBRPopLPush: sq(s2(), s2(), sk(8)),
	OpBLMove: sq(s2(), s2(), sk(10)),
	OpBLMPop: sq(sk(8), wKeys, sk(1)),
	OpSAdd: sq(s2(), wKeys),
	OpSRem: sq(s2(), wKeys),
	OpSMembers: s2(),
	OpSIsMember: sq(s2(), s2()),
	OpSCard: s2(),
	OpSPop: s2(),
	OpSRandMember: s2(),
	OpSInter: wKeys,
	OpSInterStore: sq(s2(), wKeys),
	OpSUnion: wKeys,
	OpSUnionStore: sq(s2(), wKeys),
	OpSDiff: wKeys,
	OpSDiffStore: sq(s2(), wKeys),
	OpSMove: sq(s2(), s2(), s2()),
	OpSScan: sq(s2(), sk(8)),
	OpSInterCard: wKeys,
	OpSMIsMember: sq(s2(), wKeys),
	OpZAdd: sq(s2(), sk(1), grp(sk(8), s2())),
	OpZRem: sq(s2(), wKeys),
	OpZCard: s2(),
	OpZCount: sq(s2(), sk(16)),
	OpZIncrBy: sq(s2(), sk(8), s2()),
	OpZRange: sq(s2(), sk(17)),
	OpZRangeByScore: sq(s2(), sk(17)),
	OpZRangeByLex: sq(s2(), s2(), s2()),
	OpZRevRange: sq(s2(), sk(17)),
	OpZRevRangeByScore: sq(s2(), sk(17)),
	OpZRevRangeByLex: sq(s2(), s2(), s2()),
	OpZRank: sq(s2(), s2(), sk(1)),
	OpZRevRank: sq(s2(), s2(), sk(1)),
	OpZScore: sq(s2(), s2()),
	OpZMScore: sq(s2(), wKeys),
	OpZRemRangeByRank: sq(s2(), sk(16)),
	OpZRemRangeByScore: sq(s2(), sk(16)),
	OpZRemRangeByLex: sq(s2(), s2(), s2()),
	OpZLexCount: sq(s2(), s2(), s2()),
	OpZPopMin: s2(),
	OpZPopMax: s2(),
	OpBZPopMin: sq(wKeys, sk(8)),
	OpBZPopMax: sq(wKeys, sk(8)),
	OpZRandMember: s2(),
	OpZDiff: sq(wKeys, sk(1)),
	OpZDiffStore: sq(s2(), wKeys),
	OpZInter: sq(wKeys, sk(1)),
	OpZUnion: sq(wKeys, sk(1)),
	OpZInterStore: sq(s2(), wKeys, sk(1)),
	OpZUnionStore: sq(s2(), wKeys, sk(1)),
	OpZScan: sq(s2(), sk(8)),
	OpZMPop: sq(wKeys, sk(1)),
	OpBZMPop: sq(sk(8), wKeys, sk(1)),
	OpZRangeStore: sq(s2(), s2(), sk(17)),
	OpZInterCard: wKeys,
	OpHSet: sq(s2(), grp(s2(), s4())),
	OpHGet: sq(s2(), s2()),
	OpHMSet: sq(s2(), grp(s2(), s4())),
	OpHMGet: sq(s2(), wKeys),
	OpHGetAll: s2(),
	OpHDel: sq(s2(), wKeys),
	OpHExists: sq(s2(), s2()),
	OpHIncrBy: sq(s2(), s2(), sk(8)),
	OpHIncrByFloat: sq(s2(), s2(), sk(8)),
	OpHKeys: s2(),
	OpHVals: s2(),
	OpHLen: s2(),
	OpHSetNX: sq(s2(), s2(), s4()),
	OpHStrlen: sq(s2(), s2()),
	OpHScan: sq(s2(), sk(8)),
	OpHRandField: s2(),
	OpHExpire: sq(s2(), sk(11), opt()),
	OpHExpireAt: sq(s2(), sk(11), opt()),
	OpHPExpire: sq(s2(), sk(11), opt()),
	OpHPExpireAt: sq(s2(), sk(11), opt()),
	OpHExpireTime: sq(s2(), wKeys),
	OpHPExpireTime: sq(s2(), wKeys),
	OpHTTL: sq(s2(), wKeys),
	OpHPTTL: sq(s2(), wKeys),
	OpHPersist: sq(s2(), wKeys),
	OpHGetEx: sq(s2(), sk(1), wKeys),
	OpHSetEx: sq(s2(), sk(9), grp(s2(), s4())),
	OpSetBit: sq(s2(), sk(9)),
	OpGetBit: sq(s2(), sk(8)),
	OpBitCount: s2(),
	OpBitPos: sq(s2(), sk(9)),
	OpBitOp: sq(sk(1), s2(), wKeys),
	OpBitField: s2(),
	OpBitFieldRO: s2(),
	OpPFAdd: sq(s2(), wKeys),
	OpPFCount: wKeys,
	OpPFMerge: sq(s2(), wKeys),
	OpPFDebug: sq(s2(), s2()),
	OpPFSelfTest: nop(),
	OpGeoAdd: sq(s2(), sk(3)),
	OpGeoDist: sq(s2(), s2(), s2(), sk(1)),
	OpGeoHash: sq(s2(), wKeys),
	OpGeoPos: sq(s2(), wKeys),
	OpGeoRadius: sq(s2(), sk(18)),
	OpGeoRadiusByMember: sq(s2(), s2(), sk(10)),
	OpGeoRadiusRO: sq(s2(), sk(18)),
	OpGeoRadiusByMemberRO: sq(s2(), s2(), sk(10)),
	OpGeoSearch: sq(s2(), sk(1)),
	OpGeoSearchStore: sq(s2(), s2(), sk(1)),
	OpXAdd: sq(s2(), s2(), cond()),
	OpXLen: s2(),
	OpXRange: sq(s2(), s2(), s2()),
	OpXRevRange: sq(s2(), s2(), s2()),
	OpXRead: grp(s2(), s2()),
	OpXReadGroup: sq(s2(), s2(), grp(s2(), s2())),
	OpXDel: sq(s2(), cond()),
	OpXTrim: sq(s2(), sk(10)),
	OpXAck: sq(s2(), s2(), cond()),
	OpXPending: sq(s2(), s2()),
	OpXClaim: sq(s2(), s2(), s2(), sk(8), cond(), sk(1)),
	OpXAutoClaim: sq(s2(), s2(), s2(), sk(8), s2()),
	OpXInfo: sq(sk(1), s2()),
	OpXGroup: sq(sk(1), s2()),
	OpXSetID: sq(s2(), s2()),
	OpPublish: sq(s2(), s4()),
	OpSubscribe: wKeys,
	OpUnsubscribe: wKeys,
	OpPSubscribe: wKeys,
	OpPUnsubscribe: wKeys,
	OpPubSub: sk(1),
	OpSPublish: sq(s2(), s4()),
	OpSSubscribe: wKeys,
	OpSUnsubscribe: wKeys,
	OpMulti: nop(),
	OpExec: nop(),
	OpDiscard: nop(),
	OpWatch: wKeys,
	OpUnwatch: nop(),
	OpEval: sq(s4(), wKeys, opt()),
	OpEvalSHA: sq(s2(), wKeys, opt()),
	OpEvalRO: sq(s4(), wKeys, opt()),
	OpEvalSHARO: sq(s2(), wKeys, opt()),
	OpScript: sk(1),
	OpFCall: sq(s2(), wKeys, opt()),
	OpFCallRO: sq(s2(), wKeys, opt()),
	OpFunction: sk(1),
	OpDel: wKeys,
	OpUnlink: wKeys,
	OpExists: wKeys,
	OpExpire: sq(s2(), sk(9)),
	OpExpireAt: sq(s2(), sk(9)),
	OpPExpire: sq(s2(), sk(9)),
	OpPExpireAt: sq(s2(), sk(9)),
	OpExpireTime: s2(),
	OpPExpireTime: s2(),
	OpTTL: s2(),
	OpPTTL: s2(),
	OpPersist: s2(),
	OpKeys: s2(),
	OpScan: sk(8),
	OpRandomKey: nop(),
	OpRename: sq(s2(), s2()),
	OpRenameNX: sq(s2(), s2()),
	OpType: s2(),
	OpDump: s2(),
	OpRestore: sq(s2(), sk(8), s4(), sk(1)),
	OpMigrate: sq(s2(), sk(2), s2(), sk(2), sk(9)),
	OpMove: sq(s2(), sk(2)),
	OpCopy: sq(s2(), s2(), sk(3)),
	OpSort: s2(),
	OpSortRO: s2(),
	OpTouch: wKeys,
	OpObject: sq(sk(1), s2()),
	OpWait: sk(16),
	OpWaitAOF: sk(24),
	OpPing: nop(),
	OpEcho: s2(),
	OpAuth: s2(),
	OpSelect: sk(2),
	OpQuit: nop(),
	OpHello: sk(1),
	OpReset: nop(),
	OpClient: sk(1),
	OpCluster: sk(1),
	OpReadOnly: nop(),
	OpReadWrite: nop(),
	OpAsking: nop(),
	OpDBSize: nop(),
	OpFlushDB: sk(1),
	OpFlushAll: sk(1),
	OpSave: nop(),
	OpBGSave: sk(1),
	OpBGRewriteAOF: nop(),
	OpLastSave: nop(),
	OpShutdown: sk(1),
	OpInfo: opt(),
	OpConfig: sk(1),
	OpCommand: sk(1),
	OpTime: nop(),
	OpRole: nop(),
	OpReplicaOf: sq(s2(), sk(2)),
	OpSlaveOf: sq(s2(), sk(2)),
	OpMonitor: nop(),
	OpDebug: sk(1),
	OpSync: nop(),
	OpPSync: sq(s2(), sk(8)),
	OpReplConf: opt(),
	OpSlowLog: sk(1),
	OpLatency: sk(1),
	OpMemory: sk(1),
	OpModuleCmd: sk(1),
	OpACL: sk(1),
	OpFailover: sk(1),
	OpSwapDB: sk(4),
	OpLolwut: opt(),
	OpRestoreAsking: sq(s2(), sk(8), s4(), sk(1)),
	OpCommandLog: sk(1),
}

func init() {
	// Opcodes with no dedicated shapeTable entry use fallback (a bare
	// key), the same simplification the parser applies to its long tail
	// of administrative commands.
	for op := range opcodeNames {
		if op == OpModule || op == OpRESPPassthrough {
			continue
		}
		if _, ok := writeShapeTable[op]; !ok {
			writeShapeTable[op] = s2()
		}
	}
}
