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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetd/respb/respb"
)

func bs(args ...string) [][]byte {
	out := make([][]byte, 0, len(args))
	for _, a := range args {
		out = append(out, []byte(a))
	}
	return out
}

func TestStringsSetGet(t *testing.T) {
	s := New()

	r := s.Execute(respb.OpSet, bs("k", "v"))
	assert.Equal(t, ReplyOK, r.Kind)

	r = s.Execute(respb.OpGet, bs("k"))
	require.Equal(t, ReplyBulk, r.Kind)
	assert.Equal(t, "v", string(r.Bulk))

	r = s.Execute(respb.OpGet, bs("missing"))
	assert.Equal(t, ReplyNullBulk, r.Kind)
}

func TestStringsIncrDecr(t *testing.T) {
	s := New()

	r := s.Execute(respb.OpIncr, bs("n"))
	require.Equal(t, ReplyInt, r.Kind)
	assert.EqualValues(t, 1, r.Int)

	r = s.Execute(respb.OpIncrBy, bs("n", "10"))
	assert.EqualValues(t, 11, r.Int)

	r = s.Execute(respb.OpDecr, bs("n"))
	assert.EqualValues(t, 10, r.Int)

	r = s.Execute(respb.OpIncrBy, bs("n", "nope"))
	assert.Equal(t, ReplyError, r.Kind)
}

func TestStringsMSetMGet(t *testing.T) {
	s := New()

	r := s.Execute(respb.OpMSet, bs("a", "1", "b", "2"))
	assert.Equal(t, ReplyOK, r.Kind)

	r = s.Execute(respb.OpMGet, bs("a", "missing", "b"))
	require.Equal(t, ReplyArray, r.Kind)
	require.Len(t, r.Array, 3)
	assert.Equal(t, "1", string(r.Array[0]))
	assert.Nil(t, r.Array[1])
	assert.Equal(t, "2", string(r.Array[2]))
}

func TestWrongTypeRejected(t *testing.T) {
	s := New()

	s.Execute(respb.OpSet, bs("k", "v"))
	r := s.Execute(respb.OpLPush, bs("k", "x"))
	assert.Equal(t, ReplyError, r.Kind)
	assert.Contains(t, string(r.Bulk), "WRONGTYPE")
}

func TestListsPushPopRange(t *testing.T) {
	s := New()

	r := s.Execute(respb.OpRPush, bs("l", "a", "b", "c"))
	require.Equal(t, ReplyInt, r.Kind)
	assert.EqualValues(t, 3, r.Int)

	r = s.Execute(respb.OpLRange, bs("l", "0", "-1"))
	require.Equal(t, ReplyArray, r.Kind)
	require.Len(t, r.Array, 3)
	assert.Equal(t, "a", string(r.Array[0]))
	assert.Equal(t, "c", string(r.Array[2]))

	r = s.Execute(respb.OpLPop, bs("l"))
	require.Equal(t, ReplyBulk, r.Kind)
	assert.Equal(t, "a", string(r.Bulk))

	r = s.Execute(respb.OpLLen, bs("l"))
	assert.EqualValues(t, 2, r.Int)
}

func TestHashes(t *testing.T) {
	s := New()

	r := s.Execute(respb.OpHSet, bs("h", "f1", "v1", "f2", "v2"))
	require.Equal(t, ReplyInt, r.Kind)
	assert.EqualValues(t, 2, r.Int)

	r = s.Execute(respb.OpHGet, bs("h", "f1"))
	require.Equal(t, ReplyBulk, r.Kind)
	assert.Equal(t, "v1", string(r.Bulk))

	r = s.Execute(respb.OpHGetAll, bs("h"))
	require.Equal(t, ReplyArray, r.Kind)
	assert.Len(t, r.Array, 4)

	r = s.Execute(respb.OpHDel, bs("h", "f1"))
	assert.EqualValues(t, 1, r.Int)

	r = s.Execute(respb.OpHExists, bs("h", "f1"))
	assert.EqualValues(t, 0, r.Int)
}

func TestSets(t *testing.T) {
	s := New()

	r := s.Execute(respb.OpSAdd, bs("s", "a", "b", "a"))
	require.Equal(t, ReplyInt, r.Kind)
	assert.EqualValues(t, 2, r.Int)

	r = s.Execute(respb.OpSIsMember, bs("s", "a"))
	assert.EqualValues(t, 1, r.Int)

	r = s.Execute(respb.OpSCard, bs("s"))
	assert.EqualValues(t, 2, r.Int)

	r = s.Execute(respb.OpSRem, bs("s", "a"))
	assert.EqualValues(t, 1, r.Int)
}

func TestZSets(t *testing.T) {
	s := New()

	r := s.Execute(respb.OpZAdd, bs("z", "2", "two", "1", "one"))
	require.Equal(t, ReplyInt, r.Kind)
	assert.EqualValues(t, 2, r.Int)

	r = s.Execute(respb.OpZScore, bs("z", "two"))
	require.Equal(t, ReplyBulk, r.Kind)
	assert.Equal(t, "2", string(r.Bulk))

	r = s.Execute(respb.OpZRange, bs("z", "0", "-1"))
	require.Equal(t, ReplyArray, r.Kind)
	require.Len(t, r.Array, 2)
	assert.Equal(t, "one", string(r.Array[0]))
	assert.Equal(t, "two", string(r.Array[1]))
}

func TestGenericDelExistsType(t *testing.T) {
	s := New()

	s.Execute(respb.OpSet, bs("k", "v"))
	r := s.Execute(respb.OpExists, bs("k", "missing"))
	assert.EqualValues(t, 1, r.Int)

	r = s.Execute(respb.OpType, bs("k"))
	assert.Equal(t, "string", string(r.Bulk))

	r = s.Execute(respb.OpDel, bs("k"))
	assert.EqualValues(t, 1, r.Int)

	r = s.Execute(respb.OpExists, bs("k"))
	assert.EqualValues(t, 0, r.Int)
}

func TestTTLLifecycle(t *testing.T) {
	s := New()

	s.Execute(respb.OpSet, bs("k", "v"))

	r := s.Execute(respb.OpTTL, bs("k"))
	assert.EqualValues(t, -1, r.Int)

	r = s.Execute(respb.OpExpire, bs("k", "100"))
	assert.EqualValues(t, 1, r.Int)

	r = s.Execute(respb.OpTTL, bs("k"))
	assert.Greater(t, r.Int, int64(0))

	r = s.Execute(respb.OpPersist, bs("k"))
	assert.EqualValues(t, 1, r.Int)

	r = s.Execute(respb.OpTTL, bs("k"))
	assert.EqualValues(t, -1, r.Int)

	r = s.Execute(respb.OpTTL, bs("missing"))
	assert.EqualValues(t, -2, r.Int)
}

func TestServerCommands(t *testing.T) {
	s := New()

	s.Execute(respb.OpSet, bs("a", "1"))
	s.Execute(respb.OpSet, bs("b", "2"))

	r := s.Execute(respb.OpDBSize, nil)
	require.Equal(t, ReplyInt, r.Kind)
	assert.EqualValues(t, 2, r.Int)

	r = s.Execute(respb.OpFlushAll, nil)
	assert.Equal(t, ReplyOK, r.Kind)
	assert.Equal(t, 0, s.DBSize())
}

func TestUnexecutedOpcodeReturnsError(t *testing.T) {
	s := New()
	r := s.Execute(respb.OpEval, bs("return 1"))
	assert.Equal(t, ReplyError, r.Kind)
}
