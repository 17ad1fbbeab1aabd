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
	"sort"
	"strconv"
	"time"
)

func (s *Store) zadd(args [][]byte) *Reply {
	if len(args) < 3 || len(args)%2 == 0 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		e = &entry{kind: kindZSet, zset: make(map[string]float64)}
		sh.data[key] = e
	} else if e.kind != kindZSet {
		return errWrongType
	}

	var added int64
	for i := 1; i < len(args); i += 2 {
		score, ok := parseFloat(args[i])
		if !ok {
			return errNotInteger
		}
		member := string(args[i+1])
		if _, exists := e.zset[member]; !exists {
			added++
		}
		e.zset[member] = score
	}
	return intReply(added)
}

func (s *Store) zscore(args [][]byte) *Reply {
	if len(args) != 2 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		return &Reply{Kind: ReplyNullBulk}
	}
	if e.kind != kindZSet {
		return errWrongType
	}
	score, exists := e.zset[string(args[1])]
	if !exists {
		return &Reply{Kind: ReplyNullBulk}
	}
	return bulkReply([]byte(strconv.FormatFloat(score, 'g', -1, 64)))
}

func (s *Store) zcard(args [][]byte) *Reply {
	if len(args) != 1 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		return intReply(0)
	}
	if e.kind != kindZSet {
		return errWrongType
	}
	return intReply(int64(len(e.zset)))
}

func (s *Store) zrem(args [][]byte) *Reply {
	if len(args) < 2 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		return intReply(0)
	}
	if e.kind != kindZSet {
		return errWrongType
	}

	var removed int64
	for _, m := range args[1:] {
		member := string(m)
		if _, exists := e.zset[member]; exists {
			delete(e.zset, member)
			removed++
		}
	}
	if len(e.zset) == 0 {
		delete(sh.data, key)
	}
	return intReply(removed)
}

type zmember struct {
	member string
	score  float64
}

// sortedMembers returns a zset's members ordered by score ascending, ties
// broken lexicographically by member (mirrors the ordering a sorted-set
// reply is expected to come back in).
func sortedMembers(zset map[string]float64) []zmember {
	out := make([]zmember, 0, len(zset))
	for m, sc := range zset {
		out = append(out, zmember{member: m, score: sc})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score < out[j].score
		}
		return out[i].member < out[j].member
	})
	return out
}

func (s *Store) zrange(args [][]byte) *Reply {
	if len(args) < 3 {
		return errWrongArgs
	}
	key := string(args[0])
	start, ok := parseInt(args[1])
	if !ok {
		return errNotInteger
	}
	stop, ok := parseInt(args[2])
	if !ok {
		return errNotInteger
	}
	withScores := false
	if len(args) == 4 {
		if string(args[3]) != "WITHSCORES" && string(args[3]) != "withscores" {
			return errWrongArgs
		}
		withScores = true
	} else if len(args) > 4 {
		return errWrongArgs
	}

	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		return arrayReply(nil)
	}
	if e.kind != kindZSet {
		return errWrongType
	}

	members := sortedMembers(e.zset)
	n := int64(len(members))
	start = normalizeIndex(start, n)
	stop = normalizeIndex(stop, n)
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || n == 0 {
		return arrayReply(nil)
	}

	out := make([][]byte, 0, (stop-start+1)*2)
	for i := start; i <= stop; i++ {
		out = append(out, []byte(members[i].member))
		if withScores {
			out = append(out, []byte(strconv.FormatFloat(members[i].score, 'g', -1, 64)))
		}
	}
	return arrayReply(out)
}
