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

import "time"

func (s *Store) push(args [][]byte, left bool) *Reply {
	if len(args) < 2 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		e = &entry{kind: kindList}
		sh.data[key] = e
	} else if e.kind != kindList {
		return errWrongType
	}

	for _, v := range args[1:] {
		val := append([]byte(nil), v...)
		if left {
			e.list = append([][]byte{val}, e.list...)
		} else {
			e.list = append(e.list, val)
		}
	}
	return intReply(int64(len(e.list)))
}

func (s *Store) pop(args [][]byte, left bool) *Reply {
	if len(args) != 1 {
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
	if e.kind != kindList {
		return errWrongType
	}
	if len(e.list) == 0 {
		return &Reply{Kind: ReplyNullBulk}
	}

	var v []byte
	if left {
		v = e.list[0]
		e.list = e.list[1:]
	} else {
		v = e.list[len(e.list)-1]
		e.list = e.list[:len(e.list)-1]
	}
	if len(e.list) == 0 {
		delete(sh.data, key)
	}
	return bulkReply(v)
}

func (s *Store) llen(args [][]byte) *Reply {
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
	if e.kind != kindList {
		return errWrongType
	}
	return intReply(int64(len(e.list)))
}

func (s *Store) lrange(args [][]byte) *Reply {
	if len(args) != 3 {
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

	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		return arrayReply(nil)
	}
	if e.kind != kindList {
		return errWrongType
	}

	n := int64(len(e.list))
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

	out := make([][]byte, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		out = append(out, e.list[i])
	}
	return arrayReply(out)
}

// normalizeIndex turns a possibly-negative RESP-style index (-1 is the last
// element) into a 0-based index; it is not clamped to [0, n) by this call.
func normalizeIndex(idx, n int64) int64 {
	if idx < 0 {
		idx += n
	}
	return idx
}
