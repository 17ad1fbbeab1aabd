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

func (s *Store) hset(args [][]byte) *Reply {
	if len(args) < 3 || len(args)%2 == 0 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		e = &entry{kind: kindHash, hash: make(map[string][]byte)}
		sh.data[key] = e
	} else if e.kind != kindHash {
		return errWrongType
	}

	var added int64
	for i := 1; i < len(args); i += 2 {
		field := string(args[i])
		if _, exists := e.hash[field]; !exists {
			added++
		}
		e.hash[field] = append([]byte(nil), args[i+1]...)
	}
	return intReply(added)
}

func (s *Store) hget(args [][]byte) *Reply {
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
	if e.kind != kindHash {
		return errWrongType
	}
	v, exists := e.hash[string(args[1])]
	if !exists {
		return &Reply{Kind: ReplyNullBulk}
	}
	return bulkReply(v)
}

func (s *Store) hmget(args [][]byte) *Reply {
	if len(args) < 2 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	out := make([][]byte, len(args)-1)
	if found && e.kind == kindHash {
		for i, f := range args[1:] {
			out[i] = e.hash[string(f)]
		}
	} else if found {
		return errWrongType
	}
	return arrayReply(out)
}

func (s *Store) hgetall(args [][]byte) *Reply {
	if len(args) != 1 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		return arrayReply(nil)
	}
	if e.kind != kindHash {
		return errWrongType
	}
	out := make([][]byte, 0, len(e.hash)*2)
	for field, val := range e.hash {
		out = append(out, []byte(field), val)
	}
	return arrayReply(out)
}

func (s *Store) hdel(args [][]byte) *Reply {
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
	if e.kind != kindHash {
		return errWrongType
	}
	var removed int64
	for _, f := range args[1:] {
		field := string(f)
		if _, exists := e.hash[field]; exists {
			delete(e.hash, field)
			removed++
		}
	}
	if len(e.hash) == 0 {
		delete(sh.data, key)
	}
	return intReply(removed)
}

func (s *Store) hexists(args [][]byte) *Reply {
	if len(args) != 2 {
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
	if e.kind != kindHash {
		return errWrongType
	}
	if _, exists := e.hash[string(args[1])]; exists {
		return intReply(1)
	}
	return intReply(0)
}

func (s *Store) hlen(args [][]byte) *Reply {
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
	if e.kind != kindHash {
		return errWrongType
	}
	return intReply(int64(len(e.hash)))
}

func (s *Store) hkeys(args [][]byte) *Reply {
	if len(args) != 1 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		return arrayReply(nil)
	}
	if e.kind != kindHash {
		return errWrongType
	}
	out := make([][]byte, 0, len(e.hash))
	for field := range e.hash {
		out = append(out, []byte(field))
	}
	return arrayReply(out)
}

func (s *Store) hvals(args [][]byte) *Reply {
	if len(args) != 1 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		return arrayReply(nil)
	}
	if e.kind != kindHash {
		return errWrongType
	}
	out := make([][]byte, 0, len(e.hash))
	for _, v := range e.hash {
		out = append(out, v)
	}
	return arrayReply(out)
}
