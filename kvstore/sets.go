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

func (s *Store) sadd(args [][]byte) *Reply {
	if len(args) < 2 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		e = &entry{kind: kindSet, set: make(map[string]struct{})}
		sh.data[key] = e
	} else if e.kind != kindSet {
		return errWrongType
	}

	var added int64
	for _, m := range args[1:] {
		member := string(m)
		if _, exists := e.set[member]; !exists {
			e.set[member] = struct{}{}
			added++
		}
	}
	return intReply(added)
}

func (s *Store) srem(args [][]byte) *Reply {
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
	if e.kind != kindSet {
		return errWrongType
	}

	var removed int64
	for _, m := range args[1:] {
		member := string(m)
		if _, exists := e.set[member]; exists {
			delete(e.set, member)
			removed++
		}
	}
	if len(e.set) == 0 {
		delete(sh.data, key)
	}
	return intReply(removed)
}

func (s *Store) smembers(args [][]byte) *Reply {
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
	if e.kind != kindSet {
		return errWrongType
	}
	out := make([][]byte, 0, len(e.set))
	for member := range e.set {
		out = append(out, []byte(member))
	}
	return arrayReply(out)
}

func (s *Store) sismember(args [][]byte) *Reply {
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
	if e.kind != kindSet {
		return errWrongType
	}
	if _, exists := e.set[string(args[1])]; exists {
		return intReply(1)
	}
	return intReply(0)
}

func (s *Store) scard(args [][]byte) *Reply {
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
	if e.kind != kindSet {
		return errWrongType
	}
	return intReply(int64(len(e.set)))
}
