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

func (s *Store) del(args [][]byte) *Reply {
	if len(args) == 0 {
		return errWrongArgs
	}
	now := time.Now()
	var removed int64
	for _, k := range args {
		key := string(k)
		sh := s.shardFor(key)
		sh.mu.Lock()
		if _, found := sh.get(key, now); found {
			delete(sh.data, key)
			removed++
		}
		sh.mu.Unlock()
	}
	return intReply(removed)
}

func (s *Store) exists(args [][]byte) *Reply {
	if len(args) == 0 {
		return errWrongArgs
	}
	now := time.Now()
	var count int64
	for _, k := range args {
		key := string(k)
		sh := s.shardFor(key)
		sh.mu.Lock()
		if _, found := sh.get(key, now); found {
			count++
		}
		sh.mu.Unlock()
	}
	return intReply(count)
}

func (s *Store) expire(args [][]byte, unit time.Duration) *Reply {
	if len(args) != 2 {
		return errWrongArgs
	}
	n, ok := parseInt(args[1])
	if !ok {
		return errNotInteger
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		return intReply(0)
	}
	e.expiresAt = time.Now().Add(time.Duration(n) * unit)
	return intReply(1)
}

func (s *Store) ttl(args [][]byte, unit time.Duration) *Reply {
	if len(args) != 1 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	now := time.Now()
	e, found := sh.get(key, now)
	if !found {
		return intReply(-2)
	}
	if e.expiresAt.IsZero() {
		return intReply(-1)
	}
	remaining := e.expiresAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return intReply(int64(remaining / unit))
}

func (s *Store) persist(args [][]byte) *Reply {
	if len(args) != 1 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found || e.expiresAt.IsZero() {
		return intReply(0)
	}
	e.expiresAt = time.Time{}
	return intReply(1)
}

func (s *Store) typeOf(args [][]byte) *Reply {
	if len(args) != 1 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		return bulkReply([]byte("none"))
	}
	switch e.kind {
	case kindString:
		return bulkReply([]byte("string"))
	case kindList:
		return bulkReply([]byte("list"))
	case kindHash:
		return bulkReply([]byte("hash"))
	case kindSet:
		return bulkReply([]byte("set"))
	case kindZSet:
		return bulkReply([]byte("zset"))
	default:
		return bulkReply([]byte("none"))
	}
}
