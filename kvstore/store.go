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

// Package kvstore is a minimal, sharded, in-memory key-value engine that
// executes the data-bearing subset of the command surface respb/resp parse:
// strings, lists, hashes, sets, sorted sets, and generic key/TTL operations.
// It has no direct precedent in the teacher repo, which never owns a
// writable data store; it exists so the demo server (respd) has something
// real to execute parsed Commands against and round-trip a reply through.
//
// Per spec.md's non-goals, module commands (JSON.*/BF.*/FT.*), scripting,
// cluster, and replication opcodes parse and serialize correctly but are
// not executed here; Execute replies to them with a RESPB error reply
// rather than silently dropping them.
package kvstore

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ShardCount is the number of independent map+mutex shards a Store splits
// its keyspace across. Matches internal/labels.Labels.Hash's use of xxhash
// for a different keying purpose: here it selects a shard instead of
// deduplicating a label set.
const ShardCount = 16

type entryKind int

const (
	kindString entryKind = iota
	kindList
	kindHash
	kindSet
	kindZSet
)

type entry struct {
	kind entryKind

	str   []byte
	list  [][]byte
	hash  map[string][]byte
	set   map[string]struct{}
	zset  map[string]float64

	expiresAt time.Time // zero means no TTL
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

type shard struct {
	mu   sync.Mutex
	data map[string]*entry
}

// Store is a sharded in-memory keyspace. The zero value is not usable; use
// New.
type Store struct {
	shards [ShardCount]*shard
}

// New returns an empty Store.
func New() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i] = &shard{data: make(map[string]*entry)}
	}
	return s
}

func (s *Store) shardFor(key string) *shard {
	h := xxhash.Sum64String(key)
	return s.shards[h%ShardCount]
}

// get returns the live (non-expired) entry for key, deleting it in place
// if it has expired.
func (sh *shard) get(key string, now time.Time) (*entry, bool) {
	e, ok := sh.data[key]
	if !ok {
		return nil, false
	}
	if e.expired(now) {
		delete(sh.data, key)
		return nil, false
	}
	return e, true
}

// DBSize returns the number of live (non-expired) keys across all shards.
func (s *Store) DBSize() int {
	now := time.Now()
	total := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for k, e := range sh.data {
			if e.expired(now) {
				delete(sh.data, k)
				continue
			}
			total++
		}
		sh.mu.Unlock()
	}
	return total
}

// FlushAll deletes every key.
func (s *Store) FlushAll() {
	for _, sh := range s.shards {
		sh.mu.Lock()
		sh.data = make(map[string]*entry)
		sh.mu.Unlock()
	}
}
