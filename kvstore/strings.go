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

func (s *Store) get(args [][]byte) *Reply {
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
	if e.kind != kindString {
		return errWrongType
	}
	return bulkReply(e.str)
}

func (s *Store) set(args [][]byte) *Reply {
	if len(args) < 2 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.data[key] = &entry{kind: kindString, str: append([]byte(nil), args[1]...)}
	return ok()
}

func (s *Store) setnx(args [][]byte) *Reply {
	if len(args) != 2 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, found := sh.get(key, time.Now()); found {
		return intReply(0)
	}
	sh.data[key] = &entry{kind: kindString, str: append([]byte(nil), args[1]...)}
	return intReply(1)
}

func (s *Store) appendStr(args [][]byte) *Reply {
	if len(args) != 2 {
		return errWrongArgs
	}
	key := string(args[0])
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	if !found {
		e = &entry{kind: kindString}
		sh.data[key] = e
	} else if e.kind != kindString {
		return errWrongType
	}
	e.str = append(e.str, args[1]...)
	return intReply(int64(len(e.str)))
}

func (s *Store) strlen(args [][]byte) *Reply {
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
	if e.kind != kindString {
		return errWrongType
	}
	return intReply(int64(len(e.str)))
}

func (s *Store) getdel(args [][]byte) *Reply {
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
	if e.kind != kindString {
		return errWrongType
	}
	delete(sh.data, key)
	return bulkReply(e.str)
}

func (s *Store) mget(args [][]byte) *Reply {
	if len(args) == 0 {
		return errWrongArgs
	}
	now := time.Now()
	out := make([][]byte, len(args))
	for i, k := range args {
		key := string(k)
		sh := s.shardFor(key)
		sh.mu.Lock()
		e, found := sh.get(key, now)
		if found && e.kind == kindString {
			out[i] = e.str
		}
		sh.mu.Unlock()
	}
	return arrayReply(out)
}

func (s *Store) mset(args [][]byte) *Reply {
	if len(args) == 0 || len(args)%2 != 0 {
		return errWrongArgs
	}
	for i := 0; i < len(args); i += 2 {
		key := string(args[i])
		sh := s.shardFor(key)
		sh.mu.Lock()
		sh.data[key] = &entry{kind: kindString, str: append([]byte(nil), args[i+1]...)}
		sh.mu.Unlock()
	}
	return ok()
}

func (s *Store) incrBy(args [][]byte, delta int64) *Reply {
	if len(args) != 1 {
		return errWrongArgs
	}
	return s.addInt(string(args[0]), delta)
}

func (s *Store) incrByArg(args [][]byte, sign int64) *Reply {
	if len(args) != 2 {
		return errWrongArgs
	}
	delta, ok := parseInt(args[1])
	if !ok {
		return errNotInteger
	}
	return s.addInt(string(args[0]), sign*delta)
}

func (s *Store) addInt(key string, delta int64) *Reply {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.get(key, time.Now())
	var cur int64
	if found {
		if e.kind != kindString {
			return errWrongType
		}
		v, ok := parseInt(e.str)
		if !ok {
			return errNotInteger
		}
		cur = v
	} else {
		e = &entry{kind: kindString}
		sh.data[key] = e
	}

	cur += delta
	e.str = []byte(formatInt(cur))
	return intReply(cur)
}

func formatInt(v int64) string {
	return string(appendInt(nil, v))
}

func appendInt(dst []byte, v int64) []byte {
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}
	start := len(dst)
	if v == 0 {
		return append(dst, '0')
	}
	for v > 0 {
		dst = append(dst, byte('0'+v%10))
		v /= 10
	}
	// reverse the digits just appended
	for i, j := start, len(dst)-1; i < j; i, j = i+1, j-1 {
		dst[i], dst[j] = dst[j], dst[i]
	}
	return dst
}
