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

// Package resp is a reference parser for the RESP wire protocol spoken by
// Redis and Valkey, kept alongside respb as the text-protocol baseline the
// benchmark package measures against.
package resp

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
)

const (
	// InlineMaxSize bounds how far a parser will scan looking for a CRLF
	// before giving up on ever finding a complete multibulk length line.
	InlineMaxSize = 65536

	// MBulkBigArg is Valkey's big-argument threshold for its querybuf-reuse
	// optimization. ParseCommand does not consult it: every bulk argument,
	// whatever its size, is sliced directly out of the buffer.
	MBulkBigArg = 32768

	// MaxBulkLen is the maximum accepted bulk string length for a normal
	// (non-replicated) connection.
	MaxBulkLen = 512 * 1024 * 1024

	// MaxBulkLenPendingAuth is the tighter bulk length ceiling enforced
	// before a connection has authenticated, when auth is required.
	MaxBulkLenPendingAuth = 16384

	// MaxMultibulkLenPendingAuth is the tighter multibulk-count ceiling
	// enforced before authentication, when auth is required.
	MaxMultibulkLenPendingAuth = 10
)

// ErrIncomplete is returned when the buffer does not yet hold a complete
// command; the caller should append more bytes and retry the same Client.
var ErrIncomplete = errors.New("resp: incomplete command")

// ErrInline is returned for input that does not begin with '*': a
// well-formed inline command in Valkey's own terms, but one this parser
// declines to interpret, matching the reference parser's own refusal to
// handle the inline protocol.
var ErrInline = errors.New("resp: inline commands are not supported")

func newError(format string, args ...interface{}) error {
	return errors.Errorf("resp: "+format, args...)
}

// Client holds the incremental parse state for one connection's input
// stream, mirroring the querybuf/multibulklen/bulklen fields a real
// Valkey client connection carries.
type Client struct {
	buffer []byte
	pos    int

	multibulklen int
	bulklen      int // -1 means "not yet read"

	AuthRequired bool
	Replicated   bool
}

// NewClient returns a Client that will parse commands out of buffer
// starting at its first byte.
func NewClient(buffer []byte) *Client {
	return &Client{buffer: buffer, bulklen: -1}
}

// Reset points the client at a new buffer and clears any partially
// parsed command, used by the benchmark driver to replay the same
// workload across iterations without reallocating a Client.
func (c *Client) Reset(buffer []byte) {
	c.buffer = buffer
	c.pos = 0
	c.multibulklen = 0
	c.bulklen = -1
}

// Pos reports how many bytes of the current buffer have been consumed.
func (c *Client) Pos() int {
	return c.pos
}

// EOF reports whether the client has consumed the entire buffer.
func (c *Client) EOF() bool {
	return c.pos >= len(c.buffer)
}

func (c *Client) findCRLF(from int) int {
	idx := bytes.IndexByte(c.buffer[from:], '\r')
	if idx < 0 {
		return -1
	}
	return from + idx
}

// ParseCommand decodes the next RESP multibulk command. It returns the
// argument list with each element sliced directly out of the client's
// buffer (zero-copy), ErrIncomplete if more bytes are needed, ErrInline
// if the command does not start with '*', or a protocol error for a
// malformed length field.
func (c *Client) ParseCommand() ([][]byte, error) {
	start := c.pos

	if c.pos >= len(c.buffer) {
		return nil, ErrIncomplete
	}
	if c.buffer[c.pos] != '*' {
		return nil, ErrInline
	}

	argv, err := c.parseMultibulk()
	if err != nil {
		if errors.Is(err, ErrIncomplete) {
			// Rewind the whole command: the next attempt re-parses it from
			// the '*' header, so the count state must be cleared with it.
			c.pos = start
			c.multibulklen = 0
			c.bulklen = -1
		}
		return nil, err
	}
	return argv, nil
}

func (c *Client) parseMultibulk() ([][]byte, error) {
	if c.multibulklen == 0 {
		nl := c.findCRLF(c.pos)
		if nl < 0 {
			if len(c.buffer)-c.pos > InlineMaxSize {
				return nil, newError("too big mbulk count string")
			}
			return nil, ErrIncomplete
		}
		if nl+1 >= len(c.buffer) {
			return nil, ErrIncomplete
		}

		line := c.buffer[c.pos+1 : nl]
		ll, ok := parseInt(line)
		if !ok || ll > int64(^uint32(0)>>1) {
			return nil, newError("invalid multibulk length")
		}
		if ll > MaxMultibulkLenPendingAuth && c.AuthRequired {
			return nil, newError("unauthenticated multibulk length")
		}

		c.pos = nl + 2
		if ll <= 0 {
			c.multibulklen = 0
			return [][]byte{}, nil
		}
		c.multibulklen = int(ll)
	}

	argv := make([][]byte, 0, c.multibulklen)
	for c.multibulklen > 0 {
		if c.bulklen == -1 {
			nl := c.findCRLF(c.pos)
			if nl < 0 {
				if len(c.buffer)-c.pos > InlineMaxSize {
					return nil, newError("too big bulk count string")
				}
				return nil, ErrIncomplete
			}
			if c.pos >= len(c.buffer) || c.buffer[c.pos] != '$' {
				return nil, newError("expected '$', got %q", c.buffer[c.pos])
			}

			line := c.buffer[c.pos+1 : nl]
			ll, ok := parseInt(line)
			if !ok || ll < 0 {
				return nil, newError("invalid bulk length")
			}
			if !c.Replicated && ll > MaxBulkLen {
				return nil, newError("invalid bulk length")
			}
			if ll > MaxBulkLenPendingAuth && c.AuthRequired {
				return nil, newError("unauthenticated bulk length")
			}

			c.pos = nl + 2
			c.bulklen = int(ll)
		}

		if len(c.buffer)-c.pos < c.bulklen+2 {
			return nil, ErrIncomplete
		}

		// Slices directly into the client's buffer; no copy. This is the
		// zero-copy path unconditionally, since the parser already owns
		// the full buffer rather than a rolling querybuf it must later
		// reuse or discard.
		arg := c.buffer[c.pos : c.pos+c.bulklen]
		argv = append(argv, arg)
		c.pos += c.bulklen + 2
		c.bulklen = -1
		c.multibulklen--
	}

	return argv, nil
}

// CommandName returns argv[0] upper-cased as a newly allocated string, so
// the result stays valid across further parses (valkey_command_name
// instead reuses a static scratch buffer).
func CommandName(argv [][]byte) string {
	if len(argv) == 0 {
		return ""
	}
	return strings.ToUpper(string(argv[0]))
}
