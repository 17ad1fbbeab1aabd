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

package resp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandSimple(t *testing.T) {
	c := NewClient([]byte("*2\r\n$3\r\nGET\r\n$5\r\nhello\r\n"))
	argv, err := c.ParseCommand()
	require.NoError(t, err)
	require.Len(t, argv, 2)
	assert.Equal(t, "GET", string(argv[0]))
	assert.Equal(t, "hello", string(argv[1]))
	assert.Equal(t, "GET", CommandName(argv))
	assert.True(t, c.EOF())
}

func TestParseCommandIncomplete(t *testing.T) {
	full := "*2\r\n$3\r\nGET\r\n$5\r\nhello\r\n"
	for n := 0; n < len(full); n++ {
		c := NewClient([]byte(full[:n]))
		_, err := c.ParseCommand()
		assert.ErrorIs(t, err, ErrIncomplete, "prefix length %d", n)
	}
}

func TestParseCommandInlineRejected(t *testing.T) {
	c := NewClient([]byte("PING\r\n"))
	_, err := c.ParseCommand()
	assert.ErrorIs(t, err, ErrInline)
}

func TestParseCommandSequential(t *testing.T) {
	c := NewClient([]byte("*1\r\n$4\r\nPING\r\n*1\r\n$4\r\nPING\r\n"))
	for i := 0; i < 2; i++ {
		argv, err := c.ParseCommand()
		require.NoError(t, err)
		assert.Equal(t, "PING", string(argv[0]))
	}
	assert.True(t, c.EOF())
}

func TestParseIntOverflow(t *testing.T) {
	_, ok := parseInt([]byte("99999999999999999999999999"))
	assert.False(t, ok)

	v, ok := parseInt([]byte("-123"))
	require.True(t, ok)
	assert.EqualValues(t, -123, v)

	v, ok = parseInt([]byte("0"))
	require.True(t, ok)
	assert.EqualValues(t, 0, v)

	_, ok = parseInt([]byte("007"))
	assert.False(t, ok)
}

func TestParseCommandEmptyMultibulk(t *testing.T) {
	c := NewClient([]byte("*0\r\n"))
	argv, err := c.ParseCommand()
	require.NoError(t, err)
	assert.Empty(t, argv)
}

func TestParseCommandUnauthenticatedBulkLenRejected(t *testing.T) {
	c := NewClient([]byte("*1\r\n$99999\r\n"))
	c.AuthRequired = true
	_, err := c.ParseCommand()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIncomplete)
}
