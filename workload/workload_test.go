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

package workload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetd/respb/resp"
)

func TestGenerateShapesAreParseableRESP(t *testing.T) {
	for _, shape := range []Shape{SmallKeys, MediumKeys, LargeValues, Mixed} {
		data := Generate(4096, shape)
		require.NotEmpty(t, data, shape.String())

		c := resp.NewClient(data)
		commands := 0
		for !c.EOF() {
			argv, err := c.ParseCommand()
			if err == resp.ErrIncomplete {
				break
			}
			require.NoError(t, err, shape.String())
			require.NotEmpty(t, argv)
			commands++
		}
		assert.Greater(t, commands, 0, shape.String())
	}
}

func TestGenerateLargeValuesKeyLengthPrefixIsAccurate(t *testing.T) {
	data := Generate(8192, LargeValues)
	c := resp.NewClient(data)
	for !c.EOF() {
		argv, err := c.ParseCommand()
		require.NoError(t, err)
		require.Len(t, argv, 3)
		assert.True(t, strings.HasPrefix(string(argv[1]), "largekey"))
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workload.bin")
	data := Generate(2048, SmallKeys)

	require.NoError(t, Save(path, SmallKeys, data))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, data, loaded)
}

func TestLoadDetectsChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workload.bin")
	data := Generate(1024, SmallKeys)
	require.NoError(t, Save(path, SmallKeys, data))

	corrupted := append([]byte{}, data...)
	corrupted[0] ^= 0xFF
	require.NoError(t, os.WriteFile(path, corrupted, 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConvertRESPToRESPB(t *testing.T) {
	data := Generate(4096, Mixed)
	converted, skipped, err := ConvertRESPToRESPB(data)
	require.NoError(t, err)
	assert.NotEmpty(t, converted)
	assert.GreaterOrEqual(t, skipped, 0)
}

func TestParseShape(t *testing.T) {
	s, err := ParseShape("LARGE")
	require.NoError(t, err)
	assert.Equal(t, LargeValues, s)

	_, err = ParseShape("bogus")
	assert.Error(t, err)
}
