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

// Package respd serves the kvstore demo engine over two concurrent
// listeners: a RESP listener a real Redis/Valkey client can connect to
// unmodified, and a RESPB listener speaking the binary protocol respb
// implements. Both funnel into the same kvstore.Store.Execute, so the two
// listeners only differ in framing.
package respd

import (
	"time"

	"github.com/packetd/respb/common"
)

// ListenerConfig configures a single protocol listener.
type ListenerConfig struct {
	Enabled bool          `config:"enabled"`
	Address string        `config:"address"`
	Timeout time.Duration `config:"timeout"`

	// Options carries listener-specific tuning knobs that don't warrant a
	// dedicated field: `readBlockSize` sizes the per-connection read
	// buffer, and `authRequired` (RESP only) enables the parser's tighter
	// pre-authentication length limits.
	Options common.Options `config:"options"`
}

// ReadBlockSize returns the configured per-connection read buffer size, or
// the shared default when unset.
func (lc ListenerConfig) ReadBlockSize() int {
	n, err := lc.Options.GetInt("readBlockSize")
	if err != nil || n <= 0 {
		return common.ReadWriteBlockSize
	}
	return n
}

// AuthRequired reports whether the listener should parse with the tighter
// unauthenticated length limits.
func (lc ListenerConfig) AuthRequired() bool {
	ok, err := lc.Options.GetBool("authRequired")
	if err != nil {
		return false
	}
	return ok
}

// Config configures respd's pair of listeners.
type Config struct {
	RESP  ListenerConfig `config:"resp"`
	RESPB ListenerConfig `config:"respb"`
}
