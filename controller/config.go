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

package controller

// Config holds the controller's own settings. respd and exporter settings
// live in their own config sections and are unpacked directly by their
// constructors.
type Config struct {
	// WatchBufferSize bounds how many pending roundtrips a single /watch
	// subscriber queue holds before new ones are dropped.
	WatchBufferSize int `config:"watchBufferSize"`
}

func (c Config) GetWatchBufferSize() int {
	if c.WatchBufferSize <= 0 {
		return 10
	}
	return c.WatchBufferSize
}
