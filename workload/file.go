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
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/hashicorp/go-multierror"
)

// MaxFileSize bounds how large a workload file Load will accept.
const MaxFileSize = 1024 * 1024 * 1024 // 1GiB

// Manifest is an optional sidecar describing a saved workload file's
// provenance and integrity. It has no analogue in the reference
// implementation, which wrote and read raw bytes only; it is an ambient
// addition so Load can detect a truncated or mismatched file up front
// instead of failing deep inside a parser.
type Manifest struct {
	Shape    string `json:"shape"`
	Size     int64  `json:"size"`
	Checksum uint64 `json:"checksum"`
}

func manifestPath(path string) string {
	return path + ".manifest.json"
}

// Save writes data to path, plus a JSON manifest recording its size,
// shape, and an xxhash checksum for later validation.
func Save(path string, shape Shape, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("workload: creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("workload: writing %s: %w", path, err)
	}

	m := Manifest{
		Shape:    shape.String(),
		Size:     int64(len(data)),
		Checksum: xxhash.Sum64(data),
	}
	mb, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("workload: marshaling manifest for %s: %w", path, err)
	}
	if err := os.WriteFile(manifestPath(path), mb, 0o644); err != nil {
		return fmt.Errorf("workload: writing manifest for %s: %w", path, err)
	}
	return nil
}

// Load reads a workload file, rejecting anything over MaxFileSize. If a
// manifest sidecar exists alongside it, Load validates the file's size
// and checksum against it and aggregates every mismatch it finds rather
// than stopping at the first one.
func Load(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("workload: stat %s: %w", path, err)
	}
	if info.Size() <= 0 {
		return nil, fmt.Errorf("workload: %s is empty", path)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("workload: %s is %d bytes, exceeds %d byte limit", path, info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("workload: reading %s: %w", path, err)
	}

	if err := validateManifest(path, data); err != nil {
		return nil, err
	}

	return data, nil
}

func validateManifest(path string, data []byte) error {
	mb, err := os.ReadFile(manifestPath(path))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("workload: reading manifest for %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(mb, &m); err != nil {
		return fmt.Errorf("workload: parsing manifest for %s: %w", path, err)
	}

	var result *multierror.Error
	if m.Size != int64(len(data)) {
		result = multierror.Append(result, fmt.Errorf("size mismatch: manifest says %d, file is %d", m.Size, len(data)))
	}
	if sum := xxhash.Sum64(data); sum != m.Checksum {
		result = multierror.Append(result, fmt.Errorf("checksum mismatch: manifest says %x, file hashes to %x", m.Checksum, sum))
	}
	if result != nil {
		return fmt.Errorf("workload: %s failed manifest validation: %w", path, result)
	}
	return nil
}
