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

import "math"

// parseInt parses a decimal integer the way Valkey's string2ll does: no
// leading/trailing whitespace, no leading zeros except the literal "0",
// an optional leading '-', and overflow detected a digit at a time rather
// than by parsing into a wider type first.
func parseInt(s []byte) (int64, bool) {
	if len(s) == 0 {
		return 0, false
	}

	if len(s) == 1 && s[0] == '0' {
		return 0, true
	}

	neg := false
	i := 0
	if s[0] == '-' {
		neg = true
		i++
		if i == len(s) {
			return 0, false
		}
	}

	if s[i] < '1' || s[i] > '9' {
		return 0, false
	}

	var v uint64
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		d := uint64(s[i] - '0')
		if v > math.MaxUint64/10 {
			return 0, false
		}
		v *= 10
		if v > math.MaxUint64-d {
			return 0, false
		}
		v += d
	}

	if !neg {
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	if v > -math.MinInt64 {
		return 0, false
	}
	return -int64(v), true
}
