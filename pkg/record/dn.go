// Copyright (c) 2025 The Fabricsight Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package record

import "strings"

const dnSep = "/"

// LastSegment returns the final path segment of a DN, or "" for an empty DN.
func LastSegment(dn string) string {
	if dn == "" {
		return ""
	}
	idx := strings.LastIndex(dn, dnSep)
	if idx < 0 {
		return dn
	}
	return dn[idx+1:]
}

// Parent returns the DN with its last segment removed, or "" when the DN
// has a single segment.
func Parent(dn string) string {
	idx := strings.LastIndex(dn, dnSep)
	if idx < 0 {
		return ""
	}
	return dn[:idx]
}

// StripSegments returns the DN with its last n segments removed. Stripping
// more segments than the DN has yields "".
func StripSegments(dn string, n int) string {
	for i := 0; i < n && dn != ""; i++ {
		dn = Parent(dn)
	}
	return dn
}

// Under reports whether dn sits strictly below prefix in the containment
// tree, or equals it. The test is segment-boundary safe: "sys/chassis-1"
// is not an ancestor of "sys/chassis-10".
func Under(dn, prefix string) bool {
	if prefix == "" {
		return true
	}
	if dn == prefix {
		return true
	}
	return strings.HasPrefix(dn, prefix+dnSep)
}

// Segment returns the i-th DN segment (0-based). Negative indexes count
// from the end: -1 is the last segment. Out-of-range yields "".
func Segment(dn string, i int) string {
	if dn == "" {
		return ""
	}
	parts := strings.Split(dn, dnSep)
	if i < 0 {
		i += len(parts)
	}
	if i < 0 || i >= len(parts) {
		return ""
	}
	return parts[i]
}

// Depth returns the number of segments in the DN.
func Depth(dn string) int {
	if dn == "" {
		return 0
	}
	return strings.Count(dn, dnSep) + 1
}
