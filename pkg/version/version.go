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

// Package version parses the loosely structured version strings found in
// firmware inventory fields.
//
// Firmware versions come in several shapes: plain semver ("5.2.3"),
// two-component trains with a parenthesized build ("4.2(3b)"), and either
// form with a trailing bundle letter ("4.2(3b)B"). The parser keeps the
// numeric train for comparison and preserves everything else in Extras.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
)

// Version is a parsed firmware version. Precision records how many
// numeric components the source string carried (1-3); Extras preserves
// the build/bundle suffix verbatim.
type Version struct {
	Major int `json:"major,omitempty" yaml:"major,omitempty"`
	Minor int `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch int `json:"patch,omitempty" yaml:"patch,omitempty"`

	Precision int    `json:"precision,omitempty" yaml:"precision,omitempty"`
	Extras    string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// String renders the numeric train respecting precision. Extras are not
// included; use Full for the round-trippable form.
func (v Version) String() string {
	switch v.Precision {
	case 1:
		return strconv.Itoa(v.Major)
	case 2:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

// Full renders the numeric train followed by the preserved suffix.
func (v Version) Full() string {
	return v.String() + v.Extras
}

// Compare orders two versions by their numeric train: -1, 0, or 1.
// Extras never participate in ordering.
func (v Version) Compare(o Version) int {
	for _, d := range [3]int{v.Major - o.Major, v.Minor - o.Minor, v.Patch - o.Patch} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return 0
}

// Parse parses a firmware or semver version string. A "v" prefix is
// stripped; a parenthesized build ("4.2(3b)") or a dash/plus suffix
// ("5.2.3-N1") ends the numeric train and lands in Extras.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, ErrEmptyVersion
	}
	s = strings.TrimPrefix(s, "v")

	var v Version
	main := s
	for i, ch := range s {
		if i == 0 {
			continue
		}
		if ch == '(' || ch == '-' || ch == '+' {
			main = s[:i]
			v.Extras = s[i:]
			break
		}
	}

	parts := strings.Split(main, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}
	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		nums[i] = n
	}

	v.Precision = len(nums)
	v.Major = nums[0]
	if len(nums) > 1 {
		v.Minor = nums[1]
	}
	if len(nums) > 2 {
		v.Patch = nums[2]
	}
	return v, nil
}

// ParseLenient parses s, falling back to a zero version carrying the
// whole string in Extras when parsing fails. Inventory builders use it so
// a malformed firmware field degrades to pass-through instead of an
// error.
func ParseLenient(s string) Version {
	v, err := Parse(s)
	if err != nil {
		return Version{Extras: strings.TrimSpace(s)}
	}
	return v
}
