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

// Package record models the weakly-typed object records returned by the
// management API and the distinguished-name joins between them.
//
// Every managed object is identified by a distinguished name (DN), a
// slash-separated path encoding containment (sys/chassis-1/blade-2/...).
// The last DN segment is the relative name (RN) and encodes the record's
// role. Record collections pulled in one pass are related exclusively by
// DN prefix and RN pattern matching; Index provides those joins without
// rescanning full collections per lookup.
package record

import (
	"strconv"
	"strings"
)

// Raw is one management-object record: a class identifier, a DN, and a
// flat bag of string attributes as returned by the API.
//
// Attribute access never fails. Absent or malformed attributes yield the
// type's zero value so the normalization layer can be written without
// per-field error handling.
type Raw struct {
	Class string            `json:"class" yaml:"class"`
	Dn    string            `json:"dn" yaml:"dn"`
	Attrs map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Rn returns the record's relative name, the last DN segment.
func (r Raw) Rn() string {
	return LastSegment(r.Dn)
}

// Str returns the named attribute, or "" when absent.
func (r Raw) Str(key string) string {
	return r.Attrs[key]
}

// StrOr returns the named attribute, or def when absent or empty.
func (r Raw) StrOr(key, def string) string {
	if v := strings.TrimSpace(r.Attrs[key]); v != "" {
		return v
	}
	return def
}

// Int returns the named attribute parsed as int, or 0 when absent or
// non-numeric.
func (r Raw) Int(key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.Attrs[key]))
	if err != nil {
		return 0
	}
	return v
}

// Int64 returns the named attribute parsed as int64, or 0 when absent or
// non-numeric.
func (r Raw) Int64(key string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(r.Attrs[key]), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Float64 returns the named attribute parsed as float64, or 0 when absent
// or non-numeric.
func (r Raw) Float64(key string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.Attrs[key]), 64)
	if err != nil {
		return 0
	}
	return v
}

// Bool reports whether the named attribute is a truthy API value
// ("true", "yes", "1").
func (r Raw) Bool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(r.Attrs[key])) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// Has reports whether the attribute is present, even if empty.
func (r Raw) Has(key string) bool {
	_, ok := r.Attrs[key]
	return ok
}
