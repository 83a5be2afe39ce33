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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawGetters(t *testing.T) {
	r := Raw{
		Class: "equipmentChassis",
		Dn:    "sys/chassis-1",
		Attrs: map[string]string{
			"id":        "1",
			"serial":    "FOX1234",
			"power":     "ok",
			"suspect":   "yes",
			"capacity":  "4096",
			"badNumber": "n/a",
		},
	}

	assert.Equal(t, "chassis-1", r.Rn())
	assert.Equal(t, "FOX1234", r.Str("serial"))
	assert.Equal(t, "", r.Str("missing"))
	assert.Equal(t, "unknown", r.StrOr("missing", "unknown"))
	assert.Equal(t, 4096, r.Int("capacity"))
	assert.Equal(t, 0, r.Int("badNumber"))
	assert.Equal(t, int64(4096), r.Int64("capacity"))
	assert.True(t, r.Bool("suspect"))
	assert.False(t, r.Bool("power"))
	assert.True(t, r.Has("power"))
	assert.False(t, r.Has("absent"))
}

func TestDnHelpers(t *testing.T) {
	tests := []struct {
		name string
		fn   func() string
		want string
	}{
		{"last segment", func() string { return LastSegment("sys/chassis-1/blade-2") }, "blade-2"},
		{"last segment single", func() string { return LastSegment("sys") }, "sys"},
		{"parent", func() string { return Parent("sys/chassis-1/blade-2") }, "sys/chassis-1"},
		{"parent of root", func() string { return Parent("sys") }, ""},
		{"strip two", func() string { return StripSegments("a/b/c/d", 2) }, "a/b"},
		{"strip past root", func() string { return StripSegments("a/b", 5) }, ""},
		{"segment 1", func() string { return Segment("sys/chassis-1/blade-2", 1) }, "chassis-1"},
		{"segment -1", func() string { return Segment("sys/chassis-1/blade-2", -1) }, "blade-2"},
		{"segment out of range", func() string { return Segment("sys", 4) }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn())
		})
	}
}

func TestUnderIsBoundarySafe(t *testing.T) {
	assert.True(t, Under("sys/chassis-1/blade-2", "sys/chassis-1"))
	assert.True(t, Under("sys/chassis-1", "sys/chassis-1"))
	assert.False(t, Under("sys/chassis-10", "sys/chassis-1"))
	assert.False(t, Under("sys/chassis-1", "sys/chassis-1/blade-2"))
	assert.True(t, Under("anything", ""))
}
