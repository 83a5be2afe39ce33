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
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex() *Index {
	return NewIndex(map[string][]Raw{
		"computeBlade": {
			{Class: "computeBlade", Dn: "sys/chassis-1/blade-2"},
			{Class: "computeBlade", Dn: "sys/chassis-1/blade-1"},
			{Class: "computeBlade", Dn: "sys/chassis-10/blade-1"},
		},
		"memoryUnit": {
			{Class: "memoryUnit", Dn: "sys/chassis-1/blade-1/board/memarray-1/mem-1"},
			{Class: "memoryUnit", Dn: "sys/chassis-1/blade-2/board/memarray-1/mem-1"},
			{Class: "memoryUnit", Dn: "sys/chassis-10/blade-1/board/memarray-1/mem-3"},
		},
	})
}

func TestIndexClassSorted(t *testing.T) {
	idx := testIndex()

	blades := idx.Class("computeBlade")
	require.Len(t, blades, 3)
	assert.Equal(t, "sys/chassis-1/blade-1", blades[0].Dn)
	assert.Equal(t, "sys/chassis-1/blade-2", blades[1].Dn)

	assert.Nil(t, idx.Class("unknownClass"))
	assert.Equal(t, 3, idx.Count("memoryUnit"))
}

func TestIndexUnder(t *testing.T) {
	idx := testIndex()

	// chassis-1 must not pick up chassis-10 descendants
	mems := idx.Under("memoryUnit", "sys/chassis-1")
	require.Len(t, mems, 2)
	for _, m := range mems {
		assert.True(t, Under(m.Dn, "sys/chassis-1"))
	}

	blade := idx.Under("computeBlade", "sys/chassis-10")
	require.Len(t, blade, 1)
	assert.Equal(t, "sys/chassis-10/blade-1", blade[0].Dn)

	assert.Empty(t, idx.Under("computeBlade", "sys/rack-unit-1"))
	assert.Len(t, idx.Under("computeBlade", ""), 3)
}

func TestIndexUnderHyphenSibling(t *testing.T) {
	// "org-root/ls-web-2" sorts between "org-root/ls-web" and
	// "org-root/ls-web/..." because '-' orders below '/'. The sibling must
	// not cut off the descendant scan, and must not be swept into it.
	idx := NewIndex(map[string][]Raw{
		"vnicEther": {
			{Class: "vnicEther", Dn: "org-root/ls-web-2/ether-eth0"},
			{Class: "vnicEther", Dn: "org-root/ls-web/ether-eth0"},
			{Class: "vnicEther", Dn: "org-root/ls-web/ether-eth1"},
		},
		"lsServer": {
			{Class: "lsServer", Dn: "org-root/ls-web"},
			{Class: "lsServer", Dn: "org-root/ls-web-2"},
		},
	})

	vnics := idx.Under("vnicEther", "org-root/ls-web")
	require.Len(t, vnics, 2)
	assert.Equal(t, "org-root/ls-web/ether-eth0", vnics[0].Dn)
	assert.Equal(t, "org-root/ls-web/ether-eth1", vnics[1].Dn)

	// The exact match is included even with the sibling adjacent.
	self := idx.Under("lsServer", "org-root/ls-web")
	require.Len(t, self, 1)
	assert.Equal(t, "org-root/ls-web", self[0].Dn)
}

func TestIndexByDnAndMatch(t *testing.T) {
	idx := testIndex()

	r, ok := idx.ByDn("sys/chassis-1/blade-2")
	require.True(t, ok)
	assert.Equal(t, "computeBlade", r.Class)

	_, ok = idx.ByDn("sys/chassis-99")
	assert.False(t, ok)

	dnRe := regexp.MustCompile(`^sys/chassis-1/`)
	rnRe := regexp.MustCompile(`^mem-\d+$`)
	got := idx.Match("memoryUnit", dnRe, rnRe)
	assert.Len(t, got, 2)

	// nil patterns match everything
	assert.Len(t, idx.Match("memoryUnit", nil, nil), 3)
}
