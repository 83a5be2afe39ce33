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

package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricsight/fabricsight/pkg/fabric"
	"github.com/fabricsight/fabricsight/pkg/record"
)

const bladeDn = "sys/chassis-1/blade-3"

func TestResolvePathsThreeHops(t *testing.T) {
	pathDn := bladeDn + "/fabric-A/path-1"
	idx := record.NewIndex(map[string][]record.Raw{
		fabric.ClassPathEndpoint: {
			{
				Dn: pathDn + "/mux-fabric",
				Attrs: map[string]string{
					"cType": "mux-fabric", "switchId": "A",
					"slotId": "1", "portId": "17",
					"peerSlotId": "0", "peerPortId": "0",
				},
			},
			{
				Dn: pathDn + "/fabric1-to-hostpc",
				Attrs: map[string]string{
					"cType": "mux", "chassisId": "1",
					"slotId": "1", "portId": "5",
				},
			},
			{
				Dn: pathDn + "/hostpc-to-adaptorpc",
				Attrs: map[string]string{
					"cType":      "mux",
					"peerSlotId": "2", "peerPortId": "1",
				},
			},
			// Network-facing endpoint on the same chain must be ignored.
			{
				Dn:    pathDn + "/mux-fabric-net",
				Attrs: map[string]string{"cType": "mux-fabric-net", "switchId": "A"},
			},
		},
		fabric.ClassVirtualCircuit: {
			{
				Dn: pathDn + "/vc-1330",
				Attrs: map[string]string{
					"vnic": "eth0", "id": "1330", "operState": "active",
					"switchId": "A", "operBorderSlotId": "0", "operBorderPortId": "1025",
				},
			},
		},
	})

	got := ResolvePaths(bladeDn, idx)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, "A/path-1", p.Name)
	assert.Equal(t, "2/1", p.AdapterPort)
	assert.Equal(t, "1/1/5", p.FexHostPort)
	assert.Equal(t, "A/1/17", p.SwitchPort)

	require.Len(t, p.Circuits, 1)
	assert.Equal(t, Circuit{Name: "eth0", ID: "1330", State: "active", Uplink: "A/PC-1025"}, p.Circuits[0])
}

func TestResolvePathsDirectAttach(t *testing.T) {
	pathDn := "sys/rack-unit-2/fabric-B/path-1"
	idx := record.NewIndex(map[string][]record.Raw{
		fabric.ClassPathEndpoint: {
			{
				Dn: pathDn + "/mux-fabric",
				Attrs: map[string]string{
					"cType": "mux-fabric", "switchId": "B",
					"slotId": "2", "portId": "4",
					"peerSlotId": "1", "peerPortId": "2",
				},
			},
		},
	})

	got := ResolvePaths("sys/rack-unit-2", idx)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, "B/path-1", p.Name)
	// No intermediate hops: the adapter comes from the endpoint's own
	// peer fields, and there is no fabric-extender port.
	assert.Equal(t, "1/2", p.AdapterPort)
	assert.Equal(t, NotAvailable, p.FexHostPort)
	assert.Equal(t, "B/2/4", p.SwitchPort)
	assert.NotNil(t, p.Circuits)
	assert.Empty(t, p.Circuits)
}

func TestResolvePathsAbsentPeerDataRendersNA(t *testing.T) {
	pathDn := bladeDn + "/fabric-A/path-2"
	idx := record.NewIndex(map[string][]record.Raw{
		fabric.ClassPathEndpoint: {
			{
				Dn:    pathDn + "/mux-fabric",
				Attrs: map[string]string{"cType": "mux-fabric", "switchId": "A"},
			},
		},
	})

	got := ResolvePaths(bladeDn, idx)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, NotAvailable, p.AdapterPort)
	assert.Equal(t, NotAvailable, p.FexHostPort)
	assert.Equal(t, "A/"+NotAvailable, p.SwitchPort)
}

func TestRenderPortChannelBoundary(t *testing.T) {
	tests := []struct {
		name       string
		slot, port int
		want       string
	}{
		{"physical port", 1, 17, "1/17"},
		{"at threshold still physical", 0, 1000, "0/1000"},
		{"above threshold is a port-channel", 0, 1001, "PC-1001"},
		{"port-channel ignores slot", 3, 1289, "PC-1289"},
		{"zero pair is unknown", 0, 0, NotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderPort(tt.slot, tt.port))
		})
	}
}

func TestRenderUplinkPinningClasses(t *testing.T) {
	tests := []struct {
		name       string
		slot, port int
		want       string
	}{
		{"pinned to port-channel", 0, 3, "A/PC-3"},
		{"unpinned", 0, 0, Unpinned},
		{"pinned to uplink port", 1, 9, "A/1/9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderUplink("A", tt.slot, tt.port))
		})
	}
}

func TestResolvePathsNoEndpoints(t *testing.T) {
	got := ResolvePaths(bladeDn, record.NewIndex(nil))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
