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

// Package topology reconstructs virtual-interface paths from the flat
// path-endpoint records the management API returns.
//
// A VIF path connects a server adapter port, an optional fabric-extender
// host port, and a fabric-interconnect server port. The API reports each
// hop as an independent endpoint record; the only relationship between
// them is a shared DN prefix and role-encoding relative names. The
// resolver re-links the hops per server and attaches the virtual circuits
// pinned to each path.
package topology

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fabricsight/fabricsight/pkg/fabric"
	"github.com/fabricsight/fabricsight/pkg/record"
)

// NotAvailable is rendered for any hop field whose peer data is absent.
const NotAvailable = "N/A"

// Unpinned is rendered for circuits with no border-port pinning.
const Unpinned = "unpinned"

// portChannelThreshold separates physical port identifiers from
// port-channel identifiers: ids strictly above it denote port-channels.
const portChannelThreshold = 1000

// ctypeHostMux tags endpoints on the host-facing multiplexed fabric path.
// Other container types (switch-to-switch segments, network-facing mux
// ports) are not part of a server VIF path.
const ctypeHostMux = "mux-fabric"

var (
	reFexToHost     = regexp.MustCompile(`^fabric.*-to-hostpc$`)
	hostToAdapterRn = "hostpc-to-adaptorpc"
)

// Circuit is one virtual circuit pinned to a VIF path.
type Circuit struct {
	// Name is the owning vNIC/vHBA name.
	Name string `json:"name" yaml:"name"`
	ID   string `json:"id" yaml:"id"`
	// State is the circuit's operational state.
	State string `json:"state" yaml:"state"`
	// Uplink is the fabric-interconnect border-port pinning:
	// "<switch>/PC-<id>", "<switch>/<slot>/<port>", or "unpinned".
	Uplink string `json:"uplink" yaml:"uplink"`
}

// VifPath is one reconstructed multi-hop virtual-interface path.
type VifPath struct {
	// Name identifies the path within the domain, "<switch>/<path-rn>".
	Name string `json:"name" yaml:"name"`
	// AdapterPort is the server adapter end, "slot/port".
	AdapterPort string `json:"adapterPort" yaml:"adapterPort"`
	// FexHostPort is the fabric-extender host-facing port,
	// "chassis/slot/port", or N/A for direct-attach paths.
	FexHostPort string `json:"fexHostPort" yaml:"fexHostPort"`
	// SwitchPort is the fabric-interconnect server port,
	// "<switch>/<slot>/<port>" or "<switch>/PC-<id>".
	SwitchPort string `json:"switchPort" yaml:"switchPort"`

	Circuits []Circuit `json:"circuits" yaml:"circuits"`
}

// ResolvePaths rebuilds all VIF paths for one server from the domain's
// path-endpoint and virtual-circuit collections. Absent peer data renders
// N/A; the resolver tolerates zero, one, or multiple peer hops.
func ResolvePaths(serverDn string, idx *record.Index) []VifPath {
	paths := []VifPath{}

	for _, ep := range idx.Under(fabric.ClassPathEndpoint, serverDn) {
		if ep.Str("cType") != ctypeHostMux {
			continue
		}
		paths = append(paths, resolvePath(ep, idx))
	}
	return paths
}

func resolvePath(ep record.Raw, idx *record.Index) VifPath {
	switchID := ep.StrOr("switchId", NotAvailable)

	p := VifPath{
		Name:        switchID + "/" + record.Segment(ep.Dn, -2),
		AdapterPort: NotAvailable,
		FexHostPort: NotAvailable,
		SwitchPort:  renderScoped(switchID, ep.Int("slotId"), ep.Int("portId")),
		Circuits:    []Circuit{},
	}

	// Adjacent hops share the peer-chain prefix two segments up.
	chainPrefix := record.StripSegments(ep.Dn, 2)
	adapterHopSeen := false
	for _, hop := range idx.Under(fabric.ClassPathEndpoint, chainPrefix) {
		if hop.Dn == ep.Dn {
			continue
		}
		switch {
		case reFexToHost.MatchString(hop.Rn()):
			p.FexHostPort = renderScoped(hop.StrOr("chassisId", NotAvailable),
				hop.Int("slotId"), hop.Int("portId"))
		case hop.Rn() == hostToAdapterRn:
			p.AdapterPort = renderPort(hop.Int("peerSlotId"), hop.Int("peerPortId"))
			adapterHopSeen = true
		}
	}

	// Direct-attach: no intermediate fabric extender, the endpoint's own
	// peer fields point at the adapter.
	if !adapterHopSeen {
		p.AdapterPort = renderPort(ep.Int("peerSlotId"), ep.Int("peerPortId"))
	}

	pathPrefix := record.Parent(ep.Dn)
	for _, vc := range idx.Under(fabric.ClassVirtualCircuit, pathPrefix) {
		p.Circuits = append(p.Circuits, Circuit{
			Name:   vc.StrOr("vnic", NotAvailable),
			ID:     vc.StrOr("id", NotAvailable),
			State:  vc.StrOr("operState", NotAvailable),
			Uplink: renderUplink(vc.StrOr("switchId", switchID), vc.Int("operBorderSlotId"), vc.Int("operBorderPortId")),
		})
	}
	return p
}

// renderPort renders a slot/port pair. Port identifiers above the
// port-channel threshold denote a logical port-channel and render as
// PC-<id>; exactly at the threshold is still a physical port. Zero values
// mean the peer is unknown and render N/A.
func renderPort(slot, port int) string {
	if port > portChannelThreshold {
		return fmt.Sprintf("PC-%d", port)
	}
	if slot == 0 && port == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%d/%d", slot, port)
}

// renderScoped prefixes a rendered port with its owning scope (switch id
// or chassis id).
func renderScoped(scope string, slot, port int) string {
	if strings.TrimSpace(scope) == "" {
		scope = NotAvailable
	}
	return scope + "/" + renderPort(slot, port)
}

// renderUplink classifies a circuit's border-port pinning:
// port-channel (port set, slot zero), unpinned (both zero), or a
// specific uplink port.
func renderUplink(switchID string, borderSlot, borderPort int) string {
	switch {
	case borderPort > 0 && borderSlot == 0:
		return fmt.Sprintf("%s/PC-%d", switchID, borderPort)
	case borderPort == 0 && borderSlot == 0:
		return Unpinned
	default:
		return fmt.Sprintf("%s/%d/%d", switchID, borderSlot, borderPort)
	}
}
