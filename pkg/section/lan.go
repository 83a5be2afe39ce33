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

package section

import (
	"github.com/fabricsight/fabricsight/pkg/fabric"
	"github.com/fabricsight/fabricsight/pkg/record"
	"github.com/fabricsight/fabricsight/pkg/report"
	"github.com/fabricsight/fabricsight/pkg/stats"
	"github.com/fabricsight/fabricsight/pkg/topology"
)

var etherCounterFields = []string{stats.IdentifierField, "totalBytes", "totalPackets", "jumboPackets"}

// BuildLan builds the Ethernet connectivity section: VLANs, vNICs, the
// per-server VIF paths, uplink port-channels, and port counters.
func BuildLan(idx *record.Index, cache *stats.Cache) report.Lan {
	l := report.Lan{
		Vlans:        []report.Vlan{},
		Vnics:        []report.Vnic{},
		VifPaths:     []report.ServerVifPaths{},
		PortChannels: []report.PortChannel{},
	}

	for _, v := range idx.Class(fabric.ClassVlan) {
		l.Vlans = append(l.Vlans, report.Vlan{
			ID:     v.Int("id"),
			Name:   v.Str("name"),
			Fabric: v.Str("switchId"),
			State:  v.Str("operState"),
		})
	}
	sortByID(l.Vlans, func(v report.Vlan) int { return v.ID })

	for _, vn := range idx.Class(fabric.ClassVnicEther) {
		l.Vnics = append(l.Vnics, report.Vnic{
			Name:    vn.StrOr("name", vn.Rn()),
			Profile: record.Parent(vn.Dn),
			Mac:     vn.Str("addr"),
			Fabric:  vn.Str("switchId"),
			Mtu:     vn.Int("mtu"),
		})
	}
	sortByName(l.Vnics, func(v report.Vnic) string { return v.Profile + "/" + v.Name })

	for _, dn := range serverDns(idx) {
		paths := topology.ResolvePaths(dn, idx)
		if len(paths) == 0 {
			continue
		}
		l.VifPaths = append(l.VifPaths, report.ServerVifPaths{ServerDn: dn, Paths: paths})
	}

	for _, pc := range idx.Class(fabric.ClassEthPortChannel) {
		l.PortChannels = append(l.PortChannels, report.PortChannel{
			ID:        pc.Int("portId"),
			Name:      pc.Str("name"),
			Fabric:    pc.Str("switchId"),
			OperState: pc.Str("operState"),
			OperSpeed: pc.Str("operSpeed"),
		})
	}
	sortByID(l.PortChannels, func(p report.PortChannel) int { return p.ID })

	l.RxCounters = cache.Filter(`^sys/switch-`, `^rx-stats$`, etherCounterFields)
	l.TxCounters = cache.Filter(`^sys/switch-`, `^tx-stats$`, etherCounterFields)
	return l
}

// serverDns enumerates blade and rack-unit DNs in index order.
func serverDns(idx *record.Index) []string {
	var dns []string
	for _, class := range []string{fabric.ClassBlade, fabric.ClassRackUnit} {
		for _, r := range idx.Class(class) {
			dns = append(dns, r.Dn)
		}
	}
	return dns
}
