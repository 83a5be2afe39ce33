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
)

var fcCounterFields = []string{stats.IdentifierField, "bytesRx", "bytesTx", "crcRx"}

// BuildSan builds the Fibre Channel connectivity section: VSANs, vHBAs,
// FC uplink ports, and port counters.
func BuildSan(idx *record.Index, cache *stats.Cache) report.San {
	s := report.San{
		Vsans:   []report.Vsan{},
		Vhbas:   []report.Vhba{},
		Uplinks: []report.FcUplink{},
	}

	for _, v := range idx.Class(fabric.ClassVsan) {
		s.Vsans = append(s.Vsans, report.Vsan{
			ID:     v.Int("id"),
			Name:   v.Str("name"),
			Fabric: v.Str("switchId"),
			State:  v.Str("operState"),
		})
	}
	sortByID(s.Vsans, func(v report.Vsan) int { return v.ID })

	for _, vh := range idx.Class(fabric.ClassVnicFc) {
		s.Vhbas = append(s.Vhbas, report.Vhba{
			Name:    vh.StrOr("name", vh.Rn()),
			Profile: record.Parent(vh.Dn),
			Wwpn:    vh.Str("addr"),
			Fabric:  vh.Str("switchId"),
		})
	}
	sortByName(s.Vhbas, func(v report.Vhba) string { return v.Profile + "/" + v.Name })

	for _, p := range idx.Class(fabric.ClassFcPort) {
		s.Uplinks = append(s.Uplinks, report.FcUplink{
			Dn:        p.Dn,
			Fabric:    p.Str("switchId"),
			SlotID:    p.Int("slotId"),
			PortID:    p.Int("portId"),
			Wwn:       p.Str("wwn"),
			OperState: p.Str("operState"),
			OperSpeed: p.Str("operSpeed"),
		})
	}
	sortByName(s.Uplinks, func(u report.FcUplink) string { return u.Dn })

	s.Counters = cache.Filter(`^sys/switch-`, `^fc-stats$`, fcCounterFields)
	return s
}
