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
	"sort"

	"github.com/fabricsight/fabricsight/pkg/fabric"
	"github.com/fabricsight/fabricsight/pkg/record"
	"github.com/fabricsight/fabricsight/pkg/report"
)

// BuildSystem builds the domain identity section from the singleton
// system record, the management entities, and the switch OOB addresses.
func BuildSystem(idx *record.Index) report.System {
	s := report.System{
		ClusterState: "unknown",
		Addresses:    []report.MgmtAddress{},
	}

	if sys, ok := first(idx, fabric.ClassSystem); ok {
		s.Name = sys.Str("name")
		s.Descr = sys.Str("descr")
		s.Mode = sys.Str("mode")
		s.VirtualIP = sys.Str("address")
		s.Uptime = sys.Str("systemUpTime")
		s.Owner = sys.Str("owner")
		s.Site = sys.Str("site")
		s.ClusterState = sys.StrOr("haReadiness", "unknown")
	}

	leadership := map[string]string{}
	for _, me := range idx.Class(fabric.ClassMgmtEntity) {
		if id := me.Str("id"); id != "" {
			leadership[id] = me.StrOr("leadership", "unknown")
		}
	}
	if len(leadership) > 0 {
		s.Leadership = leadership
	}

	for _, ne := range idx.Class(fabric.ClassNetworkElement) {
		s.Addresses = append(s.Addresses, report.MgmtAddress{
			Fabric:  ne.Str("id"),
			Address: ne.Str("oobIfIp"),
		})
	}
	sort.Slice(s.Addresses, func(i, j int) bool { return s.Addresses[i].Fabric < s.Addresses[j].Fabric })
	return s
}

// first returns the first record of a class, for singleton collections.
func first(idx *record.Index, class string) (record.Raw, bool) {
	rs := idx.Class(class)
	if len(rs) == 0 {
		return record.Raw{}, false
	}
	return rs[0], true
}
