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

	"github.com/fabricsight/fabricsight/pkg/boot"
	"github.com/fabricsight/fabricsight/pkg/fabric"
	"github.com/fabricsight/fabricsight/pkg/record"
	"github.com/fabricsight/fabricsight/pkg/report"
)

// BuildPolicies builds the configuration-policy section: boot order
// trees, firmware packs, scrub and maintenance policies, and identity
// pool usage.
func BuildPolicies(idx *record.Index) report.Policies {
	p := report.Policies{
		Boot:          boot.AssembleBootOrder(idx),
		FirmwarePacks: []report.FirmwarePack{},
		Scrub:         []report.ScrubPolicy{},
		Maintenance:   []report.MaintenancePolicy{},
		Pools: report.Pools{
			Mac:    poolUsage(idx, fabric.ClassMacPool),
			Wwn:    poolUsage(idx, fabric.ClassWwnPool),
			Uuid:   poolUsage(idx, fabric.ClassUuidPool),
			Server: poolUsage(idx, fabric.ClassServerPool),
		},
	}

	for _, fw := range idx.Class(fabric.ClassFirmwarePack) {
		p.FirmwarePacks = append(p.FirmwarePacks, report.FirmwarePack{
			Name:        fw.StrOr("name", fw.Rn()),
			Dn:          fw.Dn,
			Description: fw.Str("descr"),
			BladeBundle: fw.Str("bladeBundleVersion"),
			RackBundle:  fw.Str("rackBundleVersion"),
		})
	}
	for _, sc := range idx.Class(fabric.ClassScrubPolicy) {
		p.Scrub = append(p.Scrub, report.ScrubPolicy{
			Name:      sc.StrOr("name", sc.Rn()),
			Dn:        sc.Dn,
			DiskScrub: sc.Bool("diskScrub"),
			BiosScrub: sc.Bool("biosSettingsScrub"),
		})
	}
	for _, m := range idx.Class(fabric.ClassMaintPolicy) {
		p.Maintenance = append(p.Maintenance, report.MaintenancePolicy{
			Name:   m.StrOr("name", m.Rn()),
			Dn:     m.Dn,
			Policy: m.Str("uptimeDisr"),
		})
	}

	sortByName(p.FirmwarePacks, func(f report.FirmwarePack) string { return f.Name })
	sortByName(p.Scrub, func(s report.ScrubPolicy) string { return s.Name })
	sortByName(p.Maintenance, func(m report.MaintenancePolicy) string { return m.Name })
	return p
}

func poolUsage(idx *record.Index, class string) []report.PoolUsage {
	out := []report.PoolUsage{}
	for _, pool := range idx.Class(class) {
		out = append(out, report.PoolUsage{
			Name:     pool.StrOr("name", pool.Rn()),
			Dn:       pool.Dn,
			Size:     pool.Int("size"),
			Assigned: pool.Int("assigned"),
		})
	}
	sortByName(out, func(p report.PoolUsage) string { return p.Name })
	return out
}

func sortByName[T any](s []T, name func(T) string) {
	sort.SliceStable(s, func(i, j int) bool { return name(s[i]) < name(s[j]) })
}
