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
)

// BuildProfiles builds one entry per service profile or template.
func BuildProfiles(idx *record.Index) []report.Profile {
	out := []report.Profile{}
	for _, sp := range idx.Class(fabric.ClassServiceProfile) {
		out = append(out, report.Profile{
			Name:           sp.StrOr("name", sp.Rn()),
			Dn:             sp.Dn,
			Type:           sp.StrOr("type", "instance"),
			AssocState:     sp.Str("assocState"),
			AssignState:    sp.Str("assignState"),
			ConfigState:    sp.Str("configState"),
			BoundTemplate:  sp.Str("srcTemplName"),
			AssignedServer: sp.Str("pnDn"),
			OperState:      sp.Str("operState"),
		})
	}
	sortByName(out, func(p report.Profile) string { return p.Dn })
	return out
}
