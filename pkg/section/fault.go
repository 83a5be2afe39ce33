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

// severityRank orders faults most severe first; unknown severities sink
// to the bottom without being dropped.
var severityRank = map[string]int{
	"critical": 0,
	"major":    1,
	"minor":    2,
	"warning":  3,
	"info":     4,
	"cleared":  5,
}

// BuildFaults normalizes the active fault table, ordered by severity
// then affected DN.
func BuildFaults(idx *record.Index) []report.Fault {
	out := []report.Fault{}
	for _, f := range idx.Class(fabric.ClassFault) {
		out = append(out, report.Fault{
			Severity:    f.StrOr("severity", "info"),
			Code:        f.Str("code"),
			Description: f.Str("descr"),
			Dn:          record.Parent(f.Dn),
			Created:     f.Str("created"),
			Acked:       f.Bool("ack"),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, ok := severityRank[out[i].Severity]
		if !ok {
			ri = len(severityRank)
		}
		rj, ok := severityRank[out[j].Severity]
		if !ok {
			rj = len(severityRank)
		}
		if ri != rj {
			return ri < rj
		}
		return out[i].Dn < out[j].Dn
	})
	return out
}
