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

// Package section builds the report sub-trees from pulled record
// collections.
//
// Builders are pure functions over a record index plus the pass-scoped
// counter cache. They share three conventions: list fields default to
// empty slices, capability-catalog lookups replace raw part numbers with
// vendor-stripped common names, and KB/MB capacities convert to GB at
// the builder boundary. Absent data degrades to zero values or the
// "empty" sentinel, never to an error.
package section

import (
	"math"
	"strings"

	"github.com/fabricsight/fabricsight/pkg/fabric"
	"github.com/fabricsight/fabricsight/pkg/record"
	"github.com/fabricsight/fabricsight/pkg/report"
)

// Catalog resolves raw part identifiers to display names using the
// domain's capability-catalog records. Lookups that miss fall through to
// the raw identifier, so a stale catalog never blanks a report field.
type Catalog struct {
	names map[string]string
}

// NewCatalog indexes the manufacturing and physical capability records.
func NewCatalog(idx *record.Index) *Catalog {
	c := &Catalog{names: map[string]string{}}
	for _, class := range []string{fabric.ClassMfgDef, fabric.ClassPhysicalDef, fabric.ClassLocalDiskDef} {
		for _, r := range idx.Class(class) {
			pid := r.Str("pid")
			if pid == "" {
				continue
			}
			name := r.Str("name")
			if name == "" {
				continue
			}
			c.names[pid] = stripVendor(name, r.Str("vendor"))
		}
	}
	return c
}

// CommonName returns the catalog display name for a part identifier, or
// the identifier itself when the catalog has no entry.
func (c *Catalog) CommonName(pid string) string {
	if c == nil {
		return pid
	}
	if name, ok := c.names[pid]; ok {
		return name
	}
	return pid
}

// stripVendor removes a leading vendor prefix from a catalog name. The
// vendor string itself is tried first, then its first word (catalogs
// often abbreviate "Cisco Systems Inc" to "Cisco" in names).
func stripVendor(name, vendor string) string {
	if vendor == "" {
		return name
	}
	for _, prefix := range []string{vendor, strings.Fields(vendor)[0]} {
		if rest := strings.TrimPrefix(name, prefix); rest != name {
			return strings.TrimSpace(rest)
		}
	}
	return name
}

// modelOrEmpty applies the vacant-slot sentinel: a device record with no
// model reports "empty" rather than a blank.
func modelOrEmpty(model string) string {
	if strings.TrimSpace(model) == "" {
		return report.Empty
	}
	return model
}

// mbToGB converts a capacity reported in MB to GB, rounded to two
// decimals. Non-numeric capacities ("unspecified" on vacant slots)
// convert to zero.
func mbToGB(mb int64) float64 {
	return round2(float64(mb) / 1024)
}

// kbToGB converts a capacity reported in KB to GB, rounded to two
// decimals.
func kbToGB(kb int64) float64 {
	return round2(float64(kb) / (1024 * 1024))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
