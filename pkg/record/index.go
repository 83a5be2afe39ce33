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
	"sort"
	"strings"
)

// Index is a read-only, pass-scoped view over the record collections
// pulled for one domain. It is built once after the pull phase and shared
// by every section builder; collections are never mutated afterwards.
//
// Per class, records are held sorted by DN so ancestor scans are binary
// searches over a contiguous range instead of full-collection rescans.
type Index struct {
	byClass map[string][]Raw // sorted by Dn within each class
	byDn    map[string]Raw
}

// NewIndex builds an Index from per-class record collections. Input slices
// are copied; the caller may discard them.
func NewIndex(collections map[string][]Raw) *Index {
	idx := &Index{
		byClass: make(map[string][]Raw, len(collections)),
		byDn:    make(map[string]Raw),
	}
	for class, records := range collections {
		sorted := make([]Raw, len(records))
		copy(sorted, records)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Dn < sorted[j].Dn })
		idx.byClass[class] = sorted
		for _, r := range sorted {
			idx.byDn[r.Dn] = r
		}
	}
	return idx
}

// Class returns all records of the given class, sorted by DN. The returned
// slice is shared and must not be mutated.
func (x *Index) Class(class string) []Raw {
	return x.byClass[class]
}

// Classes returns the class identifiers present in the index.
func (x *Index) Classes() []string {
	out := make([]string, 0, len(x.byClass))
	for c := range x.byClass {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ByDn returns the record with the exact DN, if present in any class.
func (x *Index) ByDn(dn string) (Raw, bool) {
	r, ok := x.byDn[dn]
	return r, ok
}

// Under returns all records of class whose DN equals prefix or sits below
// it in the containment tree.
func (x *Index) Under(class, prefix string) []Raw {
	records := x.byClass[class]
	if len(records) == 0 {
		return nil
	}
	if prefix == "" {
		return records
	}

	var out []Raw

	// The exact match sits before any sibling DN that merely extends the
	// last segment (e.g. "blade-1" vs "blade-10"), so look it up first.
	at := sort.Search(len(records), func(i int) bool { return records[i].Dn >= prefix })
	if at < len(records) && records[at].Dn == prefix {
		out = append(out, records[at])
	}

	// Descendant DNs all start with prefix+"/" and form one contiguous
	// DN-sorted range. Siblings such as "blade-1-x" sort between the prefix
	// and that range and must not end the scan, so anchor the search at the
	// separator.
	sub := prefix + dnSep
	start := sort.Search(len(records), func(i int) bool { return records[i].Dn >= sub })
	for i := start; i < len(records); i++ {
		if !strings.HasPrefix(records[i].Dn, sub) {
			break
		}
		out = append(out, records[i])
	}
	return out
}

// Match returns all records of class whose DN matches dnRe and whose RN
// matches rnRe. Nil patterns match everything.
func (x *Index) Match(class string, dnRe, rnRe *regexp.Regexp) []Raw {
	var out []Raw
	for _, r := range x.byClass[class] {
		if dnRe != nil && !dnRe.MatchString(r.Dn) {
			continue
		}
		if rnRe != nil && !rnRe.MatchString(r.Rn()) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Count returns the number of records of the given class.
func (x *Index) Count(class string) int {
	return len(x.byClass[class])
}
