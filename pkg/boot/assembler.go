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

// Package boot rebuilds ordered boot-device trees from the flat,
// type-tagged child records the management API returns under each boot
// policy.
//
// The API flattens a 1-3 level tree into independent record collections
// related only by DN containment. The assembler re-nests them: each
// top-level child becomes one Entry whose shape depends on its type tag,
// and the final entry list is always sorted by the boot order value
// regardless of the order records were pulled in.
package boot

import (
	"sort"
	"strings"

	"github.com/fabricsight/fabricsight/pkg/fabric"
	"github.com/fabricsight/fabricsight/pkg/record"
)

// Recognized boot entry type tags.
const (
	TypeStorage      = "storage"
	TypeVirtualMedia = "virtual-media"
	TypeLan          = "lan"
	TypeSan          = "san"
	TypeIscsi        = "iscsi"

	// TypeUnrecognized marks entries whose type tag the assembler does not
	// know. The raw tag is preserved so the report surfaces new device
	// kinds instead of silently dropping them.
	TypeUnrecognized = "unrecognized"
)

// Media kinds derived from the virtual-media access mode. The raw API
// reports access, not media kind, so the type is re-derived here.
const (
	mediaCdDvd  = "CD/DVD"
	mediaFloppy = "Floppy"
	accessRead  = "read-only"
)

// Level1 is the top-level boot entry: the device type and its position in
// the boot order. Access is set for virtual media only. RawType carries
// the original tag for unrecognized entries.
type Level1 struct {
	Type    string `json:"type" yaml:"type"`
	Order   int    `json:"order" yaml:"order"`
	Access  string `json:"access,omitempty" yaml:"access,omitempty"`
	RawType string `json:"rawType,omitempty" yaml:"rawType,omitempty"`
}

// Level2 is a second-level child: a vNIC reference for lan/iscsi entries,
// or a SAN image group. SAN image paths nest under the image group that
// owns them; two vNICs never share a path list.
type Level2 struct {
	VnicName      string   `json:"vnicName,omitempty" yaml:"vnicName,omitempty"`
	ISCSIVnicName string   `json:"iscsiVnicName,omitempty" yaml:"iscsiVnicName,omitempty"`
	Type          string   `json:"type" yaml:"type"`
	Paths         []Level3 `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// Level3 is a third-level child: one SAN image path.
type Level3 struct {
	Lun  string `json:"lun" yaml:"lun"`
	Type string `json:"type" yaml:"type"`
	Wwn  string `json:"wwn" yaml:"wwn"`
}

// Entry is one assembled boot device with up to two levels of children.
type Entry struct {
	Level1 Level1   `json:"level1" yaml:"level1"`
	Level2 []Level2 `json:"level2,omitempty" yaml:"level2,omitempty"`
}

// Policy is one boot policy with its assembled, ordered entries.
type Policy struct {
	Name           string  `json:"name" yaml:"name"`
	Dn             string  `json:"dn" yaml:"dn"`
	Description    string  `json:"description,omitempty" yaml:"description,omitempty"`
	RebootOnUpdate bool    `json:"rebootOnUpdate" yaml:"rebootOnUpdate"`
	Entries        []Entry `json:"entries" yaml:"entries"`
}

// childClasses are the collections holding top-level boot children.
var childClasses = []string{
	fabric.ClassBootStorage,
	fabric.ClassBootVMedia,
	fabric.ClassBootLan,
	fabric.ClassBootSan,
	fabric.ClassBootIscsi,
}

// AssembleBootOrder builds every boot policy in the index.
func AssembleBootOrder(idx *record.Index) []Policy {
	policies := []Policy{}
	for _, p := range idx.Class(fabric.ClassBootPolicy) {
		var children []record.Raw
		for _, class := range childClasses {
			children = append(children, idx.Under(class, p.Dn)...)
		}
		policies = append(policies, Policy{
			Name:           p.StrOr("name", p.Rn()),
			Dn:             p.Dn,
			Description:    p.Str("descr"),
			RebootOnUpdate: p.Bool("rebootOnUpdate"),
			Entries:        AssembleEntries(children, idx),
		})
	}
	return policies
}

// AssembleEntries builds one entry per type-tagged child record and sorts
// the result ascending by boot order. Children of each entry are resolved
// by DN containment through the index.
func AssembleEntries(children []record.Raw, idx *record.Index) []Entry {
	entries := []Entry{}
	for _, child := range children {
		entries = append(entries, assembleEntry(child, idx))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Level1.Order < entries[j].Level1.Order
	})
	return entries
}

func assembleEntry(child record.Raw, idx *record.Index) Entry {
	typ := strings.TrimSpace(child.Str("type"))
	order := child.Int("order")

	switch typ {
	case TypeStorage:
		// Storage nests two containment levels below, but only the type
		// and order are reportable; the descendants carry no fields the
		// report keeps.
		return Entry{Level1: Level1{Type: TypeStorage, Order: order}}

	case TypeVirtualMedia:
		access := child.Str("access")
		kind := mediaFloppy
		if access == accessRead {
			kind = mediaCdDvd
		}
		return Entry{Level1: Level1{Type: kind, Order: order, Access: access}}

	case TypeLan:
		e := Entry{Level1: Level1{Type: TypeLan, Order: order}}
		e.Level2 = vnicChildren(child, idx, fabric.ClassBootLanPath, "vnicName", func(name string) Level2 {
			return Level2{VnicName: name, Type: TypeLan}
		})
		return e

	case TypeSan:
		e := Entry{Level1: Level1{Type: TypeSan, Order: order}}
		for _, image := range idx.Under(fabric.ClassBootSanImage, child.Dn) {
			group := Level2{
				VnicName: image.Str("vnicName"),
				Type:     image.StrOr("type", TypeSan),
			}
			for _, path := range idx.Under(fabric.ClassBootSanPath, image.Dn) {
				group.Paths = append(group.Paths, Level3{
					Lun:  path.Str("lun"),
					Type: path.StrOr("type", TypeSan),
					Wwn:  path.Str("wwn"),
				})
			}
			e.Level2 = append(e.Level2, group)
		}
		// Single-vNIC policies report the vNIC on the san record itself.
		if len(e.Level2) == 0 && child.Str("vnicName") != "" {
			e.Level2 = append(e.Level2, Level2{VnicName: child.Str("vnicName"), Type: TypeSan})
		}
		return e

	case TypeIscsi:
		e := Entry{Level1: Level1{Type: TypeIscsi, Order: order}}
		e.Level2 = vnicChildren(child, idx, "", "iSCSIVnicName", func(name string) Level2 {
			return Level2{ISCSIVnicName: name, Type: TypeIscsi}
		})
		return e

	default:
		return Entry{Level1: Level1{Type: TypeUnrecognized, Order: order, RawType: typ}}
	}
}

// vnicChildren collects vNIC references for an entry: one per child path
// record, falling back to the entry record's own vNIC attribute when the
// API reports it inline.
func vnicChildren(parent record.Raw, idx *record.Index, childClass, attr string, build func(string) Level2) []Level2 {
	var out []Level2
	if childClass != "" {
		for _, path := range idx.Under(childClass, parent.Dn) {
			if name := path.Str(attr); name != "" {
				out = append(out, build(name))
			}
		}
	}
	if len(out) == 0 {
		if name := parent.Str(attr); name != "" {
			out = append(out, build(name))
		}
	}
	return out
}
