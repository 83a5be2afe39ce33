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
	"regexp"
	"sort"

	"github.com/fabricsight/fabricsight/pkg/fabric"
	"github.com/fabricsight/fabricsight/pkg/record"
	"github.com/fabricsight/fabricsight/pkg/report"
	"github.com/fabricsight/fabricsight/pkg/stats"
	"github.com/fabricsight/fabricsight/pkg/version"
)

// Counter field lists requested per device kind. The filter projects
// every listed field, zero-filled when absent.
var (
	fiStatFields     = []string{stats.IdentifierField, "load", "memAvailable", "memCached"}
	chassisStatField = []string{stats.IdentifierField, "inputPower", "inputPowerAvg", "outputPower"}
	powerStatFields  = []string{stats.IdentifierField, "consumedPower", "inputCurrent", "inputVoltage"}
	tempStatFields   = []string{stats.IdentifierField, "fmTempSenIo", "fmTempSenRear", "fpTempSenIo"}
)

// BuildFabricInterconnects builds one entry per network element with its
// switch cards, firmware, and system counters.
func BuildFabricInterconnects(idx *record.Index, cache *stats.Cache) []report.FabricInterconnect {
	out := []report.FabricInterconnect{}
	for _, ne := range idx.Class(fabric.ClassNetworkElement) {
		fi := report.FabricInterconnect{
			ID:          ne.Str("id"),
			Model:       ne.Str("model"),
			Serial:      ne.Str("serial"),
			Revision:    ne.Str("revision"),
			OobAddress:  ne.Str("oobIfIp"),
			MemoryGB:    mbToGB(ne.Int64("totalMemory")),
			Operability: ne.Str("operability"),
			Firmware:    switchFirmware(idx, ne.Dn),
			Cards:       []report.SwitchCard{},
		}
		for _, card := range idx.Under(fabric.ClassSwitchCard, ne.Dn) {
			fi.Cards = append(fi.Cards, report.SwitchCard{
				ID:       card.Int("id"),
				Model:    modelOrEmpty(card.Str("model")),
				Serial:   card.Str("serial"),
				State:    card.Str("operState"),
				NumPorts: card.Int("numPorts"),
			})
		}
		sort.Slice(fi.Cards, func(i, j int) bool { return fi.Cards[i].ID < fi.Cards[j].ID })
		fi.SystemStats = firstCounter(cache.Filter(
			"^"+regexp.QuoteMeta(ne.Dn)+"/", "^sysstats$", fiStatFields))
		out = append(out, fi)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// switchFirmware finds the running system firmware version under a
// switch DN, normalized through the lenient version parser.
func switchFirmware(idx *record.Index, switchDn string) string {
	for _, fw := range idx.Under(fabric.ClassFirmware, switchDn) {
		if fw.Str("type") != "system" {
			continue
		}
		if raw := fw.Str("version"); raw != "" {
			return version.ParseLenient(raw).Full()
		}
	}
	return ""
}

// BuildChassis builds one entry per chassis with PSUs, fans, and I/O
// modules resolved by DN containment.
func BuildChassis(idx *record.Index, cache *stats.Cache) []report.Chassis {
	out := []report.Chassis{}
	for _, ch := range idx.Class(fabric.ClassChassis) {
		c := report.Chassis{
			ID:        ch.Int("id"),
			Model:     ch.Str("model"),
			Serial:    ch.Str("serial"),
			OperState: ch.Str("operState"),
			Power:     ch.Str("power"),
			Thermal:   ch.Str("thermal"),
			Psus:      []report.Psu{},
			Fans:      []report.Fan{},
			IOModules: []report.IOModule{},
		}
		for _, psu := range idx.Under(fabric.ClassPsu, ch.Dn) {
			c.Psus = append(c.Psus, report.Psu{
				ID:        psu.Int("id"),
				Model:     modelOrEmpty(psu.Str("model")),
				Serial:    psu.Str("serial"),
				OperState: psu.Str("operState"),
			})
		}
		for _, fan := range idx.Under(fabric.ClassFan, ch.Dn) {
			c.Fans = append(c.Fans, report.Fan{
				ID:        fan.Int("id"),
				Module:    fan.Int("module"),
				OperState: fan.Str("operState"),
			})
		}
		for _, iom := range idx.Under(fabric.ClassIOCard, ch.Dn) {
			c.IOModules = append(c.IOModules, report.IOModule{
				ID:        iom.Int("id"),
				Model:     modelOrEmpty(iom.Str("model")),
				Serial:    iom.Str("serial"),
				Side:      iom.Str("side"),
				Fabric:    iom.Str("switchId"),
				OperState: iom.Str("operState"),
			})
		}
		sortByID(c.Psus, func(p report.Psu) int { return p.ID })
		sortByID(c.Fans, func(f report.Fan) int { return f.ID })
		sortByID(c.IOModules, func(m report.IOModule) int { return m.ID })

		c.Stats = firstCounter(cache.Filter(
			"^"+regexp.QuoteMeta(ch.Dn)+"/stats$", ".", chassisStatField))
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BuildServers builds one entry per blade and rack unit with the full
// sub-inventory: CPUs, DIMMs, adapters, and local disks.
func BuildServers(idx *record.Index, cache *stats.Cache, cat *Catalog) []report.Server {
	out := []report.Server{}
	for _, b := range idx.Class(fabric.ClassBlade) {
		out = append(out, buildServer(b, report.ServerTypeBlade, idx, cache, cat))
	}
	for _, r := range idx.Class(fabric.ClassRackUnit) {
		out = append(out, buildServer(r, report.ServerTypeRack, idx, cache, cat))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dn < out[j].Dn })
	return out
}

func buildServer(r record.Raw, serverType string, idx *record.Index, cache *stats.Cache, cat *Catalog) report.Server {
	s := report.Server{
		Dn:              r.Dn,
		Name:            r.Str("name"),
		Type:            serverType,
		ChassisID:       r.Int("chassisId"),
		SlotID:          r.Int("slotId"),
		Model:           r.Str("model"),
		Serial:          r.Str("serial"),
		OperState:       r.Str("operState"),
		OperPower:       r.Str("operPower"),
		AssignedProfile: r.Str("assignedToDn"),
		NumCpus:         r.Int("numOfCpus"),
		NumCores:        r.Int("numOfCores"),
		MemoryGB:        mbToGB(r.Int64("totalMemory")),
		Cpus:            []report.Cpu{},
		Memory:          []report.MemoryUnit{},
		Adapters:        []report.Adapter{},
		Disks:           []report.Disk{},
	}

	for _, cpu := range idx.Under(fabric.ClassProcessor, r.Dn) {
		s.Cpus = append(s.Cpus, report.Cpu{
			ID:       cpu.Int("id"),
			Model:    cat.CommonName(cpu.Str("model")),
			Cores:    cpu.Int("cores"),
			Threads:  cpu.Int("threads"),
			SpeedGHz: round2(cpu.Float64("speed")),
			State:    cpu.Str("operState"),
		})
	}
	for _, dimm := range idx.Under(fabric.ClassMemoryUnit, r.Dn) {
		s.Memory = append(s.Memory, report.MemoryUnit{
			ID:         dimm.Int("id"),
			Location:   dimm.Str("location"),
			Model:      modelOrEmpty(dimm.Str("model")),
			CapacityGB: mbToGB(dimm.Int64("capacity")),
			ClockMHz:   dimm.Int("clock"),
			State:      dimm.StrOr("operState", report.Empty),
		})
	}
	for _, ad := range idx.Under(fabric.ClassAdaptor, r.Dn) {
		s.Adapters = append(s.Adapters, report.Adapter{
			ID:     ad.Int("id"),
			Model:  cat.CommonName(ad.Str("model")),
			Serial: ad.Str("serial"),
			State:  ad.Str("operState"),
		})
	}
	for _, disk := range idx.Under(fabric.ClassLocalDisk, r.Dn) {
		s.Disks = append(s.Disks, report.Disk{
			ID:         disk.Int("id"),
			Controller: record.Segment(disk.Dn, -2),
			Model:      cat.CommonName(stripVendor(disk.Str("model"), disk.Str("vendor"))),
			Serial:     disk.Str("serial"),
			SizeGB:     mbToGB(disk.Int64("size")),
			State:      disk.Str("operability"),
		})
	}
	sortByID(s.Cpus, func(c report.Cpu) int { return c.ID })
	sortByID(s.Memory, func(m report.MemoryUnit) int { return m.ID })
	sortByID(s.Adapters, func(a report.Adapter) int { return a.ID })
	sortByID(s.Disks, func(d report.Disk) int { return d.ID })

	dn := regexp.QuoteMeta(r.Dn)
	s.PowerStats = firstCounter(cache.Filter("^"+dn+"/board/power-stats$", ".", powerStatFields))
	s.TempStats = firstCounter(cache.Filter("^"+dn+"/board/temp-stats$", ".", tempStatFields))
	return s
}

// BuildInventory composes the three equipment sections.
func BuildInventory(idx *record.Index, cache *stats.Cache, cat *Catalog) report.Inventory {
	return report.Inventory{
		FabricInterconnects: BuildFabricInterconnects(idx, cache),
		Chassis:             BuildChassis(idx, cache),
		Servers:             BuildServers(idx, cache, cat),
	}
}

// firstCounter returns the first filtered counter, or a zero-shaped one
// so device sections always carry the stats key.
func firstCounter(cs []stats.Counter) stats.Counter {
	if len(cs) > 0 {
		return cs[0]
	}
	return stats.Counter{Values: map[string]string{}}
}

func sortByID[T any](s []T, id func(T) int) {
	sort.SliceStable(s, func(i, j int) bool { return id(s[i]) < id(s[j]) })
}
