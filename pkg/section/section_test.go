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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricsight/fabricsight/pkg/fabric"
	"github.com/fabricsight/fabricsight/pkg/record"
	"github.com/fabricsight/fabricsight/pkg/report"
	"github.com/fabricsight/fabricsight/pkg/stats"
)

func noStats() *stats.Cache {
	return stats.NewCache(nil)
}

func TestBuildSystem(t *testing.T) {
	idx := record.NewIndex(map[string][]record.Raw{
		fabric.ClassSystem: {
			{Dn: "sys", Attrs: map[string]string{
				"name": "lab-domain", "mode": "cluster", "address": "10.0.0.10",
				"systemUpTime": "112:04:01:22", "haReadiness": "ready",
			}},
		},
		fabric.ClassMgmtEntity: {
			{Dn: "sys/mgmt-entity-B", Attrs: map[string]string{"id": "B", "leadership": "subordinate"}},
			{Dn: "sys/mgmt-entity-A", Attrs: map[string]string{"id": "A", "leadership": "primary"}},
		},
		fabric.ClassNetworkElement: {
			{Dn: "sys/switch-B", Attrs: map[string]string{"id": "B", "oobIfIp": "10.0.0.12"}},
			{Dn: "sys/switch-A", Attrs: map[string]string{"id": "A", "oobIfIp": "10.0.0.11"}},
		},
	})

	got := BuildSystem(idx)
	assert.Equal(t, "lab-domain", got.Name)
	assert.Equal(t, "cluster", got.Mode)
	assert.Equal(t, "ready", got.ClusterState)
	assert.Equal(t, "10.0.0.10", got.VirtualIP)
	assert.Equal(t, map[string]string{"A": "primary", "B": "subordinate"}, got.Leadership)
	require.Len(t, got.Addresses, 2)
	assert.Equal(t, report.MgmtAddress{Fabric: "A", Address: "10.0.0.11"}, got.Addresses[0])
}

func TestBuildSystemEmptyDomain(t *testing.T) {
	got := BuildSystem(record.NewIndex(nil))
	assert.Equal(t, "unknown", got.ClusterState)
	assert.NotNil(t, got.Addresses)
	assert.Empty(t, got.Addresses)
}

func TestCatalogCommonNameStripsVendor(t *testing.T) {
	idx := record.NewIndex(map[string][]record.Raw{
		fabric.ClassMfgDef: {
			{Dn: "capabilities/ep/mfg-1", Attrs: map[string]string{
				"pid": "UCS-CPU-6248", "name": "Intel(R) Xeon(R) Gold 6248", "vendor": "Intel(R) Corporation",
			}},
		},
	})
	cat := NewCatalog(idx)

	assert.Equal(t, "Xeon(R) Gold 6248", cat.CommonName("UCS-CPU-6248"))
	// Miss falls through to the raw identifier.
	assert.Equal(t, "UCS-X-OTHER", cat.CommonName("UCS-X-OTHER"))
}

func TestBuildServersSubInventory(t *testing.T) {
	bladeDn := "sys/chassis-1/blade-2"
	idx := record.NewIndex(map[string][]record.Raw{
		fabric.ClassBlade: {
			{Dn: bladeDn, Attrs: map[string]string{
				"chassisId": "1", "slotId": "2", "model": "UCSB-B200-M5",
				"serial": "FCH123", "operState": "ok", "operPower": "on",
				"numOfCpus": "2", "numOfCores": "40", "totalMemory": "393216",
			}},
		},
		fabric.ClassMemoryUnit: {
			{Dn: bladeDn + "/board/memarray-1/mem-2", Attrs: map[string]string{
				"id": "2", "location": "DIMM_A2", "model": "", "capacity": "unspecified",
			}},
			{Dn: bladeDn + "/board/memarray-1/mem-1", Attrs: map[string]string{
				"id": "1", "location": "DIMM_A1", "model": "M393A4K40CB2",
				"capacity": "32768", "clock": "2933", "operState": "operable",
			}},
		},
		fabric.ClassLocalDisk: {
			{Dn: bladeDn + "/board/storage-SAS-1/disk-1", Attrs: map[string]string{
				"id": "1", "model": "INTEL SSDSC2BB480G7", "vendor": "INTEL",
				"size": "457862", "operability": "operable",
			}},
		},
	})

	got := BuildServers(idx, noStats(), NewCatalog(record.NewIndex(nil)))
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, report.ServerTypeBlade, s.Type)
	assert.Equal(t, 1, s.ChassisID)
	assert.Equal(t, 384.0, s.MemoryGB)

	// DIMMs sorted by id; vacant slot carries the empty sentinel and a
	// zero capacity.
	require.Len(t, s.Memory, 2)
	assert.Equal(t, "M393A4K40CB2", s.Memory[0].Model)
	assert.Equal(t, 32.0, s.Memory[0].CapacityGB)
	assert.Equal(t, report.Empty, s.Memory[1].Model)
	assert.Equal(t, 0.0, s.Memory[1].CapacityGB)

	require.Len(t, s.Disks, 1)
	assert.Equal(t, "storage-SAS-1", s.Disks[0].Controller)
	assert.Equal(t, "SSDSC2BB480G7", s.Disks[0].Model)
	assert.Equal(t, 447.13, s.Disks[0].SizeGB)

	// Stats keys are always present even with no telemetry match.
	assert.NotNil(t, s.PowerStats.Values)
}

func TestBuildChassisModules(t *testing.T) {
	chDn := "sys/chassis-1"
	idx := record.NewIndex(map[string][]record.Raw{
		fabric.ClassChassis: {
			{Dn: chDn, Attrs: map[string]string{
				"id": "1", "model": "UCSB-5108-AC2", "serial": "FOX456",
				"operState": "operable", "power": "ok", "thermal": "ok",
			}},
		},
		fabric.ClassPsu: {
			{Dn: chDn + "/psu-2", Attrs: map[string]string{"id": "2", "model": "", "operState": "removed"}},
			{Dn: chDn + "/psu-1", Attrs: map[string]string{"id": "1", "model": "UCSB-PSU-2500ACDV", "operState": "operable"}},
		},
		fabric.ClassIOCard: {
			{Dn: chDn + "/slot-1", Attrs: map[string]string{
				"id": "1", "model": "UCS-IOM-2208XP", "side": "left", "switchId": "A", "operState": "operable",
			}},
		},
	})

	got := BuildChassis(idx, noStats())
	require.Len(t, got, 1)

	c := got[0]
	require.Len(t, c.Psus, 2)
	assert.Equal(t, "UCSB-PSU-2500ACDV", c.Psus[0].Model)
	assert.Equal(t, report.Empty, c.Psus[1].Model)
	require.Len(t, c.IOModules, 1)
	assert.Equal(t, "A", c.IOModules[0].Fabric)
	assert.NotNil(t, c.Fans)
}

func TestBuildChassisSkipTelemetryStatsPerChassis(t *testing.T) {
	idx := record.NewIndex(map[string][]record.Raw{
		fabric.ClassChassis: {
			{Dn: "sys/chassis-1", Attrs: map[string]string{"id": "1", "serial": "FOX1"}},
			{Dn: "sys/chassis-2", Attrs: map[string]string{"id": "2", "serial": "FOX2"}},
		},
	})
	cache := stats.NewDisabledCache([]string{"sys/chassis-1", "sys/chassis-2"}, nil)

	got := BuildChassis(idx, cache)
	require.Len(t, got, 2)

	// Each chassis gets the placeholder for its own DN, not the
	// lexicographically first one.
	assert.Equal(t, "sys/chassis-1", got[0].Stats.Get("Dn"))
	assert.Equal(t, "sys/chassis-2", got[1].Stats.Get("Dn"))
	assert.Equal(t, "0", got[1].Stats.Get("inputPower"))
}

func TestBuildPoliciesPools(t *testing.T) {
	idx := record.NewIndex(map[string][]record.Raw{
		fabric.ClassMacPool: {
			{Dn: "org-root/mac-pool-default", Attrs: map[string]string{"name": "default", "size": "256", "assigned": "32"}},
		},
		fabric.ClassMaintPolicy: {
			{Dn: "org-root/maint-user-ack", Attrs: map[string]string{"name": "user-ack", "uptimeDisr": "user-ack"}},
		},
	})

	got := BuildPolicies(idx)
	require.Len(t, got.Pools.Mac, 1)
	assert.Equal(t, report.PoolUsage{Name: "default", Dn: "org-root/mac-pool-default", Size: 256, Assigned: 32}, got.Pools.Mac[0])
	assert.NotNil(t, got.Pools.Wwn)
	assert.Empty(t, got.Pools.Wwn)
	require.Len(t, got.Maintenance, 1)
	assert.Equal(t, "user-ack", got.Maintenance[0].Policy)
	assert.NotNil(t, got.Boot)
}

func TestBuildLan(t *testing.T) {
	idx := record.NewIndex(map[string][]record.Raw{
		fabric.ClassVlan: {
			{Dn: "fabric/lan/net-200", Attrs: map[string]string{"id": "200", "name": "prod", "operState": "ok"}},
			{Dn: "fabric/lan/net-100", Attrs: map[string]string{"id": "100", "name": "mgmt", "operState": "ok"}},
		},
		fabric.ClassVnicEther: {
			{Dn: "org-root/ls-web01/ether-eth0", Attrs: map[string]string{
				"name": "eth0", "addr": "00:25:B5:00:00:01", "switchId": "A", "mtu": "9000",
			}},
		},
	})

	cache := stats.NewCache([]record.Raw{
		{Class: "etherRxStats", Dn: "sys/switch-A/slot-1/switch-ether/port-1/rx-stats",
			Attrs: map[string]string{"totalBytes": "5000"}},
	})

	got := BuildLan(idx, cache)
	require.Len(t, got.Vlans, 2)
	assert.Equal(t, 100, got.Vlans[0].ID)

	require.Len(t, got.Vnics, 1)
	assert.Equal(t, "org-root/ls-web01", got.Vnics[0].Profile)
	assert.Equal(t, 9000, got.Vnics[0].Mtu)

	require.Len(t, got.RxCounters, 1)
	assert.Equal(t, "5000", got.RxCounters[0].Get("totalBytes"))
	assert.NotNil(t, got.TxCounters)
	assert.Empty(t, got.TxCounters)
	assert.NotNil(t, got.VifPaths)
}

func TestBuildFaultsOrdering(t *testing.T) {
	idx := record.NewIndex(map[string][]record.Raw{
		fabric.ClassFault: {
			{Dn: "sys/chassis-1/fault-F0401", Attrs: map[string]string{"severity": "minor", "code": "F0401"}},
			{Dn: "sys/chassis-2/blade-1/fault-F0317", Attrs: map[string]string{"severity": "critical", "code": "F0317", "descr": "server down"}},
			{Dn: "sys/switch-A/fault-F9999", Attrs: map[string]string{"severity": "bogus", "code": "F9999"}},
		},
	})

	got := BuildFaults(idx)
	require.Len(t, got, 3)
	assert.Equal(t, "F0317", got[0].Code)
	assert.Equal(t, "sys/chassis-2/blade-1", got[0].Dn)
	// Unknown severity sinks last, still reported.
	assert.Equal(t, "F9999", got[2].Code)
}

func TestBuildersEmptyDomainShapeIsTotal(t *testing.T) {
	idx := record.NewIndex(nil)
	cache := noStats()

	inv := BuildInventory(idx, cache, NewCatalog(idx))
	assert.NotNil(t, inv.FabricInterconnects)
	assert.NotNil(t, inv.Chassis)
	assert.NotNil(t, inv.Servers)

	pol := BuildPolicies(idx)
	assert.NotNil(t, pol.Boot)
	assert.NotNil(t, pol.FirmwarePacks)
	assert.NotNil(t, pol.Pools.Server)

	assert.NotNil(t, BuildProfiles(idx))
	assert.NotNil(t, BuildFaults(idx))

	lan := BuildLan(idx, cache)
	assert.NotNil(t, lan.Vlans)
	assert.NotNil(t, lan.RxCounters)

	san := BuildSan(idx, cache)
	assert.NotNil(t, san.Vsans)
	assert.NotNil(t, san.Counters)
}
