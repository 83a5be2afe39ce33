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

// Package report defines the hierarchical per-domain report document.
//
// The report's top-level sections are fixed: every serialized report
// carries the same keys whether or not the domain had data behind them,
// so downstream consumers can index sections without existence checks.
// Section builders fill the sub-trees; this package only owns the shape.
package report

import (
	"time"

	"github.com/fabricsight/fabricsight/pkg/boot"
	"github.com/fabricsight/fabricsight/pkg/header"
	"github.com/fabricsight/fabricsight/pkg/stats"
	"github.com/fabricsight/fabricsight/pkg/topology"
)

// Empty is the sentinel reported for slots with no installed device.
const Empty = "empty"

// Telemetry modes recorded in the Collection sub-tree.
const (
	TelemetryFull    = "full"
	TelemetrySkipped = "skipped"
)

// DomainReport is one domain's complete normalized report.
type DomainReport struct {
	header.Header `json:",inline" yaml:",inline"`

	System     System     `json:"system" yaml:"system"`
	Inventory  Inventory  `json:"inventory" yaml:"inventory"`
	Policies   Policies   `json:"policies" yaml:"policies"`
	Profiles   []Profile  `json:"profiles" yaml:"profiles"`
	Lan        Lan        `json:"lan" yaml:"lan"`
	San        San        `json:"san" yaml:"san"`
	Faults     []Fault    `json:"faults" yaml:"faults"`
	Collection Collection `json:"collection" yaml:"collection"`
}

// New creates a report with every section present and empty. version is
// the collector's build version, recorded in the envelope metadata.
func New(version string) *DomainReport {
	r := &DomainReport{
		Profiles: []Profile{},
		Faults:   []Fault{},
	}
	r.Init(header.KindDomainReport, header.APIVersionV1, version)
	r.Inventory = Inventory{
		FabricInterconnects: []FabricInterconnect{},
		Chassis:             []Chassis{},
		Servers:             []Server{},
	}
	r.Policies = Policies{
		Boot:          []boot.Policy{},
		FirmwarePacks: []FirmwarePack{},
		Scrub:         []ScrubPolicy{},
		Maintenance:   []MaintenancePolicy{},
		Pools: Pools{
			Mac:    []PoolUsage{},
			Wwn:    []PoolUsage{},
			Uuid:   []PoolUsage{},
			Server: []PoolUsage{},
		},
	}
	r.Lan = Lan{
		Vlans:        []Vlan{},
		Vnics:        []Vnic{},
		VifPaths:     []ServerVifPaths{},
		PortChannels: []PortChannel{},
		RxCounters:   []stats.Counter{},
		TxCounters:   []stats.Counter{},
	}
	r.San = San{
		Vsans:    []Vsan{},
		Vhbas:    []Vhba{},
		Uplinks:  []FcUplink{},
		Counters: []stats.Counter{},
	}
	r.Collection = Collection{Phases: []PhaseTiming{}}
	return r
}

// System carries the domain's identity and cluster state.
type System struct {
	Name         string             `json:"name" yaml:"name"`
	Descr        string             `json:"description,omitempty" yaml:"description,omitempty"`
	Mode         string             `json:"mode" yaml:"mode"`
	ClusterState string             `json:"clusterState" yaml:"clusterState"`
	VirtualIP    string             `json:"virtualIp" yaml:"virtualIp"`
	Uptime       string             `json:"uptime" yaml:"uptime"`
	Owner        string             `json:"owner,omitempty" yaml:"owner,omitempty"`
	Site         string             `json:"site,omitempty" yaml:"site,omitempty"`
	Addresses    []MgmtAddress      `json:"addresses" yaml:"addresses"`
	Leadership   map[string]string  `json:"leadership,omitempty" yaml:"leadership,omitempty"`
}

// MgmtAddress is one fabric interconnect's management address.
type MgmtAddress struct {
	Fabric  string `json:"fabric" yaml:"fabric"`
	Address string `json:"address" yaml:"address"`
}

// Inventory groups the physical equipment sections.
type Inventory struct {
	FabricInterconnects []FabricInterconnect `json:"fabricInterconnects" yaml:"fabricInterconnects"`
	Chassis             []Chassis            `json:"chassis" yaml:"chassis"`
	Servers             []Server             `json:"servers" yaml:"servers"`
}

// FabricInterconnect is one switch of the domain's A/B pair.
type FabricInterconnect struct {
	ID          string        `json:"id" yaml:"id"`
	Model       string        `json:"model" yaml:"model"`
	Serial      string        `json:"serial" yaml:"serial"`
	Revision    string        `json:"revision,omitempty" yaml:"revision,omitempty"`
	OobAddress  string        `json:"oobAddress" yaml:"oobAddress"`
	MemoryGB    float64       `json:"memoryGb" yaml:"memoryGb"`
	Operability string        `json:"operability" yaml:"operability"`
	Firmware    string        `json:"firmware,omitempty" yaml:"firmware,omitempty"`
	Cards       []SwitchCard  `json:"cards" yaml:"cards"`
	SystemStats stats.Counter `json:"systemStats" yaml:"systemStats"`
}

// SwitchCard is one fixed or expansion module in a fabric interconnect.
type SwitchCard struct {
	ID       int    `json:"id" yaml:"id"`
	Model    string `json:"model" yaml:"model"`
	Serial   string `json:"serial,omitempty" yaml:"serial,omitempty"`
	State    string `json:"state" yaml:"state"`
	NumPorts int    `json:"numPorts" yaml:"numPorts"`
}

// Chassis is one blade chassis with its shared infrastructure.
type Chassis struct {
	ID          int           `json:"id" yaml:"id"`
	Model       string        `json:"model" yaml:"model"`
	Serial      string        `json:"serial" yaml:"serial"`
	OperState   string        `json:"operState" yaml:"operState"`
	Power       string        `json:"power" yaml:"power"`
	Thermal     string        `json:"thermal" yaml:"thermal"`
	Psus        []Psu         `json:"psus" yaml:"psus"`
	Fans        []Fan         `json:"fans" yaml:"fans"`
	IOModules   []IOModule    `json:"ioModules" yaml:"ioModules"`
	Stats       stats.Counter `json:"stats" yaml:"stats"`
}

// Psu is one chassis power supply. Model is Empty for vacant bays.
type Psu struct {
	ID        int    `json:"id" yaml:"id"`
	Model     string `json:"model" yaml:"model"`
	Serial    string `json:"serial,omitempty" yaml:"serial,omitempty"`
	OperState string `json:"operState" yaml:"operState"`
}

// Fan is one chassis fan module.
type Fan struct {
	ID        int    `json:"id" yaml:"id"`
	Module    int    `json:"module,omitempty" yaml:"module,omitempty"`
	OperState string `json:"operState" yaml:"operState"`
}

// IOModule is one chassis I/O module (fabric extender).
type IOModule struct {
	ID        int    `json:"id" yaml:"id"`
	Model     string `json:"model" yaml:"model"`
	Serial    string `json:"serial,omitempty" yaml:"serial,omitempty"`
	Side      string `json:"side" yaml:"side"`
	Fabric    string `json:"fabric" yaml:"fabric"`
	OperState string `json:"operState" yaml:"operState"`
}

// Server is one blade or rack server with its sub-inventory.
type Server struct {
	Dn              string        `json:"dn" yaml:"dn"`
	Name            string        `json:"name,omitempty" yaml:"name,omitempty"`
	Type            string        `json:"type" yaml:"type"`
	ChassisID       int           `json:"chassisId,omitempty" yaml:"chassisId,omitempty"`
	SlotID          int           `json:"slotId,omitempty" yaml:"slotId,omitempty"`
	Model           string        `json:"model" yaml:"model"`
	Serial          string        `json:"serial" yaml:"serial"`
	OperState       string        `json:"operState" yaml:"operState"`
	OperPower       string        `json:"operPower" yaml:"operPower"`
	AssignedProfile string        `json:"assignedProfile,omitempty" yaml:"assignedProfile,omitempty"`
	NumCpus         int           `json:"numCpus" yaml:"numCpus"`
	NumCores        int           `json:"numCores" yaml:"numCores"`
	MemoryGB        float64       `json:"memoryGb" yaml:"memoryGb"`
	Cpus            []Cpu         `json:"cpus" yaml:"cpus"`
	Memory          []MemoryUnit  `json:"memory" yaml:"memory"`
	Adapters        []Adapter     `json:"adapters" yaml:"adapters"`
	Disks           []Disk        `json:"disks" yaml:"disks"`
	PowerStats      stats.Counter `json:"powerStats" yaml:"powerStats"`
	TempStats       stats.Counter `json:"tempStats" yaml:"tempStats"`
}

// Server type tags.
const (
	ServerTypeBlade = "blade"
	ServerTypeRack  = "rack"
)

// Cpu is one processor socket. Model carries the catalog common name with
// the vendor prefix stripped.
type Cpu struct {
	ID       int     `json:"id" yaml:"id"`
	Model    string  `json:"model" yaml:"model"`
	Cores    int     `json:"cores" yaml:"cores"`
	Threads  int     `json:"threads" yaml:"threads"`
	SpeedGHz float64 `json:"speedGhz" yaml:"speedGhz"`
	State    string  `json:"state" yaml:"state"`
}

// MemoryUnit is one DIMM slot. Model is Empty for unpopulated slots and
// the capacity converts to GB at the builder boundary.
type MemoryUnit struct {
	ID         int     `json:"id" yaml:"id"`
	Location   string  `json:"location" yaml:"location"`
	Model      string  `json:"model" yaml:"model"`
	CapacityGB float64 `json:"capacityGb" yaml:"capacityGb"`
	ClockMHz   int     `json:"clockMhz,omitempty" yaml:"clockMhz,omitempty"`
	State      string  `json:"state" yaml:"state"`
}

// Adapter is one mezzanine or PCIe adapter card.
type Adapter struct {
	ID     int    `json:"id" yaml:"id"`
	Model  string `json:"model" yaml:"model"`
	Serial string `json:"serial,omitempty" yaml:"serial,omitempty"`
	State  string `json:"state" yaml:"state"`
}

// Disk is one local disk behind a storage controller.
type Disk struct {
	ID         int     `json:"id" yaml:"id"`
	Controller string  `json:"controller" yaml:"controller"`
	Model      string  `json:"model" yaml:"model"`
	Serial     string  `json:"serial,omitempty" yaml:"serial,omitempty"`
	SizeGB     float64 `json:"sizeGb" yaml:"sizeGb"`
	State      string  `json:"state" yaml:"state"`
}

// Policies groups the configuration-policy sections.
type Policies struct {
	Boot          []boot.Policy       `json:"boot" yaml:"boot"`
	FirmwarePacks []FirmwarePack      `json:"firmwarePacks" yaml:"firmwarePacks"`
	Scrub         []ScrubPolicy       `json:"scrub" yaml:"scrub"`
	Maintenance   []MaintenancePolicy `json:"maintenance" yaml:"maintenance"`
	Pools         Pools               `json:"pools" yaml:"pools"`
}

// FirmwarePack is one host firmware package policy.
type FirmwarePack struct {
	Name        string `json:"name" yaml:"name"`
	Dn          string `json:"dn" yaml:"dn"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	BladeBundle string `json:"bladeBundle,omitempty" yaml:"bladeBundle,omitempty"`
	RackBundle  string `json:"rackBundle,omitempty" yaml:"rackBundle,omitempty"`
}

// ScrubPolicy is one disk/BIOS scrub policy.
type ScrubPolicy struct {
	Name      string `json:"name" yaml:"name"`
	Dn        string `json:"dn" yaml:"dn"`
	DiskScrub bool   `json:"diskScrub" yaml:"diskScrub"`
	BiosScrub bool   `json:"biosScrub" yaml:"biosScrub"`
}

// MaintenancePolicy is one maintenance (reboot) policy.
type MaintenancePolicy struct {
	Name   string `json:"name" yaml:"name"`
	Dn     string `json:"dn" yaml:"dn"`
	Policy string `json:"policy" yaml:"policy"`
}

// Pools groups identity-pool usage by pool kind.
type Pools struct {
	Mac    []PoolUsage `json:"mac" yaml:"mac"`
	Wwn    []PoolUsage `json:"wwn" yaml:"wwn"`
	Uuid   []PoolUsage `json:"uuid" yaml:"uuid"`
	Server []PoolUsage `json:"server" yaml:"server"`
}

// PoolUsage is one identity pool's size and consumption.
type PoolUsage struct {
	Name     string `json:"name" yaml:"name"`
	Dn       string `json:"dn" yaml:"dn"`
	Size     int    `json:"size" yaml:"size"`
	Assigned int    `json:"assigned" yaml:"assigned"`
}

// Profile is one service profile or template.
type Profile struct {
	Name           string `json:"name" yaml:"name"`
	Dn             string `json:"dn" yaml:"dn"`
	Type           string `json:"type" yaml:"type"`
	AssocState     string `json:"assocState" yaml:"assocState"`
	AssignState    string `json:"assignState" yaml:"assignState"`
	ConfigState    string `json:"configState" yaml:"configState"`
	BoundTemplate  string `json:"boundTemplate,omitempty" yaml:"boundTemplate,omitempty"`
	AssignedServer string `json:"assignedServer,omitempty" yaml:"assignedServer,omitempty"`
	OperState      string `json:"operState" yaml:"operState"`
}

// Lan groups the Ethernet connectivity sections.
type Lan struct {
	Vlans        []Vlan            `json:"vlans" yaml:"vlans"`
	Vnics        []Vnic            `json:"vnics" yaml:"vnics"`
	VifPaths     []ServerVifPaths  `json:"vifPaths" yaml:"vifPaths"`
	PortChannels []PortChannel     `json:"portChannels" yaml:"portChannels"`
	RxCounters   []stats.Counter   `json:"rxCounters" yaml:"rxCounters"`
	TxCounters   []stats.Counter   `json:"txCounters" yaml:"txCounters"`
}

// Vlan is one named VLAN.
type Vlan struct {
	ID     int    `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Fabric string `json:"fabric,omitempty" yaml:"fabric,omitempty"`
	State  string `json:"state" yaml:"state"`
}

// Vnic is one virtual NIC defined by a service profile.
type Vnic struct {
	Name    string `json:"name" yaml:"name"`
	Profile string `json:"profile" yaml:"profile"`
	Mac     string `json:"mac" yaml:"mac"`
	Fabric  string `json:"fabric" yaml:"fabric"`
	Mtu     int    `json:"mtu,omitempty" yaml:"mtu,omitempty"`
}

// ServerVifPaths pairs one server with its resolved VIF paths.
type ServerVifPaths struct {
	ServerDn string             `json:"serverDn" yaml:"serverDn"`
	Paths    []topology.VifPath `json:"paths" yaml:"paths"`
}

// PortChannel is one Ethernet or FC uplink port-channel.
type PortChannel struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Fabric    string `json:"fabric" yaml:"fabric"`
	OperState string `json:"operState" yaml:"operState"`
	OperSpeed string `json:"operSpeed,omitempty" yaml:"operSpeed,omitempty"`
}

// San groups the Fibre Channel connectivity sections.
type San struct {
	Vsans    []Vsan          `json:"vsans" yaml:"vsans"`
	Vhbas    []Vhba          `json:"vhbas" yaml:"vhbas"`
	Uplinks  []FcUplink      `json:"uplinks" yaml:"uplinks"`
	Counters []stats.Counter `json:"counters" yaml:"counters"`
}

// Vsan is one named VSAN.
type Vsan struct {
	ID     int    `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Fabric string `json:"fabric,omitempty" yaml:"fabric,omitempty"`
	State  string `json:"state" yaml:"state"`
}

// Vhba is one virtual HBA defined by a service profile.
type Vhba struct {
	Name    string `json:"name" yaml:"name"`
	Profile string `json:"profile" yaml:"profile"`
	Wwpn    string `json:"wwpn" yaml:"wwpn"`
	Fabric  string `json:"fabric" yaml:"fabric"`
}

// FcUplink is one FC uplink port.
type FcUplink struct {
	Dn        string `json:"dn" yaml:"dn"`
	Fabric    string `json:"fabric" yaml:"fabric"`
	SlotID    int    `json:"slotId" yaml:"slotId"`
	PortID    int    `json:"portId" yaml:"portId"`
	Wwn       string `json:"wwn,omitempty" yaml:"wwn,omitempty"`
	OperState string `json:"operState" yaml:"operState"`
	OperSpeed string `json:"operSpeed,omitempty" yaml:"operSpeed,omitempty"`
}

// Fault is one active fault normalized for the report.
type Fault struct {
	Severity    string `json:"severity" yaml:"severity"`
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Dn          string `json:"dn" yaml:"dn"`
	Created     string `json:"created,omitempty" yaml:"created,omitempty"`
	Acked       bool   `json:"acked" yaml:"acked"`
}

// Collection records how this report was produced.
type Collection struct {
	PassID        string        `json:"passId" yaml:"passId"`
	StartedAt     time.Time     `json:"startedAt" yaml:"startedAt"`
	FinishedAt    time.Time     `json:"finishedAt" yaml:"finishedAt"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
	Version       string        `json:"version" yaml:"version"`
	TelemetryMode string        `json:"telemetryMode" yaml:"telemetryMode"`
	Phases        []PhaseTiming `json:"phases" yaml:"phases"`
}

// PhaseTiming is the wall-clock duration of one collection phase.
type PhaseTiming struct {
	Name     string        `json:"name" yaml:"name"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}
