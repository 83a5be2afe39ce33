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

package fabric

// Class identifiers for the record collections one collection pass pulls.
// These mirror the management API's object model naming.
const (
	// System / fabric interconnects
	ClassSystem         = "topSystem"
	ClassMgmtEntity     = "mgmtEntity"
	ClassNetworkElement = "networkElement"
	ClassSwitchCard     = "equipmentSwitchCard"
	ClassEtherPort      = "etherPIo"
	ClassFcPort         = "fcPIo"
	ClassFirmware       = "firmwareRunning"

	// Chassis and modules
	ClassChassis = "equipmentChassis"
	ClassIOCard  = "equipmentIOCard"
	ClassPsu     = "equipmentPsu"
	ClassFan     = "equipmentFan"

	// Servers
	ClassBlade             = "computeBlade"
	ClassRackUnit          = "computeRackUnit"
	ClassProcessor         = "processorUnit"
	ClassMemoryArray       = "memoryArray"
	ClassMemoryUnit        = "memoryUnit"
	ClassAdaptor           = "adaptorUnit"
	ClassStorageController = "storageController"
	ClassLocalDisk         = "storageLocalDisk"

	// Connectivity
	ClassVnicEther      = "vnicEther"
	ClassVnicFc         = "vnicFc"
	ClassVlan           = "fabricVlan"
	ClassVsan           = "fabricVsan"
	ClassEthPortChannel = "fabricEthLanPc"
	ClassFcPortChannel  = "fabricFcSanPc"
	ClassPathEndpoint   = "fabricPathEp"
	ClassVirtualCircuit = "dcxVc"

	// Profiles, policies, pools
	ClassServiceProfile = "lsServer"
	ClassBootPolicy     = "lsbootPolicy"
	ClassBootStorage    = "lsbootStorage"
	ClassBootLocalImage = "lsbootLocalImage"
	ClassBootVMedia     = "lsbootVirtualMedia"
	ClassBootLan        = "lsbootLan"
	ClassBootLanPath    = "lsbootLanImagePath"
	ClassBootSan        = "lsbootSan"
	ClassBootSanImage   = "lsbootSanImage"
	ClassBootSanPath    = "lsbootSanImagePath"
	ClassBootIscsi      = "lsbootIscsi"
	ClassFirmwarePack   = "firmwareComputeHostPack"
	ClassScrubPolicy    = "computeScrubPolicy"
	ClassMaintPolicy    = "lsmaintMaintPolicy"
	ClassMacPool        = "macpoolPool"
	ClassWwnPool        = "fcpoolInitiators"
	ClassUuidPool       = "uuidpoolPool"
	ClassServerPool     = "computePool"

	// Faults
	ClassFault = "faultInst"

	// Capability catalogs, used only for name/width lookups
	ClassMfgDef       = "equipmentManufacturingDef"
	ClassPhysicalDef  = "equipmentPhysicalDef"
	ClassLocalDiskDef = "equipmentLocalDiskDef"
)

// Stat record classes found inside the bulk telemetry dump.
const (
	StatClassSwSystem   = "swSystemStats"
	StatClassEtherRx    = "etherRxStats"
	StatClassEtherTx    = "etherTxStats"
	StatClassEtherErr   = "etherErrStats"
	StatClassVnic       = "adaptorVnicStats"
	StatClassMbPower    = "computeMbPowerStats"
	StatClassMbTemp     = "computeMbTempStats"
	StatClassChassis    = "equipmentChassisStats"
	StatClassPsu        = "equipmentPsuStats"
	StatClassProcessor  = "processorEnvStats"
	StatClassMemoryUnit = "memoryUnitEnvStats"
)

// Classes pulled once per pass, in no particular order. The stats dump and
// capability catalogs are pulled through their own session calls.
var CollectionClasses = []string{
	ClassSystem,
	ClassMgmtEntity,
	ClassNetworkElement,
	ClassSwitchCard,
	ClassEtherPort,
	ClassFcPort,
	ClassFirmware,
	ClassChassis,
	ClassIOCard,
	ClassPsu,
	ClassFan,
	ClassBlade,
	ClassRackUnit,
	ClassProcessor,
	ClassMemoryArray,
	ClassMemoryUnit,
	ClassAdaptor,
	ClassStorageController,
	ClassLocalDisk,
	ClassVnicEther,
	ClassVnicFc,
	ClassVlan,
	ClassVsan,
	ClassEthPortChannel,
	ClassFcPortChannel,
	ClassPathEndpoint,
	ClassVirtualCircuit,
	ClassServiceProfile,
	ClassBootPolicy,
	ClassBootStorage,
	ClassBootLocalImage,
	ClassBootVMedia,
	ClassBootLan,
	ClassBootLanPath,
	ClassBootSan,
	ClassBootSanImage,
	ClassBootSanPath,
	ClassBootIscsi,
	ClassFirmwarePack,
	ClassScrubPolicy,
	ClassMaintPolicy,
	ClassMacPool,
	ClassWwnPool,
	ClassUuidPool,
	ClassServerPool,
	ClassFault,
	ClassMfgDef,
	ClassPhysicalDef,
	ClassLocalDiskDef,
}
