// Copyright 2025 Flant JSC
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

package driver

// deviceEntryPoints is the fixed list of device-level extension names
// a DeviceDispatch resolves (§4.1). Each maps to one slot below.
var deviceEntryPoints = []string{
	"vkSetLatencySleepModeNV",
	"vkLatencySleepNV",
	"vkSetLatencyMarkerNV",
	"vkGetLatencyTimingsNV",
	"vkQueueNotifyOutOfBandNV",
	"vkCmdSetCheckpointNV",
	"vkGetQueueCheckpointDataNV",
	"vkCmdSetCheckpointData2NV",
	"vkGetQueueCheckpointData2NV",
	"vkCreateOpticalFlowSessionNV",
	"vkDestroyOpticalFlowSessionNV",
	"vkBindOpticalFlowSessionImageNV",
	"vkCmdOpticalFlowExecuteNV",
	"vkCreateAccelerationStructureKHR",
	"vkCmdBuildAccelerationStructuresKHR",
	"vkCmdTraceRaysKHR",
	"vkCmdDrawMeshTasksEXT",
	"vkCreateMicromapEXT",
	"vkCmdBuildMicromapsEXT",
	"vkGetMemoryCudaHandleNV",
	"vkGetSemaphoreCudaHandleNV",
	"vkCmdDecompressMemoryNV",
}

// DeviceDispatch is a record of optional function pointers resolved
// once per device (§3 "Dispatch table"). A slot is either 0 (absent)
// or callable for the lifetime of the owning device — this package
// never mutates a slot after construction.
type DeviceDispatch struct {
	device uintptr

	SetLatencySleepModeNV    uintptr
	LatencySleepNV           uintptr
	SetLatencyMarkerNV       uintptr
	GetLatencyTimingsNV      uintptr
	QueueNotifyOutOfBandNV   uintptr
	CmdSetCheckpointNV       uintptr
	GetQueueCheckpointDataNV uintptr
	CmdSetCheckpointData2NV  uintptr
	GetQueueCheckpointData2NV uintptr

	CreateOpticalFlowSessionNV     uintptr
	DestroyOpticalFlowSessionNV    uintptr
	BindOpticalFlowSessionImageNV  uintptr
	CmdOpticalFlowExecuteNV        uintptr

	CreateAccelerationStructureKHR     uintptr
	CmdBuildAccelerationStructuresKHR  uintptr
	CmdTraceRaysKHR                    uintptr
	CmdDrawMeshTasksEXT                uintptr
	CreateMicromapEXT                  uintptr
	CmdBuildMicromapsEXT               uintptr
	GetMemoryCudaHandleNV              uintptr
	GetSemaphoreCudaHandleNV           uintptr
	CmdDecompressMemoryNV              uintptr
}

// NewDeviceDispatch resolves the fixed entry-point list against
// device via getDeviceProcAddr. Missing names yield a 0 slot rather
// than failing construction (§4.1: "missing names yield None pointers").
func NewDeviceDispatch(device uintptr, getDeviceProcAddr GetDeviceProcAddrFunc) *DeviceDispatch {
	d := &DeviceDispatch{device: device}
	if getDeviceProcAddr == nil {
		return d
	}
	resolved := make(map[string]uintptr, len(deviceEntryPoints))
	for _, name := range deviceEntryPoints {
		resolved[name] = getDeviceProcAddr(device, name)
	}

	d.SetLatencySleepModeNV = resolved["vkSetLatencySleepModeNV"]
	d.LatencySleepNV = resolved["vkLatencySleepNV"]
	d.SetLatencyMarkerNV = resolved["vkSetLatencyMarkerNV"]
	d.GetLatencyTimingsNV = resolved["vkGetLatencyTimingsNV"]
	d.QueueNotifyOutOfBandNV = resolved["vkQueueNotifyOutOfBandNV"]
	d.CmdSetCheckpointNV = resolved["vkCmdSetCheckpointNV"]
	d.GetQueueCheckpointDataNV = resolved["vkGetQueueCheckpointDataNV"]
	d.CmdSetCheckpointData2NV = resolved["vkCmdSetCheckpointData2NV"]
	d.GetQueueCheckpointData2NV = resolved["vkGetQueueCheckpointData2NV"]
	d.CreateOpticalFlowSessionNV = resolved["vkCreateOpticalFlowSessionNV"]
	d.DestroyOpticalFlowSessionNV = resolved["vkDestroyOpticalFlowSessionNV"]
	d.BindOpticalFlowSessionImageNV = resolved["vkBindOpticalFlowSessionImageNV"]
	d.CmdOpticalFlowExecuteNV = resolved["vkCmdOpticalFlowExecuteNV"]
	d.CreateAccelerationStructureKHR = resolved["vkCreateAccelerationStructureKHR"]
	d.CmdBuildAccelerationStructuresKHR = resolved["vkCmdBuildAccelerationStructuresKHR"]
	d.CmdTraceRaysKHR = resolved["vkCmdTraceRaysKHR"]
	d.CmdDrawMeshTasksEXT = resolved["vkCmdDrawMeshTasksEXT"]
	d.CreateMicromapEXT = resolved["vkCreateMicromapEXT"]
	d.CmdBuildMicromapsEXT = resolved["vkCmdBuildMicromapsEXT"]
	d.GetMemoryCudaHandleNV = resolved["vkGetMemoryCudaHandleNV"]
	d.GetSemaphoreCudaHandleNV = resolved["vkGetSemaphoreCudaHandleNV"]
	d.CmdDecompressMemoryNV = resolved["vkCmdDecompressMemoryNV"]
	return d
}

// HasLowLatency2 is the conjunction of the pointers required to drive
// the L2 runtime (§4.2).
func (d *DeviceDispatch) HasLowLatency2() bool {
	return d != nil &&
		d.SetLatencySleepModeNV != 0 &&
		d.LatencySleepNV != 0 &&
		d.SetLatencyMarkerNV != 0 &&
		d.GetLatencyTimingsNV != 0
}

// HasDiagnosticCheckpoints is the conjunction required by §4.3.
func (d *DeviceDispatch) HasDiagnosticCheckpoints() bool {
	return d != nil && d.CmdSetCheckpointNV != 0 && d.GetQueueCheckpointDataNV != 0
}

// HasOpticalFlow is the conjunction required by §4.4.
func (d *DeviceDispatch) HasOpticalFlow() bool {
	return d != nil &&
		d.CreateOpticalFlowSessionNV != 0 &&
		d.DestroyOpticalFlowSessionNV != 0 &&
		d.BindOpticalFlowSessionImageNV != 0 &&
		d.CmdOpticalFlowExecuteNV != 0
}

// HasRayTracing, HasMeshShading, HasDisplacementMicromap,
// HasCudaInterop, HasMemoryDecompression back the thin wrappers in
// extwrap (§1's "flat extension-loader thin layers").
func (d *DeviceDispatch) HasRayTracing() bool {
	return d != nil && d.CreateAccelerationStructureKHR != 0 &&
		d.CmdBuildAccelerationStructuresKHR != 0 && d.CmdTraceRaysKHR != 0
}

func (d *DeviceDispatch) HasMeshShading() bool {
	return d != nil && d.CmdDrawMeshTasksEXT != 0
}

func (d *DeviceDispatch) HasDisplacementMicromap() bool {
	return d != nil && d.CreateMicromapEXT != 0 && d.CmdBuildMicromapsEXT != 0
}

func (d *DeviceDispatch) HasCudaInterop() bool {
	return d != nil && d.GetMemoryCudaHandleNV != 0 && d.GetSemaphoreCudaHandleNV != 0
}

func (d *DeviceDispatch) HasMemoryDecompression() bool {
	return d != nil && d.CmdDecompressMemoryNV != 0
}
