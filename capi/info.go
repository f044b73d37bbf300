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

package main

/*
#include <stdint.h>
#include <stdbool.h>
*/
import "C"

import (
	"github.com/GhostKellz/nvvk/driver"
	"github.com/GhostKellz/nvvk/driverversion"
)

// extensionNames mirrors the thin extension wrappers' entry-point
// names (§4.1, §6's "get_<ext>_extension_name").
var extensionNames = map[string]string{
	"low_latency":            "VK_NV_low_latency2",
	"diagnostic_checkpoints": "VK_NV_device_diagnostic_checkpoints",
	"optical_flow":           "VK_NV_optical_flow",
	"ray_tracing":            "VK_KHR_ray_tracing_pipeline",
	"mesh_shading":           "VK_EXT_mesh_shader",
	"displacement_micromap":  "VK_EXT_opacity_micromap",
	"cuda_interop":           "VK_NV_external_memory_cuda",
	"memory_decompression":   "VK_NV_memory_decompression",
}

func getVersion() uint32 {
	return driver.Recommended.Packed32()
}

func isNvidiaGPU() bool {
	_, err := driverversion.NVML{}.DriverVersion()
	return err == nil
}

func getExtensionName(ext string) (string, bool) {
	name, ok := extensionNames[ext]
	return name, ok
}

//export get_version
func get_version() C.uint32_t {
	return C.uint32_t(getVersion())
}

//export is_nvidia_gpu
func is_nvidia_gpu() C.bool {
	return C.bool(isNvidiaGPU())
}

// cStringPointers holds the zero-terminated extension-name buffers
// get_<ext>_extension_name returns; their lifetime equals the
// library's per §6, so they are allocated once and never freed.
var cStringPointers = make(map[string]*C.char)

func cExtensionNamePointer(ext string) *C.char {
	if p, ok := cStringPointers[ext]; ok {
		return p
	}
	name, ok := getExtensionName(ext)
	if !ok {
		return nil
	}
	// C.CString allocates with malloc so the returned pointer remains
	// valid past this call's return, per the "lifetime equals the
	// library" contract — a Go-heap pointer would not be safe to hand
	// to a C caller indefinitely.
	p := C.CString(name)
	cStringPointers[ext] = p
	return p
}

//export get_low_latency_extension_name
func get_low_latency_extension_name() *C.char { return cExtensionNamePointer("low_latency") }

//export get_diagnostic_checkpoints_extension_name
func get_diagnostic_checkpoints_extension_name() *C.char {
	return cExtensionNamePointer("diagnostic_checkpoints")
}

//export get_optical_flow_extension_name
func get_optical_flow_extension_name() *C.char { return cExtensionNamePointer("optical_flow") }

//export get_ray_tracing_extension_name
func get_ray_tracing_extension_name() *C.char { return cExtensionNamePointer("ray_tracing") }

//export get_mesh_shading_extension_name
func get_mesh_shading_extension_name() *C.char { return cExtensionNamePointer("mesh_shading") }

//export get_displacement_micromap_extension_name
func get_displacement_micromap_extension_name() *C.char {
	return cExtensionNamePointer("displacement_micromap")
}

//export get_cuda_interop_extension_name
func get_cuda_interop_extension_name() *C.char { return cExtensionNamePointer("cuda_interop") }

//export get_memory_decompression_extension_name
func get_memory_decompression_extension_name() *C.char {
	return cExtensionNamePointer("memory_decompression")
}
