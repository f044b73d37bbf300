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

// Package extwrap provides flat, forwarding wrappers over the
// ray-tracing, mesh-shader, displacement-micromap, CUDA-interop, and
// memory-decompression extensions named in §1 as explicitly out
// of scope for "the hard part": they populate function pointers from
// a DeviceDispatch and forward calls, never dereferencing an absent
// slot (§9).
package extwrap

import (
	"github.com/GhostKellz/nvvk/driver"
	"github.com/GhostKellz/nvvk/result"
)

// Invoker performs the driver calls these wrappers schedule, the same
// seam lowlatency.Invoker/diagnostics.Invoker use: the native calling
// convention for a resolved dispatch-table function pointer is the
// platform GPU API itself, out of scope here (§1). A nil Invoker
// leaves every supported-path call a no-op, which is also the correct
// behavior when a host only needs the IsSupported predicates.
type Invoker interface {
	CreateAccelerationStructure(cmd uintptr) error
	CmdBuildAccelerationStructures(cmd uintptr) error
	CmdTraceRays(cmd uintptr) error
	CmdDrawMeshTasks(cmd uintptr) error
	CreateMicromap(cmd uintptr) error
	CmdBuildMicromaps(cmd uintptr) error
	GetMemoryCudaHandle(memory uintptr) (uintptr, error)
	GetSemaphoreCudaHandle(semaphore uintptr) (uintptr, error)
	CmdDecompressMemory(cmd uintptr) error
}

// RayTracing forwards to the ray-tracing acceleration-structure entry
// points.
type RayTracing struct {
	d   *driver.DeviceDispatch
	inv Invoker
}

func NewRayTracing(d *driver.DeviceDispatch, inv Invoker) *RayTracing {
	return &RayTracing{d: d, inv: inv}
}

func (r *RayTracing) IsSupported() bool { return r.d.HasRayTracing() }

func (r *RayTracing) CreateAccelerationStructure(cmd uintptr) error {
	if !r.IsSupported() {
		return result.New(result.ExtensionNotPresent, "ray tracing not present")
	}
	if r.inv == nil {
		return nil
	}
	return r.inv.CreateAccelerationStructure(cmd)
}

func (r *RayTracing) CmdBuildAccelerationStructures(cmd uintptr) error {
	if !r.IsSupported() {
		return result.New(result.ExtensionNotPresent, "ray tracing not present")
	}
	if r.inv == nil {
		return nil
	}
	return r.inv.CmdBuildAccelerationStructures(cmd)
}

func (r *RayTracing) CmdTraceRays(cmd uintptr) error {
	if !r.IsSupported() {
		return result.New(result.ExtensionNotPresent, "ray tracing not present")
	}
	if r.inv == nil {
		return nil
	}
	return r.inv.CmdTraceRays(cmd)
}

// MeshShading forwards to the mesh-task draw entry point.
type MeshShading struct {
	d   *driver.DeviceDispatch
	inv Invoker
}

func NewMeshShading(d *driver.DeviceDispatch, inv Invoker) *MeshShading {
	return &MeshShading{d: d, inv: inv}
}

func (m *MeshShading) IsSupported() bool { return m.d.HasMeshShading() }

func (m *MeshShading) CmdDrawMeshTasks(cmd uintptr) error {
	if !m.IsSupported() {
		return result.New(result.ExtensionNotPresent, "mesh shading not present")
	}
	if m.inv == nil {
		return nil
	}
	return m.inv.CmdDrawMeshTasks(cmd)
}

// DisplacementMicromap forwards to the micromap build entry points.
type DisplacementMicromap struct {
	d   *driver.DeviceDispatch
	inv Invoker
}

func NewDisplacementMicromap(d *driver.DeviceDispatch, inv Invoker) *DisplacementMicromap {
	return &DisplacementMicromap{d: d, inv: inv}
}

func (m *DisplacementMicromap) IsSupported() bool { return m.d.HasDisplacementMicromap() }

func (m *DisplacementMicromap) CreateMicromap(cmd uintptr) error {
	if !m.IsSupported() {
		return result.New(result.ExtensionNotPresent, "displacement micromap not present")
	}
	if m.inv == nil {
		return nil
	}
	return m.inv.CreateMicromap(cmd)
}

func (m *DisplacementMicromap) CmdBuildMicromaps(cmd uintptr) error {
	if !m.IsSupported() {
		return result.New(result.ExtensionNotPresent, "displacement micromap not present")
	}
	if m.inv == nil {
		return nil
	}
	return m.inv.CmdBuildMicromaps(cmd)
}

// CudaInterop forwards to the CUDA memory/semaphore interop handles.
type CudaInterop struct {
	d   *driver.DeviceDispatch
	inv Invoker
}

func NewCudaInterop(d *driver.DeviceDispatch, inv Invoker) *CudaInterop {
	return &CudaInterop{d: d, inv: inv}
}

func (c *CudaInterop) IsSupported() bool { return c.d.HasCudaInterop() }

func (c *CudaInterop) GetMemoryCudaHandle(memory uintptr) (uintptr, error) {
	if !c.IsSupported() {
		return 0, result.New(result.ExtensionNotPresent, "cuda interop not present")
	}
	if c.inv == nil {
		return 0, nil
	}
	return c.inv.GetMemoryCudaHandle(memory)
}

func (c *CudaInterop) GetSemaphoreCudaHandle(semaphore uintptr) (uintptr, error) {
	if !c.IsSupported() {
		return 0, result.New(result.ExtensionNotPresent, "cuda interop not present")
	}
	if c.inv == nil {
		return 0, nil
	}
	return c.inv.GetSemaphoreCudaHandle(semaphore)
}

// MemoryDecompression forwards to the command-buffer decompression
// entry point.
type MemoryDecompression struct {
	d   *driver.DeviceDispatch
	inv Invoker
}

func NewMemoryDecompression(d *driver.DeviceDispatch, inv Invoker) *MemoryDecompression {
	return &MemoryDecompression{d: d, inv: inv}
}

func (m *MemoryDecompression) IsSupported() bool { return m.d.HasMemoryDecompression() }

func (m *MemoryDecompression) CmdDecompressMemory(cmd uintptr) error {
	if !m.IsSupported() {
		return result.New(result.ExtensionNotPresent, "memory decompression not present")
	}
	if m.inv == nil {
		return nil
	}
	return m.inv.CmdDecompressMemory(cmd)
}
