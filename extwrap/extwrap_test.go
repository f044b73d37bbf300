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

package extwrap

import (
	"testing"

	"github.com/GhostKellz/nvvk/driver"
	"github.com/GhostKellz/nvvk/result"
)

func TestRayTracingAbsent(t *testing.T) {
	rt := NewRayTracing(driver.NewDeviceDispatch(1, nil), nil)
	if rt.IsSupported() {
		t.Fatalf("expected unsupported")
	}
	if err := rt.CmdTraceRays(0); !result.Is(err, result.ExtensionNotPresent) {
		t.Fatalf("expected ExtensionNotPresent, got %v", err)
	}
}

func TestMemoryDecompressionPresentNoInvoker(t *testing.T) {
	d := driver.NewDeviceDispatch(1, func(device uintptr, name string) uintptr {
		if name == "vkCmdDecompressMemoryNV" {
			return 0x1
		}
		return 0
	})
	md := NewMemoryDecompression(d, nil)
	if !md.IsSupported() {
		t.Fatalf("expected supported")
	}
	if err := md.CmdDecompressMemory(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// fakeInvoker records which Invoker methods were called, to verify
// the supported path forwards through the seam rather than no-op'ing.
type fakeInvoker struct {
	calls []string
	err   error
}

func (f *fakeInvoker) CreateAccelerationStructure(cmd uintptr) error {
	f.calls = append(f.calls, "CreateAccelerationStructure")
	return f.err
}
func (f *fakeInvoker) CmdBuildAccelerationStructures(cmd uintptr) error {
	f.calls = append(f.calls, "CmdBuildAccelerationStructures")
	return f.err
}
func (f *fakeInvoker) CmdTraceRays(cmd uintptr) error {
	f.calls = append(f.calls, "CmdTraceRays")
	return f.err
}
func (f *fakeInvoker) CmdDrawMeshTasks(cmd uintptr) error {
	f.calls = append(f.calls, "CmdDrawMeshTasks")
	return f.err
}
func (f *fakeInvoker) CreateMicromap(cmd uintptr) error {
	f.calls = append(f.calls, "CreateMicromap")
	return f.err
}
func (f *fakeInvoker) CmdBuildMicromaps(cmd uintptr) error {
	f.calls = append(f.calls, "CmdBuildMicromaps")
	return f.err
}
func (f *fakeInvoker) GetMemoryCudaHandle(memory uintptr) (uintptr, error) {
	f.calls = append(f.calls, "GetMemoryCudaHandle")
	return 0x42, f.err
}
func (f *fakeInvoker) GetSemaphoreCudaHandle(semaphore uintptr) (uintptr, error) {
	f.calls = append(f.calls, "GetSemaphoreCudaHandle")
	return 0x43, f.err
}
func (f *fakeInvoker) CmdDecompressMemory(cmd uintptr) error {
	f.calls = append(f.calls, "CmdDecompressMemory")
	return f.err
}

func supportedDispatch(names ...string) *driver.DeviceDispatch {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return driver.NewDeviceDispatch(1, func(device uintptr, name string) uintptr {
		if set[name] {
			return 0x1
		}
		return 0
	})
}

func TestRayTracingForwardsToInvoker(t *testing.T) {
	d := supportedDispatch("vkCreateAccelerationStructureKHR", "vkCmdBuildAccelerationStructuresKHR", "vkCmdTraceRaysKHR")
	inv := &fakeInvoker{}
	rt := NewRayTracing(d, inv)

	if err := rt.CmdTraceRays(0x100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inv.calls) != 1 || inv.calls[0] != "CmdTraceRays" {
		t.Fatalf("expected CmdTraceRays forwarded to invoker, got %v", inv.calls)
	}
}

func TestCudaInteropForwardsToInvoker(t *testing.T) {
	d := supportedDispatch("vkGetMemoryCudaHandleNV", "vkGetSemaphoreCudaHandleNV")
	inv := &fakeInvoker{}
	c := NewCudaInterop(d, inv)

	handle, err := c.GetMemoryCudaHandle(0x200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handle != 0x42 {
		t.Fatalf("expected invoker's handle 0x42, got %#x", handle)
	}
	if len(inv.calls) != 1 || inv.calls[0] != "GetMemoryCudaHandle" {
		t.Fatalf("expected GetMemoryCudaHandle forwarded to invoker, got %v", inv.calls)
	}
}
