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

import (
	"github.com/ebitengine/purego"

	"github.com/GhostKellz/nvvk/diagnostics"
	"github.com/GhostKellz/nvvk/driver"
	"github.com/GhostKellz/nvvk/lowlatency"
	"github.com/GhostKellz/nvvk/result"
)

// PureGoInvoker drives the scalar-argument low-latency and
// diagnostic-checkpoint entry points directly via purego.SyscallN
// against a resolved driver.DeviceDispatch, with no cgo headers and
// no vendored struct definitions (§1 out-of-scope: the platform GPU
// API itself). It implements both lowlatency.Invoker and
// diagnostics.Invoker.
//
// GetLatencyTimings and GetQueueCheckpointData return arrays the
// driver writes in its own vendor-defined struct layout
// (VkLatencyTimingsFrameReportNV, VkCheckpointData2NV); decoding that
// wire format is exactly the native-ABI knowledge this module
// declines to vendor, so these two methods return
// ExtensionNotPresent. A host that needs real readback supplies its
// own lowlatency.Invoker/diagnostics.Invoker built against the vendor
// headers in place of PureGoInvoker.
type PureGoInvoker struct {
	dispatch *driver.DeviceDispatch
}

// NewPureGoInvoker builds a PureGoInvoker bound to dispatch.
func NewPureGoInvoker(dispatch *driver.DeviceDispatch) *PureGoInvoker {
	return &PureGoInvoker{dispatch: dispatch}
}

func boolToUintptr(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}

func errUnresolved(name string) error {
	return result.New(result.FunctionNotFound, name+" not resolved in the device dispatch table")
}

// SetLatencySleepMode implements lowlatency.Invoker.
func (p *PureGoInvoker) SetLatencySleepMode(cfg lowlatency.ModeConfig) error {
	fn := p.dispatch.SetLatencySleepModeNV
	if fn == 0 {
		return errUnresolved("vkSetLatencySleepModeNV")
	}
	_, _, errno := purego.SyscallN(fn, boolToUintptr(cfg.Enabled), boolToUintptr(cfg.Boost), uintptr(cfg.MinimumIntervalUs))
	if errno != 0 {
		return result.Newf(result.DeviceLost, "vkSetLatencySleepModeNV: errno %d", errno)
	}
	return nil
}

// LatencySleep implements lowlatency.Invoker.
func (p *PureGoInvoker) LatencySleep(semaphore uintptr, value uint64) error {
	fn := p.dispatch.LatencySleepNV
	if fn == 0 {
		return errUnresolved("vkLatencySleepNV")
	}
	_, _, errno := purego.SyscallN(fn, semaphore, uintptr(value))
	if errno != 0 {
		return result.Newf(result.DeviceLost, "vkLatencySleepNV: errno %d", errno)
	}
	return nil
}

// SetLatencyMarker implements lowlatency.Invoker.
func (p *PureGoInvoker) SetLatencyMarker(presentID uint64, marker lowlatency.Marker) error {
	fn := p.dispatch.SetLatencyMarkerNV
	if fn == 0 {
		return errUnresolved("vkSetLatencyMarkerNV")
	}
	_, _, errno := purego.SyscallN(fn, uintptr(presentID), uintptr(marker))
	if errno != 0 {
		return result.Newf(result.DeviceLost, "vkSetLatencyMarkerNV: errno %d", errno)
	}
	return nil
}

// GetLatencyTimings implements lowlatency.Invoker. Always returns
// ExtensionNotPresent from the pure-Go invoker; see the type doc.
func (p *PureGoInvoker) GetLatencyTimings(presentID uint64) ([]lowlatency.FrameTimings, error) {
	return nil, result.New(result.ExtensionNotPresent, "timings readback requires a vendor-struct-aware invoker")
}

// CmdSetCheckpoint implements diagnostics.Invoker.
func (p *PureGoInvoker) CmdSetCheckpoint(cmd uintptr, marker uintptr) error {
	fn := p.dispatch.CmdSetCheckpointNV
	if fn == 0 {
		return errUnresolved("vkCmdSetCheckpointNV")
	}
	_, _, errno := purego.SyscallN(fn, cmd, marker)
	if errno != 0 {
		return result.Newf(result.DeviceLost, "vkCmdSetCheckpointNV: errno %d", errno)
	}
	return nil
}

// GetQueueCheckpointData implements diagnostics.Invoker. Always
// returns ExtensionNotPresent from the pure-Go invoker; see the type
// doc.
func (p *PureGoInvoker) GetQueueCheckpointData(queue uintptr) ([]diagnostics.CheckpointData, error) {
	return nil, result.New(result.ExtensionNotPresent, "checkpoint readback requires a vendor-struct-aware invoker")
}
