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

package lowlatency

import (
	"github.com/GhostKellz/nvvk/driver"
	"github.com/GhostKellz/nvvk/result"
)

// Invoker performs the driver calls a Context schedules. The native
// calling convention used to actually invoke a resolved dispatch-table
// function pointer is the platform GPU API itself — out of scope
// (§1) — so Context only ever decides when and with what arguments
// to call through; the host supplies the Invoker that does it.
type Invoker interface {
	SetLatencySleepMode(cfg ModeConfig) error
	LatencySleep(semaphore uintptr, value uint64) error
	SetLatencyMarker(presentID uint64, marker Marker) error
	GetLatencyTimings(presentID uint64) ([]FrameTimings, error)
}

// Context is the per-swapchain low-latency runtime (§4.2 L2): present
// ID assignment, marker stamping, sleep, mode, and timings retrieval.
type Context struct {
	dispatch  *driver.DeviceDispatch
	invoker   Invoker
	mode      ModeConfig
	presentID uint64
}

// NewContext builds a Context bound to a device dispatch table and
// the invoker that actually issues driver calls.
func NewContext(dispatch *driver.DeviceDispatch, invoker Invoker) *Context {
	return &Context{dispatch: dispatch, invoker: invoker}
}

// IsSupported reports whether the device exposes the low-latency
// extension (§4.2).
func (c *Context) IsSupported() bool {
	return c.dispatch.HasLowLatency2()
}

func errNotSupported() error {
	return result.New(result.ExtensionNotPresent, "low latency 2 not present on this device")
}

// SetMode submits a new low-latency mode to the driver. Returns
// ExtensionNotPresent if the device lacks the extension.
func (c *Context) SetMode(cfg ModeConfig) error {
	if !c.IsSupported() {
		return errNotSupported()
	}
	if err := c.invoker.SetLatencySleepMode(cfg); err != nil {
		return err
	}
	c.mode = cfg
	return nil
}

// Mode returns the last mode successfully submitted via SetMode.
func (c *Context) Mode() ModeConfig { return c.mode }

// Sleep performs the optimal-sleep wait against the given timeline
// semaphore and value.
func (c *Context) Sleep(semaphore uintptr, value uint64) error {
	if !c.IsSupported() {
		return errNotSupported()
	}
	return c.invoker.LatencySleep(semaphore, value)
}

// SetMarker stamps marker against the current present ID. A silent
// no-op when the extension is absent (§9) — marker stamping must never
// fail a frame.
func (c *Context) SetMarker(marker Marker) {
	if !c.IsSupported() {
		return
	}
	_ = c.invoker.SetLatencyMarker(c.presentID, marker)
}

// BeginFrame assigns a new present ID, stamps sim_start against it,
// and returns the assigned ID.
func (c *Context) BeginFrame() uint64 {
	c.presentID++
	c.SetMarker(MarkerSimStart)
	return c.presentID
}

// CurrentFrameID is the most recently assigned present ID.
func (c *Context) CurrentFrameID() uint64 { return c.presentID }

// EndSimulation stamps sim_end.
func (c *Context) EndSimulation() { c.SetMarker(MarkerSimEnd) }

// BeginRenderSubmit stamps render_submit_start.
func (c *Context) BeginRenderSubmit() { c.SetMarker(MarkerRenderSubmitStart) }

// EndRenderSubmit stamps render_submit_end.
func (c *Context) EndRenderSubmit() { c.SetMarker(MarkerRenderSubmitEnd) }

// BeginPresent stamps present_start.
func (c *Context) BeginPresent() { c.SetMarker(MarkerPresentStart) }

// EndPresent stamps present_end.
func (c *Context) EndPresent() { c.SetMarker(MarkerPresentEnd) }

// MarkInputSample stamps input_sample.
func (c *Context) MarkInputSample() { c.SetMarker(MarkerInputSample) }

// TriggerFlash stamps trigger_flash (the flash-indicator marker used
// by latency-measurement tools).
func (c *Context) TriggerFlash() { c.SetMarker(MarkerTriggerFlash) }

// GetTimings retrieves up to max completed FrameTimings records (0
// means unbounded). Implements the host-facing half of the two-call
// pattern; CountTimings implements the sizing half.
func (c *Context) GetTimings(max int) ([]FrameTimings, error) {
	if !c.IsSupported() {
		return nil, errNotSupported()
	}
	all, err := c.invoker.GetLatencyTimings(c.presentID)
	if err != nil {
		return nil, err
	}
	if max > 0 && len(all) > max {
		all = all[:max]
	}
	return all, nil
}

// CountTimings is the sizing call of the two-call pattern: the number
// of FrameTimings records currently available from the driver.
func (c *Context) CountTimings() (int, error) {
	if !c.IsSupported() {
		return 0, errNotSupported()
	}
	all, err := c.invoker.GetLatencyTimings(c.presentID)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}
