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

// nvvk_frame_timings mirrors lowlatency.FrameTimings byte-for-byte
// (§6: 12 uint64 fields, no padding).
typedef struct {
	uint64_t present_id;
	uint64_t input_sample_time_us;
	uint64_t sim_start_time_us;
	uint64_t sim_end_time_us;
	uint64_t render_submit_start_time_us;
	uint64_t render_submit_end_time_us;
	uint64_t present_start_time_us;
	uint64_t present_end_time_us;
	uint64_t driver_start_time_us;
	uint64_t driver_end_time_us;
	uint64_t gpu_render_start_time_us;
	uint64_t gpu_render_end_time_us;
} nvvk_frame_timings;
*/
import "C"

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/GhostKellz/nvvk/driver"
	"github.com/GhostKellz/nvvk/lowlatency"
)

// wrapGetDeviceProcAddr adapts a raw PFN_vkGetDeviceProcAddr function
// pointer (as passed across the C ABI) into driver.GetDeviceProcAddrFunc
// by issuing the call through purego.SyscallN. A nil/0 pointer yields
// a nil Go func, which driver.NewDeviceDispatch treats as "resolve
// nothing" (§4.1).
func wrapGetDeviceProcAddr(fnPtr uintptr) driver.GetDeviceProcAddrFunc {
	if fnPtr == 0 {
		return nil
	}
	return func(device uintptr, name string) uintptr {
		cName := append([]byte(name), 0)
		r1, _, _ := purego.SyscallN(fnPtr, device, uintptr(unsafe.Pointer(&cName[0])))
		return r1
	}
}

// llInit is the Go-level implementation of ll_init: resolves a device
// dispatch table via getDeviceProcAddr and wraps it in a fresh
// lowlatency.Context driven by a PureGoInvoker. Returns 0 on failure
// (device == 0, or the extension truly absent never prevents handle
// creation — only IsSupported reports that; handle creation itself
// only fails on a nil device).
func llInit(device uintptr, swapchain uintptr, getDeviceProcAddr driver.GetDeviceProcAddrFunc) uintptr {
	if device == 0 {
		return 0
	}
	dispatch := driver.NewDeviceDispatch(device, getDeviceProcAddr)
	invoker := NewPureGoInvoker(dispatch)
	ctx := lowlatency.NewContext(dispatch, invoker)
	return registerHandle(&lowLatencyHandle{ctx: ctx, dispatch: dispatch, invoker: invoker})
}

func llDestroy(handle uintptr) {
	releaseHandle(handle)
}

func llIsSupported(handle uintptr) bool {
	h, ok := lookupLowLatency(handle)
	if !ok {
		return false
	}
	return h.ctx.IsSupported()
}

func llEnable(handle uintptr, boost bool, minIntervalUs uint64) Result {
	h, ok := lookupLowLatency(handle)
	if !ok {
		return ResultInvalidHandle
	}
	cfg := lowlatency.ModeConfig{Enabled: true, Boost: boost, MinimumIntervalUs: minIntervalUs}
	return resultFromError(h.ctx.SetMode(cfg))
}

func llDisable(handle uintptr) Result {
	h, ok := lookupLowLatency(handle)
	if !ok {
		return ResultInvalidHandle
	}
	cfg := h.ctx.Mode()
	cfg.Enabled = false
	return resultFromError(h.ctx.SetMode(cfg))
}

func llSleep(handle uintptr, semaphore uintptr, value uint64) Result {
	h, ok := lookupLowLatency(handle)
	if !ok {
		return ResultInvalidHandle
	}
	return resultFromError(h.ctx.Sleep(semaphore, value))
}

func llSetMarker(handle uintptr, marker int32) {
	h, ok := lookupLowLatency(handle)
	if !ok {
		return
	}
	h.ctx.SetMarker(lowlatency.Marker(marker))
}

func llMarkInputSample(handle uintptr) {
	h, ok := lookupLowLatency(handle)
	if !ok {
		return
	}
	h.ctx.MarkInputSample()
}

// llGetTimings fills out with up to max completed FrameTimings records
// and returns the count actually written (§6 two-call pattern: call
// with max==0 to size, the caller's own C array then sized from
// CountTimings below).
func llGetTimings(handle uintptr, max int) ([]lowlatency.FrameTimings, uint32) {
	h, ok := lookupLowLatency(handle)
	if !ok {
		return nil, 0
	}
	timings, err := h.ctx.GetTimings(max)
	if err != nil {
		return nil, 0
	}
	return timings, uint32(len(timings))
}

func llCountTimings(handle uintptr) uint32 {
	h, ok := lookupLowLatency(handle)
	if !ok {
		return 0
	}
	n, err := h.ctx.CountTimings()
	if err != nil {
		return 0
	}
	return uint32(n)
}

func llGetCurrentFrameID(handle uintptr) uint64 {
	h, ok := lookupLowLatency(handle)
	if !ok {
		return 0
	}
	return h.ctx.CurrentFrameID()
}

func llBeginFrame(handle uintptr) uint64 {
	h, ok := lookupLowLatency(handle)
	if !ok {
		return 0
	}
	return h.ctx.BeginFrame()
}

func llEndSimulation(handle uintptr) {
	if h, ok := lookupLowLatency(handle); ok {
		h.ctx.EndSimulation()
	}
}

func llBeginRenderSubmit(handle uintptr) {
	if h, ok := lookupLowLatency(handle); ok {
		h.ctx.BeginRenderSubmit()
	}
}

func llEndRenderSubmit(handle uintptr) {
	if h, ok := lookupLowLatency(handle); ok {
		h.ctx.EndRenderSubmit()
	}
}

func llBeginPresent(handle uintptr) {
	if h, ok := lookupLowLatency(handle); ok {
		h.ctx.BeginPresent()
	}
}

func llEndPresent(handle uintptr) {
	if h, ok := lookupLowLatency(handle); ok {
		h.ctx.EndPresent()
	}
}

//export ll_init
func ll_init(device C.uintptr_t, swapchain C.uintptr_t, getDeviceProcAddr C.uintptr_t) C.uintptr_t {
	return C.uintptr_t(llInit(uintptr(device), uintptr(swapchain), wrapGetDeviceProcAddr(uintptr(getDeviceProcAddr))))
}

//export ll_destroy
func ll_destroy(handle C.uintptr_t) {
	llDestroy(uintptr(handle))
}

//export ll_is_supported
func ll_is_supported(handle C.uintptr_t) C.bool {
	return C.bool(llIsSupported(uintptr(handle)))
}

//export ll_enable
func ll_enable(handle C.uintptr_t, boost C.bool, minIntervalUs C.uint64_t) C.int32_t {
	return C.int32_t(llEnable(uintptr(handle), bool(boost), uint64(minIntervalUs)))
}

//export ll_disable
func ll_disable(handle C.uintptr_t) C.int32_t {
	return C.int32_t(llDisable(uintptr(handle)))
}

//export ll_sleep
func ll_sleep(handle C.uintptr_t, semaphore C.uintptr_t, value C.uint64_t) C.int32_t {
	return C.int32_t(llSleep(uintptr(handle), uintptr(semaphore), uint64(value)))
}

//export ll_set_marker
func ll_set_marker(handle C.uintptr_t, marker C.int32_t) {
	llSetMarker(uintptr(handle), int32(marker))
}

//export ll_mark_input_sample
func ll_mark_input_sample(handle C.uintptr_t) {
	llMarkInputSample(uintptr(handle))
}

//export ll_get_current_frame_id
func ll_get_current_frame_id(handle C.uintptr_t) C.uint64_t {
	return C.uint64_t(llGetCurrentFrameID(uintptr(handle)))
}

//export ll_begin_frame
func ll_begin_frame(handle C.uintptr_t) C.uint64_t {
	return C.uint64_t(llBeginFrame(uintptr(handle)))
}

//export ll_end_simulation
func ll_end_simulation(handle C.uintptr_t) { llEndSimulation(uintptr(handle)) }

//export ll_begin_render_submit
func ll_begin_render_submit(handle C.uintptr_t) { llBeginRenderSubmit(uintptr(handle)) }

//export ll_end_render_submit
func ll_end_render_submit(handle C.uintptr_t) { llEndRenderSubmit(uintptr(handle)) }

//export ll_begin_present
func ll_begin_present(handle C.uintptr_t) { llBeginPresent(uintptr(handle)) }

//export ll_end_present
func ll_end_present(handle C.uintptr_t) { llEndPresent(uintptr(handle)) }

//export ll_get_timings
func ll_get_timings(handle C.uintptr_t, out *C.nvvk_frame_timings, max C.uint32_t) C.uint32_t {
	timings, n := llGetTimings(uintptr(handle), int(max))
	if out == nil || n == 0 {
		return 0
	}
	dst := unsafe.Slice(out, int(max))
	for i := 0; i < int(n) && i < len(dst); i++ {
		t := timings[i]
		dst[i] = C.nvvk_frame_timings{
			present_id:                  C.uint64_t(t.PresentID),
			input_sample_time_us:        C.uint64_t(t.InputSampleTimeUs),
			sim_start_time_us:           C.uint64_t(t.SimStartTimeUs),
			sim_end_time_us:             C.uint64_t(t.SimEndTimeUs),
			render_submit_start_time_us: C.uint64_t(t.RenderSubmitStartTimeUs),
			render_submit_end_time_us:   C.uint64_t(t.RenderSubmitEndTimeUs),
			present_start_time_us:       C.uint64_t(t.PresentStartTimeUs),
			present_end_time_us:         C.uint64_t(t.PresentEndTimeUs),
			driver_start_time_us:        C.uint64_t(t.DriverStartTimeUs),
			driver_end_time_us:          C.uint64_t(t.DriverEndTimeUs),
			gpu_render_start_time_us:    C.uint64_t(t.GPURenderStartTimeUs),
			gpu_render_end_time_us:      C.uint64_t(t.GPURenderEndTimeUs),
		}
	}
	return n
}
