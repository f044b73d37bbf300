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

// Package lowlatency implements the per-swapchain low-latency runtime
// (L2, §4.2): mode configuration, present-ID assignment, marker
// stamping, the optimal-sleep operation, timings retrieval, and
// rolling latency statistics.
package lowlatency

// Marker is the enumerated phase tag stamped against the current
// present ID (§3). Ordering of stamped markers within one present ID
// is the caller's responsibility — this package imposes no ordering
// invariant.
type Marker int

const (
	MarkerSimStart Marker = iota
	MarkerSimEnd
	MarkerRenderSubmitStart
	MarkerRenderSubmitEnd
	MarkerPresentStart
	MarkerPresentEnd
	MarkerInputSample
	MarkerTriggerFlash
	MarkerOOBRenderSubmitStart
	MarkerOOBRenderSubmitEnd
	MarkerOOBPresentStart
	MarkerOOBPresentEnd
)

func (m Marker) String() string {
	switch m {
	case MarkerSimStart:
		return "sim_start"
	case MarkerSimEnd:
		return "sim_end"
	case MarkerRenderSubmitStart:
		return "render_submit_start"
	case MarkerRenderSubmitEnd:
		return "render_submit_end"
	case MarkerPresentStart:
		return "present_start"
	case MarkerPresentEnd:
		return "present_end"
	case MarkerInputSample:
		return "input_sample"
	case MarkerTriggerFlash:
		return "trigger_flash"
	case MarkerOOBRenderSubmitStart:
		return "oob_render_submit_start"
	case MarkerOOBRenderSubmitEnd:
		return "oob_render_submit_end"
	case MarkerOOBPresentStart:
		return "oob_present_start"
	case MarkerOOBPresentEnd:
		return "oob_present_end"
	default:
		return "unknown_marker"
	}
}

// ModeConfig is the low-latency mode submitted to the driver (§3).
// MinimumIntervalUs == 0 means uncapped.
type ModeConfig struct {
	Enabled           bool
	Boost             bool
	MinimumIntervalUs uint64
}

// TargetFPSIntervalUs computes 1_000_000/fps, or 0 for fps<=0
// ("uncapped", invariant #2).
func TargetFPSIntervalUs(fps int) uint64 {
	if fps <= 0 {
		return 0
	}
	return 1_000_000 / uint64(fps)
}

// NewTargetFPSMode builds the ModeConfig a caller wants for a fixed
// frame-rate target.
func NewTargetFPSMode(fps int) ModeConfig {
	return ModeConfig{Enabled: true, Boost: true, MinimumIntervalUs: TargetFPSIntervalUs(fps)}
}

// UncappedMode is the mode configuration for "no cap" (§4.2).
func UncappedMode() ModeConfig {
	return ModeConfig{Enabled: true, Boost: true, MinimumIntervalUs: 0}
}

// FrameTimings is the fixed-layout POD of driver-reported timestamps
// keyed by present ID (§3, wire layout in §6). A field equal to 0
// means "not reported"; arithmetic on such a field returns 0.
type FrameTimings struct {
	PresentID               uint64
	InputSampleTimeUs       uint64
	SimStartTimeUs          uint64
	SimEndTimeUs            uint64
	RenderSubmitStartTimeUs uint64
	RenderSubmitEndTimeUs   uint64
	PresentStartTimeUs      uint64
	PresentEndTimeUs        uint64
	DriverStartTimeUs       uint64
	DriverEndTimeUs         uint64
	GPURenderStartTimeUs    uint64
	GPURenderEndTimeUs      uint64
}

func diffOrZero(start, end uint64) uint64 {
	if start == 0 || end == 0 || end < start {
		return 0
	}
	return end - start
}

// TotalLatencyUs is present_end - input_sample, or 0 if either is
// unreported (invariant #3).
func (t FrameTimings) TotalLatencyUs() uint64 {
	return diffOrZero(t.InputSampleTimeUs, t.PresentEndTimeUs)
}

// SimTimeUs is sim_end - sim_start, or 0 if either is unreported.
func (t FrameTimings) SimTimeUs() uint64 {
	return diffOrZero(t.SimStartTimeUs, t.SimEndTimeUs)
}

// GPURenderTimeUs is gpu_render_end - gpu_render_start, or 0 if either
// is unreported.
func (t FrameTimings) GPURenderTimeUs() uint64 {
	return diffOrZero(t.GPURenderStartTimeUs, t.GPURenderEndTimeUs)
}

// DriverTimeUs is driver_end - driver_start, or 0 if either is
// unreported.
func (t FrameTimings) DriverTimeUs() uint64 {
	return diffOrZero(t.DriverStartTimeUs, t.DriverEndTimeUs)
}
