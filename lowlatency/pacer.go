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

// FramePacerConfig describes a fixed-FPS pacing target.
type FramePacerConfig struct {
	TargetFPS         int
	TargetFrameTimeUs uint64
}

// NewFramePacerConfig builds a config for a fixed frame-rate target.
func NewFramePacerConfig(fps int) FramePacerConfig {
	return FramePacerConfig{TargetFPS: fps, TargetFrameTimeUs: TargetFPSIntervalUs(fps)}
}

// UncappedFramePacerConfig is the "no target" pacing config.
func UncappedFramePacerConfig() FramePacerConfig {
	return FramePacerConfig{TargetFPS: 0, TargetFrameTimeUs: 0}
}

// FramePacer tracks inter-frame deltas against a target frame time
// (§4.2, scenario C).
type FramePacer struct {
	cfg         FramePacerConfig
	lastFrameUs uint64
	hasLast     bool
	frameCount  uint64
}

// NewFramePacer builds a pacer targeting fps frames per second.
func NewFramePacer(fps int) *FramePacer {
	return &FramePacer{cfg: NewFramePacerConfig(fps)}
}

// NewUncappedFramePacer builds a pacer with no target frame time.
func NewUncappedFramePacer() *FramePacer {
	return &FramePacer{cfg: UncappedFramePacerConfig()}
}

// TargetFrameTimeUs is the configured target interval.
func (p *FramePacer) TargetFrameTimeUs() uint64 { return p.cfg.TargetFrameTimeUs }

// FrameCount is the number of frames recorded so far.
func (p *FramePacer) FrameCount() uint64 { return p.frameCount }

// RecordFrame records nowUs as the latest frame time and returns the
// delta since the previous call's nowUs, or 0 for the first call or
// when nowUs is not later than the previous value.
func (p *FramePacer) RecordFrame(nowUs uint64) uint64 {
	var delta uint64
	if p.hasLast && nowUs > p.lastFrameUs {
		delta = nowUs - p.lastFrameUs
	}
	p.lastFrameUs = nowUs
	p.hasLast = true
	p.frameCount++
	return delta
}

// IsAheadOfTarget reports whether the given inter-frame delta beats
// the target frame time.
func (p *FramePacer) IsAheadOfTarget(deltaUs uint64) bool {
	return deltaUs < p.cfg.TargetFrameTimeUs
}
