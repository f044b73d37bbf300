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

package injection

import (
	"time"

	"github.com/GhostKellz/nvvk/framegen"
	"github.com/GhostKellz/nvvk/lowlatency"
	"github.com/GhostKellz/nvvk/vrr"
)

const presentRingSize = 16

// Context is the present-injection context (§4.9). It holds
// non-owning (weak) references to the frame-generation orchestrator
// and, optionally, a low-latency context — both borrowed from the
// host, per §3's note that these are "pointer to frame-gen and
// low-latency contexts" rather than owned values.
type Context struct {
	config    Config
	requested bool

	frameGen   *framegen.Orchestrator // weak reference
	lowLatency *lowlatency.Context    // weak reference, may be nil

	ring   [presentRingSize]uint64
	cursor int

	avgPresentIntervalUs float64
	effectiveFPS         float64

	realFrames      uint64
	generatedFrames uint64
	skippedFrames   uint64

	lastPresentTimeUs uint64
	hasLastPresent    bool
	frameNumber       uint64

	lfc vrr.State
	now func() uint64
}

// New constructs a present-injection Context. frameGen and
// lowLatencyCtx are borrowed; Context never closes or frees them.
func New(cfg Config, frameGen *framegen.Orchestrator, lowLatencyCtx *lowlatency.Context) *Context {
	start := time.Now()
	return &Context{
		config:     cfg,
		requested:  cfg.Mode != ModeDisabled,
		frameGen:   frameGen,
		lowLatency: lowLatencyCtx,
		now:        func() uint64 { return uint64(time.Since(start).Microseconds()) },
	}
}

// SetClock overrides the monotonic microsecond clock; exposed for
// deterministic tests.
func (c *Context) SetClock(now func() uint64) { c.now = now }

// SetEnabled sets whether the caller wants present injection active.
func (c *Context) SetEnabled(enabled bool) { c.requested = enabled }

// SetMode changes the injection mode. Effective enablement is
// requested && mode != disabled (§4.9).
func (c *Context) SetMode(mode Mode) { c.config.Mode = mode }

// IsEnabled reports the effective enablement.
func (c *Context) IsEnabled() bool {
	return c.requested && c.config.Mode != ModeDisabled
}

// SetVrrConfig installs a VRR config. If timing is currently adaptive
// and the new config is enabled, auto-switches to vrr timing (§4.9).
func (c *Context) SetVrrConfig(cfg vrr.Config) {
	c.config.VrrConfig = &cfg
	if c.config.Timing == TimingAdaptive && cfg.Enabled {
		c.config.Timing = TimingVrr
	}
}

// ShouldInject reports whether a generated frame should be scheduled
// right now (§4.9): enabled, LFC not pausing injection, frame-gen
// confidence at or above the configured floor, and no scene change in
// flight.
func (c *Context) ShouldInject() bool {
	if !c.IsEnabled() {
		return false
	}
	if c.lfc.ShouldPauseInjection() {
		return false
	}
	if c.frameGen == nil {
		return false
	}
	stats := c.frameGen.GetStats()
	if stats.Confidence < c.config.MinConfidence {
		return false
	}
	if stats.SceneChangeDetected {
		return false
	}
	return true
}

// CalculateInjectionTiming computes the microsecond delay before the
// injected present, per the configured Timing (§4.9).
func (c *Context) CalculateInjectionTiming() uint64 {
	switch c.config.Timing {
	case TimingFixed:
		if c.config.TargetFPS <= 0 {
			return 0
		}
		return uint64(1_000_000 / c.config.TargetFPS / 2)
	case TimingVrr:
		if c.config.VrrConfig == nil {
			return adaptiveFallbackUs
		}
		return uint64(c.config.VrrConfig.CalculateInjectionInterval(c.avgPresentIntervalUs))
	default: // TimingAdaptive
		if c.avgPresentIntervalUs == 0 {
			return adaptiveFallbackUs
		}
		return uint64(c.avgPresentIntervalUs / 2)
	}
}

func (c *Context) recomputeAverage() {
	var sum uint64
	var count int
	for _, v := range c.ring {
		if v != 0 {
			sum += v
			count++
		}
	}
	if count == 0 {
		c.avgPresentIntervalUs = 0
		c.effectiveFPS = 0
		return
	}
	c.avgPresentIntervalUs = float64(sum) / float64(count)
	c.effectiveFPS = 1_000_000 / c.avgPresentIntervalUs
}

// RecordPresentTime snaps the current monotonic clock, writes the
// delta since the previous present into the 16-slot ring, recomputes
// the rolling average, and on a real (non-generated) frame advances
// frame_number and steps the LFC state (§4.9).
func (c *Context) RecordPresentTime(isGenerated bool) {
	nowUs := c.now()
	if c.hasLastPresent && nowUs > c.lastPresentTimeUs {
		c.ring[c.cursor] = nowUs - c.lastPresentTimeUs
		c.cursor = (c.cursor + 1) % presentRingSize
		c.recomputeAverage()
	}
	c.lastPresentTimeUs = nowUs
	c.hasLastPresent = true

	if isGenerated {
		c.generatedFrames++
		return
	}

	c.realFrames++
	c.frameNumber++
	if c.config.VrrConfig != nil {
		c.lfc.Update(c.effectiveFPS, *c.config.VrrConfig, c.frameNumber)
	}
}

// RecordSkipped notes a present cycle where ShouldInject was true but
// the host chose not to (or could not) inject.
func (c *Context) RecordSkipped() { c.skippedFrames++ }

// GetStats returns a snapshot of the context's running counters.
func (c *Context) GetStats() Stats {
	return Stats{
		RealFrames:           c.realFrames,
		GeneratedFrames:      c.generatedFrames,
		SkippedFrames:        c.skippedFrames,
		AvgPresentIntervalUs: c.avgPresentIntervalUs,
		EffectiveFPS:         c.effectiveFPS,
		FrameNumber:          c.frameNumber,
		LfcActive:            c.lfc.Active,
	}
}
