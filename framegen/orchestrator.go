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

package framegen

import (
	"time"

	"github.com/GhostKellz/nvvk/lowlatency"
	"github.com/GhostKellz/nvvk/motionvector"
	"github.com/GhostKellz/nvvk/synthesis"
)

const genTimeRingSize = 8

// CostMapReader supplies the per-frame cost-map snapshot the
// scene-change and confidence policies read. A nil reader yields an
// empty cost map every frame (see CostMapSceneChange/CostMapConfidence
// for the resulting default behavior).
type CostMapReader interface {
	ReadCostMap() []float32
}

// Orchestrator drives the motion-vector, optical-flow, and synthesis
// stages to produce interpolated frames (§4.7). It holds a
// non-owning (weak) reference to an optional lowlatency.Context, per
// §3's "Present-injection context" note on borrowed references.
type Orchestrator struct {
	config    Config
	requested bool

	motionVector *motionvector.Stage
	synth        *synthesis.Context
	lowLatency   *lowlatency.Context // weak reference, may be nil

	costMap      CostMapReader
	sceneChange  SceneChangeFunc
	confidence   ConfidenceFunc
	now          func() time.Time

	frameCounter uint64

	framesPushed    uint64
	framesGenerated uint64
	skippedFrames   uint64

	genTimes      [genTimeRingSize]uint64
	genTimeCount  int
	genTimeCursor int

	lastConfidence          float32
	lastSceneChangeDetected bool
}

// New constructs an Orchestrator. motionVector and synth must already
// be wired to the sub-stages the mode-to-policy mapping (§4.7)
// selected at their own construction time; lowLatencyCtx may be nil.
func New(cfg Config, motionVector *motionvector.Stage, synth *synthesis.Context, lowLatencyCtx *lowlatency.Context) *Orchestrator {
	return &Orchestrator{
		config:       cfg,
		requested:    cfg.Mode != ModeOff,
		motionVector: motionVector,
		synth:        synth,
		lowLatency:   lowLatencyCtx,
		sceneChange:  CostMapSceneChange,
		confidence:   CostMapConfidence,
		now:          time.Now,
	}
}

// SetCostMapReader installs the per-frame cost-map source.
func (o *Orchestrator) SetCostMapReader(r CostMapReader) { o.costMap = r }

// SetSceneChangeFunc overrides the scene-change policy.
func (o *Orchestrator) SetSceneChangeFunc(f SceneChangeFunc) { o.sceneChange = f }

// SetConfidenceFunc overrides the confidence policy.
func (o *Orchestrator) SetConfidenceFunc(f ConfidenceFunc) { o.confidence = f }

// SetClock overrides the wall-clock source used to time generation;
// exposed for deterministic tests.
func (o *Orchestrator) SetClock(now func() time.Time) { o.now = now }

// SetEnabled sets whether the caller wants frame generation active.
// Effective enablement is requested && mode != off (§4.7).
func (o *Orchestrator) SetEnabled(enabled bool) { o.requested = enabled }

// SetMode changes the active quality/cost tradeoff for subsequent
// synthesis calls. Sub-stage resource requirements decided at
// construction time (whether the optical-flow session is
// bidirectional / cost-enabled) are not retroactively reconfigured —
// only the synthesis pass's own mode follows SetMode.
func (o *Orchestrator) SetMode(mode Mode) {
	o.config.Mode = mode
	if o.synth != nil {
		o.synth.SetMode(policyFor(mode).synthesisMode)
	}
}

// IsEnabled reports the effective enablement (§4.7).
func (o *Orchestrator) IsEnabled() bool {
	return o.requested && o.config.Mode != ModeOff
}

// GetCurrentFrameID is the internal frame counter, advanced once per
// successful PushFrame call that reaches step 2 (§4.7).
func (o *Orchestrator) GetCurrentFrameID() uint64 { return o.frameCounter }

func (o *Orchestrator) recordGenTime(us uint64) {
	o.genTimes[o.genTimeCursor] = us
	o.genTimeCursor = (o.genTimeCursor + 1) % genTimeRingSize
	if o.genTimeCount < genTimeRingSize {
		o.genTimeCount++
	}
}

func (o *Orchestrator) avgGenTimeUs() uint64 {
	if o.genTimeCount == 0 {
		return 0
	}
	var sum uint64
	for i := 0; i < o.genTimeCount; i++ {
		sum += o.genTimes[i]
	}
	return sum / uint64(o.genTimeCount)
}

// PushFrame runs one frame-generation attempt (§4.7 steps 1-7). It
// returns (nil, nil) whenever generation is intentionally suppressed
// (insufficient history, disabled, scene change, low confidence) — a
// nil *GeneratedFrame is not an error.
func (o *Orchestrator) PushFrame(cmd uintptr, frame motionvector.Frame) (*GeneratedFrame, error) {
	o.framesPushed++
	start := o.now()

	enoughHistory := o.motionVector.Push(frame)
	if !enoughHistory || !o.IsEnabled() {
		return nil, nil
	}

	o.frameCounter++

	if err := o.motionVector.Execute(cmd); err != nil {
		return nil, err
	}

	var costMap []float32
	if o.costMap != nil {
		costMap = o.costMap.ReadCostMap()
	}

	detected := o.sceneChange(costMap, o.config)
	o.lastSceneChangeDetected = detected
	if detected {
		o.skippedFrames++
		return nil, nil
	}

	mv := synthesis.MotionVectorBuffers{Forward: o.motionVector.GetMotionVectors()}
	outputView, err := o.synth.Synthesize(cmd, o.motionVector.GetPreviousFrame().View, o.motionVector.GetCurrentFrame().View, mv)
	if err != nil {
		return nil, err
	}

	confidence := o.confidence(costMap, o.config)
	o.lastConfidence = confidence
	if confidence < o.config.ConfidenceThreshold {
		return nil, nil
	}

	genTimeUs := uint64(o.now().Sub(start).Microseconds())
	o.recordGenTime(genTimeUs)
	o.framesGenerated++

	return &GeneratedFrame{
		ImageView:        outputView,
		Confidence:       confidence,
		GenerationTimeUs: genTimeUs,
		FrameID:          o.frameCounter,
		ShouldPresent:    true,
	}, nil
}

// GetLatencyCompensation is target_frame_time_us/2 + avg_gen_time_us
// when LatencyCompensation is enabled, else 0 (§4.7).
func (o *Orchestrator) GetLatencyCompensation() uint64 {
	if !o.config.LatencyCompensation {
		return 0
	}
	return o.config.TargetFrameTimeUs/2 + o.avgGenTimeUs()
}

// GetStats returns a snapshot of the orchestrator's running counters.
func (o *Orchestrator) GetStats() Stats {
	return Stats{
		FramesPushed:        o.framesPushed,
		FramesGenerated:     o.framesGenerated,
		SkippedFrames:       o.skippedFrames,
		AvgGenerationTimeUs: o.avgGenTimeUs(),
		Confidence:          o.lastConfidence,
		SceneChangeDetected: o.lastSceneChangeDetected,
	}
}
