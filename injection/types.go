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

// Package injection implements the present-injection context (§4.9):
// it decides, once per real present, whether and when to schedule an
// injected (generated) frame between two real presents.
package injection

import "github.com/GhostKellz/nvvk/vrr"

// Mode is how many generated frames are injected per real frame.
type Mode int

const (
	ModeDisabled Mode = iota
	ModeSingle
	ModeDouble
)

// Timing selects how the injection interval is computed (§4.9).
type Timing int

const (
	TimingFixed Timing = iota
	TimingAdaptive
	TimingVrr
)

// adaptiveFallbackUs is the interval used when Timing is Adaptive (or
// Vrr, absent a VrrConfig) and no present samples exist yet — roughly
// the 120Hz midpoint (§4.9).
const adaptiveFallbackUs = 8333

// Config parameterizes one present-injection Context (§3).
type Config struct {
	Mode              Mode
	Timing            Timing
	TargetFPS         int
	MinConfidence     float32
	ReflexIntegration bool
	VrrConfig         *vrr.Config
}

// Stats is a snapshot of the context's running counters.
type Stats struct {
	RealFrames           uint64
	GeneratedFrames      uint64
	SkippedFrames        uint64
	AvgPresentIntervalUs float64
	EffectiveFPS         float64
	FrameNumber          uint64
	LfcActive            bool
}
