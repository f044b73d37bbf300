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

package vrr

// State is the low-framerate-compensation state machine (§3): it
// tracks whether the driver is currently doubling frames, and since
// when.
type State struct {
	Active          bool
	TransitionFrame uint64
	DoubledFrames   uint64
}

// Update advances the state machine by one real frame at the given
// fps, using cfg and the current frame number (§4.8):
//   - entering LFC records the transition frame;
//   - leaving LFC records the transition frame;
//   - while active, DoubledFrames increments.
func (s *State) Update(fps float64, cfg Config, frameNumber uint64) {
	active := cfg.IsLfcActive(fps)
	if active != s.Active {
		s.TransitionFrame = frameNumber
	}
	s.Active = active
	if s.Active {
		s.DoubledFrames++
	}
}

// ShouldPauseInjection reports whether frame generation must stop
// because the driver itself is doubling frames (§4.8, invariant 9).
func (s *State) ShouldPauseInjection() bool {
	return s.Active
}
