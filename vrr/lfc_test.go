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

import "testing"

func TestLfcStateTransitionScenario(t *testing.T) {
	cfg := Config{MinHz: 48, MaxHz: 144, LfcSupported: true}
	var s State

	s.Update(60, cfg, 0)
	if s.Active {
		t.Fatalf("expected inactive at 60fps, frame 0")
	}

	s.Update(30, cfg, 1)
	if !s.Active || !s.ShouldPauseInjection() {
		t.Fatalf("expected active and should-pause at 30fps, frame 1")
	}
	if s.TransitionFrame != 1 {
		t.Fatalf("TransitionFrame = %d, want 1", s.TransitionFrame)
	}

	s.Update(35, cfg, 2)
	if !s.Active {
		t.Fatalf("expected still active at 35fps, frame 2")
	}
	if s.TransitionFrame != 1 {
		t.Fatalf("TransitionFrame should not change while staying active, got %d", s.TransitionFrame)
	}

	s.Update(60, cfg, 3)
	if s.Active {
		t.Fatalf("expected inactive again at 60fps, frame 3")
	}
	if s.TransitionFrame != 3 {
		t.Fatalf("TransitionFrame = %d, want 3", s.TransitionFrame)
	}
}

func TestLfcDoubledFramesAccumulate(t *testing.T) {
	cfg := Config{MinHz: 48, MaxHz: 144, LfcSupported: true}
	var s State

	s.Update(30, cfg, 0)
	s.Update(30, cfg, 1)
	s.Update(30, cfg, 2)
	if s.DoubledFrames != 3 {
		t.Fatalf("DoubledFrames = %d, want 3", s.DoubledFrames)
	}

	s.Update(60, cfg, 3)
	if s.DoubledFrames != 3 {
		t.Fatalf("DoubledFrames should not increment once inactive, got %d", s.DoubledFrames)
	}
}
