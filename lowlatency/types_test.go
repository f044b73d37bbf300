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

import "testing"

func TestTargetFPSIntervalUs(t *testing.T) {
	cases := []struct {
		fps  int
		want uint64
	}{
		{60, 16666},
		{30, 33333},
		{0, 0},
		{-5, 0},
	}
	for _, c := range cases {
		if got := TargetFPSIntervalUs(c.fps); got != c.want {
			t.Errorf("TargetFPSIntervalUs(%d) = %d, want %d", c.fps, got, c.want)
		}
	}
}

func TestUncappedMode(t *testing.T) {
	m := UncappedMode()
	if !m.Enabled || !m.Boost || m.MinimumIntervalUs != 0 {
		t.Fatalf("unexpected uncapped mode: %+v", m)
	}
}

func TestFrameTimingsDerivedZeroSafe(t *testing.T) {
	var ft FrameTimings
	if ft.TotalLatencyUs() != 0 {
		t.Fatalf("expected 0 total latency with no timestamps")
	}
	if ft.SimTimeUs() != 0 || ft.GPURenderTimeUs() != 0 || ft.DriverTimeUs() != 0 {
		t.Fatalf("expected zero-safe derived fields")
	}

	ft.InputSampleTimeUs = 1000
	ft.PresentEndTimeUs = 0
	if ft.TotalLatencyUs() != 0 {
		t.Fatalf("expected 0 total latency with one side unreported")
	}

	ft.PresentEndTimeUs = 25000
	if got, want := ft.TotalLatencyUs(), uint64(24000); got != want {
		t.Fatalf("TotalLatencyUs() = %d, want %d", got, want)
	}

	ft.SimStartTimeUs = 1000
	ft.SimEndTimeUs = 1500
	if got, want := ft.SimTimeUs(), uint64(500); got != want {
		t.Fatalf("SimTimeUs() = %d, want %d", got, want)
	}
}

func TestMarkerString(t *testing.T) {
	if MarkerPresentEnd.String() != "present_end" {
		t.Fatalf("unexpected marker string: %s", MarkerPresentEnd.String())
	}
	if Marker(999).String() != "unknown_marker" {
		t.Fatalf("expected fallback for unknown marker")
	}
}
