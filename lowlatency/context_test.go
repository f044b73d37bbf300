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
	"testing"

	"github.com/GhostKellz/nvvk/driver"
	"github.com/GhostKellz/nvvk/result"
)

type fakeInvoker struct {
	modeCalls    []ModeConfig
	markerCalls  []Marker
	presentCalls []uint64
	sleepCalls   int
	timings      []FrameTimings
}

func (f *fakeInvoker) SetLatencySleepMode(cfg ModeConfig) error {
	f.modeCalls = append(f.modeCalls, cfg)
	return nil
}

func (f *fakeInvoker) LatencySleep(semaphore uintptr, value uint64) error {
	f.sleepCalls++
	return nil
}

func (f *fakeInvoker) SetLatencyMarker(presentID uint64, marker Marker) error {
	f.presentCalls = append(f.presentCalls, presentID)
	f.markerCalls = append(f.markerCalls, marker)
	return nil
}

func (f *fakeInvoker) GetLatencyTimings(presentID uint64) ([]FrameTimings, error) {
	return f.timings, nil
}

func fullDispatch() *driver.DeviceDispatch {
	return driver.NewDeviceDispatch(1, func(device uintptr, name string) uintptr {
		switch name {
		case "vkSetLatencySleepModeNV", "vkLatencySleepNV", "vkSetLatencyMarkerNV", "vkGetLatencyTimingsNV":
			return 0x1
		default:
			return 0
		}
	})
}

func TestContextBeginFrameAssignsIncreasingIDs(t *testing.T) {
	fi := &fakeInvoker{}
	ctx := NewContext(fullDispatch(), fi)

	id1 := ctx.BeginFrame()
	id2 := ctx.BeginFrame()
	if id1 != 1 || id2 != 2 {
		t.Fatalf("present IDs = %d, %d, want 1, 2", id1, id2)
	}
	if ctx.CurrentFrameID() != 2 {
		t.Fatalf("CurrentFrameID() = %d, want 2", ctx.CurrentFrameID())
	}
	if len(fi.presentCalls) != 2 || fi.presentCalls[0] != 1 || fi.presentCalls[1] != 2 {
		t.Fatalf("unexpected marker present IDs: %v", fi.presentCalls)
	}
}

func TestContextMarkerSequence(t *testing.T) {
	fi := &fakeInvoker{}
	ctx := NewContext(fullDispatch(), fi)

	ctx.BeginFrame()
	ctx.MarkInputSample()
	ctx.EndSimulation()
	ctx.BeginRenderSubmit()
	ctx.EndRenderSubmit()
	ctx.BeginPresent()
	ctx.EndPresent()

	want := []Marker{
		MarkerSimStart,
		MarkerInputSample,
		MarkerSimEnd,
		MarkerRenderSubmitStart,
		MarkerRenderSubmitEnd,
		MarkerPresentStart,
		MarkerPresentEnd,
	}
	if len(fi.markerCalls) != len(want) {
		t.Fatalf("got %d marker calls, want %d", len(fi.markerCalls), len(want))
	}
	for i, m := range want {
		if fi.markerCalls[i] != m {
			t.Errorf("marker[%d] = %v, want %v", i, fi.markerCalls[i], m)
		}
	}
}

func TestContextUnsupportedDevice(t *testing.T) {
	fi := &fakeInvoker{}
	ctx := NewContext(driver.NewDeviceDispatch(1, nil), fi)

	if ctx.IsSupported() {
		t.Fatalf("expected unsupported")
	}
	if err := ctx.SetMode(NewTargetFPSMode(60)); !result.Is(err, result.ExtensionNotPresent) {
		t.Fatalf("expected ExtensionNotPresent, got %v", err)
	}
	if err := ctx.Sleep(0, 1); !result.Is(err, result.ExtensionNotPresent) {
		t.Fatalf("expected ExtensionNotPresent, got %v", err)
	}
	if _, err := ctx.GetTimings(0); !result.Is(err, result.ExtensionNotPresent) {
		t.Fatalf("expected ExtensionNotPresent, got %v", err)
	}

	// Marker stamping is a silent no-op when unsupported.
	ctx.BeginFrame()
	if len(fi.markerCalls) != 0 {
		t.Fatalf("expected no marker calls on unsupported device")
	}
}

func TestContextSetModeTracksLastSubmitted(t *testing.T) {
	fi := &fakeInvoker{}
	ctx := NewContext(fullDispatch(), fi)

	cfg := NewTargetFPSMode(144)
	if err := ctx.SetMode(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Mode() != cfg {
		t.Fatalf("Mode() = %+v, want %+v", ctx.Mode(), cfg)
	}
}

func TestContextGetTimingsCaps(t *testing.T) {
	fi := &fakeInvoker{timings: []FrameTimings{{PresentID: 1}, {PresentID: 2}, {PresentID: 3}}}
	ctx := NewContext(fullDispatch(), fi)

	all, err := ctx.GetTimings(0)
	if err != nil || len(all) != 3 {
		t.Fatalf("GetTimings(0) = %v, %v", all, err)
	}
	capped, err := ctx.GetTimings(2)
	if err != nil || len(capped) != 2 {
		t.Fatalf("GetTimings(2) = %v, %v", capped, err)
	}
	count, err := ctx.CountTimings()
	if err != nil || count != 3 {
		t.Fatalf("CountTimings() = %d, %v", count, err)
	}
}
