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
	"testing"
	"time"

	"github.com/GhostKellz/nvvk/driver"
	"github.com/GhostKellz/nvvk/motionvector"
	"github.com/GhostKellz/nvvk/opticalflow"
	"github.com/GhostKellz/nvvk/synthesis"
)

type fakeFlowInvoker struct{}

func (fakeFlowInvoker) CreateSession(cfg opticalflow.Config) (uintptr, error) { return 0x1, nil }
func (fakeFlowInvoker) DestroySession(handle uintptr) error                  { return nil }
func (fakeFlowInvoker) BindImage(handle uintptr, binding opticalflow.BindingPoint, imageView uintptr, imageLayout uint32) error {
	return nil
}
func (fakeFlowInvoker) Execute(cmd uintptr, handle uintptr, regions []opticalflow.Region, flags opticalflow.ExecuteFlags) error {
	return nil
}

type fakeSynthInvoker struct{ calls int }

func (f *fakeSynthInvoker) Warp(cmd uintptr, pc synthesis.WarpPushConstants, inputView, mvView, outputView uintptr) error {
	f.calls++
	return nil
}
func (f *fakeSynthInvoker) Blend(cmd uintptr, pc synthesis.BlendPushConstants, a, b, outputView uintptr) error {
	f.calls++
	return nil
}
func (f *fakeSynthInvoker) ConfidenceBlend(cmd uintptr, pc synthesis.ConfidenceBlendPushConstants, a, b, costView, outputView uintptr) error {
	f.calls++
	return nil
}
func (f *fakeSynthInvoker) OcclusionFill(cmd uintptr, pc synthesis.OcclusionFillPushConstants, outputView uintptr) error {
	f.calls++
	return nil
}

func supportedFlowDispatch() *driver.DeviceDispatch {
	return driver.NewDeviceDispatch(1, func(device uintptr, name string) uintptr {
		switch name {
		case "vkCreateOpticalFlowSessionNV", "vkDestroyOpticalFlowSessionNV",
			"vkBindOpticalFlowSessionImageNV", "vkCmdOpticalFlowExecuteNV":
			return 0x1
		default:
			return 0
		}
	})
}

func newTestOrchestrator(t *testing.T, mode Mode, cfg Config) (*Orchestrator, *fakeSynthInvoker) {
	t.Helper()
	sess, err := opticalflow.Create(supportedFlowDispatch(), fakeFlowInvoker{}, opticalflow.Config{Width: cfg.Width, Height: cfg.Height, OutputGrid: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mvStage := motionvector.NewStage(sess, motionvector.Buffers{ForwardFlow: 0x100})
	synthInv := &fakeSynthInvoker{}
	synthCtx := synthesis.NewContext(synthesis.DefaultConfig(cfg.Width, cfg.Height, 4, synthesis.ModePerformance), synthInv, 0x200)

	cfg.Mode = mode
	o := New(cfg, mvStage, synthCtx, nil)
	return o, synthInv
}

func TestPushFrameInsufficientHistory(t *testing.T) {
	o, _ := newTestOrchestrator(t, ModePerformance, Config{Width: 1920, Height: 1080, ConfidenceThreshold: 0.5})

	got, err := o.PushFrame(1, motionvector.Frame{View: 0x1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil on frame 1 (insufficient history), got %+v", got)
	}
}

func TestPushFrameGeneratesOnSecondFrame(t *testing.T) {
	o, synthInv := newTestOrchestrator(t, ModePerformance, Config{Width: 1920, Height: 1080, ConfidenceThreshold: 0.5, MinConfidence: 0.9})

	o.PushFrame(1, motionvector.Frame{View: 0x1})
	got, err := o.PushFrame(1, motionvector.Frame{View: 0x2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatalf("expected a generated frame on the second push")
	}
	if !got.ShouldPresent {
		t.Fatalf("expected ShouldPresent true")
	}
	if got.FrameID != 1 {
		t.Fatalf("FrameID = %d, want 1", got.FrameID)
	}
	if synthInv.calls == 0 {
		t.Fatalf("expected synthesis to be invoked")
	}
}

func TestPushFrameSceneChangeSkip(t *testing.T) {
	o, _ := newTestOrchestrator(t, ModePerformance, Config{Width: 1920, Height: 1080, ConfidenceThreshold: 0.5, MinConfidence: 0.9})
	o.PushFrame(1, motionvector.Frame{View: 0x1})

	callCount := 0
	o.SetSceneChangeFunc(func(costMap []float32, cfg Config) bool {
		callCount++
		return callCount == 2 // trigger on the third PushFrame overall
	})

	got, err := o.PushFrame(1, motionvector.Frame{View: 0x2})
	if err != nil || got == nil {
		t.Fatalf("expected frame 2 to generate, got %+v, %v", got, err)
	}

	got, err = o.PushFrame(1, motionvector.Frame{View: 0x3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected frame 3 to be skipped by scene change")
	}
	if o.GetStats().SkippedFrames != 1 {
		t.Fatalf("SkippedFrames = %d, want 1", o.GetStats().SkippedFrames)
	}
}

func TestPushFrameDisabled(t *testing.T) {
	o, _ := newTestOrchestrator(t, ModeOff, Config{Width: 1920, Height: 1080})
	o.PushFrame(1, motionvector.Frame{View: 0x1})
	got, err := o.PushFrame(1, motionvector.Frame{View: 0x2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil when mode is off")
	}
	if o.IsEnabled() {
		t.Fatalf("expected IsEnabled() false for mode off")
	}
}

func TestGetLatencyCompensation(t *testing.T) {
	o, _ := newTestOrchestrator(t, ModePerformance, Config{
		Width: 1920, Height: 1080, ConfidenceThreshold: 0, MinConfidence: 1,
		LatencyCompensation: true, TargetFrameTimeUs: 16666,
	})
	if got, want := o.GetLatencyCompensation(), uint64(16666/2); got != want {
		t.Fatalf("GetLatencyCompensation() with no generated frames yet = %d, want %d", got, want)
	}

	fixed := time.UnixMicro(1_000_000)
	o.SetClock(func() time.Time { return fixed })
	o.PushFrame(1, motionvector.Frame{View: 0x1})
	o.PushFrame(1, motionvector.Frame{View: 0x2})

	want := uint64(16666/2) + 0 // clock frozen => gen time 0
	if got := o.GetLatencyCompensation(); got != want {
		t.Fatalf("GetLatencyCompensation() = %d, want %d", got, want)
	}
}
