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

package opticalflow

import (
	"testing"

	"github.com/GhostKellz/nvvk/driver"
	"github.com/GhostKellz/nvvk/result"
)

type fakeInvoker struct {
	binds      []BindingPoint
	executed   bool
	destroyed  bool
	nextHandle uintptr
}

func (f *fakeInvoker) CreateSession(cfg Config) (uintptr, error) {
	f.nextHandle = 0x42
	return f.nextHandle, nil
}

func (f *fakeInvoker) DestroySession(handle uintptr) error {
	f.destroyed = true
	return nil
}

func (f *fakeInvoker) BindImage(handle uintptr, binding BindingPoint, imageView uintptr, imageLayout uint32) error {
	f.binds = append(f.binds, binding)
	return nil
}

func (f *fakeInvoker) Execute(cmd uintptr, handle uintptr, regions []Region, flags ExecuteFlags) error {
	f.executed = true
	return nil
}

func supportedDispatch() *driver.DeviceDispatch {
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

func TestCreateUnsupported(t *testing.T) {
	_, err := Create(driver.NewDeviceDispatch(1, nil), &fakeInvoker{}, Config{})
	if !result.Is(err, result.ExtensionNotPresent) {
		t.Fatalf("expected ExtensionNotPresent, got %v", err)
	}
}

func TestExecuteFailsWithUnboundRequiredBinding(t *testing.T) {
	fi := &fakeInvoker{}
	s, err := Create(supportedDispatch(), fi, Config{Width: 1920, Height: 1080, OutputGrid: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Execute(1, nil, ExecuteFlags{}); !result.Is(err, result.InvalidHandle) {
		t.Fatalf("expected InvalidHandle, got %v", err)
	}
	if fi.executed {
		t.Fatalf("execute should not have been called through")
	}
}

func TestExecuteSucceedsWithAllRequiredBindings(t *testing.T) {
	fi := &fakeInvoker{}
	s, err := Create(supportedDispatch(), fi, Config{Width: 1920, Height: 1080, OutputGrid: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, b := range []BindingPoint{BindingInput, BindingReference, BindingFlowVector} {
		if err := s.BindImage(b, 0x1, 0); err != nil {
			t.Fatalf("unexpected error binding %v: %v", b, err)
		}
	}
	if err := s.Execute(1, nil, ExecuteFlags{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fi.executed {
		t.Fatalf("expected execute to be invoked")
	}
}

func TestExecuteRequiresBidirectionalAndCostBindings(t *testing.T) {
	fi := &fakeInvoker{}
	s, err := Create(supportedDispatch(), fi, Config{
		Width: 1920, Height: 1080, OutputGrid: 4,
		Bidirectional: true, CostEnabled: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, b := range []BindingPoint{BindingInput, BindingReference, BindingFlowVector, BindingBackwardFlowVector} {
		s.BindImage(b, 0x1, 0)
	}
	if err := s.Execute(1, nil, ExecuteFlags{}); !result.Is(err, result.InvalidHandle) {
		t.Fatalf("expected InvalidHandle without cost bindings, got %v", err)
	}
	s.BindImage(BindingCost, 0x1, 0)
	s.BindImage(BindingBackwardCost, 0x1, 0)
	if err := s.Execute(1, nil, ExecuteFlags{}); err != nil {
		t.Fatalf("unexpected error after binding cost slots: %v", err)
	}
}

func TestDestroyThenOperationsFail(t *testing.T) {
	fi := &fakeInvoker{}
	s, err := Create(supportedDispatch(), fi, Config{Width: 1920, Height: 1080, OutputGrid: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Destroy(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fi.destroyed {
		t.Fatalf("expected underlying session to be destroyed")
	}
	if err := s.Destroy(); !result.Is(err, result.InvalidHandle) {
		t.Fatalf("expected InvalidHandle on double destroy, got %v", err)
	}
	if err := s.BindImage(BindingInput, 0x1, 0); !result.Is(err, result.InvalidHandle) {
		t.Fatalf("expected InvalidHandle after destroy, got %v", err)
	}
}
