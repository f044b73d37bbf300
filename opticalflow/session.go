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
	"github.com/GhostKellz/nvvk/driver"
	"github.com/GhostKellz/nvvk/result"
)

// Invoker performs the underlying optical-flow driver calls; see the
// note on lowlatency.Invoker for why the actual call marshaling lives
// outside this package.
type Invoker interface {
	CreateSession(cfg Config) (uintptr, error)
	DestroySession(handle uintptr) error
	BindImage(handle uintptr, binding BindingPoint, imageView uintptr, imageLayout uint32) error
	Execute(cmd uintptr, handle uintptr, regions []Region, flags ExecuteFlags) error
}

// Session is the live handle to one created optical-flow session
// (§4.4).
type Session struct {
	dispatch *driver.DeviceDispatch
	invoker  Invoker
	config   Config
	handle   uintptr
	bound    map[BindingPoint]bool
	alive    bool
}

// Create constructs a Session. Fails with ExtensionNotPresent if the
// device does not expose optical flow.
func Create(dispatch *driver.DeviceDispatch, invoker Invoker, cfg Config) (*Session, error) {
	if !dispatch.HasOpticalFlow() {
		return nil, result.New(result.ExtensionNotPresent, "optical flow not present on this device")
	}
	handle, err := invoker.CreateSession(cfg)
	if err != nil {
		return nil, err
	}
	return &Session{
		dispatch: dispatch,
		invoker:  invoker,
		config:   cfg,
		handle:   handle,
		bound:    make(map[BindingPoint]bool),
		alive:    true,
	}, nil
}

// BindImage associates an image with one of the enumerated binding
// points.
func (s *Session) BindImage(binding BindingPoint, imageView uintptr, imageLayout uint32) error {
	if !s.alive {
		return result.New(result.InvalidHandle, "optical flow session already destroyed")
	}
	if err := s.invoker.BindImage(s.handle, binding, imageView, imageLayout); err != nil {
		return err
	}
	s.bound[binding] = true
	return nil
}

// requiredBindings is the set of bindings Execute refuses to run
// without, derived from the session's configuration.
func (s *Session) requiredBindings() []BindingPoint {
	required := []BindingPoint{BindingInput, BindingReference, BindingFlowVector}
	if s.config.Bidirectional {
		required = append(required, BindingBackwardFlowVector)
	}
	if s.config.CostEnabled {
		required = append(required, BindingCost)
		if s.config.Bidirectional {
			required = append(required, BindingBackwardCost)
		}
	}
	return required
}

// Execute records the flow-estimation command. regions is nil for
// whole-frame estimation, or a list of regions of interest.
func (s *Session) Execute(cmd uintptr, regions []Region, flags ExecuteFlags) error {
	if !s.alive {
		return result.New(result.InvalidHandle, "optical flow session already destroyed")
	}
	for _, binding := range s.requiredBindings() {
		if !s.bound[binding] {
			return result.Newf(result.InvalidHandle, "required binding %s is unbound", binding)
		}
	}
	return s.invoker.Execute(cmd, s.handle, regions, flags)
}

// Destroy releases the session. Safe to call once; a second call
// returns InvalidHandle.
func (s *Session) Destroy() error {
	if !s.alive {
		return result.New(result.InvalidHandle, "optical flow session already destroyed")
	}
	if err := s.invoker.DestroySession(s.handle); err != nil {
		return err
	}
	s.alive = false
	return nil
}

// IsAlive reports whether the session has not yet been destroyed.
func (s *Session) IsAlive() bool { return s.alive }
