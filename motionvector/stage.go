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

// Package motionvector implements the motion-vector stage (§4.5): a
// fixed 2-slot frame ring feeding an optical-flow session, producing
// the forward (and optionally backward) flow-vector buffer consumed
// by frame synthesis.
package motionvector

import (
	"github.com/GhostKellz/nvvk/opticalflow"
	"github.com/GhostKellz/nvvk/result"
)

// Frame is one frame-image descriptor held in the ring (§3).
type Frame struct {
	Image, View, Memory uintptr
	Width, Height       int
}

// Buffers is the motion-vector output buffer set the stage owns and
// binds into the optical-flow session (§3: "optionally owns the
// motion-vector output buffer set"). A zero handle means the buffer
// was not allocated and that binding is skipped.
type Buffers struct {
	ForwardFlow  uintptr
	BackwardFlow uintptr
	Cost         uintptr
	BackwardCost uintptr
}

// Stage is a 2-slot frame ring driving an optical-flow session.
//
// Cursor convention: c points at the *next write slot*. Push writes
// history[c], then advances c = 1-c.
// Immediately after a push, "current" is the slot just written
// (index 1-c, post-advance) and "previous" is the other slot (index
// c, post-advance). This convention is fixed for the type's lifetime.
type Stage struct {
	session   *opticalflow.Session
	buffers   Buffers
	history   [2]Frame
	populated [2]bool
	cursor    int
	pushCount int
}

// NewStage builds a Stage bound to an existing optical-flow session
// and its owned output buffers. session may be nil; in that case
// Execute returns NotInitialized until a non-nil session is supplied
// via Rebind.
func NewStage(session *opticalflow.Session, buffers Buffers) *Stage {
	return &Stage{session: session, buffers: buffers}
}

// Rebind attaches (or replaces) the optical-flow session backing this
// stage, without disturbing the frame history.
func (s *Stage) Rebind(session *opticalflow.Session) { s.session = session }

// Push writes frame into the ring's next slot and advances the
// cursor. Returns true once at least two frames have ever been
// pushed.
func (s *Stage) Push(frame Frame) bool {
	s.history[s.cursor] = frame
	s.populated[s.cursor] = true
	s.cursor = 1 - s.cursor
	s.pushCount++
	return s.pushCount >= 2
}

// PushCount is the total number of frames ever pushed.
func (s *Stage) PushCount() int { return s.pushCount }

func (s *Stage) currentIndex() int  { return 1 - s.cursor }
func (s *Stage) previousIndex() int { return s.cursor }

// GetCurrentFrame returns the most recently pushed frame, or the zero
// Frame if none has been pushed yet.
func (s *Stage) GetCurrentFrame() Frame { return s.history[s.currentIndex()] }

// GetPreviousFrame returns the frame pushed before the current one, or
// the zero Frame if fewer than two frames have been pushed.
func (s *Stage) GetPreviousFrame() Frame { return s.history[s.previousIndex()] }

// GetMotionVectors returns the owned forward-flow buffer handle, or 0
// if none is configured.
func (s *Stage) GetMotionVectors() uintptr { return s.buffers.ForwardFlow }

// Execute binds the current ring contents into the optical-flow
// session (current→input, previous→reference, owned flow/cost
// buffers) and records the estimation command. Fails with
// NotInitialized if no session is attached, or InsufficientFrames if
// fewer than two frames have been pushed.
func (s *Stage) Execute(cmd uintptr) error {
	if s.session == nil {
		return result.New(result.NotInitialized, "motion vector stage has no optical flow session")
	}
	if s.pushCount < 2 {
		return result.New(result.InsufficientFrames, "motion vector stage needs at least 2 pushed frames")
	}

	cur := s.GetCurrentFrame()
	prev := s.GetPreviousFrame()

	if err := s.session.BindImage(opticalflow.BindingInput, cur.View, 0); err != nil {
		return err
	}
	if err := s.session.BindImage(opticalflow.BindingReference, prev.View, 0); err != nil {
		return err
	}
	if s.buffers.ForwardFlow != 0 {
		if err := s.session.BindImage(opticalflow.BindingFlowVector, s.buffers.ForwardFlow, 0); err != nil {
			return err
		}
	}
	if s.buffers.BackwardFlow != 0 {
		if err := s.session.BindImage(opticalflow.BindingBackwardFlowVector, s.buffers.BackwardFlow, 0); err != nil {
			return err
		}
	}
	if s.buffers.Cost != 0 {
		if err := s.session.BindImage(opticalflow.BindingCost, s.buffers.Cost, 0); err != nil {
			return err
		}
	}
	if s.buffers.BackwardCost != 0 {
		if err := s.session.BindImage(opticalflow.BindingBackwardCost, s.buffers.BackwardCost, 0); err != nil {
			return err
		}
	}

	return s.session.Execute(cmd, nil, opticalflow.ExecuteFlags{})
}
