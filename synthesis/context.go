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

package synthesis

// Invoker performs the compute-shader dispatches backing each
// synthesis pass; see the note on lowlatency.Invoker for why the
// actual GPU call marshaling lives outside this package.
type Invoker interface {
	Warp(cmd uintptr, pc WarpPushConstants, inputView, motionVectorsView, outputView uintptr) error
	Blend(cmd uintptr, pc BlendPushConstants, a, b, outputView uintptr) error
	ConfidenceBlend(cmd uintptr, pc ConfidenceBlendPushConstants, a, b, costView, outputView uintptr) error
	OcclusionFill(cmd uintptr, pc OcclusionFillPushConstants, outputView uintptr) error
}

// Context is the synthesis stage bound to one output storage image
// (descriptor binding 4, §4.6).
type Context struct {
	config     Config
	invoker    Invoker
	outputView uintptr
}

// NewContext builds a synthesis Context. outputView is the
// context-owned storage image bound at descriptor slot "output" for
// the lifetime of the context.
func NewContext(cfg Config, invoker Invoker, outputView uintptr) *Context {
	return &Context{config: cfg, invoker: invoker, outputView: outputView}
}

// Config returns the context's configuration.
func (c *Context) Config() Config { return c.config }

// SetMode changes the synthesis quality/cost tradeoff for subsequent
// Synthesize calls.
func (c *Context) SetMode(mode Mode) { c.config.Mode = mode }

// Synthesize performs motion-compensated interpolation between
// prevView and currView using mv, writing into the context-owned
// output storage image and returning its view. Inputs are assumed to
// already match the context's configured (width, height) — validating
// that requires inspecting the backing image, which is outside this
// package's scope (it operates on opaque view handles).
func (c *Context) Synthesize(cmd uintptr, prevView, currView uintptr, mv MotionVectorBuffers) (uintptr, error) {
	t := c.config.InterpolationT

	switch c.config.Mode {
	case ModeBalanced, ModeQuality:
		if err := c.invoker.Warp(cmd, WarpPushConstants{
			MvScaleX: t, MvScaleY: t, Interpolation: t, Direction: 1,
		}, prevView, mv.Forward, c.outputView); err != nil {
			return 0, err
		}
		warpedPrev := c.outputView

		if err := c.invoker.Warp(cmd, WarpPushConstants{
			MvScaleX: 1 - t, MvScaleY: 1 - t, Interpolation: 1 - t, Direction: -1,
		}, currView, mv.Backward, c.outputView); err != nil {
			return 0, err
		}
		warpedCurr := c.outputView

		if c.config.Mode == ModeQuality {
			if err := c.invoker.ConfidenceBlend(cmd, ConfidenceBlendPushConstants{
				Interpolation: t,
				CostScale:     c.config.CostScale,
				MinConfidence: c.config.MinConfidence,
			}, warpedPrev, warpedCurr, mv.Cost, c.outputView); err != nil {
				return 0, err
			}
			if err := c.invoker.OcclusionFill(cmd, OcclusionFillPushConstants{
				OcclusionThreshold: c.config.OcclusionThreshold,
				FillRadius:         c.config.FillRadius,
				Interpolation:      t,
			}, c.outputView); err != nil {
				return 0, err
			}
			return c.outputView, nil
		}

		if err := c.invoker.Blend(cmd, BlendPushConstants{Weight: t}, warpedPrev, warpedCurr, c.outputView); err != nil {
			return 0, err
		}
		return c.outputView, nil

	default: // ModePerformance
		if err := c.invoker.Warp(cmd, WarpPushConstants{
			MvScaleX: t, MvScaleY: t, Interpolation: t, Direction: 1,
		}, prevView, mv.Forward, c.outputView); err != nil {
			return 0, err
		}
		if err := c.invoker.Blend(cmd, BlendPushConstants{Weight: t}, c.outputView, currView, c.outputView); err != nil {
			return 0, err
		}
		return c.outputView, nil
	}
}
