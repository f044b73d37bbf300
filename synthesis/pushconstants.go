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

import "unsafe"

func sizeofWarp() uintptr             { return unsafe.Sizeof(WarpPushConstants{}) }
func sizeofBlend() uintptr            { return unsafe.Sizeof(BlendPushConstants{}) }
func sizeofConfidenceBlend() uintptr  { return unsafe.Sizeof(ConfidenceBlendPushConstants{}) }
func sizeofOcclusionFill() uintptr    { return unsafe.Sizeof(OcclusionFillPushConstants{}) }

// The four push-constant layouts below are caller-visible through the
// descriptor contract (§4.6) and are each exactly 16 bytes — the
// minimum push-constant block size guaranteed across implementations.
// Padding fields preserve that layout; they carry no meaning.

// WarpPushConstants parameterizes one directional motion-compensated
// warp.
type WarpPushConstants struct {
	MvScaleX      float32
	MvScaleY      float32
	Interpolation float32
	Direction     float32 // +1 forward, -1 backward
}

// BlendPushConstants parameterizes a plain linear blend.
type BlendPushConstants struct {
	Weight float32
	_      [3]float32
}

// ConfidenceBlendPushConstants parameterizes a cost-map-weighted blend
// (Quality mode).
type ConfidenceBlendPushConstants struct {
	Interpolation float32
	CostScale     float32
	MinConfidence float32
	_             float32
}

// OcclusionFillPushConstants parameterizes the disocclusion-fill pass
// (Quality mode).
type OcclusionFillPushConstants struct {
	OcclusionThreshold float32
	FillRadius         float32
	Interpolation      float32
	_                  float32
}
