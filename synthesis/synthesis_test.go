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

import "testing"

func TestOutputDimensions(t *testing.T) {
	cases := []struct {
		width, height, grid int
		wantW, wantH         int
	}{
		{1920, 1080, 4, 480, 270},
		{1920, 1080, 2, 960, 540},
		{1920, 1080, 8, 240, 135},
	}
	for _, c := range cases {
		cfg := DefaultConfig(c.width, c.height, c.grid, ModePerformance)
		gotW, gotH := cfg.OutputDimensions()
		if gotW != c.wantW || gotH != c.wantH {
			t.Errorf("OutputDimensions(%d,%d,grid=%d) = (%d,%d), want (%d,%d)",
				c.width, c.height, c.grid, gotW, gotH, c.wantW, c.wantH)
		}
	}
}

func TestS10_5RoundTrip(t *testing.T) {
	values := []float32{0, 1, -1, 3.5, -3.5, 10.0625, -10.0625, 31.96875}
	for _, x := range values {
		encoded := FloatToS10_5(x)
		decoded := S10_5ToFloat(encoded)
		want := float32(int64(x*32)) / 32.0 // truncation toward zero
		if decoded != want {
			t.Errorf("round trip for %v: got %v, want %v", x, decoded, want)
		}
	}
}

func TestPushConstantSizes(t *testing.T) {
	const want = 16
	if got := sizeofWarp(); got != want {
		t.Errorf("WarpPushConstants size = %d, want %d", got, want)
	}
	if got := sizeofBlend(); got != want {
		t.Errorf("BlendPushConstants size = %d, want %d", got, want)
	}
	if got := sizeofConfidenceBlend(); got != want {
		t.Errorf("ConfidenceBlendPushConstants size = %d, want %d", got, want)
	}
	if got := sizeofOcclusionFill(); got != want {
		t.Errorf("OcclusionFillPushConstants size = %d, want %d", got, want)
	}
}
