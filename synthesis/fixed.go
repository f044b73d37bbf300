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

import "math"

// S10.5 is the motion-vector fixed-point encoding (§4.6): signed
// 16-bit, scale factor 1/32 between integer units and pixels.
const s10_5Scale = 32.0

// S10_5ToFloat converts a raw S10.5 sample to a pixel-space float.
func S10_5ToFloat(i int16) float32 {
	return float32(i) / s10_5Scale
}

// FloatToS10_5 converts a pixel-space float to its S10.5 encoding,
// truncating toward zero.
func FloatToS10_5(f float32) int16 {
	return int16(math.Trunc(float64(f) * s10_5Scale))
}
