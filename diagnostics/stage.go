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

package diagnostics

// PipelineStage is the coarse enumerated pipeline position a
// checkpoint's bitmask decodes to (§4.3).
type PipelineStage int

const (
	StageUnknown PipelineStage = iota
	StageComputeShader
	StageFragmentShader
	StageVertexShader
	StageVertexInput
	StageDrawIndirect
	StageTopOfPipe
	StageAllGraphics
	StageAllCommands
)

func (s PipelineStage) String() string {
	switch s {
	case StageComputeShader:
		return "compute_shader"
	case StageFragmentShader:
		return "fragment_shader"
	case StageVertexShader:
		return "vertex_shader"
	case StageVertexInput:
		return "vertex_input"
	case StageDrawIndirect:
		return "draw_indirect"
	case StageTopOfPipe:
		return "top_of_pipe"
	case StageAllGraphics:
		return "all_graphics"
	case StageAllCommands:
		return "all_commands"
	default:
		return "unknown"
	}
}

// Vulkan pipeline-stage bitmask values (VkPipelineStageFlagBits) that
// get_queue_checkpoint_data reports against.
const (
	stageBitTopOfPipe      uint32 = 0x00000001
	stageBitDrawIndirect   uint32 = 0x00000002
	stageBitVertexInput    uint32 = 0x00000004
	stageBitVertexShader   uint32 = 0x00000008
	stageBitFragmentShader uint32 = 0x00000080
	stageBitComputeShader  uint32 = 0x00000800
	stageBitAllGraphics    uint32 = 0x00008000
	stageBitAllCommands    uint32 = 0x00010000
)

// stagePriority lists, in decoding priority order (lowest index wins,
// invariant 6), each enumerated stage paired with its bit.
var stagePriority = []struct {
	stage PipelineStage
	bit   uint32
}{
	{StageComputeShader, stageBitComputeShader},
	{StageFragmentShader, stageBitFragmentShader},
	{StageVertexShader, stageBitVertexShader},
	{StageVertexInput, stageBitVertexInput},
	{StageDrawIndirect, stageBitDrawIndirect},
	{StageTopOfPipe, stageBitTopOfPipe},
	{StageAllGraphics, stageBitAllGraphics},
	{StageAllCommands, stageBitAllCommands},
}

// StageFromFlags maps a VkPipelineStageFlags bitmask to the
// highest-priority (lowest-index in stagePriority) enumerated stage
// that is set, or StageUnknown if
// none match (§4.3, invariant 6).
func StageFromFlags(flags uint32) PipelineStage {
	for _, p := range stagePriority {
		if flags&p.bit != 0 {
			return p.stage
		}
	}
	return StageUnknown
}
