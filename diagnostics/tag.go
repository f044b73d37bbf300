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

// Package diagnostics implements the checkpoint wrapper and crash-dump
// formatter (§4.3): it reuses the same extension-loading and
// queue→last-observed-marker idiom as the low-latency runtime, which is
// why it lives alongside it rather than under extwrap.
package diagnostics

// CheckpointTag is the 16-bit enumerated value encoded into the opaque
// marker pointer stamped by set_tagged_checkpoint (§3, §6: the defined
// range is 0x1000..0x9001).
type CheckpointTag uint16

const (
	TagFrameStart   CheckpointTag = 0x1000
	TagFrameEnd     CheckpointTag = 0x1001
	TagDrawStart    CheckpointTag = 0x2000
	TagDrawEnd      CheckpointTag = 0x2001
	TagComputeStart CheckpointTag = 0x3000
	TagComputeEnd   CheckpointTag = 0x3001
	TagTransferStart CheckpointTag = 0x4000
	TagTransferEnd   CheckpointTag = 0x4001

	TagRenderPassBegin CheckpointTag = 0x5000
	TagRenderPassEnd   CheckpointTag = 0x5001

	TagBindPipeline      CheckpointTag = 0x6000
	TagBindDescriptorSet CheckpointTag = 0x6001
	TagBindVertexBuffer  CheckpointTag = 0x6002
	TagBindIndexBuffer   CheckpointTag = 0x6003
	TagPushConstants     CheckpointTag = 0x6004

	TagBarrier CheckpointTag = 0x7000
	TagClear   CheckpointTag = 0x7001
	TagCopy    CheckpointTag = 0x7002
	TagBlit    CheckpointTag = 0x7003
	TagResolve CheckpointTag = 0x7004

	TagQueryBegin CheckpointTag = 0x8000
	TagQueryEnd   CheckpointTag = 0x8001
	TagTimestamp  CheckpointTag = 0x8002

	TagDebugMarkerBegin CheckpointTag = 0x9000
	TagDebugMarkerEnd   CheckpointTag = 0x9001
)

var tagNames = map[CheckpointTag]string{
	TagFrameStart:        "frame_start",
	TagFrameEnd:          "frame_end",
	TagDrawStart:         "draw_start",
	TagDrawEnd:           "draw_end",
	TagComputeStart:      "compute_start",
	TagComputeEnd:        "compute_end",
	TagTransferStart:     "transfer_start",
	TagTransferEnd:       "transfer_end",
	TagRenderPassBegin:   "render_pass_begin",
	TagRenderPassEnd:     "render_pass_end",
	TagBindPipeline:      "bind_pipeline",
	TagBindDescriptorSet: "bind_descriptor_set",
	TagBindVertexBuffer:  "bind_vertex_buffer",
	TagBindIndexBuffer:   "bind_index_buffer",
	TagPushConstants:     "push_constants",
	TagBarrier:           "barrier",
	TagClear:             "clear",
	TagCopy:              "copy",
	TagBlit:              "blit",
	TagResolve:           "resolve",
	TagQueryBegin:        "query_begin",
	TagQueryEnd:          "query_end",
	TagTimestamp:         "timestamp",
	TagDebugMarkerBegin:  "debug_marker_begin",
	TagDebugMarkerEnd:    "debug_marker_end",
}

func (t CheckpointTag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "unknown_tag"
}

// ToPtr encodes the tag as the opaque pointer-sized integer stamped
// onto the command buffer.
func (t CheckpointTag) ToPtr() uintptr {
	return uintptr(t)
}

// TagFromPtr decodes a marker pointer back into a CheckpointTag,
// succeeding only for pointer values that equal one of the defined
// tags (not merely "in range" — the gaps within 0x1000..0x9001 are not
// valid tags, so this is a set-membership check rather than a bounds
// check, per invariant 5).
func TagFromPtr(ptr uintptr) (CheckpointTag, bool) {
	tag := CheckpointTag(ptr)
	if uintptr(tag) != ptr {
		return 0, false
	}
	_, ok := tagNames[tag]
	return tag, ok
}
