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

import (
	"github.com/GhostKellz/nvvk/driver"
	"github.com/GhostKellz/nvvk/result"
)

// CheckpointData is one entry retrieved from the driver after a
// device-lost event (§3). Tag is nil unless MarkerPointer decodes to a
// defined CheckpointTag.
type CheckpointData struct {
	Stage         PipelineStage
	MarkerPointer uintptr
	Tag           *CheckpointTag
}

// Invoker performs the underlying checkpoint driver calls. As with
// lowlatency.Invoker, the native calling convention for a resolved
// dispatch-table pointer is out of scope here; Context only decides
// when and with what marker value to call through.
type Invoker interface {
	CmdSetCheckpoint(cmd uintptr, marker uintptr) error
	GetQueueCheckpointData(queue uintptr) ([]CheckpointData, error)
}

// Context is the per-device diagnostics wrapper (§4.3).
type Context struct {
	dispatch *driver.DeviceDispatch
	invoker  Invoker
}

// NewContext builds a diagnostics Context bound to a device dispatch
// table and the invoker that issues the underlying driver calls.
func NewContext(dispatch *driver.DeviceDispatch, invoker Invoker) *Context {
	return &Context{dispatch: dispatch, invoker: invoker}
}

// IsSupported reports whether the device exposes the diagnostic
// checkpoint extension.
func (c *Context) IsSupported() bool {
	return c.dispatch.HasDiagnosticCheckpoints()
}

func errNotSupported() error {
	return result.New(result.ExtensionNotPresent, "diagnostic checkpoints not present on this device")
}

// SetCheckpoint stamps an opaque marker pointer directly.
func (c *Context) SetCheckpoint(cmd uintptr, marker uintptr) error {
	if !c.IsSupported() {
		return errNotSupported()
	}
	return c.invoker.CmdSetCheckpoint(cmd, marker)
}

// SetTaggedCheckpoint encodes tag into the opaque marker pointer and
// stamps it.
func (c *Context) SetTaggedCheckpoint(cmd uintptr, tag CheckpointTag) error {
	if !c.IsSupported() {
		return errNotSupported()
	}
	return c.invoker.CmdSetCheckpoint(cmd, tag.ToPtr())
}

// GetCheckpoints retrieves the per-queue last-reached checkpoints.
// Each entry's Tag is populated only when MarkerPointer decodes to a
// defined CheckpointTag.
func (c *Context) GetCheckpoints(queue uintptr) ([]CheckpointData, error) {
	if !c.IsSupported() {
		return nil, errNotSupported()
	}
	raw, err := c.invoker.GetQueueCheckpointData(queue)
	if err != nil {
		return nil, err
	}
	out := make([]CheckpointData, len(raw))
	for i, cp := range raw {
		cp.Tag = nil
		if tag, ok := TagFromPtr(cp.MarkerPointer); ok {
			t := tag
			cp.Tag = &t
		}
		out[i] = cp
	}
	return out, nil
}
