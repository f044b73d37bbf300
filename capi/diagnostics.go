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

package main

/*
#include <stdint.h>
#include <stdbool.h>
*/
import "C"

import (
	"github.com/GhostKellz/nvvk/diagnostics"
	"github.com/GhostKellz/nvvk/driver"
)

func diagInit(device uintptr, getDeviceProcAddr driver.GetDeviceProcAddrFunc) uintptr {
	if device == 0 {
		return 0
	}
	dispatch := driver.NewDeviceDispatch(device, getDeviceProcAddr)
	invoker := NewPureGoInvoker(dispatch)
	ctx := diagnostics.NewContext(dispatch, invoker)
	return registerHandle(&diagnosticsHandle{ctx: ctx, dispatch: dispatch, invoker: invoker})
}

func diagDestroy(handle uintptr) {
	releaseHandle(handle)
}

func diagIsSupported(handle uintptr) bool {
	h, ok := lookupDiagnostics(handle)
	if !ok {
		return false
	}
	return h.ctx.IsSupported()
}

func diagSetCheckpoint(handle uintptr, cmd uintptr, markerPtr uintptr) Result {
	h, ok := lookupDiagnostics(handle)
	if !ok {
		return ResultInvalidHandle
	}
	return resultFromError(h.ctx.SetCheckpoint(cmd, markerPtr))
}

func diagSetTaggedCheckpoint(handle uintptr, cmd uintptr, tag int32) Result {
	h, ok := lookupDiagnostics(handle)
	if !ok {
		return ResultInvalidHandle
	}
	return resultFromError(h.ctx.SetTaggedCheckpoint(cmd, diagnostics.CheckpointTag(tag)))
}

//export diag_init
func diag_init(device C.uintptr_t, getDeviceProcAddr C.uintptr_t) C.uintptr_t {
	return C.uintptr_t(diagInit(uintptr(device), wrapGetDeviceProcAddr(uintptr(getDeviceProcAddr))))
}

//export diag_destroy
func diag_destroy(handle C.uintptr_t) {
	diagDestroy(uintptr(handle))
}

//export diag_is_supported
func diag_is_supported(handle C.uintptr_t) C.bool {
	return C.bool(diagIsSupported(uintptr(handle)))
}

//export diag_set_checkpoint
func diag_set_checkpoint(handle C.uintptr_t, cmd C.uintptr_t, markerPtr C.uintptr_t) C.int32_t {
	return C.int32_t(diagSetCheckpoint(uintptr(handle), uintptr(cmd), uintptr(markerPtr)))
}

//export diag_set_tagged_checkpoint
func diag_set_tagged_checkpoint(handle C.uintptr_t, cmd C.uintptr_t, tag C.int32_t) C.int32_t {
	return C.int32_t(diagSetTaggedCheckpoint(uintptr(handle), uintptr(cmd), int32(tag)))
}
