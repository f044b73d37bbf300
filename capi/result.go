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

import "github.com/GhostKellz/nvvk/result"

// Result is the flat C-ABI error code (§6, §7): 0=success,
// -1=not_supported, -2=invalid_handle, -3=out_of_memory,
// -4=device_lost, -5=unknown.
type Result int32

const (
	ResultSuccess       Result = 0
	ResultNotSupported  Result = -1
	ResultInvalidHandle Result = -2
	ResultOutOfMemory   Result = -3
	ResultDeviceLost    Result = -4
	ResultUnknown       Result = -5
)

// resultFromError maps a typed result.Error (or any error) to the
// flat Result enum. A nil error is ResultSuccess.
func resultFromError(err error) Result {
	if err == nil {
		return ResultSuccess
	}
	e, ok := err.(*result.Error)
	if !ok {
		return ResultUnknown
	}
	switch e.Kind {
	case result.ExtensionNotPresent:
		return ResultNotSupported
	case result.InvalidHandle, result.NotInitialized, result.InsufficientFrames:
		return ResultInvalidHandle
	case result.OutOfHostMemory, result.OutOfDeviceMemory, result.FragmentedPool:
		return ResultOutOfMemory
	case result.DeviceLost, result.SurfaceLost, result.NativeWindowInUse, result.OutOfDate:
		return ResultDeviceLost
	default:
		return ResultUnknown
	}
}
