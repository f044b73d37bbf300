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

// Package result defines the error-kind taxonomy shared by every
// context in the module (§7 of the design) and the flat mapping used
// at the C-ABI boundary.
package result

import "fmt"

// Kind classifies a failure the way the driver, the loader, or the
// core itself can fail. Marker-stamping and statistics operations
// never return a Kind; they are defined to never fail (§7).
type Kind int

const (
	// Unknown is the catch-all kind; never returned directly by this
	// module's own code, but available for unrecognized driver codes.
	Unknown Kind = iota

	// Availability
	ExtensionNotPresent

	// Handle/Parameter
	InvalidHandle
	InsufficientFrames
	NotInitialized

	// Driver
	DeviceLost
	OutOfHostMemory
	OutOfDeviceMemory
	InitializationFailed
	MemoryMapFailed
	FormatNotSupported
	FragmentedPool
	SurfaceLost
	NativeWindowInUse
	OutOfDate

	// Loader
	LoaderError
	FunctionNotFound

	// Parse
	ParseError
)

func (k Kind) String() string {
	switch k {
	case ExtensionNotPresent:
		return "extension_not_present"
	case InvalidHandle:
		return "invalid_handle"
	case InsufficientFrames:
		return "insufficient_frames"
	case NotInitialized:
		return "not_initialized"
	case DeviceLost:
		return "device_lost"
	case OutOfHostMemory:
		return "out_of_host_memory"
	case OutOfDeviceMemory:
		return "out_of_device_memory"
	case InitializationFailed:
		return "initialization_failed"
	case MemoryMapFailed:
		return "memory_map_failed"
	case FormatNotSupported:
		return "format_not_supported"
	case FragmentedPool:
		return "fragmented_pool"
	case SurfaceLost:
		return "surface_lost"
	case NativeWindowInUse:
		return "native_window_in_use"
	case OutOfDate:
		return "out_of_date"
	case LoaderError:
		return "loader_error"
	case FunctionNotFound:
		return "function_not_found"
	case ParseError:
		return "parse_error"
	default:
		return "unknown"
	}
}

// Error wraps a Kind with a free-form message. Construction operations
// (§7) return a nil *Error on success and never panic.
type Error struct {
	Kind Kind
	Msg  string
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is reports whether err carries the given Kind. It follows the
// standard errors.Is protocol via a type assertion rather than
// wrapping, since Kind equality (not chain identity) is what callers
// care about.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e != nil && e.Kind == kind
}
