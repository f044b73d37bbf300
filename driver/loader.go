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

// Package driver loads the platform GPU runtime's shared object,
// resolves its instance- and device-level entry points into a
// dispatch table, and exposes feature-present predicates (§4.1).
//
// The platform GPU API itself (device/queue/image handle creation,
// memory allocation, descriptor/pipeline creation) is out of scope
// (§1): this package only opens a shared object and resolves
// named symbols to uintptr function pointers that the host is
// expected to call through its own FFI conventions.
package driver

import "github.com/GhostKellz/nvvk/result"

// GetProcAddrFunc mirrors the platform's vkGetInstanceProcAddr-style
// resolver: a function pointer (as uintptr) the loader calls into to
// resolve further entry points.
type GetProcAddrFunc func(instance uintptr, name string) uintptr

// GetDeviceProcAddrFunc mirrors vkGetDeviceProcAddr.
type GetDeviceProcAddrFunc func(device uintptr, name string) uintptr

// Context is the loaded, open handle to the platform GPU runtime.
// It is created once per process via Open.
type Context struct {
	handle           uintptr
	getInstanceProc  uintptr
	lookupSymbol     func(handle uintptr, name string) (uintptr, bool)
	closeLibrary     func(handle uintptr) error
	instanceProcName string
}

// requiredBaseSymbols lists the minimal set of symbols Open must
// resolve for construction to succeed; all other entry points are
// resolved lazily per device via NewDeviceDispatch and are allowed to
// be absent (§4.1: "only construction can fail").
var requiredBaseSymbols = []string{
	"vkGetInstanceProcAddr",
}

// Open dynamically opens the named shared object (empty string uses
// the platform-default driver runtime name, see loader_*.go) and
// resolves the base entry-point set. It never returns a partially
// usable Context: either every required base symbol resolved, or it
// returns a *result.Error of Kind LoaderError/FunctionNotFound.
func Open(libraryName string) (*Context, error) {
	handle, resolvedName, lookup, closeLib, err := openPlatformLibrary(libraryName)
	if err != nil {
		return nil, result.Newf(result.LoaderError, "open %q: %v", resolvedName, err)
	}

	ctx := &Context{handle: handle, lookupSymbol: lookup, closeLibrary: closeLib}
	for _, name := range requiredBaseSymbols {
		addr, ok := lookup(handle, name)
		if !ok || addr == 0 {
			_ = closeLib(handle)
			return nil, result.Newf(result.FunctionNotFound, "required symbol %q missing", name)
		}
		if name == "vkGetInstanceProcAddr" {
			ctx.getInstanceProc = addr
			ctx.instanceProcName = name
		}
	}
	return ctx, nil
}

// Close releases the underlying shared object. Safe to call once;
// the Context must not be used afterward.
func (c *Context) Close() error {
	if c == nil || c.closeLibrary == nil {
		return nil
	}
	return c.closeLibrary(c.handle)
}

// GetInstanceProcAddr resolves name in the opened shared object's
// global symbol table, returning 0 if unresolved. instance is not
// consulted: a non-zero instance resolves exactly as 0 does, with no
// per-instance lookup.
func (c *Context) GetInstanceProcAddr(instance uintptr, name string) uintptr {
	if c == nil {
		return 0
	}
	addr, ok := c.lookupSymbol(c.handle, name)
	if !ok {
		return 0
	}
	return addr
}
