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

// Command capi is the stable, language-agnostic C ABI facade (§4.10):
// a small cgo //export surface any host that can call C can link
// against. It allocates opaque handles embedding a lowlatency.Context
// or diagnostics.Context plus its resolved driver.DeviceDispatch,
// maps every typed result.Error to the flat Result enum (§7), and
// mirrors the Marker and CheckpointTag enumerations as plain integer
// constants.
//
// cgo's //export directive only takes effect in package main built
// with -buildmode=c-archive or -buildmode=c-shared, so this facade
// lives in its own main package rather than being importable — the C
// ABI is a build target, not a library dependency. The bulk of the
// logic lives in ordinary (non-//export) Go functions in this package
// so it can be exercised directly by tests without a C compiler.
//
// The native Vulkan calling convention and struct layouts for the
// low-latency/checkpoint extension entry points (VkLatencySleepModeInfoNV
// and friends) are the platform GPU API itself — explicitly out of
// scope (§1). invoker.go's PureGoInvoker issues the scalar-
// argument calls (mode, sleep, marker, checkpoint) via purego.SyscallN
// directly against the resolved dispatch-table pointers; the two
// calls whose driver-written output is an array of vendor-defined
// structs (get_timings, get_checkpoints) return ExtensionNotPresent
// from the pure-Go invoker, since decoding that wire format requires
// the vendor's own struct layout — a host that needs real timings/
// checkpoint retrieval supplies its own Invoker implementation built
// against the vendor's headers in place of PureGoInvoker.
package main
