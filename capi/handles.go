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

import (
	"runtime/cgo"
	"sync"

	"github.com/GhostKellz/nvvk/diagnostics"
	"github.com/GhostKellz/nvvk/driver"
	"github.com/GhostKellz/nvvk/lowlatency"
)

// lowLatencyHandle is the opaque block ll_init allocates: the context
// plus the dispatch table it was built from and the concrete invoker
// driving it.
type lowLatencyHandle struct {
	ctx      *lowlatency.Context
	dispatch *driver.DeviceDispatch
	invoker  lowlatency.Invoker
}

// diagnosticsHandle is the opaque block diag_init allocates.
type diagnosticsHandle struct {
	ctx      *diagnostics.Context
	dispatch *driver.DeviceDispatch
	invoker  diagnostics.Invoker
}

// handleTable tracks every live cgo.Handle this facade has minted, so
// a caller that passes a stale or foreign uintptr gets InvalidHandle
// rather than a crash from an invalid cgo.Handle conversion.
var handleTable = struct {
	mu  sync.RWMutex
	ids map[uintptr]bool
}{ids: make(map[uintptr]bool)}

func registerHandle(v interface{}) uintptr {
	h := cgo.NewHandle(v)
	id := uintptr(h)
	handleTable.mu.Lock()
	handleTable.ids[id] = true
	handleTable.mu.Unlock()
	return id
}

func lookupLowLatency(id uintptr) (*lowLatencyHandle, bool) {
	v, ok := lookupHandle(id)
	if !ok {
		return nil, false
	}
	h, ok := v.(*lowLatencyHandle)
	return h, ok
}

func lookupDiagnostics(id uintptr) (*diagnosticsHandle, bool) {
	v, ok := lookupHandle(id)
	if !ok {
		return nil, false
	}
	h, ok := v.(*diagnosticsHandle)
	return h, ok
}

func lookupHandle(id uintptr) (interface{}, bool) {
	handleTable.mu.RLock()
	live := handleTable.ids[id]
	handleTable.mu.RUnlock()
	if !live {
		return nil, false
	}
	return cgo.Handle(id).Value(), true
}

// releaseHandle deletes id from the table and frees the underlying
// cgo.Handle. A double-release or a release of an unknown id is a
// safe no-op, matching §7's "internal conversions never panic".
func releaseHandle(id uintptr) {
	handleTable.mu.Lock()
	live := handleTable.ids[id]
	delete(handleTable.ids, id)
	handleTable.mu.Unlock()
	if live {
		cgo.Handle(id).Delete()
	}
}
