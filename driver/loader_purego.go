//go:build linux || darwin || windows

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

package driver

import "github.com/ebitengine/purego"

// defaultLibraryName is the conventional driver-runtime shared object
// name per platform. Callers can always override via Open's argument.
func defaultLibraryName() string {
	return platformDefaultLibraryName()
}

// openPlatformLibrary dlopen()s name (or the platform default) and
// returns a handle plus lookup/close closures bound to purego, which
// resolves symbols without requiring any vendor header (§1: the
// platform GPU API's own types are out of scope — we only need
// addresses).
func openPlatformLibrary(name string) (uintptr, string, func(uintptr, string) (uintptr, bool), func(uintptr) error, error) {
	if name == "" {
		name = defaultLibraryName()
	}
	handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, name, nil, nil, err
	}

	lookup := func(h uintptr, symbol string) (uintptr, bool) {
		addr, lookupErr := purego.Dlsym(h, symbol)
		if lookupErr != nil || addr == 0 {
			return 0, false
		}
		return addr, true
	}
	closeLib := func(h uintptr) error {
		return purego.Dlclose(h)
	}
	return handle, name, lookup, closeLib, nil
}
