//go:build !linux && !darwin && !windows

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

import "fmt"

// openPlatformLibrary on unsupported platforms always reports the
// library as not found; there is no dlopen-equivalent wired up. This
// mirrors the build-tag-gated stub/real split used elsewhere in this
// module (driverversion's nvml_linux.go vs. nvml_stub.go): construction
// fails cleanly instead of attempting an unsupported syscall.
func openPlatformLibrary(name string) (uintptr, string, func(uintptr, string) (uintptr, bool), func(uintptr) error, error) {
	if name == "" {
		name = "unknown"
	}
	return 0, name, nil, nil, fmt.Errorf("dynamic loading not supported on this platform")
}
