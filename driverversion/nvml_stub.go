//go:build !linux || !cgo

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

package driverversion

import (
	"errors"

	"github.com/GhostKellz/nvvk/driver"
)

// NVML is unavailable outside linux+cgo builds; DriverVersion always
// fails so Resolve falls through to the next configured Source.
type NVML struct{}

func (NVML) DriverVersion() (driver.Version, error) {
	return driver.Version{}, errors.New("nvml backend not available on this platform/build")
}
