//go:build linux && cgo

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
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/GhostKellz/nvvk/driver"
)

// NVML resolves the driver version via NVIDIA's management library
// instead of parsing a text file. It owns its own Init/Shutdown pair
// so it can be used standalone.
type NVML struct{}

func (NVML) DriverVersion() (driver.Version, error) {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return driver.Version{}, fmt.Errorf("nvml init: %s", nvml.ErrorString(ret))
	}
	defer nvml.Shutdown()

	str, ret := nvml.SystemGetDriverVersion()
	if ret != nvml.SUCCESS {
		return driver.Version{}, fmt.Errorf("nvml get driver version: %s", nvml.ErrorString(ret))
	}
	return driver.ParseVersion(str)
}
