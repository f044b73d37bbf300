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

// Package driverversion resolves the host driver's version triple from
// one of two pluggable sources (§6 device-identity source): a platform
// text stream, or NVML when available. Absence of both is reported as
// "version unknown" rather than an error, degrading to partial/unknown
// data rather than failing the caller.
package driverversion

import (
	"bufio"
	"os"

	"github.com/GhostKellz/nvvk/driver"
)

// Source resolves the current driver version.
type Source interface {
	DriverVersion() (driver.Version, error)
}

// TextFile reads the first line of Path matching the version grammar
// in §6: `/\b(\d{2,4}\.\d{1,3}(?:\.\d{1,3})?)/`.
type TextFile struct {
	// Path is the platform-dependent device-identity source, left
	// abstract here; callers are expected to supply the path
	// appropriate to their platform (e.g. the kernel module's version
	// sysfs node on Linux).
	Path string
}

func (t TextFile) DriverVersion() (driver.Version, error) {
	f, err := os.Open(t.Path)
	if err != nil {
		return driver.Version{}, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if v, perr := driver.ParseVersion(scanner.Text()); perr == nil {
			return v, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return driver.Version{}, err
	}
	return driver.Version{}, errNoVersionToken
}

var errNoVersionToken = versionNotFoundError{}

type versionNotFoundError struct{}

func (versionNotFoundError) Error() string { return "device-identity source: no version token found" }

// Resolve tries sources in order and returns the first successful
// result; if all fail, it returns the zero Version and ok=false
// ("version unknown", per §9 open question 4).
func Resolve(sources ...Source) (v driver.Version, ok bool) {
	for _, s := range sources {
		if s == nil {
			continue
		}
		if got, err := s.DriverVersion(); err == nil {
			return got, true
		}
	}
	return driver.Version{}, false
}
