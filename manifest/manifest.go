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

// Package manifest renders the layer-manifest JSON document described
// in §6 — the text a loader reads to discover and register this
// library as an implicit/explicit layer. The core never reads this
// document itself; it only produces it (§1 lists "the layer-manifest
// JSON text" as an explicit out-of-scope consumer surface — rendering
// it, not interpreting it, is this package's job).
package manifest

import "encoding/json"

const fileFormatVersion = "1.0.0"
const layerType = "GLOBAL"
const apiVersion = "1.3.0"

// Layer is the set of fields a host must supply to render a manifest
// (§6): everything else in the document is fixed by the wire format.
type Layer struct {
	Name                  string
	LibraryPath           string
	ImplementationVersion string
	Description           string
	InstanceProcAddrName  string
	DeviceProcAddrName    string
	Namespace             string
}

type layerDoc struct {
	Name                  string            `json:"name"`
	Type                  string            `json:"type"`
	LibraryPath           string            `json:"library_path"`
	APIVersion            string            `json:"api_version"`
	ImplementationVersion string            `json:"implementation_version"`
	Description           string            `json:"description"`
	Functions             map[string]string `json:"functions"`
	InstanceExtensions    []string          `json:"instance_extensions"`
	DeviceExtensions      []string          `json:"device_extensions"`
}

type document struct {
	FileFormatVersion string   `json:"file_format_version"`
	Layer             layerDoc `json:"layer"`
}

// Render marshals l into the exact manifest shape §6 describes:
// `{"file_format_version":"1.0.0","layer":{...}}`, with `functions`
// keyed by the instance/device proc-addr entry-point names and mapped
// to `<namespace>_get_instance_proc_addr`/`<namespace>_get_device_proc_addr`.
// instance_extensions and device_extensions are always empty arrays —
// this library advertises no additional Vulkan extensions of its own.
func (l Layer) Render() ([]byte, error) {
	ns := l.Namespace
	if ns == "" {
		ns = "nvvk"
	}
	doc := document{
		FileFormatVersion: fileFormatVersion,
		Layer: layerDoc{
			Name:                  l.Name,
			Type:                  layerType,
			LibraryPath:           l.LibraryPath,
			APIVersion:            apiVersion,
			ImplementationVersion: l.ImplementationVersion,
			Description:           l.Description,
			Functions: map[string]string{
				l.InstanceProcAddrName: ns + "_get_instance_proc_addr",
				l.DeviceProcAddrName:   ns + "_get_device_proc_addr",
			},
			InstanceExtensions: []string{},
			DeviceExtensions:   []string{},
		},
	}
	return json.Marshal(doc)
}
