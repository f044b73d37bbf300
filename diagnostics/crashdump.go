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

package diagnostics

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// CrashDump captures the checkpoint list retrieved after a device-lost
// event plus a wall-clock timestamp (§4.3).
type CrashDump struct {
	Checkpoints []CheckpointData
	Timestamp   time.Time
	LastStage   PipelineStage
	LastTag     *CheckpointTag
}

// Generate captures the current checkpoints for queue plus a
// wall-clock timestamp. LastStage/LastTag reflect the
// highest-index (chronologically last) entry, or StageUnknown/nil if
// the list is empty.
func Generate(ctx *Context, queue uintptr) (CrashDump, error) {
	checkpoints, err := ctx.GetCheckpoints(queue)
	if err != nil {
		return CrashDump{}, err
	}
	dump := CrashDump{Checkpoints: checkpoints, Timestamp: time.Now(), LastStage: StageUnknown}
	if len(checkpoints) > 0 {
		last := checkpoints[len(checkpoints)-1]
		dump.LastStage = last.Stage
		dump.LastTag = last.Tag
	}
	return dump, nil
}

// Format renders a human-readable UTF-8 text report.
func (d CrashDump) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "crash dump captured at %s\n", d.Timestamp.Format(time.RFC3339Nano))
	if len(d.Checkpoints) == 0 {
		b.WriteString("no checkpoints recorded\n")
		b.WriteString("last stage: unknown\n")
		b.WriteString("last tag: none\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%d checkpoint(s):\n", len(d.Checkpoints))
	for i, cp := range d.Checkpoints {
		tag := "none"
		if cp.Tag != nil {
			tag = cp.Tag.String()
		}
		fmt.Fprintf(&b, "  [%d] stage=%s marker=0x%x tag=%s\n", i, cp.Stage, cp.MarkerPointer, tag)
	}
	fmt.Fprintf(&b, "last stage: %s\n", d.LastStage)
	if d.LastTag != nil {
		fmt.Fprintf(&b, "last tag: %s\n", d.LastTag)
	} else {
		b.WriteString("last tag: none\n")
	}
	return b.String()
}

// WriteToFile writes the formatted report to path.
func (d CrashDump) WriteToFile(path string) error {
	return os.WriteFile(path, []byte(d.Format()), 0o644)
}
