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

package lowlatency

import (
	"sync"
	"testing"
)

func TestThreadSafeContextConcurrentBeginFrame(t *testing.T) {
	fi := &fakeInvoker{}
	ctx := NewThreadSafeContext(NewContext(fullDispatch(), fi))

	const goroutines = 8
	const perGoroutine = 50

	var wg sync.WaitGroup
	ids := make(chan uint64, goroutines*perGoroutine)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ids <- ctx.BeginFrame()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("present ID %d assigned more than once", id)
		}
		seen[id] = true
	}
	if len(seen) != goroutines*perGoroutine {
		t.Fatalf("got %d unique IDs, want %d", len(seen), goroutines*perGoroutine)
	}
	if ctx.CurrentFrameID() != uint64(goroutines*perGoroutine) {
		t.Fatalf("CurrentFrameID() = %d, want %d", ctx.CurrentFrameID(), goroutines*perGoroutine)
	}
}
