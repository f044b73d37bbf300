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

import "sync"

// ThreadSafeContext wraps a Context with a mutex so callers from
// multiple goroutines (e.g. a present thread and a simulation thread)
// can share one low-latency runtime without racing on present-ID
// assignment (§4.2, scenario A).
type ThreadSafeContext struct {
	mu  sync.Mutex
	ctx *Context
}

// NewThreadSafeContext wraps ctx for concurrent use.
func NewThreadSafeContext(ctx *Context) *ThreadSafeContext {
	return &ThreadSafeContext{ctx: ctx}
}

func (t *ThreadSafeContext) IsSupported() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctx.IsSupported()
}

func (t *ThreadSafeContext) SetMode(cfg ModeConfig) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctx.SetMode(cfg)
}

func (t *ThreadSafeContext) Mode() ModeConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctx.Mode()
}

func (t *ThreadSafeContext) Sleep(semaphore uintptr, value uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctx.Sleep(semaphore, value)
}

func (t *ThreadSafeContext) SetMarker(marker Marker) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctx.SetMarker(marker)
}

func (t *ThreadSafeContext) BeginFrame() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctx.BeginFrame()
}

func (t *ThreadSafeContext) CurrentFrameID() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctx.CurrentFrameID()
}

func (t *ThreadSafeContext) EndSimulation() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctx.EndSimulation()
}

func (t *ThreadSafeContext) BeginRenderSubmit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctx.BeginRenderSubmit()
}

func (t *ThreadSafeContext) EndRenderSubmit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctx.EndRenderSubmit()
}

func (t *ThreadSafeContext) BeginPresent() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctx.BeginPresent()
}

func (t *ThreadSafeContext) EndPresent() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctx.EndPresent()
}

func (t *ThreadSafeContext) MarkInputSample() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctx.MarkInputSample()
}

func (t *ThreadSafeContext) TriggerFlash() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctx.TriggerFlash()
}

func (t *ThreadSafeContext) GetTimings(max int) ([]FrameTimings, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctx.GetTimings(max)
}

func (t *ThreadSafeContext) CountTimings() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctx.CountTimings()
}
