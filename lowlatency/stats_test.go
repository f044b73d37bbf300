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

import "testing"

func TestLatencyStatsBasic(t *testing.T) {
	var s LatencyStats
	s.Insert(5000)
	s.Insert(6000)
	s.Insert(4000)

	if got, want := s.AverageUs(), uint64(5000); got != want {
		t.Errorf("AverageUs() = %d, want %d", got, want)
	}
	if got, want := s.MinUs(), uint64(4000); got != want {
		t.Errorf("MinUs() = %d, want %d", got, want)
	}
	if got, want := s.MaxUs(), uint64(6000); got != want {
		t.Errorf("MaxUs() = %d, want %d", got, want)
	}

	for i := 0; i < 125; i++ {
		s.Insert(5000)
	}
	if got, want := s.SampleCount(), 128; got != want {
		t.Errorf("SampleCount() = %d, want %d", got, want)
	}
	if got, want := s.AverageUs(), uint64(5000); got != want {
		t.Errorf("AverageUs() after fill = %d, want %d", got, want)
	}

	s.Reset()
	if s.SampleCount() != 0 || s.AverageUs() != 0 || s.MinUs() != 0 || s.MaxUs() != 0 {
		t.Fatalf("expected zero state after reset")
	}
}

func TestLatencyStatsEviction(t *testing.T) {
	var s LatencyStats
	for i := 0; i < LatencyStatsCapacity; i++ {
		s.Insert(1000)
	}
	// One extreme sample, evicted by the next 128 inserts.
	s.Insert(999999)
	if s.MaxUs() != 999999 {
		t.Fatalf("expected the extreme sample to be live, got max=%d", s.MaxUs())
	}
	for i := 0; i < LatencyStatsCapacity; i++ {
		s.Insert(1000)
	}
	if s.MaxUs() != 1000 {
		t.Fatalf("expected the extreme sample to have been evicted, got max=%d", s.MaxUs())
	}
	if s.SampleCount() != LatencyStatsCapacity {
		t.Fatalf("SampleCount() = %d, want %d", s.SampleCount(), LatencyStatsCapacity)
	}
}

func TestLatencyStatsP99(t *testing.T) {
	var s LatencyStats
	for i := 1; i <= 100; i++ {
		s.Insert(uint64(i))
	}
	if got := s.P99Us(); got < 98 || got > 100 {
		t.Fatalf("P99Us() = %d, want near 99-100", got)
	}
}
