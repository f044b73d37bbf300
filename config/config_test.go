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

package config

import (
	"errors"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(func(interface{}) error { return nil })
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DriverVersionPath != defaultDriverVersionPath {
		t.Errorf("DriverVersionPath = %q, want %q", cfg.DriverVersionPath, defaultDriverVersionPath)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	if cfg.LatencyStatsWindow != defaultLatencyStatsWindow {
		t.Errorf("LatencyStatsWindow = %d, want %d", cfg.LatencyStatsWindow, defaultLatencyStatsWindow)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(func(target interface{}) error {
		c := target.(*Config)
		c.DriverVersionPath = "/custom/path"
		c.LogLevel = "debug"
		c.LatencyStatsWindow = 256
		return nil
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DriverVersionPath != "/custom/path" || cfg.LogLevel != "debug" || cfg.LatencyStatsWindow != 256 {
		t.Errorf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadInvalidWindowFallsBackToDefault(t *testing.T) {
	cfg, err := Load(func(target interface{}) error {
		c := target.(*Config)
		c.LatencyStatsWindow = -1
		return nil
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LatencyStatsWindow != defaultLatencyStatsWindow {
		t.Errorf("expected fallback to default window, got %d", cfg.LatencyStatsWindow)
	}
}

func TestLoadEmptyDriverPathFails(t *testing.T) {
	_, err := Load(func(target interface{}) error {
		c := target.(*Config)
		c.DriverVersionPath = ""
		return nil
	})
	if err == nil {
		t.Fatal("expected error for empty driver version path")
	}
}

func TestLoadPropagatesLoaderError(t *testing.T) {
	wantErr := errors.New("boom")
	_, err := Load(func(interface{}) error { return wantErr })
	if err == nil || !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped loader error, got %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]bool{
		"":        true,
		"info":    true,
		"DEBUG":   true,
		"warn":    true,
		"warning": true,
		"error":   true,
		"bogus":   false,
	}
	for level, wantOK := range cases {
		_, err := ParseLogLevel(level)
		if (err == nil) != wantOK {
			t.Errorf("ParseLogLevel(%q) err=%v, wantOK=%v", level, err, wantOK)
		}
	}
}
