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

// Package config holds the handful of process-wide, optional knobs a
// host embedding this library may want to override from the
// environment: the device-identity text source path, the default log
// level, and the default latency-stats ring capacity. It is NOT
// configuration for the core state machines — those are configured
// programmatically (ModeConfig, Config for framegen/opticalflow/
// synthesis, etc.); this package only covers the bits that have no
// natural caller-supplied value.
package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	defaultDriverVersionPath  = "/proc/driver/nvidia/version"
	defaultLogLevel           = "info"
	defaultLatencyStatsWindow = 128
)

// Config is the set of environment-overridable knobs.
type Config struct {
	DriverVersionPath  string `env:"NVVK_DRIVER_VERSION_PATH"`
	LogLevel           string `env:"NVVK_LOG_LEVEL" env-default:"info"`
	LatencyStatsWindow int    `env:"NVVK_LATENCY_STATS_WINDOW"`
}

// Loader reads environment variables into target, mirroring
// cleanenv.ReadEnv's signature so tests can substitute a fake.
type Loader func(target interface{}) error

// ReadEnv reads process environment variables via cleanenv.
func ReadEnv(target interface{}) error {
	return cleanenv.ReadEnv(target)
}

// Load builds a Config from defaults, then applies loader (nil means
// "use the real environment" via ReadEnv) on top. An empty LogLevel or
// a non-positive LatencyStatsWindow falls back to its default; an
// empty DriverVersionPath is an error.
func Load(loader Loader) (Config, error) {
	cfg := Config{
		DriverVersionPath:  defaultDriverVersionPath,
		LogLevel:           defaultLogLevel,
		LatencyStatsWindow: defaultLatencyStatsWindow,
	}
	if loader == nil {
		loader = ReadEnv
	}
	if err := loader(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if cfg.DriverVersionPath == "" {
		return Config{}, errors.New("driver version path must be set")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.LatencyStatsWindow <= 0 {
		cfg.LatencyStatsWindow = defaultLatencyStatsWindow
	}
	return cfg, nil
}
