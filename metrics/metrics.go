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

// Package metrics is the optional, opt-in Prometheus wiring for this
// library. The core (lowlatency, framegen, injection, ...) never
// requires a Registry — every caller that wants metrics constructs one
// explicitly and feeds it from its own LatencyStats/Stats snapshots;
// passing a nil *Registry anywhere in this package's API is always a
// safe no-op, matching the "core holds no global mutable state"
// constraint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/GhostKellz/nvvk/framegen"
	"github.com/GhostKellz/nvvk/injection"
	"github.com/GhostKellz/nvvk/lowlatency"
)

// Registry wraps a dedicated prometheus.Registry with the gauges and
// histograms this library's hot paths feed. It owns no
// global state — every instance has its own collectors and its own
// prometheus.Registry, constructed fresh by New.
type Registry struct {
	reg *prometheus.Registry

	latencyTotalUs  prometheus.Histogram
	latencySimUs    prometheus.Histogram
	latencyRenderUs prometheus.Histogram
	latencyDriverUs prometheus.Histogram

	framesPushed    prometheus.Gauge
	framesGenerated prometheus.Gauge
	framesSkipped   prometheus.Gauge
	genTimeAvgUs    prometheus.Gauge
	genConfidence   prometheus.Gauge

	injectionRealFrames      prometheus.Gauge
	injectionGeneratedFrames prometheus.Gauge
	injectionSkippedFrames   prometheus.Gauge
	injectionEffectiveFPS    prometheus.Gauge
	injectionLfcActive       prometheus.Gauge
}

// New constructs a Registry with a private prometheus.Registry and
// registers every collector against it.
func New(namespace string) *Registry {
	r := &Registry{reg: prometheus.NewRegistry()}

	r.latencyTotalUs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "latency", Name: "total_us",
		Help: "Total input-to-present latency in microseconds.", Buckets: prometheus.ExponentialBuckets(500, 2, 10),
	})
	r.latencySimUs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "latency", Name: "sim_us",
		Help: "Simulation phase latency in microseconds.", Buckets: prometheus.ExponentialBuckets(500, 2, 10),
	})
	r.latencyRenderUs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "latency", Name: "gpu_render_us",
		Help: "GPU render phase latency in microseconds.", Buckets: prometheus.ExponentialBuckets(500, 2, 10),
	})
	r.latencyDriverUs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "latency", Name: "driver_us",
		Help: "Driver-side submit-to-present latency in microseconds.", Buckets: prometheus.ExponentialBuckets(500, 2, 10),
	})

	r.framesPushed = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "framegen", Name: "frames_pushed_total",
		Help: "Total frames submitted to the frame-generation orchestrator.",
	})
	r.framesGenerated = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "framegen", Name: "frames_generated_total",
		Help: "Total synthesized frames produced.",
	})
	r.framesSkipped = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "framegen", Name: "frames_skipped_total",
		Help: "Total frames skipped due to scene change or low confidence.",
	})
	r.genTimeAvgUs = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "framegen", Name: "generation_time_avg_us",
		Help: "Rolling average frame-generation time in microseconds.",
	})
	r.genConfidence = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "framegen", Name: "confidence",
		Help: "Most recent synthesis confidence score, in [0, 1].",
	})

	r.injectionRealFrames = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "injection", Name: "real_frames_total",
		Help: "Total real (non-generated) presents observed.",
	})
	r.injectionGeneratedFrames = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "injection", Name: "generated_frames_total",
		Help: "Total generated presents injected.",
	})
	r.injectionSkippedFrames = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "injection", Name: "skipped_frames_total",
		Help: "Total present cycles where injection was eligible but skipped.",
	})
	r.injectionEffectiveFPS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "injection", Name: "effective_fps",
		Help: "Effective presented frame rate including injected frames.",
	})
	r.injectionLfcActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "injection", Name: "lfc_active",
		Help: "1 if low-framerate compensation is currently doubling frames, else 0.",
	})

	r.reg.MustRegister(
		r.latencyTotalUs, r.latencySimUs, r.latencyRenderUs, r.latencyDriverUs,
		r.framesPushed, r.framesGenerated, r.framesSkipped, r.genTimeAvgUs, r.genConfidence,
		r.injectionRealFrames, r.injectionGeneratedFrames, r.injectionSkippedFrames,
		r.injectionEffectiveFPS, r.injectionLfcActive,
	)
	return r
}

// Gatherer exposes the private prometheus.Registry for an HTTP
// handler (promhttp.HandlerFor) to scrape.
func (r *Registry) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.reg
}

// ObserveLatency records one FrameTimings sample's derived latency
// quantities. A zero latency (meaning "not reported", per §3) is
// still observed — the histogram reflects what the driver reported,
// including unreported phases.
func (r *Registry) ObserveLatency(t lowlatency.FrameTimings) {
	if r == nil {
		return
	}
	r.latencyTotalUs.Observe(float64(t.TotalLatencyUs()))
	r.latencySimUs.Observe(float64(t.SimTimeUs()))
	r.latencyRenderUs.Observe(float64(t.GPURenderTimeUs()))
	r.latencyDriverUs.Observe(float64(t.DriverTimeUs()))
}

// ObserveFrameGen records one framegen.Stats snapshot. Stats carries
// cumulative counters (§3), so these are set rather than added —
// repeated calls replace, not accumulate.
func (r *Registry) ObserveFrameGen(s framegen.Stats) {
	if r == nil {
		return
	}
	r.framesPushed.Set(float64(s.FramesPushed))
	r.framesGenerated.Set(float64(s.FramesGenerated))
	r.framesSkipped.Set(float64(s.SkippedFrames))
	r.genTimeAvgUs.Set(float64(s.AvgGenerationTimeUs))
	r.genConfidence.Set(float64(s.Confidence))
}

// ObserveInjection records one injection.Stats snapshot. Stats carries
// cumulative counters, so these are set rather than added.
func (r *Registry) ObserveInjection(s injection.Stats) {
	if r == nil {
		return
	}
	r.injectionRealFrames.Set(float64(s.RealFrames))
	r.injectionGeneratedFrames.Set(float64(s.GeneratedFrames))
	r.injectionSkippedFrames.Set(float64(s.SkippedFrames))
	r.injectionEffectiveFPS.Set(s.EffectiveFPS)
	lfc := 0.0
	if s.LfcActive {
		lfc = 1.0
	}
	r.injectionLfcActive.Set(lfc)
}
