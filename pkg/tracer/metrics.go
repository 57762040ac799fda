// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracer

import (
	m "github.com/ethersphere/agentsdk/pkg/metrics"
)

type metrics struct {
	StartedCount        m.Counter
	EndedCount          m.Counter
	DiscardedCount      m.Counter
	FailedCount         m.Counter
	MisuseCount         m.Counter
	TagDecodeErrorCount m.Counter
	RecorderPanicCount  m.Counter
	SpanDuration        m.Histogram
}

func newMetrics() metrics {
	subsystem := "tracer"

	return metrics{
		StartedCount: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "started_count",
			Help:      "Number of started tracers.",
		}),
		EndedCount: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "ended_count",
			Help:      "Number of tracers ended after being started.",
		}),
		DiscardedCount: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "discarded_count",
			Help:      "Number of tracers ended without being started.",
		}),
		FailedCount: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "failed_count",
			Help:      "Number of ended tracers with a recorded error.",
		}),
		MisuseCount: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "misuse_count",
			Help:      "Number of ignored out of order tracer calls.",
		}),
		TagDecodeErrorCount: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "tag_decode_error_count",
			Help:      "Number of dropped malformed propagation tags.",
		}),
		RecorderPanicCount: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "recorder_panic_count",
			Help:      "Number of recovered recorder panics.",
		}),
		SpanDuration: m.NewHistogram(m.HistogramOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "span_duration_seconds",
			Help:      "Histogram of traced unit of work durations.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),
	}
}
