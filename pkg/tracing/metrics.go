// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracing

import (
	m "github.com/ethersphere/agentsdk/pkg/metrics"
)

type metrics struct {
	StartedSpans   m.Counter
	FinishedSpans  m.Counter
	AbandonedSpans m.Counter
	InFlight       m.Gauge
}

func newMetrics() metrics {
	subsystem := "tracing"

	return metrics{
		StartedSpans: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "started_spans_count",
			Help:      "Number of spans started at the tracing agent.",
		}),
		FinishedSpans: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "finished_spans_count",
			Help:      "Number of spans reported to the tracing agent.",
		}),
		AbandonedSpans: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "abandoned_spans_count",
			Help:      "Number of started spans evicted without being finished.",
		}),
		InFlight: m.NewGauge(m.GaugeOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "in_flight_spans",
			Help:      "Number of started and not yet finished spans.",
		}),
	}
}

func (t *Tracer) Metrics() []m.Collector {
	return m.PrometheusCollectorsFromFields(t.metrics)
}
