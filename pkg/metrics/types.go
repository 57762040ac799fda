// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dto "github.com/prometheus/client_model/go"
)

// Namespace is prefixed before every metric. If it is changed, it must be done
// before any metrics collector is registered.
const Namespace = "agentsdk"

type (
	// MetricsCollector is implemented by every component that exposes its
	// own metrics.
	MetricsCollector interface {
		Metrics() []Collector
	}

	MetricsRegistererGatherer interface {
		Gather() ([]*MetricFamily, error)
		MetricsRegisterer
	}

	MetricsRegisterer interface {
		MustRegister(...Collector)
		Register(Collector) error
		Unregister(Collector) bool
	}
)

// Prometheus types aliases
type (
	Collector = prometheus.Collector
	Observer  = prometheus.Observer
	Labels    = prometheus.Labels
	Metric    = prometheus.Metric
	Desc      = prometheus.Desc

	Counter     = prometheus.Counter
	CounterOpts = prometheus.CounterOpts
	CounterVec  = prometheus.CounterVec

	Gauge     = prometheus.Gauge
	GaugeOpts = prometheus.GaugeOpts
	GaugeVec  = prometheus.GaugeVec

	Histogram     = prometheus.Histogram
	HistogramOpts = prometheus.HistogramOpts

	SummaryOpts = prometheus.SummaryOpts
	SummaryVec  = prometheus.SummaryVec

	HandlerOpts = promhttp.HandlerOpts

	MetricDTO    = dto.Metric
	MetricFamily = dto.MetricFamily

	AlreadyRegisteredError = prometheus.AlreadyRegisteredError
)
