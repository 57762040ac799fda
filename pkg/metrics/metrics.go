// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics wraps the prometheus client with the conventions used by
// every package of this module: a metrics struct per component, exposed
// through a Metrics method.
package metrics

import (
	"net/http"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewCounter(opts CounterOpts) Counter {
	return prometheus.NewCounter(opts)
}

func NewCounterVec(opts CounterOpts, names []string) *CounterVec {
	return prometheus.NewCounterVec(opts, names)
}

func NewGauge(opts GaugeOpts) Gauge {
	return prometheus.NewGauge(opts)
}

func NewGaugeVec(opts GaugeOpts, names []string) *GaugeVec {
	return prometheus.NewGaugeVec(opts, names)
}

func NewHistogram(opts HistogramOpts) Histogram {
	return prometheus.NewHistogram(opts)
}

func NewSummaryVec(opts SummaryOpts, names []string) *SummaryVec {
	return prometheus.NewSummaryVec(opts, names)
}

func NewRegistry() MetricsRegistererGatherer {
	return prometheus.NewRegistry()
}

func HandlerFor(reg MetricsRegistererGatherer, opts HandlerOpts) http.Handler {
	return promhttp.HandlerFor(reg, opts)
}

// PrometheusCollectorsFromFields returns all exported fields of the struct
// v, or of the struct v points to, that implement prometheus.Collector and
// are not nil.
func PrometheusCollectorsFromFields(i interface{}) (cs []Collector) {
	v := reflect.Indirect(reflect.ValueOf(i))
	if v.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < v.NumField(); i++ {
		if !v.Field(i).CanInterface() {
			continue
		}
		if u, ok := v.Field(i).Interface().(Collector); ok {
			if f := v.Field(i); f.Kind() == reflect.Ptr || f.Kind() == reflect.Interface {
				if f.IsNil() {
					continue
				}
			}
			cs = append(cs, u)
		}
	}
	return cs
}
