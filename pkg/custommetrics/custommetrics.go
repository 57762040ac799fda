// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package custommetrics provides application defined metrics: counters,
// gauges and statistics, optionally split by a single dimension.
//
// Metrics are reported as prometheus vectors registered to the registry
// given to the Factory. Invalid use of a metric is ignored and logged.
package custommetrics

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/ethersphere/agentsdk/pkg/logging"
	m "github.com/ethersphere/agentsdk/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// Subsystem is part of the name of every custom metric.
const Subsystem = "custom"

// Kind is the kind of a custom metric.
type Kind int

const (
	KindIntegerCounter Kind = iota + 1
	KindFloatCounter
	KindIntegerGauge
	KindFloatGauge
	KindIntegerStatistics
	KindFloatStatistics
)

func (k Kind) String() string {
	switch k {
	case KindIntegerCounter:
		return "integer counter"
	case KindFloatCounter:
		return "float counter"
	case KindIntegerGauge:
		return "integer gauge"
	case KindFloatGauge:
		return "float gauge"
	case KindIntegerStatistics:
		return "integer statistics"
	case KindFloatStatistics:
		return "float statistics"
	}
	return "unknown"
}

var (
	// ErrInvalidKey is logged when a metric key has no valid characters.
	ErrInvalidKey = errors.New("invalid metric key")
	// ErrKindMismatch is logged when a key is reused for a metric of a
	// different kind.
	ErrKindMismatch = errors.New("metric key registered with a different kind")
)

type (
	IntegerCounter interface {
		IncreaseBy(value int64, dimensionValue string)
	}
	FloatCounter interface {
		IncreaseBy(value float64, dimensionValue string)
	}
	IntegerGauge interface {
		SetValue(value int64, dimensionValue string)
	}
	FloatGauge interface {
		SetValue(value float64, dimensionValue string)
	}
	IntegerStatistics interface {
		AddValue(value int64, dimensionValue string)
	}
	FloatStatistics interface {
		AddValue(value float64, dimensionValue string)
	}
)

// Factory creates custom metrics. Metrics with the same key and kind are
// shared.
type Factory struct {
	registry m.MetricsRegisterer
	logger   logging.Logger
	metrics  metrics

	mu      sync.Mutex
	created map[string]*metric
	closed  bool
}

// NewFactory returns a factory registering metrics to registry. With a nil
// registry all created metrics are no-ops.
func NewFactory(registry m.MetricsRegisterer, logger logging.Logger) *Factory {
	if logger == nil {
		logger = logging.New(io.Discard, logrus.PanicLevel)
	}
	return &Factory{
		registry: registry,
		logger:   logger,
		metrics:  newMetrics(),
		created:  make(map[string]*metric),
	}
}

func (f *Factory) IntegerCounter(key, unit, dimensionName string) IntegerCounter {
	if mt := f.metric(KindIntegerCounter, key, unit, dimensionName); mt != nil {
		return integerCounter{mt}
	}
	return noop{}
}

func (f *Factory) FloatCounter(key, unit, dimensionName string) FloatCounter {
	if mt := f.metric(KindFloatCounter, key, unit, dimensionName); mt != nil {
		return floatCounter{mt}
	}
	return noopFloat{}
}

func (f *Factory) IntegerGauge(key, unit, dimensionName string) IntegerGauge {
	if mt := f.metric(KindIntegerGauge, key, unit, dimensionName); mt != nil {
		return integerGauge{mt}
	}
	return noop{}
}

func (f *Factory) FloatGauge(key, unit, dimensionName string) FloatGauge {
	if mt := f.metric(KindFloatGauge, key, unit, dimensionName); mt != nil {
		return floatGauge{mt}
	}
	return noopFloat{}
}

func (f *Factory) IntegerStatistics(key, unit, dimensionName string) IntegerStatistics {
	if mt := f.metric(KindIntegerStatistics, key, unit, dimensionName); mt != nil {
		return integerStatistics{mt}
	}
	return noop{}
}

func (f *Factory) FloatStatistics(key, unit, dimensionName string) FloatStatistics {
	if mt := f.metric(KindFloatStatistics, key, unit, dimensionName); mt != nil {
		return floatStatistics{mt}
	}
	return noopFloat{}
}

// metric returns the registered metric for the key, creating it if needed,
// or nil if the metric can not be reported.
func (f *Factory) metric(kind Kind, key, unit, dimensionName string) *metric {
	if f == nil || f.registry == nil {
		return nil
	}

	name := sanitize(key)
	if name == "" {
		f.invalid("custommetrics: %v %q: %v", kind, key, ErrInvalidKey)
		return nil
	}
	label := sanitize(dimensionName)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	if mt, ok := f.created[name]; ok {
		if mt.kind != kind || mt.label != label {
			f.invalid("custommetrics: %v %q: %v", kind, key, ErrKindMismatch)
			return nil
		}
		return mt
	}

	mt := &metric{
		f:     f,
		kind:  kind,
		key:   key,
		label: label,
	}
	var labels []string
	if label != "" {
		labels = []string{label}
	}
	help := key
	if unit != "" {
		help += " (" + unit + ")"
	}

	switch kind {
	case KindIntegerCounter, KindFloatCounter:
		mt.counter = m.NewCounterVec(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: Subsystem,
			Name:      name,
			Help:      help,
		}, labels)
		mt.collector = mt.counter
	case KindIntegerGauge, KindFloatGauge:
		mt.gauge = m.NewGaugeVec(m.GaugeOpts{
			Namespace: m.Namespace,
			Subsystem: Subsystem,
			Name:      name,
			Help:      help,
		}, labels)
		mt.collector = mt.gauge
	default:
		mt.summary = m.NewSummaryVec(m.SummaryOpts{
			Namespace: m.Namespace,
			Subsystem: Subsystem,
			Name:      name,
			Help:      help,
		}, labels)
		mt.collector = mt.summary
	}

	if err := f.registry.Register(mt.collector); err != nil {
		var are m.AlreadyRegisteredError
		if !errors.As(err, &are) {
			f.logger.Warningf("custommetrics: register %v %q: %v", kind, key, err)
			return nil
		}
		// registered outside of this factory
		f.invalid("custommetrics: %v %q: %v", kind, key, ErrKindMismatch)
		return nil
	}
	f.created[name] = mt
	return mt
}

// Close unregisters the metrics created by the factory. Metrics created
// after Close are no-ops.
func (f *Factory) Close() {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.registry != nil {
		for _, mt := range f.created {
			f.registry.Unregister(mt.collector)
		}
	}
	f.created = make(map[string]*metric)
	f.closed = true
}

func (f *Factory) invalid(format string, args ...interface{}) {
	f.metrics.InvalidUseCount.Inc()
	f.logger.Debugf(format, args...)
}

func (f *Factory) Metrics() []m.Collector {
	return m.PrometheusCollectorsFromFields(f.metrics)
}

// sanitize converts a metric key to a valid prometheus name fragment.
func sanitize(key string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, strings.TrimSpace(key))
	if strings.Trim(s, "_") == "" {
		return ""
	}
	return s
}

type metric struct {
	f     *Factory
	kind  Kind
	key   string
	label string

	collector m.Collector
	counter   *m.CounterVec
	gauge     *m.GaugeVec
	summary   *m.SummaryVec
}

func (mt *metric) labelValues(dimensionValue string) ([]string, bool) {
	if mt.label == "" {
		return nil, true
	}
	if dimensionValue == "" {
		mt.f.invalid("custommetrics: %v %q: missing value for dimension %q", mt.kind, mt.key, mt.label)
		return nil, false
	}
	return []string{dimensionValue}, true
}

func (mt *metric) add(value float64, dimensionValue string) {
	if value < 0 {
		mt.f.invalid("custommetrics: %v %q: negative increment %v", mt.kind, mt.key, value)
		return
	}
	if lv, ok := mt.labelValues(dimensionValue); ok {
		mt.counter.WithLabelValues(lv...).Add(value)
	}
}

func (mt *metric) set(value float64, dimensionValue string) {
	if lv, ok := mt.labelValues(dimensionValue); ok {
		mt.gauge.WithLabelValues(lv...).Set(value)
	}
}

func (mt *metric) observe(value float64, dimensionValue string) {
	if lv, ok := mt.labelValues(dimensionValue); ok {
		mt.summary.WithLabelValues(lv...).Observe(value)
	}
}

type integerCounter struct{ *metric }

func (c integerCounter) IncreaseBy(value int64, dimensionValue string) {
	c.add(float64(value), dimensionValue)
}

type floatCounter struct{ *metric }

func (c floatCounter) IncreaseBy(value float64, dimensionValue string) {
	c.add(value, dimensionValue)
}

type integerGauge struct{ *metric }

func (g integerGauge) SetValue(value int64, dimensionValue string) {
	g.set(float64(value), dimensionValue)
}

type floatGauge struct{ *metric }

func (g floatGauge) SetValue(value float64, dimensionValue string) {
	g.set(value, dimensionValue)
}

type integerStatistics struct{ *metric }

func (s integerStatistics) AddValue(value int64, dimensionValue string) {
	s.observe(float64(value), dimensionValue)
}

type floatStatistics struct{ *metric }

func (s floatStatistics) AddValue(value float64, dimensionValue string) {
	s.observe(value, dimensionValue)
}

type (
	noop      struct{}
	noopFloat struct{}
)

func (noop) IncreaseBy(int64, string) {}
func (noop) SetValue(int64, string)   {}
func (noop) AddValue(int64, string)   {}

func (noopFloat) IncreaseBy(float64, string) {}
func (noopFloat) SetValue(float64, string)   {}
func (noopFloat) AddValue(float64, string)   {}
