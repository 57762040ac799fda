// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tracing provides the agent backend of the SDK. It reports the
// spans of started tracers to a jaeger agent through opentracing.
package tracing

import (
	"errors"
	"io"
	"time"

	"github.com/ethersphere/agentsdk/pkg/logging"
	"github.com/ethersphere/agentsdk/pkg/tag"
	"github.com/ethersphere/agentsdk/pkg/tracer"
	lru "github.com/hashicorp/golang-lru"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"github.com/uber/jaeger-client-go"
	"github.com/uber/jaeger-client-go/config"
	"go.uber.org/atomic"
)

// DefaultMaxInFlight is the number of started and not yet ended spans that
// are tracked before the oldest ones are considered abandoned.
const DefaultMaxInFlight = 10000

// LogField is the key in log message field that holds tracing id value.
const LogField = "traceid"

// ErrServiceNameRequired is returned when an enabled tracer has no service
// name.
var ErrServiceNameRequired = errors.New("tracing service name required")

var _ tracer.Recorder = (*Tracer)(nil)

// Tracer connects to a tracing agent and reports tracer spans to it using
// an opentracing Tracer.
type Tracer struct {
	tracer   opentracing.Tracer
	logger   logging.Logger
	inflight *lru.Cache
	metrics  metrics
}

// Options are optional parameters for Tracer constructor.
type Options struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	MaxInFlight int
	Logger      logging.Logger
}

// NewTracer creates a new Tracer and returns a closer which needs to be closed
// when the Tracer is no longer used to flush remaining traces.
func NewTracer(o *Options) (*Tracer, io.Closer, error) {
	if o == nil {
		o = new(Options)
	}
	if o.Enabled && o.ServiceName == "" {
		return nil, nil, ErrServiceNameRequired
	}

	cfg := config.Configuration{
		Disabled:    !o.Enabled,
		ServiceName: o.ServiceName,
		Gen128Bit:   true,
		Sampler: &config.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &config.ReporterConfig{
			BufferFlushInterval: 1 * time.Second,
			LocalAgentHostPort:  o.Endpoint,
		},
	}

	t, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, nil, err
	}
	return New(t, o), closer, nil
}

// New creates a Tracer that reports to an existing opentracing tracer. Only
// jaeger tracers produce propagation tags.
func New(t opentracing.Tracer, o *Options) *Tracer {
	if o == nil {
		o = new(Options)
	}
	logger := o.Logger
	if logger == nil {
		logger = logging.New(io.Discard, logrus.PanicLevel)
	}
	size := o.MaxInFlight
	if size <= 0 {
		size = DefaultMaxInFlight
	}

	tr := &Tracer{
		tracer:  t,
		logger:  logger,
		metrics: newMetrics(),
	}
	// the error is only returned for a non-positive size
	tr.inflight, _ = lru.NewWithEvict(size, tr.evicted)
	return tr
}

// StartSpan starts an opentracing span for a started tracer.
func (t *Tracer) StartSpan(s *tracer.Span) tracer.SpanHandle {
	opts := []opentracing.StartSpanOption{
		opentracing.StartTime(s.StartTime),
		opentracing.Tags(startTags(s)),
	}
	opts = append(opts, references(s)...)

	span := t.tracer.StartSpan(s.Name(), opts...)
	h := &handle{
		t:     t,
		span:  span,
		tag:   TagFromSpanContext(span.Context()),
		entry: new(inflightEntry),
	}
	h.entry.name = s.Name()
	if h.tag.IsValid() {
		t.inflight.Add(h.tag.SpanID, h.entry)
		t.metrics.InFlight.Set(float64(t.inflight.Len()))
	}
	t.metrics.StartedSpans.Inc()
	return h
}

// references links the span to the inbound tag, which has precedence as the
// parent, and to the tracer that was active when it was created.
func references(s *tracer.Span) (refs []opentracing.StartSpanOption) {
	if s.Inbound.IsValid() {
		refs = append(refs, opentracing.ChildOf(SpanContextFromTag(s.Inbound)))
	}
	if s.Parent == nil {
		return refs
	}

	var parent opentracing.SpanContext
	if h, ok := s.Parent.(*handle); ok {
		parent = h.span.Context()
	} else if pt := s.Parent.Tag(); pt.IsValid() {
		parent = SpanContextFromTag(pt)
	}
	if parent == nil {
		return refs
	}
	if len(refs) > 0 {
		return append(refs, opentracing.FollowsFrom(parent))
	}
	return append(refs, opentracing.ChildOf(parent))
}

type inflightEntry struct {
	name     string
	finished atomic.Bool
}

func (t *Tracer) evicted(key, value interface{}) {
	e, ok := value.(*inflightEntry)
	if !ok || e.finished.Load() {
		return
	}
	t.metrics.AbandonedSpans.Inc()
	t.logger.Debugf("tracing: span %q %v abandoned without end", e.name, key)
}

type handle struct {
	t     *Tracer
	span  opentracing.Span
	tag   tag.Tag
	entry *inflightEntry
}

func (h *handle) Tag() tag.Tag {
	return h.tag
}

func (h *handle) Finish(s *tracer.Span) {
	for k, v := range s.Annotations {
		h.span.SetTag(k, v)
	}
	if s.Err != nil {
		setError(h.span, s.Err)
	}
	h.span.FinishWithOptions(opentracing.FinishOptions{FinishTime: s.EndTime})

	h.entry.finished.Store(true)
	if h.tag.IsValid() {
		h.t.inflight.Remove(h.tag.SpanID)
		h.t.metrics.InFlight.Set(float64(h.t.inflight.Len()))
	}
	h.t.metrics.FinishedSpans.Inc()
}

// TagFromSpanContext returns the propagation tag for a jaeger span context,
// or tag.None for span contexts of other tracers.
func TagFromSpanContext(sc opentracing.SpanContext) tag.Tag {
	jsc, ok := sc.(jaeger.SpanContext)
	if !ok || !jsc.IsValid() {
		return tag.None
	}
	t := tag.Tag{
		TraceID: tag.TraceIDFromUint64(jsc.TraceID().High, jsc.TraceID().Low),
		SpanID:  tag.SpanIDFromUint64(uint64(jsc.SpanID())),
	}
	if jsc.IsSampled() {
		t.Flags |= tag.FlagSampled
	}
	return t
}

// SpanContextFromTag returns the jaeger span context identified by t.
func SpanContextFromTag(t tag.Tag) jaeger.SpanContext {
	traceID := jaeger.TraceID{High: t.TraceID.High(), Low: t.TraceID.Low()}
	return jaeger.NewSpanContext(traceID, jaeger.SpanID(t.SpanID.Uint64()), 0, t.Sampled(), nil)
}

// LoggerWithTag creates a new log Entry with "traceid" field added if the
// tag is valid.
func LoggerWithTag(l logging.Logger, t tag.Tag) *logrus.Entry {
	if l == nil {
		return nil
	}
	if !t.IsValid() {
		return l.NewEntry()
	}
	return l.WithField(LogField, t.TraceID.String())
}
