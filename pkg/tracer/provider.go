// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracer

import (
	"context"
	"io"

	"github.com/ethersphere/agentsdk/pkg/info"
	"github.com/ethersphere/agentsdk/pkg/logging"
	m "github.com/ethersphere/agentsdk/pkg/metrics"
	"github.com/sirupsen/logrus"
)

var _ Provider = (*RecordingProvider)(nil)

// RecordingProvider creates tracers that report their spans to a Recorder.
type RecordingProvider struct {
	recorder Recorder
	logger   logging.Logger
	metrics  metrics
}

// NewRecordingProvider returns a provider for the recorder r. A nil logger
// discards diagnostics.
func NewRecordingProvider(r Recorder, logger logging.Logger) *RecordingProvider {
	if r == nil {
		r = discardRecorder{}
	}
	if logger == nil {
		logger = logging.New(io.Discard, logrus.PanicLevel)
	}
	return &RecordingProvider{
		recorder: r,
		logger:   logger,
		metrics:  newMetrics(),
	}
}

func (p *RecordingProvider) newLifecycle(ctx context.Context, kind Kind) lifecycle {
	return lifecycle{
		p: p,
		span: Span{
			Kind:   kind,
			Parent: HandleFromContext(ctx),
		},
	}
}

func (p *RecordingProvider) TraceOutgoingMessage(ctx context.Context, ms *info.MessagingSystem) OutgoingMessageTracer {
	t := &outgoingMessage{p.newLifecycle(ctx, KindOutgoingMessage)}
	t.span.Messaging = ms
	return t
}

func (p *RecordingProvider) TraceIncomingMessageReceive(ctx context.Context, ms *info.MessagingSystem) IncomingMessageReceiveTracer {
	t := &incomingMessageReceive{p.newLifecycle(ctx, KindIncomingMessageReceive)}
	t.span.Messaging = ms
	return t
}

func (p *RecordingProvider) TraceIncomingMessageProcess(ctx context.Context, ms *info.MessagingSystem) IncomingMessageProcessTracer {
	t := &incomingMessageProcess{p.newLifecycle(ctx, KindIncomingMessageProcess)}
	t.span.Messaging = ms
	return t
}

func (p *RecordingProvider) TraceOutgoingRemoteCall(ctx context.Context, r *info.RemoteCall) OutgoingRemoteCallTracer {
	t := &outgoingRemoteCall{p.newLifecycle(ctx, KindOutgoingRemoteCall)}
	t.span.RemoteCall = r
	return t
}

func (p *RecordingProvider) TraceIncomingRemoteCall(ctx context.Context, r *info.RemoteCall) IncomingRemoteCallTracer {
	t := &incomingRemoteCall{p.newLifecycle(ctx, KindIncomingRemoteCall)}
	t.span.RemoteCall = r
	return t
}

func (p *RecordingProvider) TraceSQLDatabaseRequest(ctx context.Context, d *info.Database, statement string) DatabaseRequestTracer {
	t := &databaseRequest{p.newLifecycle(ctx, KindDatabaseRequest)}
	t.span.Database = d
	t.span.Statement = statement
	return t
}

func (p *RecordingProvider) CreateInProcessLink(ctx context.Context) InProcessLink {
	h := HandleFromContext(ctx)
	if h == nil {
		p.logger.Debug("tracer: in-process link created without active tracer")
	}
	return InProcessLink{parent: h}
}

// TraceInProcessLink returns a tracer that continues the trace of the
// tracer the link was created from. The link takes precedence over the
// tracer active in ctx.
func (p *RecordingProvider) TraceInProcessLink(ctx context.Context, link InProcessLink) InProcessLinkTracer {
	t := &inProcessLink{p.newLifecycle(ctx, KindInProcessLink)}
	if link.parent != nil {
		t.span.Parent = link.parent
	}
	return t
}

func (p *RecordingProvider) Metrics() []m.Collector {
	return m.PrometheusCollectorsFromFields(p.metrics)
}

type discardRecorder struct{}

func (discardRecorder) StartSpan(*Span) SpanHandle { return nil }
