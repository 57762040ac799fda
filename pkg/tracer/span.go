// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracer

import (
	"time"

	"github.com/ethersphere/agentsdk/pkg/info"
	"github.com/ethersphere/agentsdk/pkg/tag"
)

// Annotation keys set by the tracer kinds.
const (
	AnnotationCorrelationID    = "messaging.correlation_id"
	AnnotationVendorMessageID  = "messaging.message_id"
	AnnotationProtocolName     = "rpc.protocol"
	AnnotationReturnedRowCount = "db.returned_rows"
	AnnotationRoundTripCount   = "db.round_trips"
)

// Recorder is the agent side of the tracers. StartSpan is called once when
// a tracer is started; the returned handle is finished once when the tracer
// ends. Spans of tracers that are never started are not passed to the
// Recorder. Implementations must be safe for concurrent use.
type Recorder interface {
	StartSpan(s *Span) SpanHandle
}

// SpanHandle is a span started by a Recorder.
type SpanHandle interface {
	// Tag returns the identity of the span, used as the propagation tag of
	// outgoing tracers and as the parent of linked tracers.
	Tag() tag.Tag
	Finish(s *Span)
}

// Span is the data a tracer collects. Only one of Messaging, RemoteCall and
// Database is set, depending on Kind.
type Span struct {
	Kind       Kind
	Messaging  *info.MessagingSystem
	RemoteCall *info.RemoteCall
	Database   *info.Database
	Statement  string

	// Parent is the handle of the tracer active in the context the tracer
	// was created with, or of the tracer an in-process link was created
	// from.
	Parent SpanHandle
	// Inbound is the tag received from another process by incoming tracers.
	Inbound tag.Tag

	Annotations map[string]interface{}
	Err         *ErrorRecord

	StartTime time.Time
	EndTime   time.Time
}

// Name returns a short operation name for the span.
func (s *Span) Name() string {
	switch s.Kind {
	case KindOutgoingMessage:
		return "send " + s.Messaging.Destination()
	case KindIncomingMessageReceive:
		return "receive " + s.Messaging.Destination()
	case KindIncomingMessageProcess:
		return "process " + s.Messaging.Destination()
	case KindOutgoingRemoteCall, KindIncomingRemoteCall:
		if s.RemoteCall.Service() == "" {
			return s.RemoteCall.Method()
		}
		return s.RemoteCall.Service() + "/" + s.RemoteCall.Method()
	case KindDatabaseRequest:
		return "query " + s.Database.Name()
	}
	return s.Kind.String()
}

// Duration returns the measured interval of an ended span.
func (s *Span) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}
