// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tracer defines the tracers a host application uses to mark the
// begin and end of units of work against external systems, and provides
// their lifecycle implementation on top of a Recorder.
//
// Every tracer goes through Created, Started and Ended. The host follows the
// same pattern at every call site:
//
//	t := provider.TraceOutgoingMessage(ctx, messagingSystem)
//	t.Start()
//	defer t.End()
//	if err := send(msg); err != nil {
//		t.Error(err)
//		return err
//	}
//
// Tracers never fail: calls out of order, repeated calls and invalid
// arguments are ignored. A single tracer must only be used by the goroutine
// that drives the unit of work; distinct tracers are independent.
package tracer

import (
	"context"
	"fmt"

	"github.com/ethersphere/agentsdk/pkg/info"
)

// Tracer is the lifecycle shared by all tracer kinds.
type Tracer interface {
	// Start marks the beginning of the traced unit of work. Only the first
	// call has an effect.
	Start()
	// End marks the end of the traced unit of work and hands the span to
	// the agent. It must be called on every exit path, usually deferred
	// right after Start. Only the first call has an effect; a tracer that
	// was never started is discarded.
	End()
	// Error records err as the failure of the traced unit of work, using
	// the error type as its kind. Nil errors are ignored. The last recorded
	// error wins.
	Error(err error)
	// SetError records a failure with an explicit kind and message.
	SetError(kind, message string)
}

// OutgoingTaggable is implemented by tracers that start a causal chain
// across a process boundary.
type OutgoingTaggable interface {
	// PropagationTag returns the binary tag to be sent along with the
	// outgoing request or message. It is nil unless the tracer is started
	// and not yet ended.
	PropagationTag() []byte
	// PropagationTagString returns the string form of PropagationTag for
	// text-only transports.
	PropagationTagString() string
}

// IncomingTaggable is implemented by tracers that continue a causal chain
// received from another process. The tag must be set before Start; later
// calls are ignored. Malformed tags are dropped.
type IncomingTaggable interface {
	SetPropagationTag(tag []byte)
	SetPropagationTagString(tag string)
}

// MessageAnnotator sets optional message properties. Empty strings are
// recorded as explicit values.
type MessageAnnotator interface {
	SetVendorMessageID(id string)
	SetCorrelationID(id string)
}

type OutgoingMessageTracer interface {
	Tracer
	OutgoingTaggable
	MessageAnnotator
}

type IncomingMessageReceiveTracer interface {
	Tracer
}

type IncomingMessageProcessTracer interface {
	Tracer
	IncomingTaggable
	MessageAnnotator
}

type OutgoingRemoteCallTracer interface {
	Tracer
	OutgoingTaggable
	SetProtocolName(name string)
}

type IncomingRemoteCallTracer interface {
	Tracer
	IncomingTaggable
	SetProtocolName(name string)
}

type DatabaseRequestTracer interface {
	Tracer
	// SetReturnedRowCount records the number of rows returned by the
	// statement. Negative values are ignored.
	SetReturnedRowCount(n int)
	// SetRoundTripCount records the number of network round trips the
	// statement needed. Negative values are ignored.
	SetRoundTripCount(n int)
}

type InProcessLinkTracer interface {
	Tracer
}

// Provider creates tracers. The context passed to every method carries the
// currently active tracer, set with WithContext, which becomes the parent of
// the new tracer. Descriptors may be nil.
type Provider interface {
	TraceOutgoingMessage(ctx context.Context, m *info.MessagingSystem) OutgoingMessageTracer
	TraceIncomingMessageReceive(ctx context.Context, m *info.MessagingSystem) IncomingMessageReceiveTracer
	TraceIncomingMessageProcess(ctx context.Context, m *info.MessagingSystem) IncomingMessageProcessTracer
	TraceOutgoingRemoteCall(ctx context.Context, r *info.RemoteCall) OutgoingRemoteCallTracer
	TraceIncomingRemoteCall(ctx context.Context, r *info.RemoteCall) IncomingRemoteCallTracer
	TraceSQLDatabaseRequest(ctx context.Context, d *info.Database, statement string) DatabaseRequestTracer
	// CreateInProcessLink links the tracer active in ctx to work that will
	// be done on another goroutine of the same process.
	CreateInProcessLink(ctx context.Context) InProcessLink
	TraceInProcessLink(ctx context.Context, link InProcessLink) InProcessLinkTracer
}

// Kind discriminates the tracer kinds.
type Kind uint8

const (
	KindOutgoingMessage Kind = iota + 1
	KindIncomingMessageReceive
	KindIncomingMessageProcess
	KindOutgoingRemoteCall
	KindIncomingRemoteCall
	KindDatabaseRequest
	KindInProcessLink
)

func (k Kind) String() string {
	switch k {
	case KindOutgoingMessage:
		return "outgoing-message"
	case KindIncomingMessageReceive:
		return "incoming-message-receive"
	case KindIncomingMessageProcess:
		return "incoming-message-process"
	case KindOutgoingRemoteCall:
		return "outgoing-remote-call"
	case KindIncomingRemoteCall:
		return "incoming-remote-call"
	case KindDatabaseRequest:
		return "database-request"
	case KindInProcessLink:
		return "in-process-link"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Outgoing reports whether tracers of this kind produce propagation tags.
func (k Kind) Outgoing() bool {
	return k == KindOutgoingMessage || k == KindOutgoingRemoteCall
}

// Incoming reports whether tracers of this kind consume propagation tags.
func (k Kind) Incoming() bool {
	return k == KindIncomingMessageProcess || k == KindIncomingRemoteCall
}

// ErrorRecord is the failure recorded on a tracer.
type ErrorRecord struct {
	Kind    string
	Message string
}

// InProcessLink connects a tracer to a tracer that was active on another
// goroutine. The zero value is an empty link; tracers created from it start
// a new trace.
type InProcessLink struct {
	parent SpanHandle
}

// IsZero reports whether the link does not point to an active tracer.
func (l InProcessLink) IsZero() bool {
	return l.parent == nil
}
