// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package noop provides the tracer provider used when no agent is attached.
// It returns the same stateless placeholder for every tracer, so host code
// behaves the same with and without an agent.
package noop

import (
	"context"

	"github.com/ethersphere/agentsdk/pkg/info"
	"github.com/ethersphere/agentsdk/pkg/tracer"
)

var _ tracer.Provider = Provider{}

// Provider is a tracer.Provider that records nothing.
type Provider struct{}

// Tracer is the shared placeholder returned for every tracer kind.
var Tracer = placeholder{}

var (
	_ tracer.OutgoingMessageTracer        = Tracer
	_ tracer.IncomingMessageReceiveTracer = Tracer
	_ tracer.IncomingMessageProcessTracer = Tracer
	_ tracer.OutgoingRemoteCallTracer     = Tracer
	_ tracer.IncomingRemoteCallTracer     = Tracer
	_ tracer.DatabaseRequestTracer        = Tracer
	_ tracer.InProcessLinkTracer          = Tracer
)

func (Provider) TraceOutgoingMessage(context.Context, *info.MessagingSystem) tracer.OutgoingMessageTracer {
	return Tracer
}

func (Provider) TraceIncomingMessageReceive(context.Context, *info.MessagingSystem) tracer.IncomingMessageReceiveTracer {
	return Tracer
}

func (Provider) TraceIncomingMessageProcess(context.Context, *info.MessagingSystem) tracer.IncomingMessageProcessTracer {
	return Tracer
}

func (Provider) TraceOutgoingRemoteCall(context.Context, *info.RemoteCall) tracer.OutgoingRemoteCallTracer {
	return Tracer
}

func (Provider) TraceIncomingRemoteCall(context.Context, *info.RemoteCall) tracer.IncomingRemoteCallTracer {
	return Tracer
}

func (Provider) TraceSQLDatabaseRequest(context.Context, *info.Database, string) tracer.DatabaseRequestTracer {
	return Tracer
}

func (Provider) CreateInProcessLink(context.Context) tracer.InProcessLink {
	return tracer.InProcessLink{}
}

func (Provider) TraceInProcessLink(context.Context, tracer.InProcessLink) tracer.InProcessLinkTracer {
	return Tracer
}

type placeholder struct{}

func (placeholder) Start()                         {}
func (placeholder) End()                           {}
func (placeholder) Error(error)                    {}
func (placeholder) SetError(string, string)        {}
func (placeholder) PropagationTag() []byte         { return nil }
func (placeholder) PropagationTagString() string   { return "" }
func (placeholder) SetPropagationTag([]byte)       {}
func (placeholder) SetPropagationTagString(string) {}
func (placeholder) SetVendorMessageID(string)      {}
func (placeholder) SetCorrelationID(string)        {}
func (placeholder) SetProtocolName(string)         {}
func (placeholder) SetReturnedRowCount(int)        {}
func (placeholder) SetRoundTripCount(int)          {}
