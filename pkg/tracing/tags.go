// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracing

import (
	"github.com/ethersphere/agentsdk/pkg/info"
	"github.com/ethersphere/agentsdk/pkg/tracer"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
)

// Span tags that have no opentracing ext equivalent.
const (
	TagMessagingSystem     = "messaging.system"
	TagDestinationKind     = "messaging.destination_kind"
	TagRPCMethod           = "rpc.method"
	TagRPCServiceEndpoint  = "rpc.service_endpoint"
	TagChannelType         = "channel.type"
	TagTracerKind          = "tracer.kind"
	spanKindInternal       = "internal"
	errorEventName         = "error"
	errorKindLogField      = "error.kind"
	errorMessageLogField   = "message"
	errorEventNameLogField = "event"
)

func startTags(s *tracer.Span) opentracing.Tags {
	tags := opentracing.Tags{
		TagTracerKind: s.Kind.String(),
	}
	kind := string(ext.SpanKind)

	switch s.Kind {
	case tracer.KindOutgoingMessage, tracer.KindIncomingMessageReceive, tracer.KindIncomingMessageProcess:
		if s.Kind == tracer.KindOutgoingMessage {
			tags[kind] = ext.SpanKindProducerEnum
		} else {
			tags[kind] = ext.SpanKindConsumerEnum
		}
		if s.Messaging != nil {
			tags[TagMessagingSystem] = s.Messaging.Vendor()
			tags[string(ext.MessageBusDestination)] = s.Messaging.Destination()
			tags[TagDestinationKind] = s.Messaging.DestinationType().String()
			channelTags(tags, s.Messaging.Channel())
		}
	case tracer.KindOutgoingRemoteCall, tracer.KindIncomingRemoteCall:
		if s.Kind == tracer.KindOutgoingRemoteCall {
			tags[kind] = ext.SpanKindRPCClientEnum
		} else {
			tags[kind] = ext.SpanKindRPCServerEnum
		}
		if s.RemoteCall != nil {
			tags[TagRPCMethod] = s.RemoteCall.Method()
			tags[string(ext.PeerService)] = s.RemoteCall.Service()
			tags[TagRPCServiceEndpoint] = s.RemoteCall.ServiceEndpoint()
			channelTags(tags, s.RemoteCall.Channel())
		}
	case tracer.KindDatabaseRequest:
		tags[kind] = ext.SpanKindRPCClientEnum
		tags[string(ext.DBStatement)] = s.Statement
		if s.Database != nil {
			tags[string(ext.DBInstance)] = s.Database.Name()
			tags[string(ext.DBType)] = s.Database.Vendor()
			channelTags(tags, s.Database.Channel())
		}
	default:
		tags[kind] = spanKindInternal
	}
	return tags
}

func channelTags(tags opentracing.Tags, c info.Channel) {
	tags[TagChannelType] = c.Type.String()
	if c.Endpoint != "" {
		tags[string(ext.PeerAddress)] = c.Endpoint
	}
}

func setError(span opentracing.Span, e *tracer.ErrorRecord) {
	ext.Error.Set(span, true)
	span.LogFields(
		log.String(errorEventNameLogField, errorEventName),
		log.String(errorKindLogField, e.Kind),
		log.String(errorMessageLogField, e.Message),
	)
}
