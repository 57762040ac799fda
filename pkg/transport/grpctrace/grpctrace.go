// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grpctrace provides gRPC interceptors that trace calls as remote
// calls. The propagation tag travels in the TagMetadataKey metadata in its
// string form.
package grpctrace

import (
	"context"
	"strings"

	"github.com/ethersphere/agentsdk/pkg/info"
	"github.com/ethersphere/agentsdk/pkg/tracer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// TagMetadataKey is the gRPC metadata key used to propagate the tag.
const TagMetadataKey = "x-trace-tag"

// ProtocolName is recorded as the protocol of traced calls.
const ProtocolName = "gRPC"

// UnaryServerInterceptor traces every unary call as an incoming remote call.
// The handler context carries the tracer.
func UnaryServerInterceptor(p tracer.Provider) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, i *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		t := incoming(ctx, p, i.FullMethod)
		defer t.End()

		resp, err := handler(tracer.WithContext(ctx, t), req)
		setError(t, err)
		return resp, err
	}
}

// StreamServerInterceptor traces every stream as an incoming remote call
// that ends when the handler returns.
func StreamServerInterceptor(p tracer.Provider) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, i *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		t := incoming(ss.Context(), p, i.FullMethod)
		defer t.End()

		err := handler(srv, &serverStream{
			ServerStream: ss,
			ctx:          tracer.WithContext(ss.Context(), t),
		})
		setError(t, err)
		return err
	}
}

// UnaryClientInterceptor traces every unary call as an outgoing remote call
// and adds the propagation tag to the outgoing metadata.
func UnaryClientInterceptor(p tracer.Provider) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		service, name := splitMethod(method)
		t := p.TraceOutgoingRemoteCall(ctx, info.NewRemoteCall(name, service, cc.Target(), channelType(cc.Target()), cc.Target()))
		t.SetProtocolName(ProtocolName)
		t.Start()
		defer t.End()

		if s := t.PropagationTagString(); s != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, TagMetadataKey, s)
		}

		err := invoker(ctx, method, req, reply, cc, opts...)
		setError(t, err)
		return err
	}
}

func incoming(ctx context.Context, p tracer.Provider, fullMethod string) tracer.IncomingRemoteCallTracer {
	service, name := splitMethod(fullMethod)
	var endpoint string
	if pr, ok := peer.FromContext(ctx); ok && pr.Addr != nil {
		endpoint = pr.Addr.String()
	}

	t := p.TraceIncomingRemoteCall(ctx, info.NewRemoteCall(name, service, fullMethod, info.ChannelTypeTCPIP, endpoint))
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(TagMetadataKey); len(v) > 0 {
			t.SetPropagationTagString(v[0])
		}
	}
	t.SetProtocolName(ProtocolName)
	t.Start()
	return t
}

func setError(t tracer.Tracer, err error) {
	if err == nil {
		return
	}
	s := status.Convert(err)
	t.SetError(s.Code().String(), s.Message())
}

// splitMethod splits "/package.Service/Method" into its service and method.
func splitMethod(fullMethod string) (service, method string) {
	fullMethod = strings.TrimPrefix(fullMethod, "/")
	if i := strings.LastIndex(fullMethod, "/"); i >= 0 {
		return fullMethod[:i], fullMethod[i+1:]
	}
	return "", fullMethod
}

func channelType(target string) info.ChannelType {
	if strings.HasPrefix(target, "unix:") || strings.HasPrefix(target, "unix-abstract:") {
		return info.ChannelTypeUnixDomainSocket
	}
	return info.ChannelTypeTCPIP
}

type serverStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *serverStream) Context() context.Context {
	return s.ctx
}
