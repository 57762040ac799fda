// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grpctrace_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/ethersphere/agentsdk/pkg/tag"
	"github.com/ethersphere/agentsdk/pkg/tracer"
	"github.com/ethersphere/agentsdk/pkg/tracer/mock"
	"github.com/ethersphere/agentsdk/pkg/tracer/noop"
	"github.com/ethersphere/agentsdk/pkg/transport/grpctrace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// newClient serves the health service on an in-memory listener and returns
// a client of it. Both ends are traced with p.
func newClient(t *testing.T, p tracer.Provider) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(
		grpc.UnaryInterceptor(grpctrace.UnaryServerInterceptor(p)),
		grpc.StreamInterceptor(grpctrace.StreamServerInterceptor(p)),
	)
	hs := health.NewServer()
	hs.SetServingStatus("users", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		_ = srv.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(grpctrace.UnaryClientInterceptor(p)),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		srv.Stop()
	})

	return healthpb.NewHealthClient(conn)
}

func spansByKind(r *mock.Recorder) map[tracer.Kind]mock.Span {
	spans := make(map[tracer.Kind]mock.Span)
	for _, s := range r.Spans() {
		spans[s.Kind] = s
	}
	return spans
}

func TestUnary(t *testing.T) {
	t.Parallel()

	r := mock.NewRecorder()
	client := newClient(t, tracer.NewRecordingProvider(r, nil))

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "users"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("got status %v", resp.GetStatus())
	}

	spans := spansByKind(r)
	out, in := spans[tracer.KindOutgoingRemoteCall], spans[tracer.KindIncomingRemoteCall]

	if in.Inbound != out.Tag {
		t.Errorf("got inbound tag %+v, want %+v", in.Inbound, out.Tag)
	}
	for _, s := range []mock.Span{out, in} {
		if got, want := s.RemoteCall.Service(), "grpc.health.v1.Health"; got != want {
			t.Errorf("%v: got service %q, want %q", s.Kind, got, want)
		}
		if got, want := s.RemoteCall.Method(), "Check"; got != want {
			t.Errorf("%v: got method %q, want %q", s.Kind, got, want)
		}
		if got := s.Annotations[tracer.AnnotationProtocolName]; got != grpctrace.ProtocolName {
			t.Errorf("%v: got protocol %v", s.Kind, got)
		}
		if s.Err != nil {
			t.Errorf("%v: got error %v", s.Kind, s.Err)
		}
	}
}

func TestUnaryError(t *testing.T) {
	t.Parallel()

	r := mock.NewRecorder()
	client := newClient(t, tracer.NewRecordingProvider(r, nil))

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "unknown"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("got error %v, want code %v", err, codes.NotFound)
	}

	for kind, s := range spansByKind(r) {
		if s.Err == nil || s.Err.Kind != codes.NotFound.String() {
			t.Errorf("%v: got error %v, want kind %v", kind, s.Err, codes.NotFound)
		}
	}
}

func TestStream(t *testing.T) {
	t.Parallel()

	r := mock.NewRecorder()
	client := newClient(t, tracer.NewRecordingProvider(r, nil))

	remote := tag.New()
	ctx, cancel := context.WithCancel(metadata.AppendToOutgoingContext(context.Background(), grpctrace.TagMetadataKey, remote.String()))
	defer cancel()

	stream, err := client.Watch(ctx, &healthpb.HealthCheckRequest{Service: "users"})
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if _, err := stream.Recv(); err != nil {
		t.Fatalf("recv: %v", err)
	}
	cancel()

	deadline := time.Now().Add(5 * time.Second)
	for len(r.Spans()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("stream span not reported")
		}
		time.Sleep(10 * time.Millisecond)
	}

	s := r.Spans()[0]
	if s.Kind != tracer.KindIncomingRemoteCall {
		t.Fatalf("got span kind %v", s.Kind)
	}
	if s.Inbound != remote {
		t.Errorf("got inbound tag %+v, want %+v", s.Inbound, remote)
	}
	if got, want := s.RemoteCall.Method(), "Watch"; got != want {
		t.Errorf("got method %q, want %q", got, want)
	}
}

func TestFallbackProvider(t *testing.T) {
	t.Parallel()

	client := newClient(t, noop.Provider{})

	if _, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{}); err != nil {
		t.Fatalf("check: %v", err)
	}
}
