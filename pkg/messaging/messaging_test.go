// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package messaging_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethersphere/agentsdk/pkg/info"
	"github.com/ethersphere/agentsdk/pkg/messaging"
	"github.com/ethersphere/agentsdk/pkg/tag"
	"github.com/ethersphere/agentsdk/pkg/tracer"
	"github.com/ethersphere/agentsdk/pkg/tracer/mock"
	"github.com/ethersphere/agentsdk/pkg/tracer/noop"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/sync/errgroup"
)

var queue = info.NewMessagingSystem(info.MessageSystemVendorRabbitMQ, "orders", info.DestinationTypeQueue, info.ChannelTypeInProcess, "")

func TestHeaders(t *testing.T) {
	t.Parallel()

	p := tracer.NewRecordingProvider(mock.NewRecorder(), nil)

	headers := make(messaging.Headers)
	out := p.TraceOutgoingMessage(context.Background(), queue)
	if err := messaging.AddTagHeader(out, headers); !errors.Is(err, messaging.ErrTagNotFound) {
		t.Fatalf("got error %v, want %v", err, messaging.ErrTagNotFound)
	}
	out.Start()
	if err := messaging.AddTagHeader(out, headers); err != nil {
		t.Fatal(err)
	}
	out.End()

	want := tag.FromBytes(headers[messaging.TagHeaderName])
	if !want.IsValid() {
		t.Fatal("got invalid tag header")
	}

	in := p.TraceIncomingMessageProcess(context.Background(), queue)
	if !messaging.SetTagFromHeaders(in, headers) {
		t.Fatal("tag header not found")
	}
	if messaging.SetTagFromHeaders(in, messaging.Headers{}) {
		t.Fatal("tag header found in empty headers")
	}
}

func TestMessageEncoding(t *testing.T) {
	t.Parallel()

	want := &messaging.Message{
		ID:            "id",
		CorrelationID: "corr",
		Headers:       messaging.Headers{messaging.TagHeaderName: tag.New().Bytes()},
		Body:          []byte("hello"),
	}
	data, err := want.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	got := new(messaging.Message)
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}

	if err := got.UnmarshalBinary([]byte{0xc1}); err == nil {
		t.Error("expected error decoding invalid data")
	}
}

func TestBroker(t *testing.T) {
	t.Parallel()

	b := messaging.NewBroker(2)
	defer b.Close()
	ctx := context.Background()

	var ids []string
	for _, body := range []string{"first", "second"} {
		id, err := b.Publish(ctx, "orders", &messaging.Message{
			Headers: messaging.Headers{messaging.TagHeaderName: []byte{1}},
			Body:    []byte(body),
		})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}
	if ids[0] == "" || ids[0] == ids[1] {
		t.Fatalf("got message ids %q", ids)
	}

	for i, want := range []string{"first", "second"} {
		msg, err := b.Receive(ctx, "orders")
		if err != nil {
			t.Fatal(err)
		}
		if msg.ID != ids[i] || string(msg.Body) != want {
			t.Errorf("got message %q %q, want %q %q", msg.ID, msg.Body, ids[i], want)
		}
		if !bytes.Equal(msg.Headers[messaging.TagHeaderName], []byte{1}) {
			t.Errorf("got headers %v", msg.Headers)
		}
	}

	for i, want := range []float64{2, 2, 0} {
		if got := testutil.ToFloat64(b.Metrics()[i]); got != want {
			t.Errorf("metric %v: got %v, want %v", i, got, want)
		}
	}
}

func TestProducerConsumer(t *testing.T) {
	t.Parallel()

	r := mock.NewRecorder()
	p := tracer.NewRecordingProvider(r, nil)
	b := messaging.NewBroker(0)
	defer b.Close()

	producer := messaging.NewProducer(p, b, queue)
	consumer := messaging.NewConsumer(p, b, queue)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		sentID   string
		received *messaging.Message
		handled  tag.Tag
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Consume(gctx, func(ctx context.Context, msg *messaging.Message) error {
			received = msg
			handled = tracer.TagFromContext(ctx)
			return nil
		})
	})
	g.Go(func() (err error) {
		sentID, err = producer.Send(gctx, []byte("order 1"), "corr-1")
		return err
	})
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if received.ID != sentID {
		t.Errorf("got message id %q, want %q", received.ID, sentID)
	}
	if !bytes.Equal(received.Body, []byte("order 1")) {
		t.Errorf("got body %q", received.Body)
	}

	var sent, process, receive mock.Span
	for _, s := range r.Spans() {
		switch s.Kind {
		case tracer.KindOutgoingMessage:
			sent = s
		case tracer.KindIncomingMessageProcess:
			process = s
		case tracer.KindIncomingMessageReceive:
			receive = s
		}
	}
	if process.Inbound != sent.Tag {
		t.Errorf("got inbound tag %+v, want %+v", process.Inbound, sent.Tag)
	}
	if process.Tag.TraceID != sent.Tag.TraceID {
		t.Error("process tracer is not in the trace of the sender")
	}
	if process.Parent == nil || process.Parent.Tag() != receive.Tag {
		t.Error("process tracer is not a child of the receive tracer")
	}
	if handled != process.Tag {
		t.Errorf("got handler context tag %+v, want %+v", handled, process.Tag)
	}
	for _, s := range []mock.Span{sent, process} {
		if got := s.Annotations[tracer.AnnotationVendorMessageID]; got != sentID {
			t.Errorf("%v: got message id %v, want %v", s.Kind, got, sentID)
		}
		if got := s.Annotations[tracer.AnnotationCorrelationID]; got != "corr-1" {
			t.Errorf("%v: got correlation id %v, want corr-1", s.Kind, got)
		}
	}
}

func TestConsumeErrors(t *testing.T) {
	t.Parallel()

	r := mock.NewRecorder()
	p := tracer.NewRecordingProvider(r, nil)
	b := messaging.NewBroker(1)

	if _, err := messaging.NewProducer(p, b, queue).Send(context.Background(), nil, ""); err != nil {
		t.Fatal(err)
	}

	errHandler := errors.New("handler failed")
	consumer := messaging.NewConsumer(p, b, queue)
	err := consumer.Consume(context.Background(), func(context.Context, *messaging.Message) error {
		return errHandler
	})
	if !errors.Is(err, errHandler) {
		t.Fatalf("got error %v, want %v", err, errHandler)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := consumer.Consume(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("got error %v, want %v", err, context.Canceled)
	}

	b.Close()
	if err := consumer.Consume(context.Background(), nil); !errors.Is(err, messaging.ErrBrokerClosed) {
		t.Fatalf("got error %v, want %v", err, messaging.ErrBrokerClosed)
	}

	var failed []tracer.Kind
	for _, s := range r.Spans() {
		if s.Err != nil {
			failed = append(failed, s.Kind)
		}
	}
	want := []tracer.Kind{tracer.KindIncomingMessageProcess, tracer.KindIncomingMessageReceive, tracer.KindIncomingMessageReceive}
	if diff := cmp.Diff(want, failed); diff != "" {
		t.Errorf("failed spans mismatch (-want +got):\n%s", diff)
	}
}

func TestFallbackProvider(t *testing.T) {
	t.Parallel()

	b := messaging.NewBroker(1)
	defer b.Close()

	if _, err := messaging.NewProducer(noop.Provider{}, b, queue).Send(context.Background(), []byte("x"), ""); err != nil {
		t.Fatal(err)
	}
	err := messaging.NewConsumer(noop.Provider{}, b, queue).Consume(context.Background(), func(_ context.Context, msg *messaging.Message) error {
		if _, ok := msg.Headers[messaging.TagHeaderName]; ok {
			t.Error("fallback tracer added a tag header")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
