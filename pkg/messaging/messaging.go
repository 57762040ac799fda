// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package messaging traces messages exchanged through a Broker. The
// propagation tag of the sender travels in the message headers so that the
// processing of a message continues the trace that sent it.
package messaging

import (
	"context"

	"github.com/ethersphere/agentsdk/pkg/info"
	"github.com/ethersphere/agentsdk/pkg/tracer"
)

// Producer sends traced messages to the destination of its messaging system
// descriptor.
type Producer struct {
	provider tracer.Provider
	broker   *Broker
	info     *info.MessagingSystem
}

func NewProducer(p tracer.Provider, b *Broker, ms *info.MessagingSystem) *Producer {
	return &Producer{
		provider: p,
		broker:   b,
		info:     ms,
	}
}

// Send publishes body as a new message and returns the message id.
func (p *Producer) Send(ctx context.Context, body []byte, correlationID string) (id string, err error) {
	t := p.provider.TraceOutgoingMessage(ctx, p.info)
	t.Start()
	defer func() {
		t.Error(err)
		t.End()
	}()

	msg := &Message{
		CorrelationID: correlationID,
		Headers:       make(Headers),
		Body:          body,
	}
	// the fallback tracer has no tag
	_ = AddTagHeader(t, msg.Headers)
	if correlationID != "" {
		t.SetCorrelationID(correlationID)
	}

	id, err = p.broker.Publish(ctx, p.info.Destination(), msg)
	if err != nil {
		return "", err
	}
	t.SetVendorMessageID(id)
	return id, nil
}

// Handler processes a received message. The context carries the process
// tracer of the message.
type Handler func(ctx context.Context, msg *Message) error

// Consumer receives traced messages from the destination of its messaging
// system descriptor.
type Consumer struct {
	provider tracer.Provider
	broker   *Broker
	info     *info.MessagingSystem
}

func NewConsumer(p tracer.Provider, b *Broker, ms *info.MessagingSystem) *Consumer {
	return &Consumer{
		provider: p,
		broker:   b,
		info:     ms,
	}
}

// Consume receives one message and processes it with h. Receiving and
// processing are traced separately; the processing continues the trace of
// the sender.
func (c *Consumer) Consume(ctx context.Context, h Handler) error {
	receive := c.provider.TraceIncomingMessageReceive(ctx, c.info)
	receive.Start()
	defer receive.End()

	msg, err := c.broker.Receive(ctx, c.info.Destination())
	if err != nil {
		receive.Error(err)
		return err
	}

	process := c.provider.TraceIncomingMessageProcess(tracer.WithContext(ctx, receive), c.info)
	SetTagFromHeaders(process, msg.Headers)
	process.SetVendorMessageID(msg.ID)
	if msg.CorrelationID != "" {
		process.SetCorrelationID(msg.CorrelationID)
	}
	process.Start()
	defer process.End()

	if err := h(tracer.WithContext(ctx, process), msg); err != nil {
		process.Error(err)
		return err
	}
	return nil
}
