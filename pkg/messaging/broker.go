// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// DefaultQueueSize is the number of messages a destination buffers before
// Publish blocks.
const DefaultQueueSize = 64

// ErrBrokerClosed is returned by a closed broker.
var ErrBrokerClosed = errors.New("broker closed")

// Broker is an in-memory message broker. Every destination is a queue of
// encoded messages; each message is delivered to exactly one receiver.
type Broker struct {
	size    int
	metrics metrics

	mu     sync.Mutex
	queues map[string]chan []byte
	quit   chan struct{}
	closed bool
}

// NewBroker returns a broker buffering up to size messages per destination.
func NewBroker(size int) *Broker {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Broker{
		size:    size,
		metrics: newMetrics(),
		queues:  make(map[string]chan []byte),
		quit:    make(chan struct{}),
	}
}

func (b *Broker) queue(destination string) (chan []byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBrokerClosed
	}
	q, ok := b.queues[destination]
	if !ok {
		q = make(chan []byte, b.size)
		b.queues[destination] = q
	}
	return q, nil
}

// Publish assigns a new message id to msg and enqueues it to destination.
// It returns the assigned id.
func (b *Broker) Publish(ctx context.Context, destination string, msg *Message) (string, error) {
	q, err := b.queue(destination)
	if err != nil {
		return "", err
	}

	msg.ID = uuid.NewString()
	data, err := msg.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("encode message: %w", err)
	}

	select {
	case q <- data:
	case <-b.quit:
		return "", ErrBrokerClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
	b.metrics.PublishedCount.Inc()
	return msg.ID, nil
}

// Receive dequeues the next message of destination, blocking until one is
// available.
func (b *Broker) Receive(ctx context.Context, destination string) (*Message, error) {
	q, err := b.queue(destination)
	if err != nil {
		return nil, err
	}

	var data []byte
	select {
	case data = <-q:
	case <-b.quit:
		return nil, ErrBrokerClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	b.metrics.ReceivedCount.Inc()

	msg := new(Message)
	if err := msg.UnmarshalBinary(data); err != nil {
		b.metrics.DecodeErrorCount.Inc()
		return nil, fmt.Errorf("decode message: %w", err)
	}
	return msg, nil
}

// Close stops the broker. Blocked publishers and receivers return
// ErrBrokerClosed.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.quit)
	}
	return nil
}
