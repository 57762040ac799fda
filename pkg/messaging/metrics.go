// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package messaging

import (
	m "github.com/ethersphere/agentsdk/pkg/metrics"
)

type metrics struct {
	PublishedCount   m.Counter
	ReceivedCount    m.Counter
	DecodeErrorCount m.Counter
}

func newMetrics() metrics {
	subsystem := "broker"

	return metrics{
		PublishedCount: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "published_count",
			Help:      "Number of published messages.",
		}),
		ReceivedCount: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "received_count",
			Help:      "Number of received messages.",
		}),
		DecodeErrorCount: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "decode_error_count",
			Help:      "Number of received messages that could not be decoded.",
		}),
	}
}

func (b *Broker) Metrics() []m.Collector {
	return m.PrometheusCollectorsFromFields(b.metrics)
}
