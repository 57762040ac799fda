// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package custommetrics

import (
	m "github.com/ethersphere/agentsdk/pkg/metrics"
)

type metrics struct {
	InvalidUseCount m.Counter
}

func newMetrics() metrics {
	return metrics{
		InvalidUseCount: m.NewCounter(m.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: "custommetrics",
			Name:      "invalid_use_count",
			Help:      "Number of ignored invalid custom metric calls.",
		}),
	}
}
