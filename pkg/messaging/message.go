// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package messaging

import (
	"github.com/vmihailenco/msgpack/v5"
)

// Message is the envelope exchanged through a Broker.
type Message struct {
	ID            string  `msgpack:"id"`
	CorrelationID string  `msgpack:"cid,omitempty"`
	Headers       Headers `msgpack:"h,omitempty"`
	Body          []byte  `msgpack:"b"`
}

// message has the fields of Message without its marshaling methods, which
// msgpack would otherwise call recursively.
type message Message

func (m *Message) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal((*message)(m))
}

func (m *Message) UnmarshalBinary(data []byte) error {
	return msgpack.Unmarshal(data, (*message)(m))
}
