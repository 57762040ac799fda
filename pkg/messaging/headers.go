// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package messaging

import (
	"errors"

	"github.com/ethersphere/agentsdk/pkg/tracer"
)

// TagHeaderName is the message header that carries the binary propagation
// tag.
const TagHeaderName = "dt-tag"

// ErrTagNotFound is returned when there is no propagation tag to add to
// message headers.
var ErrTagNotFound = errors.New("propagation tag not found")

// Headers are the properties of a message.
type Headers map[string][]byte

// AddTagHeader adds the propagation tag of a started outgoing tracer to the
// headers. If the tracer has no tag, ErrTagNotFound is returned and the
// headers are not changed.
func AddTagHeader(t tracer.OutgoingTaggable, headers Headers) error {
	b := t.PropagationTag()
	if len(b) == 0 {
		return ErrTagNotFound
	}
	headers[TagHeaderName] = b
	return nil
}

// SetTagFromHeaders sets the propagation tag found in headers on an
// incoming tracer that is not yet started. It reports whether the header
// was present.
func SetTagFromHeaders(t tracer.IncomingTaggable, headers Headers) bool {
	b, ok := headers[TagHeaderName]
	if !ok {
		return false
	}
	t.SetPropagationTag(b)
	return true
}
