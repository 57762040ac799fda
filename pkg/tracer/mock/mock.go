// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mock provides an in-memory tracer.Recorder that accepts every span
// and keeps the finished ones for inspection in tests.
package mock

import (
	"sync"

	"github.com/ethersphere/agentsdk/pkg/tag"
	"github.com/ethersphere/agentsdk/pkg/tracer"
)

var _ tracer.Recorder = (*Recorder)(nil)

// Span is a finished span together with the tag it was recorded under.
type Span struct {
	tracer.Span
	Tag tag.Tag
}

type Recorder struct {
	mu       sync.Mutex
	started  int
	finished []Span
}

func NewRecorder() *Recorder {
	return new(Recorder)
}

// StartSpan assigns the span a tag. Spans with an inbound tag continue its
// trace, spans with a parent handle continue the parent trace and others
// start a new one.
func (r *Recorder) StartSpan(s *tracer.Span) tracer.SpanHandle {
	var t tag.Tag
	switch {
	case s.Inbound.IsValid():
		t = s.Inbound.Child()
	case s.Parent != nil && s.Parent.Tag().IsValid():
		t = s.Parent.Tag().Child()
	default:
		t = tag.New()
	}

	r.mu.Lock()
	r.started++
	r.mu.Unlock()

	return &handle{r: r, tag: t}
}

// Started returns the number of started spans.
func (r *Recorder) Started() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// Spans returns the finished spans in the order they were finished.
func (r *Recorder) Spans() []Span {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Span(nil), r.finished...)
}

// InFlight returns the number of started spans that are not finished.
func (r *Recorder) InFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started - len(r.finished)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = 0
	r.finished = nil
}

type handle struct {
	r   *Recorder
	tag tag.Tag
}

func (h *handle) Tag() tag.Tag {
	return h.tag
}

func (h *handle) Finish(s *tracer.Span) {
	c := *s
	if s.Annotations != nil {
		c.Annotations = make(map[string]interface{}, len(s.Annotations))
		for k, v := range s.Annotations {
			c.Annotations[k] = v
		}
	}
	if s.Err != nil {
		e := *s.Err
		c.Err = &e
	}

	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	h.r.finished = append(h.r.finished, Span{Span: c, Tag: h.tag})
}
