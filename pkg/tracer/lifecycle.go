// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracer

import (
	"fmt"
	"time"

	"github.com/ethersphere/agentsdk/pkg/tag"
)

type state uint8

const (
	stateCreated state = iota
	stateStarted
	stateEnded
)

func (s state) String() string {
	switch s {
	case stateCreated:
		return "created"
	case stateStarted:
		return "started"
	}
	return "ended"
}

// lifecycle is the state machine embedded in every tracer kind. It is not
// synchronized; a tracer belongs to a single unit of work.
type lifecycle struct {
	p      *RecordingProvider
	span   Span
	handle SpanHandle
	state  state
}

func (l *lifecycle) Start() {
	if l.state != stateCreated {
		l.misuse("start")
		return
	}
	l.state = stateStarted
	l.span.StartTime = time.Now()
	l.safely("start", func() {
		l.handle = l.p.recorder.StartSpan(&l.span)
	})
	l.p.metrics.StartedCount.Inc()
}

func (l *lifecycle) End() {
	switch l.state {
	case stateCreated:
		// never started, nothing to report
		l.state = stateEnded
		l.p.metrics.DiscardedCount.Inc()
		l.p.logger.Tracef("tracer: %s ended without start", l.span.Kind)
	case stateStarted:
		l.state = stateEnded
		l.span.EndTime = time.Now()
		if l.handle != nil {
			l.safely("end", func() {
				l.handle.Finish(&l.span)
			})
		}
		l.p.metrics.EndedCount.Inc()
		l.p.metrics.SpanDuration.Observe(l.span.Duration().Seconds())
		if l.span.Err != nil {
			l.p.metrics.FailedCount.Inc()
		}
	default:
		l.misuse("end")
	}
}

func (l *lifecycle) Error(err error) {
	if err == nil {
		return
	}
	// fmt recovers from Error methods that panic, including on nil receivers
	l.SetError(fmt.Sprintf("%T", err), fmt.Sprintf("%v", err))
}

func (l *lifecycle) SetError(kind, message string) {
	if l.state == stateEnded {
		l.misuse("error")
		return
	}
	l.span.Err = &ErrorRecord{Kind: kind, Message: message}
}

func (l *lifecycle) annotate(key string, value interface{}) {
	if l.state == stateEnded {
		l.misuse("annotate " + key)
		return
	}
	if l.span.Annotations == nil {
		l.span.Annotations = make(map[string]interface{})
	}
	l.span.Annotations[key] = value
}

// outgoingTag returns the identity of a started tracer.
func (l *lifecycle) outgoingTag() tag.Tag {
	if l.state != stateStarted || l.handle == nil {
		return tag.None
	}
	var t tag.Tag
	l.safely("tag", func() {
		t = l.handle.Tag()
	})
	return t
}

func (l *lifecycle) setInboundTag(form tag.Form, empty bool, decode func() (tag.Tag, error)) {
	if l.state != stateCreated {
		l.misuse("set tag")
		return
	}
	if empty {
		l.span.Inbound = tag.None
		return
	}
	t, err := decode()
	if err != nil {
		l.span.Inbound = tag.None
		l.p.metrics.TagDecodeErrorCount.Inc()
		l.p.logger.Warningf("tracer: %s: dropping %s propagation tag: %v", l.span.Kind, form, err)
		return
	}
	l.span.Inbound = t
}

func (l *lifecycle) setBinaryTag(b []byte) {
	l.setInboundTag(tag.FormBinary, len(b) == 0, func() (tag.Tag, error) {
		return tag.Decode(b)
	})
}

func (l *lifecycle) setStringTag(s string) {
	l.setInboundTag(tag.FormString, s == "", func() (tag.Tag, error) {
		return tag.Parse(s)
	})
}

// activeHandle returns the handle of a started tracer, used to parent
// tracers created from a context or an in-process link.
func (l *lifecycle) activeHandle() SpanHandle {
	if l.state != stateStarted {
		return nil
	}
	return l.handle
}

func (l *lifecycle) misuse(op string) {
	l.p.metrics.MisuseCount.Inc()
	l.p.logger.Debugf("tracer: %s: %s ignored in state %s", l.span.Kind, op, l.state)
}

// safely calls into the recorder; a panicking recorder must not break the
// host.
func (l *lifecycle) safely(op string, f func()) {
	defer func() {
		if r := recover(); r != nil {
			l.p.metrics.RecorderPanicCount.Inc()
			l.p.logger.Errorf("tracer: %s: recorder %s: %v", l.span.Kind, op, r)
		}
	}()
	f()
}
