// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracer

import (
	"context"

	"github.com/ethersphere/agentsdk/pkg/tag"
)

// contextKey is used to reference the active span as context value.
type contextKey struct{}

type activeTracer interface {
	activeHandle() SpanHandle
}

// WithContext returns a context in which t is the active tracer. Tracers
// created from the returned context, and in-process links, are children of
// t. It must be called after t is started; for tracers that are not started
// or do not record spans ctx is returned unchanged.
//
// Only the span handle of t is stored, so the returned context can be
// passed to other goroutines.
func WithContext(ctx context.Context, t Tracer) context.Context {
	a, ok := t.(activeTracer)
	if !ok {
		return ctx
	}
	h := a.activeHandle()
	if h == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, h)
}

// HandleFromContext returns the span handle of the active tracer, or nil.
func HandleFromContext(ctx context.Context) SpanHandle {
	if ctx == nil {
		return nil
	}
	h, ok := ctx.Value(contextKey{}).(SpanHandle)
	if !ok {
		return nil
	}
	return h
}

// TagFromContext returns the tag of the active tracer, or tag.None.
func TagFromContext(ctx context.Context) tag.Tag {
	h := HandleFromContext(ctx)
	if h == nil {
		return tag.None
	}
	return h.Tag()
}
