// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package httptrace traces HTTP requests as remote calls. The propagation
// tag travels in the TagHeaderName header in its string form.
package httptrace

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ethersphere/agentsdk/pkg/info"
	"github.com/ethersphere/agentsdk/pkg/logging"
	"github.com/ethersphere/agentsdk/pkg/tracer"
	"github.com/ethersphere/agentsdk/pkg/tracing"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// TagHeaderName is the http header name used to propagate the tag.
const TagHeaderName = "X-Trace-Tag"

// Options are optional parameters of NewHandler.
type Options struct {
	// Logger, if set, receives an access log entry for every request with
	// the trace id of the request.
	Logger logging.Logger
	// Level of the access log entries. Zero disables them.
	Level logrus.Level
	// Message of the access log entries.
	Message string
}

// NewHandler creates a handler that traces every request as an incoming
// remote call of service. The context of the request carries the tracer.
//
// A panic of the next handler is recorded as an error of the call and
// re-raised after the tracer ended.
func NewHandler(p tracer.Provider, service string, o *Options) func(h http.Handler) http.Handler {
	if o == nil {
		o = new(Options)
	}
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			rl := &responseLogger{w: w}

			t := p.TraceIncomingRemoteCall(r.Context(), info.NewRemoteCall(method(r), service, r.Host, info.ChannelTypeTCPIP, r.RemoteAddr))
			t.SetPropagationTagString(r.Header.Get(TagHeaderName))
			t.SetProtocolName(r.Proto)
			t.Start()
			ctx := tracer.WithContext(r.Context(), t)

			defer func() {
				if v := recover(); v != nil {
					t.SetError("panic", fmt.Sprint(v))
					t.End()
					panic(v)
				}
				if rl.status >= http.StatusInternalServerError {
					t.SetError("HTTP "+strconv.Itoa(rl.status), http.StatusText(rl.status))
				}
				t.End()

				if o.Logger == nil || o.Level == 0 {
					return
				}
				status := rl.status
				if status == 0 {
					status = http.StatusOK
				}
				ip, _, err := net.SplitHostPort(r.RemoteAddr)
				if err != nil {
					ip = r.RemoteAddr
				}
				tracing.LoggerWithTag(o.Logger, tracer.TagFromContext(ctx)).WithFields(logrus.Fields{
					"ip":       ip,
					"method":   r.Method,
					"uri":      r.RequestURI,
					"proto":    r.Proto,
					"status":   status,
					"size":     rl.size,
					"duration": time.Since(startTime).Seconds(),
				}).Log(o.Level, o.Message)
			}()

			h.ServeHTTP(rl, r.WithContext(ctx))
		})
	}
}

// method names the called method by the matched gorilla/mux route template,
// or by the request path.
func method(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return r.Method + " " + tpl
		}
	}
	return r.Method + " " + r.URL.Path
}
