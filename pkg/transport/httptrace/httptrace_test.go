// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package httptrace_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ethersphere/agentsdk/pkg/logging"
	"github.com/ethersphere/agentsdk/pkg/tracer"
	"github.com/ethersphere/agentsdk/pkg/tracer/mock"
	"github.com/ethersphere/agentsdk/pkg/tracer/noop"
	"github.com/ethersphere/agentsdk/pkg/tracing"
	"github.com/ethersphere/agentsdk/pkg/transport/httptrace"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"resenje.org/web"
)

// newServer starts a test server with a router traced by the handler and
// returns a client that traces its requests.
func newServer(t *testing.T, p tracer.Provider, o *httptrace.Options) (*httptest.Server, *http.Client) {
	t.Helper()

	router := mux.NewRouter()
	router.Use(httptrace.NewHandler(p, "users", o))
	router.HandleFunc("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, tracer.TagFromContext(r.Context()).String())
	})
	router.HandleFunc("/unavailable", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	s := httptest.NewServer(router)
	t.Cleanup(s.Close)

	return s, &http.Client{Transport: &httptrace.Transport{Provider: p, Service: "users"}}
}

func get(t *testing.T, c *http.Client, url string) (int, string) {
	t.Helper()

	resp, err := c.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func spansByKind(r *mock.Recorder) map[tracer.Kind]mock.Span {
	spans := make(map[tracer.Kind]mock.Span)
	for _, s := range r.Spans() {
		spans[s.Kind] = s
	}
	return spans
}

func TestRemoteCall(t *testing.T) {
	t.Parallel()

	var buf lockedBuffer
	r := mock.NewRecorder()
	s, c := newServer(t, tracer.NewRecordingProvider(r, nil), &httptrace.Options{
		Logger:  logging.New(&buf, logrus.InfoLevel),
		Level:   logrus.InfoLevel,
		Message: "api access",
	})

	status, body := get(t, c, s.URL+"/users/42")
	if status != http.StatusOK {
		t.Fatalf("got status %v, want %v", status, http.StatusOK)
	}

	spans := spansByKind(r)
	client, server := spans[tracer.KindOutgoingRemoteCall], spans[tracer.KindIncomingRemoteCall]

	if server.Inbound != client.Tag {
		t.Errorf("got inbound tag %+v, want %+v", server.Inbound, client.Tag)
	}
	if body != server.Tag.String() {
		t.Errorf("got handler tag %q, want %q", body, server.Tag.String())
	}
	if got, want := server.RemoteCall.Method(), "GET /users/{id}"; got != want {
		t.Errorf("got server method %q, want %q", got, want)
	}
	if got, want := client.RemoteCall.Method(), "GET /users/42"; got != want {
		t.Errorf("got client method %q, want %q", got, want)
	}
	if got := server.Annotations[tracer.AnnotationProtocolName]; got != "HTTP/1.1" {
		t.Errorf("got protocol %v, want HTTP/1.1", got)
	}
	if server.Err != nil || client.Err != nil {
		t.Errorf("got errors %v, %v", server.Err, client.Err)
	}

	log := buf.String()
	if want := tracing.LogField + "=" + server.Tag.TraceID.String(); !strings.Contains(log, want) {
		t.Errorf("got access log %q, want it to contain %q", log, want)
	}
	if !strings.Contains(log, "api access") {
		t.Errorf("got access log %q", log)
	}
}

func TestServerError(t *testing.T) {
	t.Parallel()

	r := mock.NewRecorder()
	s, c := newServer(t, tracer.NewRecordingProvider(r, nil), nil)

	if status, _ := get(t, c, s.URL+"/unavailable"); status != http.StatusServiceUnavailable {
		t.Fatalf("got status %v, want %v", status, http.StatusServiceUnavailable)
	}

	want := tracer.ErrorRecord{Kind: "HTTP 503", Message: "Service Unavailable"}
	for kind, span := range spansByKind(r) {
		if span.Err == nil || *span.Err != want {
			t.Errorf("%v: got error %v, want %v", kind, span.Err, want)
		}
	}
}

func TestPanic(t *testing.T) {
	t.Parallel()

	r := mock.NewRecorder()
	p := tracer.NewRecordingProvider(r, nil)

	h := web.ChainHandlers(
		handlers.RecoveryHandler(handlers.RecoveryLogger(discardLogger{})),
		httptrace.NewHandler(p, "users", nil),
		web.FinalHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}),
	)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("got status %v, want %v", w.Code, http.StatusInternalServerError)
	}
	spans := r.Spans()
	if len(spans) != 1 {
		t.Fatalf("got %v spans, want 1", len(spans))
	}
	if want := (tracer.ErrorRecord{Kind: "panic", Message: "boom"}); spans[0].Err == nil || *spans[0].Err != want {
		t.Errorf("got error %v, want %v", spans[0].Err, want)
	}
	if got, want := spans[0].RemoteCall.Method(), "GET /panic"; got != want {
		t.Errorf("got method %q, want %q", got, want)
	}
}

func TestMalformedTagHeader(t *testing.T) {
	t.Parallel()

	r := mock.NewRecorder()
	h := httptrace.NewHandler(tracer.NewRecordingProvider(r, nil), "users", nil)(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(httptrace.TagHeaderName, "garbage")
	h.ServeHTTP(httptest.NewRecorder(), req)

	spans := r.Spans()
	if len(spans) != 1 {
		t.Fatalf("got %v spans, want 1", len(spans))
	}
	if !spans[0].Inbound.IsZero() {
		t.Errorf("got inbound tag %+v from a malformed header", spans[0].Inbound)
	}
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	r := mock.NewRecorder()
	s := httptest.NewServer(http.NotFoundHandler())
	url := s.URL
	s.Close()

	c := &http.Client{Transport: &httptrace.Transport{Provider: tracer.NewRecordingProvider(r, nil)}}
	resp, err := c.Get(url)
	if err == nil {
		resp.Body.Close()
		t.Fatal("expected error")
	}

	spans := r.Spans()
	if len(spans) != 1 {
		t.Fatalf("got %v spans, want 1", len(spans))
	}
	if spans[0].Err == nil {
		t.Error("transport error not recorded")
	}
	if got, want := spans[0].RemoteCall.Service(), strings.TrimPrefix(url, "http://"); got != want {
		t.Errorf("got service %q, want %q", got, want)
	}
}

func TestFallbackProvider(t *testing.T) {
	t.Parallel()

	headers := make(chan string, 1)
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Get(httptrace.TagHeaderName)
	}))
	defer s.Close()

	c := &http.Client{Transport: &httptrace.Transport{Provider: noop.Provider{}}}
	status, _ := get(t, c, s.URL)
	if status != http.StatusOK {
		t.Fatalf("got status %v, want %v", status, http.StatusOK)
	}
	if header := <-headers; header != "" {
		t.Errorf("got tag header %q from the fallback provider", header)
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type discardLogger struct{}

func (discardLogger) Println(...interface{}) {}
