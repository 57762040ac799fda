// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package httptrace

import (
	"net/http"
	"strconv"

	"github.com/ethersphere/agentsdk/pkg/info"
	"github.com/ethersphere/agentsdk/pkg/tracer"
)

// Transport is an http.RoundTripper that traces every request as an
// outgoing remote call of Service and adds the propagation tag to the
// request headers.
type Transport struct {
	Provider tracer.Provider
	// Service names the called service. The request host is used if it is
	// empty.
	Service string
	// Base is the underlying round tripper. http.DefaultTransport is used if
	// it is nil.
	Base http.RoundTripper
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	service := t.Service
	if service == "" {
		service = r.URL.Host
	}
	rc := info.NewRemoteCall(r.Method+" "+r.URL.Path, service, r.URL.Scheme+"://"+r.URL.Host, info.ChannelTypeTCPIP, r.URL.Host)

	tr := t.Provider.TraceOutgoingRemoteCall(r.Context(), rc)
	tr.SetProtocolName(r.Proto)
	tr.Start()
	defer tr.End()

	if s := tr.PropagationTagString(); s != "" {
		r = r.Clone(r.Context())
		r.Header.Set(TagHeaderName, s)
	}

	resp, err := t.base().RoundTrip(r)
	if err != nil {
		tr.Error(err)
		return nil, err
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		tr.SetError("HTTP "+strconv.Itoa(resp.StatusCode), http.StatusText(resp.StatusCode))
	}
	return resp, nil
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
