// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracer

var (
	_ OutgoingMessageTracer        = (*outgoingMessage)(nil)
	_ IncomingMessageReceiveTracer = (*incomingMessageReceive)(nil)
	_ IncomingMessageProcessTracer = (*incomingMessageProcess)(nil)
	_ OutgoingRemoteCallTracer     = (*outgoingRemoteCall)(nil)
	_ IncomingRemoteCallTracer     = (*incomingRemoteCall)(nil)
	_ DatabaseRequestTracer        = (*databaseRequest)(nil)
	_ InProcessLinkTracer          = (*inProcessLink)(nil)
)

type outgoingMessage struct{ lifecycle }

func (t *outgoingMessage) PropagationTag() []byte       { return t.outgoingTag().Bytes() }
func (t *outgoingMessage) PropagationTagString() string { return t.outgoingTag().String() }
func (t *outgoingMessage) SetVendorMessageID(id string) { t.annotate(AnnotationVendorMessageID, id) }
func (t *outgoingMessage) SetCorrelationID(id string)   { t.annotate(AnnotationCorrelationID, id) }

type incomingMessageReceive struct{ lifecycle }

type incomingMessageProcess struct{ lifecycle }

func (t *incomingMessageProcess) SetPropagationTag(b []byte)       { t.setBinaryTag(b) }
func (t *incomingMessageProcess) SetPropagationTagString(s string) { t.setStringTag(s) }
func (t *incomingMessageProcess) SetVendorMessageID(id string) {
	t.annotate(AnnotationVendorMessageID, id)
}
func (t *incomingMessageProcess) SetCorrelationID(id string) { t.annotate(AnnotationCorrelationID, id) }

type outgoingRemoteCall struct{ lifecycle }

func (t *outgoingRemoteCall) PropagationTag() []byte       { return t.outgoingTag().Bytes() }
func (t *outgoingRemoteCall) PropagationTagString() string { return t.outgoingTag().String() }
func (t *outgoingRemoteCall) SetProtocolName(name string)  { t.annotate(AnnotationProtocolName, name) }

type incomingRemoteCall struct{ lifecycle }

func (t *incomingRemoteCall) SetPropagationTag(b []byte)       { t.setBinaryTag(b) }
func (t *incomingRemoteCall) SetPropagationTagString(s string) { t.setStringTag(s) }
func (t *incomingRemoteCall) SetProtocolName(name string)      { t.annotate(AnnotationProtocolName, name) }

type databaseRequest struct{ lifecycle }

func (t *databaseRequest) SetReturnedRowCount(n int) {
	if n < 0 {
		t.misuse("negative returned row count")
		return
	}
	t.annotate(AnnotationReturnedRowCount, n)
}

func (t *databaseRequest) SetRoundTripCount(n int) {
	if n < 0 {
		t.misuse("negative round trip count")
		return
	}
	t.annotate(AnnotationRoundTripCount, n)
}

type inProcessLink struct{ lifecycle }
